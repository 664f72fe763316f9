package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decicalc/engine"
)

func TestNameMapDefineAndLookup(t *testing.T) {
	m := engine.NewNameMap()
	assert.Equal(t, 0, m.Len())

	_, ok := m.Lookup("TOTAL")
	assert.False(t, ok)

	expr, err := formulaParse(t, "=1+1")
	assert.NoError(t, err)
	m.Define("TOTAL", expr)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Lookup("TOTAL")
	assert.True(t, ok)
	assert.Equal(t, expr, got)
}

func TestNameMapClear(t *testing.T) {
	m := engine.NewNameMap()
	expr, err := formulaParse(t, "=42")
	assert.NoError(t, err)
	m.Define("A", expr)
	m.Define("B", expr)
	assert.Equal(t, 2, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
	_, ok := m.Lookup("A")
	assert.False(t, ok)
}
