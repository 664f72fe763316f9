package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decicalc/engine"
)

func TestParseA1AndFormatA1RoundTrip(t *testing.T) {
	cases := []struct {
		addr     string
		col, row int64
	}{
		{"A1", 0, 0},
		{"Z1", 25, 0},
		{"AA1", 26, 0},
		{"a10", 0, 9},
		{"BC45", 54, 44},
	}
	for _, c := range cases {
		col, row, err := engine.ParseA1(c.addr)
		require.NoError(t, err, c.addr)
		assert.Equal(t, c.col, col, "col for %s", c.addr)
		assert.Equal(t, c.row, row, "row for %s", c.addr)

		back, err := engine.FormatA1(col, row)
		require.NoError(t, err)
		upper, err := engine.FormatA1(c.col, c.row)
		require.NoError(t, err)
		assert.Equal(t, upper, back)
	}
}

func TestParseA1Rejects(t *testing.T) {
	_, _, err := engine.ParseA1("123")
	assert.Error(t, err)

	_, _, err = engine.ParseA1("A")
	assert.Error(t, err)

	_, _, err = engine.ParseA1("A0")
	assert.Error(t, err)
}

func TestColumnLettersBijection(t *testing.T) {
	for _, col := range []int64{0, 1, 25, 26, 27, 701, 702} {
		letters, err := engine.ColumnLetters(col)
		require.NoError(t, err)
		back, err := engine.ParseColumnLetters(letters)
		require.NoError(t, err)
		assert.Equal(t, col, back, "column %d round trip via %q", col, letters)
	}
}

func TestCellRefResolveRelativeAndAbsolute(t *testing.T) {
	relative := engine.CellRef{ColAbsolute: false, ColRef: 1, RowAbsolute: false, RowRef: -1}
	col, row, ok := relative.Resolve(5, 5)
	require.True(t, ok)
	assert.Equal(t, int64(6), col)
	assert.Equal(t, int64(4), row)

	absolute := engine.CellRef{ColAbsolute: true, ColRef: 2, RowAbsolute: true, RowRef: 2}
	col, row, ok = absolute.Resolve(99, 99)
	require.True(t, ok)
	assert.Equal(t, int64(2), col)
	assert.Equal(t, int64(2), row)

	outOfRange := engine.CellRef{ColAbsolute: false, ColRef: -10, RowAbsolute: true, RowRef: 0}
	_, _, ok = outOfRange.Resolve(0, 0)
	assert.False(t, ok)
}

func TestCellRangeExpandNormalizesCorners(t *testing.T) {
	rng := engine.CellRangeRef{
		Start: engine.CellRef{ColAbsolute: true, ColRef: 2, RowAbsolute: true, RowRef: 0},
		End:   engine.CellRef{ColAbsolute: true, ColRef: 0, RowAbsolute: true, RowRef: 1},
	}
	cells, err := rng.Expand(0, 0, true)
	require.NoError(t, err)
	assert.Equal(t, [][2]int64{
		{0, 0}, {0, 1},
		{1, 0}, {1, 1},
		{2, 0}, {2, 1},
	}, cells)

	cellsRowMajor, err := rng.Expand(0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, [][2]int64{
		{0, 0}, {1, 0}, {2, 0},
		{0, 1}, {1, 1}, {2, 1},
	}, cellsRowMajor)
}
