package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/rs/zerolog"

	"github.com/decicalc/engine"
	"github.com/decicalc/engine/formula"
)

// newOrderTrackingContext builds a 2x2 grid where every cell's formula
// calls MARK(), a test-only getter that appends the evaluating cell's
// (col,row) to order. This observes the traversal sequence Recalc
// actually drives without the scheduler needing to expose it directly.
func newOrderTrackingContext(t *testing.T, cMajor, topDown, leftRight bool) (*engine.CallingContext, *[][2]int64) {
	t.Helper()
	sheet := engine.NewSheet()
	sheet.CMajor = cMajor
	sheet.TopDown = topDown
	sheet.LeftRight = leftRight

	ctx := engine.NewCallingContext(sheet, zerolog.Nop())
	ctx.Parse = formula.Parse

	order := &[][2]int64{}
	ctx.Getters.Register(&engine.Getter{
		Name:  "MARK",
		Arity: engine.ArityConstant,
		Fn: func(c *engine.CallingContext, args []engine.Value) (engine.Value, error) {
			frame := c.Stack.Top()
			if frame != nil {
				*order = append(*order, [2]int64{frame.Col, frame.Row})
			}
			return engine.FloatValue(0), nil
		},
	})

	for col := int64(0); col < 2; col++ {
		for row := int64(0); row < 2; row++ {
			cell := sheet.InitCellAt(col, row)
			cell.CurrentInput = "=MARK()"
		}
	}
	return ctx, order
}

func TestRecalcTraversalOrderColumnMajorTopDownLeftRight(t *testing.T) {
	ctx, order := newOrderTrackingContext(t, true, true, true)
	engine.Recalc(ctx)
	require.Len(t, *order, 4)
	assert.Equal(t, [][2]int64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, *order)
}

func TestRecalcTraversalOrderColumnMajorBottomUpRightLeft(t *testing.T) {
	ctx, order := newOrderTrackingContext(t, true, false, false)
	engine.Recalc(ctx)
	require.Len(t, *order, 4)
	assert.Equal(t, [][2]int64{{1, 1}, {1, 0}, {0, 1}, {0, 0}}, *order)
}

func TestRecalcTraversalOrderRowMajorTopDownLeftRight(t *testing.T) {
	ctx, order := newOrderTrackingContext(t, false, true, true)
	engine.Recalc(ctx)
	require.Len(t, *order, 4)
	assert.Equal(t, [][2]int64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, *order)
}

func TestRecalcTraversalOrderRowMajorBottomUpRightLeft(t *testing.T) {
	ctx, order := newOrderTrackingContext(t, false, false, false)
	engine.Recalc(ctx)
	require.Len(t, *order, 4)
	assert.Equal(t, [][2]int64{{1, 1}, {0, 1}, {1, 0}, {0, 0}}, *order)
}

func TestRecalcClearsNameMapAndPrecedents(t *testing.T) {
	sheet := engine.NewSheet()
	ctx := engine.NewCallingContext(sheet, zerolog.Nop())
	ctx.Parse = formula.Parse

	a1 := sheet.InitCellAt(0, 0)
	a1.CurrentInput = "=5"
	b1 := sheet.InitCellAt(1, 0)
	b1.CurrentInput = "=A1+1"

	engine.Recalc(ctx)
	precedents := ctx.Precedents.Precedents(1, 0)
	require.Len(t, precedents, 1)
	assert.Equal(t, [2]int64{0, 0}, precedents[0])

	expr, err := formula.Parse("=1")
	require.NoError(t, err)
	ctx.Names.Define("TOTAL", expr)
	require.Equal(t, 1, ctx.Names.Len())

	sheet.ClearCellAt(1, 0)
	b1 = sheet.InitCellAt(1, 0)
	b1.CurrentInput = "=10"
	engine.Recalc(ctx)

	assert.Empty(t, ctx.Precedents.Precedents(1, 0))
	assert.Equal(t, 0, ctx.Names.Len())
}
