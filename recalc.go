package engine

// Recalc walks every cell exactly once in the order dictated by
// ctx.Sheet's three traversal flags (c_major/top_down/left_right, §4.3),
// re-establishing memoization and cycle-detection state for the next
// generation. Grounded on `recalc`'s eight-branch traversal in
// original_source/Forwards/src/Parser/SpreadSheet.cpp.
func Recalc(ctx *CallingContext) {
	ctx.InUserInput = false
	ctx.Generation++
	ctx.Names.Clear()
	ctx.Precedents.Clear()

	s := ctx.Sheet
	maxCol := s.ColumnCount()
	maxRow := s.MaxRow()

	cellsVisited := 0
	visit := func(col, row int64) {
		if s.GetCellAt(col, row) == nil {
			return
		}
		cellsVisited++
		_, _ = EvaluateRethrow(ctx, col, row)
	}

	colRange := func() []int64 {
		cols := make([]int64, maxCol)
		if s.LeftRight {
			for i := int64(0); i < maxCol; i++ {
				cols[i] = i
			}
		} else {
			for i := int64(0); i < maxCol; i++ {
				cols[i] = maxCol - 1 - i
			}
		}
		return cols
	}

	rowRange := func() []int64 {
		rows := make([]int64, maxRow)
		if s.TopDown {
			for i := int64(0); i < maxRow; i++ {
				rows[i] = i
			}
		} else {
			for i := int64(0); i < maxRow; i++ {
				rows[i] = maxRow - 1 - i
			}
		}
		return rows
	}

	if s.CMajor {
		for _, col := range colRange() {
			for _, row := range rowRange() {
				visit(col, row)
			}
		}
	} else {
		for _, row := range rowRange() {
			for _, col := range colRange() {
				visit(col, row)
			}
		}
	}

	ctx.Generation++
	LogRecalc(ctx.Logger, ctx, cellsVisited)
}
