package engine

// Column width bounds, supplemented from
// original_source/OddsAndEnds/GetAndSet.h (§6.6).
const (
	MaxColumnWidth = 40
	MinColumnWidth = 1
	DefColumnWidth = 9
)

// Sheet is the sparse column-major 2-D container of Cells (§3, §4.1):
// an ordered sequence of columns, each an ordered sequence of optional
// cells, growable. Grounded on
// original_source/Forwards/include/Forwards/Engine/SpreadSheet.h /
// SpreadSheet.cpp, restructured into Go's result-returning idiom instead
// of raw pointers.
type Sheet struct {
	columns [][]*Cell
	maxRow  int64

	// Traversal flags consumed by Recalc (§4.3).
	CMajor    bool
	TopDown   bool
	LeftRight bool

	columnWidths map[int64]int
}

// NewSheet returns an empty sheet with the default traversal order
// (column-major, top-down, left-to-right), matching the original's
// SpreadSheet() constructor.
func NewSheet() *Sheet {
	return &Sheet{
		CMajor:       true,
		TopDown:      true,
		LeftRight:    true,
		columnWidths: make(map[int64]int),
	}
}

// MaxRow is the largest row index ever occupied + 1; monotone
// non-decreasing except on explicit row removal (§3).
func (s *Sheet) MaxRow() int64 { return s.maxRow }

// ColumnCount is the current number of (possibly sparse) columns.
func (s *Sheet) ColumnCount() int64 { return int64(len(s.columns)) }

// ColumnLen returns the current slot count of column col, or 0 if col
// doesn't exist.
func (s *Sheet) ColumnLen(col int64) int64 {
	if col < 0 || col >= int64(len(s.columns)) {
		return 0
	}
	return int64(len(s.columns[col]))
}

// GetCellAt returns the cell at (col,row), or nil if no entry exists
// there, or if out of extent entirely (§4.1).
func (s *Sheet) GetCellAt(col, row int64) *Cell {
	if col < 0 || col >= int64(len(s.columns)) {
		return nil
	}
	if row < 0 || row >= int64(len(s.columns[col])) {
		return nil
	}
	return s.columns[col][row]
}

func (s *Sheet) growColumn(col int64) {
	for int64(len(s.columns)) <= col {
		s.columns = append(s.columns, nil)
	}
}

// InitCellAt grows the column vector and that column's row vector to
// cover (col,row) inclusive, places a fresh empty cell, updates maxRow
// (§4.1).
func (s *Sheet) InitCellAt(col, row int64) *Cell {
	s.growColumn(col)
	if row >= int64(len(s.columns[col])) {
		grown := make([]*Cell, row+1)
		copy(grown, s.columns[col])
		s.columns[col] = grown
		if row >= s.maxRow {
			s.maxRow = row + 1
		}
	}
	c := NewCell()
	s.columns[col][row] = c
	return c
}

// ClearCellAt drops the cell at (col,row); does not shrink extents
// (§4.1).
func (s *Sheet) ClearCellAt(col, row int64) {
	if col < 0 || col >= int64(len(s.columns)) {
		return
	}
	if row < 0 || row >= int64(len(s.columns[col])) {
		return
	}
	s.columns[col][row] = nil
}

// ClearColumn drops all cells in column col.
func (s *Sheet) ClearColumn(col int64) {
	if col < 0 || col >= int64(len(s.columns)) {
		return
	}
	s.columns[col] = nil
}

// ClearRow drops all cells at row index row across all columns.
func (s *Sheet) ClearRow(row int64) {
	for i := range s.columns {
		if row >= 0 && row < int64(len(s.columns[i])) {
			s.columns[i][row] = nil
		}
	}
}

// InsertColumnBefore inserts an empty column at position col if col is
// within current column count; extents shift right. Does not renumber
// formulas (§4.1). A no-op if col is strictly beyond current extent.
func (s *Sheet) InsertColumnBefore(col int64) {
	if col < 0 || col >= int64(len(s.columns)) {
		return
	}
	s.columns = append(s.columns, nil)
	copy(s.columns[col+1:], s.columns[col:])
	s.columns[col] = nil
	s.shiftColumnWidthsInsert(col)
}

// InsertRowBefore inserts an empty slot at row in every existing column
// whose length exceeds row; if any insertion occurred, maxRow increments
// (§4.1).
func (s *Sheet) InsertRowBefore(row int64) {
	didAnything := false
	for i := range s.columns {
		if row >= 0 && row < int64(len(s.columns[i])) {
			col := s.columns[i]
			grown := make([]*Cell, len(col)+1)
			copy(grown, col[:row])
			copy(grown[row+1:], col[row:])
			s.columns[i] = grown
			didAnything = true
		}
	}
	if didAnything {
		s.maxRow++
	}
}

// swap exchanges the cells at (col1,row) and (col2,row), growing either
// column as needed.
func (s *Sheet) swap(col1, col2, row int64) {
	one := s.GetCellAt(col1, row)
	two := s.GetCellAt(col2, row)
	if one == nil && two == nil {
		return
	}
	s.growColumn(col2)
	if row >= int64(len(s.columns[col1])) {
		grown := make([]*Cell, row+1)
		copy(grown, s.columns[col1])
		s.columns[col1] = grown
	}
	if row >= int64(len(s.columns[col2])) {
		grown := make([]*Cell, row+1)
		copy(grown, s.columns[col2])
		s.columns[col2] = grown
	}
	s.columns[col1][row], s.columns[col2][row] = s.columns[col2][row], s.columns[col1][row]
}

// InsertCellBeforeShiftRight bubbles the cell at (col,row) rightward by
// pairwise swaps from the rightmost existing column down to col;
// effectively inserts an empty at (col,row) and shifts the remainder of
// that row right by one (§4.1).
func (s *Sheet) InsertCellBeforeShiftRight(col, row int64) {
	for i := int64(len(s.columns)); i > col; i-- {
		s.swap(i-1, i, row)
	}
}

// InsertCellBeforeShiftDown inserts an empty slot at (col,row) within
// that column only; if the column length equaled maxRow, maxRow
// increments (§4.1).
func (s *Sheet) InsertCellBeforeShiftDown(col, row int64) {
	if col < 0 || col >= int64(len(s.columns)) {
		return
	}
	if row < 0 || row >= int64(len(s.columns[col])) {
		return
	}
	if int64(len(s.columns[col])) == s.maxRow {
		s.maxRow++
	}
	colSlice := s.columns[col]
	grown := make([]*Cell, len(colSlice)+1)
	copy(grown, colSlice[:row])
	copy(grown[row+1:], colSlice[row:])
	s.columns[col] = grown
}

// RemoveColumn erases column col entirely.
func (s *Sheet) RemoveColumn(col int64) {
	if col < 0 || col >= int64(len(s.columns)) {
		return
	}
	s.columns = append(s.columns[:col], s.columns[col+1:]...)
	s.shiftColumnWidthsRemove(col)
}

// RemoveRow erases the row index from every column that has one; if any
// column had it, maxRow decrements.
func (s *Sheet) RemoveRow(row int64) {
	didAnything := false
	for i := range s.columns {
		if row >= 0 && row < int64(len(s.columns[i])) {
			s.columns[i] = append(s.columns[i][:row], s.columns[i][row+1:]...)
			didAnything = true
		}
	}
	if didAnything && s.maxRow > 0 {
		s.maxRow--
	}
}

// RemoveCellShiftLeft clears (col,row) then pairwise-swaps it rightward
// to the end of the column range, equivalent to deleting that row-entry
// from the starting column and shifting the remainder of the row left
// (§4.1).
func (s *Sheet) RemoveCellShiftLeft(col, row int64) {
	s.ClearCellAt(col, row)
	for i := col; i < int64(len(s.columns)); i++ {
		s.swap(i, i+1, row)
	}
}

// RemoveCellShiftUp erases the slot at (col,row) within that column only.
func (s *Sheet) RemoveCellShiftUp(col, row int64) {
	if col < 0 || col >= int64(len(s.columns)) {
		return
	}
	if row < 0 || row >= int64(len(s.columns[col])) {
		return
	}
	s.columns[col] = append(s.columns[col][:row], s.columns[col][row+1:]...)
}

// ColumnWidth returns the display width of col, or DefColumnWidth if
// unset (§6.6).
func (s *Sheet) ColumnWidth(col int64) int {
	if w, ok := s.columnWidths[col]; ok {
		return w
	}
	return DefColumnWidth
}

// SetColumnWidth sets col's display width, clamped to
// [MinColumnWidth, MaxColumnWidth].
func (s *Sheet) SetColumnWidth(col int64, width int) {
	if width < MinColumnWidth {
		width = MinColumnWidth
	}
	if width > MaxColumnWidth {
		width = MaxColumnWidth
	}
	s.columnWidths[col] = width
}

// IncColumnWidth widens col's display width by one, clamped at
// MaxColumnWidth.
func (s *Sheet) IncColumnWidth(col int64) {
	s.SetColumnWidth(col, s.ColumnWidth(col)+1)
}

// DecColumnWidth narrows col's display width by one, clamped at
// MinColumnWidth.
func (s *Sheet) DecColumnWidth(col int64) {
	s.SetColumnWidth(col, s.ColumnWidth(col)-1)
}

func (s *Sheet) shiftColumnWidthsInsert(col int64) {
	shifted := make(map[int64]int, len(s.columnWidths))
	for c, w := range s.columnWidths {
		if c >= col {
			shifted[c+1] = w
		} else {
			shifted[c] = w
		}
	}
	s.columnWidths = shifted
}

func (s *Sheet) shiftColumnWidthsRemove(col int64) {
	shifted := make(map[int64]int, len(s.columnWidths))
	for c, w := range s.columnWidths {
		switch {
		case c == col:
			// dropped
		case c > col:
			shifted[c-1] = w
		default:
			shifted[c] = w
		}
	}
	s.columnWidths = shifted
}
