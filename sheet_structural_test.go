package engine_test

import (
	"testing"

	"github.com/decicalc/engine"
)

func setValueCell(sheet *engine.Sheet, col, row int64, input string) {
	cell := sheet.InitCellAt(col, row)
	cell.Type = engine.CellKindValue
	cell.CurrentInput = input
}

func assertCellInput(t *testing.T, sheet *engine.Sheet, col, row int64, want string) {
	t.Helper()
	cell := sheet.GetCellAt(col, row)
	got := ""
	if cell != nil {
		got = cell.CurrentInput
	}
	if got != want {
		ref, _ := engine.FormatA1(col, row)
		t.Errorf("%s: got %q, want %q", ref, got, want)
	}
}

func assertCellEmpty(t *testing.T, sheet *engine.Sheet, col, row int64) {
	t.Helper()
	if cell := sheet.GetCellAt(col, row); cell != nil {
		ref, _ := engine.FormatA1(col, row)
		t.Errorf("%s: got %+v, want empty", ref, cell)
	}
}

// TestStructuralShiftScenario reproduces spec §8 Scenario 6: given
// A1=1, B1=2, C1=3 and no formulas referencing them,
// insert_cell_before_shift_right(A,1) yields empty at A1, 1 at B1, 2 at
// C1, 3 at D1; a subsequent remove_cell_shift_left(A,1) restores the
// original row.
func TestStructuralShiftScenario(t *testing.T) {
	sheet := engine.NewSheet()
	setValueCell(sheet, 0, 0, "1")
	setValueCell(sheet, 1, 0, "2")
	setValueCell(sheet, 2, 0, "3")

	sheet.InsertCellBeforeShiftRight(0, 0)
	assertCellEmpty(t, sheet, 0, 0)
	assertCellInput(t, sheet, 1, 0, "1")
	assertCellInput(t, sheet, 2, 0, "2")
	assertCellInput(t, sheet, 3, 0, "3")

	sheet.RemoveCellShiftLeft(0, 0)
	assertCellInput(t, sheet, 0, 0, "1")
	assertCellInput(t, sheet, 1, 0, "2")
	assertCellInput(t, sheet, 2, 0, "3")
}

func TestInsertColumnBeforeAndRemoveColumn(t *testing.T) {
	sheet := engine.NewSheet()
	setValueCell(sheet, 0, 0, "1")
	setValueCell(sheet, 1, 0, "2")
	sheet.SetColumnWidth(1, 20)

	sheet.InsertColumnBefore(1)
	assertCellInput(t, sheet, 0, 0, "1")
	assertCellEmpty(t, sheet, 1, 0)
	assertCellInput(t, sheet, 2, 0, "2")
	if w := sheet.ColumnWidth(2); w != 20 {
		t.Errorf("column width did not shift with insert: got %d, want 20", w)
	}

	sheet.RemoveColumn(1)
	assertCellInput(t, sheet, 0, 0, "1")
	assertCellInput(t, sheet, 1, 0, "2")
	if w := sheet.ColumnWidth(1); w != 20 {
		t.Errorf("column width did not shift with remove: got %d, want 20", w)
	}
}

func TestInsertRowBeforeAndRemoveRow(t *testing.T) {
	sheet := engine.NewSheet()
	setValueCell(sheet, 0, 0, "1")
	setValueCell(sheet, 0, 1, "2")
	before := sheet.MaxRow()

	sheet.InsertRowBefore(1)
	if sheet.MaxRow() != before+1 {
		t.Errorf("MaxRow after InsertRowBefore: got %d, want %d", sheet.MaxRow(), before+1)
	}
	assertCellInput(t, sheet, 0, 0, "1")
	assertCellEmpty(t, sheet, 0, 1)
	assertCellInput(t, sheet, 0, 2, "2")

	sheet.RemoveRow(1)
	assertCellInput(t, sheet, 0, 0, "1")
	assertCellInput(t, sheet, 0, 1, "2")
}

func TestInsertCellBeforeShiftDownAndRemoveCellShiftUp(t *testing.T) {
	sheet := engine.NewSheet()
	setValueCell(sheet, 0, 0, "1")
	setValueCell(sheet, 0, 1, "2")

	sheet.InsertCellBeforeShiftDown(0, 0)
	assertCellEmpty(t, sheet, 0, 0)
	assertCellInput(t, sheet, 0, 1, "1")
	assertCellInput(t, sheet, 0, 2, "2")

	sheet.RemoveCellShiftUp(0, 0)
	assertCellInput(t, sheet, 0, 0, "1")
	assertCellInput(t, sheet, 0, 1, "2")
}

func TestColumnWidthShiftHelpersOnMultipleColumns(t *testing.T) {
	sheet := engine.NewSheet()
	sheet.SetColumnWidth(0, 15)
	sheet.SetColumnWidth(2, 25)
	setValueCell(sheet, 0, 0, "a")
	setValueCell(sheet, 2, 0, "c")

	sheet.InsertColumnBefore(0)
	if w := sheet.ColumnWidth(1); w != 15 {
		t.Errorf("column 0 width did not shift to 1: got %d, want 15", w)
	}
	if w := sheet.ColumnWidth(3); w != 25 {
		t.Errorf("column 2 width did not shift to 3: got %d, want 25", w)
	}

	sheet.RemoveColumn(0)
	if w := sheet.ColumnWidth(0); w != 15 {
		t.Errorf("column width did not shift back to 0: got %d, want 15", w)
	}
	if w := sheet.ColumnWidth(2); w != 25 {
		t.Errorf("column width did not shift back to 2: got %d, want 25", w)
	}
}
