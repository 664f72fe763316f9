package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/decicalc/engine"
	"github.com/decicalc/engine/formula"
	"github.com/decicalc/engine/store"
)

// visibleRows/visibleCols bound how much of the (effectively unbounded,
// §6.4) grid the table widget renders at once; scrolling grows the
// visible window rather than ever materializing the full extent.
const (
	visibleRows = 200
	visibleCols = 40
)

// sheetApp wires a Sheet into the dual-goroutine recalc-trigger model of
// SPEC_FULL §5.1: the TUI goroutine mutates the sheet directly and
// signals dirtyCh; the recalc worker owns mu and is the only thing that
// calls engine.Recalc.
type sheetApp struct {
	mu     sync.Mutex
	ctx    *engine.CallingContext
	app    *tview.Application
	table  *tview.Table
	status *tview.TextView
	input  *tview.InputField

	dirtyCh  chan struct{}
	filePath string
	curCol   int64
	curRow   int64
}

func loadSheet(r io.Reader) (*engine.Sheet, error) {
	return store.Load(r)
}

func runApp(filePath string) error {
	cfg := loadConfig()
	logger := engine.NewLogger(os.Stderr, flagDebug)

	var sheet *engine.Sheet
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", filePath, err)
		}
		sheet, err = loadSheet(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("loading %s: %w", filePath, err)
		}
	} else {
		sheet = engine.NewSheet()
	}
	cfg.ApplyTo(sheet)

	ctx := engine.NewCallingContext(sheet, logger)
	ctx.Parse = formula.Parse

	sa := &sheetApp{
		ctx:      ctx,
		app:      tview.NewApplication(),
		dirtyCh:  make(chan struct{}, 1),
		filePath: filePath,
	}
	sa.build()

	go sa.recalcWorker(cfg.Recalc.TickInterval.Duration)
	sa.markDirty()

	return sa.app.SetRoot(sa.layout(), true).SetFocus(sa.table).Run()
}

func (sa *sheetApp) layout() tview.Primitive {
	sa.status = tview.NewTextView().SetDynamicColors(true)
	sa.status.SetText("[::b]decicalc[::-]  ^S save  ^Q quit  Enter edit  Esc cancel  ^P precedents  ^G dependents  ^D clear cell")

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(sa.table, 0, 1, true).
		AddItem(sa.input, 1, 0, false).
		AddItem(sa.status, 1, 0, false)
	return flex
}

func (sa *sheetApp) build() {
	sa.table = tview.NewTable().SetFixed(1, 1).SetSelectable(true, true)
	sa.input = tview.NewInputField().SetLabel("formula: ")
	sa.input.SetDoneFunc(sa.onInputDone)

	sa.table.SetSelectionChangedFunc(func(row, col int) {
		if row < 1 || col < 1 {
			return
		}
		sa.curCol, sa.curRow = int64(col-1), int64(row-1)
		sa.showCurrentInput()
	})

	sa.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEnter:
			sa.app.SetFocus(sa.input)
			return nil
		case event.Key() == tcell.KeyCtrlS:
			sa.save()
			return nil
		case event.Key() == tcell.KeyCtrlQ:
			sa.app.Stop()
			return nil
		case event.Key() == tcell.KeyCtrlP:
			sa.showPrecedents()
			return nil
		case event.Key() == tcell.KeyCtrlG:
			sa.showDependents()
			return nil
		case event.Key() == tcell.KeyCtrlD:
			sa.clearCurrentCell()
			return nil
		}
		return event
	})

	sa.refreshTable()
}

// showCurrentInput copies the focused cell's raw source text into the
// formula bar, the same "select a cell, see/edit its formula" flow the
// original's editor loop drives from its own cursor position.
func (sa *sheetApp) showCurrentInput() {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	cell := sa.ctx.Sheet.GetCellAt(sa.curCol, sa.curRow)
	text := ""
	if cell != nil {
		text = cell.CurrentInput
	}
	sa.input.SetText(text)
}

// formatCellList renders the advisory precedent/dependent pairs from
// graph.go as a space-separated list of A1 references for the status bar.
func formatCellList(cells [][2]int64) string {
	if len(cells) == 0 {
		return "(none)"
	}
	out := ""
	for i, c := range cells {
		ref, err := engine.FormatA1(c[0], c[1])
		if err != nil {
			continue
		}
		if i > 0 {
			out += " "
		}
		out += ref
	}
	return out
}

// showPrecedents answers the §4.6 "show precedents of this cell" query:
// the cells the current cell's last evaluation directly read.
func (sa *sheetApp) showPrecedents() {
	sa.mu.Lock()
	cells := sa.ctx.Precedents.Precedents(sa.curCol, sa.curRow)
	sa.mu.Unlock()
	sa.status.SetText(fmt.Sprintf("[::b]precedents:[::-] %s", formatCellList(cells)))
}

// showDependents answers the §4.6 "show dependents of this cell" query:
// the cells that directly read the current cell during their last
// evaluation.
func (sa *sheetApp) showDependents() {
	sa.mu.Lock()
	cells := sa.ctx.Precedents.Dependents(sa.curCol, sa.curRow)
	sa.mu.Unlock()
	sa.status.SetText(fmt.Sprintf("[::b]dependents:[::-] %s", formatCellList(cells)))
}

// clearCurrentCell removes the focused cell outright: its sheet entry is
// dropped and its precedent-graph node is dropped with it, since a
// cleared cell can no longer be anyone's precedent.
func (sa *sheetApp) clearCurrentCell() {
	sa.mu.Lock()
	sa.ctx.Sheet.ClearCellAt(sa.curCol, sa.curRow)
	sa.ctx.Precedents.RemoveCell(sa.curCol, sa.curRow)
	sa.mu.Unlock()

	sa.input.SetText("")
	sa.markDirty()
}

func (sa *sheetApp) onInputDone(key tcell.Key) {
	if key != tcell.KeyEnter {
		sa.app.SetFocus(sa.table)
		return
	}
	text := sa.input.GetText()

	sa.mu.Lock()
	sa.ctx.InUserInput = true
	cell := sa.ctx.Sheet.GetCellAt(sa.curCol, sa.curRow)
	if cell == nil {
		cell = sa.ctx.Sheet.InitCellAt(sa.curCol, sa.curRow)
	}
	if len(text) > 0 && text[0] == '\'' {
		cell.Type = engine.CellKindLabel
		cell.CurrentInput = text[1:]
	} else {
		cell.Type = engine.CellKindValue
		cell.CurrentInput = text
	}
	cell.Value = nil
	sa.ctx.InUserInput = false
	sa.mu.Unlock()

	sa.app.SetFocus(sa.table)
	sa.markDirty()
}

func (sa *sheetApp) markDirty() {
	select {
	case sa.dirtyCh <- struct{}{}:
	default:
	}
}

// recalcWorker is the only goroutine that ever calls engine.Recalc,
// under mu, satisfying §5's "UI thread never calls the evaluator
// directly while the worker is active". It wakes on an explicit dirty
// signal or a periodic tick, whichever comes first, and redraws the
// table with the recalculated values.
func (sa *sheetApp) recalcWorker(tick time.Duration) {
	if tick <= 0 {
		tick = 40 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-sa.dirtyCh:
		case <-ticker.C:
		}
		sa.recalcOnce()
	}
}

func (sa *sheetApp) recalcOnce() {
	defer func() {
		if r := recover(); r != nil {
			fatal := &engine.FatalEngineError{Reason: fmt.Sprintf("%v", r)}
			engine.LogFatal(sa.ctx.Logger, fatal)
			sa.app.Stop()
		}
	}()

	sa.mu.Lock()
	engine.Recalc(sa.ctx)
	sa.mu.Unlock()

	sa.app.QueueUpdateDraw(sa.refreshTable)
}

// refreshTable repaints the visible window of the grid from current
// cell state. Must be called from the tview event-loop goroutine
// (QueueUpdateDraw) or before the application has started.
func (sa *sheetApp) refreshTable() {
	sa.mu.Lock()
	defer sa.mu.Unlock()

	for col := 0; col <= visibleCols; col++ {
		label := ""
		if col > 0 {
			label, _ = engine.ColumnLetters(int64(col - 1))
		}
		sa.table.SetCell(0, col, tview.NewTableCell(label).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	for row := 1; row <= visibleRows; row++ {
		sa.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", row)).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))

		for col := 1; col <= visibleCols; col++ {
			c := int64(col - 1)
			r := int64(row - 1)
			cell := sa.ctx.Sheet.GetCellAt(c, r)
			text := ""
			if cell != nil {
				if cell.HasPreviousValue() {
					text = cell.PreviousValue.String()
				} else if cell.Type == engine.CellKindLabel {
					text = cell.CurrentInput
				}
			}
			width := sa.ctx.Sheet.ColumnWidth(c)
			sa.table.SetCell(row, col, tview.NewTableCell(text).SetMaxWidth(width))
		}
	}
}

func (sa *sheetApp) save() {
	if sa.filePath == "" {
		sa.status.SetText("[red]no file path given on the command line, nothing to save[-]")
		return
	}
	f, err := os.Create(sa.filePath)
	if err != nil {
		sa.status.SetText(fmt.Sprintf("[red]save failed: %v[-]", err))
		return
	}
	defer f.Close()

	sa.mu.Lock()
	err = store.Save(f, sa.ctx.Sheet)
	sa.mu.Unlock()

	if err != nil {
		sa.status.SetText(fmt.Sprintf("[red]save failed: %v[-]", err))
		return
	}
	sa.status.SetText("[green]saved[-]")
}
