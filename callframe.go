package engine

import "github.com/rs/zerolog"

// CallFrame is a (cell, col, row) triple stacked during evaluation. The
// top frame defines "here" for relative cell references (§3).
type CallFrame struct {
	Cell *Cell
	Col  int64
	Row  int64
}

// CallStack is the per-evaluation record of currently-active cells, used
// for cycle detection and relative-reference resolution (§2 component
// table).
type CallStack struct {
	frames []*CallFrame
}

func (s *CallStack) Push(f *CallFrame) { s.frames = append(s.frames, f) }

func (s *CallStack) Pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *CallStack) Top() *CallFrame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Len reports the current stack depth.
func (s *CallStack) Len() int { return len(s.frames) }

// At returns the frame at depth i (0 = bottom of stack).
func (s *CallStack) At(i int) *CallFrame { return s.frames[i] }

// MarkRecursedFrom sets Recursed=true on every cell in the stack from
// the frame matching cell downward (§4.2's cycle detection: "marks every
// cell in the current frame stack (from the re-entered cell downward)").
func (s *CallStack) MarkRecursedFrom(cell *Cell) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Cell == cell {
			for j := i; j < len(s.frames); j++ {
				s.frames[j].Cell.Recursed = true
			}
			return
		}
	}
}

// Contains reports whether cell is currently on the stack.
func (s *CallStack) Contains(cell *Cell) bool {
	for _, f := range s.frames {
		if f.Cell == cell {
			return true
		}
	}
	return false
}

// CallingContext is the process-wide evaluation state (§3): generation
// counter, user-input flag, sheet/name-map/getter-registry pointers,
// logger, optional debugger hook, and the call stack.
type CallingContext struct {
	Generation   int64
	InUserInput  bool
	Sheet        *Sheet
	Names        *NameMap
	Getters      *GetterRegistry
	Logger       zerolog.Logger
	Debugger     DebuggerHook
	Stack        CallStack
	Precedents   *PrecedentGraph
	lastParseLog string

	// Parse is the injected formula parser (§6.1/§6.5): the formula
	// package depends on this package for Expression/Value/CellRef, so
	// the dependency can't run the other way. cmd/decicalc wires this to
	// formula.Parse at startup.
	Parse func(input string) (Expression, error)
}

// DebuggerHook is the optional debugger hook named in §3. The Backwards
// debugger itself is out of scope; the engine only needs a place to call
// into one.
type DebuggerHook interface {
	OnEnterCell(col, row int64)
	OnLeaveCell(col, row int64)
}

// NewCallingContext builds a context over sheet, with fresh NameMap and
// getter registry, logging through logger.
func NewCallingContext(sheet *Sheet, logger zerolog.Logger) *CallingContext {
	return &CallingContext{
		Generation: 0,
		Sheet:      sheet,
		Names:      NewNameMap(),
		Getters:    NewGetterRegistry(),
		Logger:     logger,
		Precedents: NewPrecedentGraph(),
	}
}

// pushCell pushes a CallFrame onto the stack. Named to match the
// original's context.pushCell (SpreadSheet.cpp) for grounding clarity.
func (c *CallingContext) pushCell(f *CallFrame) { c.Stack.Push(f) }
func (c *CallingContext) popCell()              { c.Stack.Pop() }
func (c *CallingContext) topCell() *CallFrame   { return c.Stack.Top() }
