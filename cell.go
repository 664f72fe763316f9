package engine

// CellKind is the cell.type attribute of §3: VALUE cells hold a formula
// to parse, LABEL cells hold literal text. ERROR cells get no special
// handling from the evaluator, which parses their input like a VALUE
// cell's; store.Save writes their last computed value as label text. No
// engine operation sets a cell to ERROR.
type CellKind uint8

const (
	CellKindValue CellKind = iota
	CellKindLabel
	CellKindError
)

// noGeneration is the sentinel previousGeneration value distinct from any
// real generation (§3, invariant on Cell.previousGeneration).
const noGeneration int64 = -1

// Cell holds one cell's content, parsed formula, last value, and
// evaluation flags, per §3.
type Cell struct {
	Type CellKind

	// CurrentInput is the unparsed source text. Cleared on first
	// successful parse for VALUE cells; preserved for LABEL cells
	// (invariant 3/4).
	CurrentInput string

	// Value is the parsed formula (expression tree) once parsed, nil
	// otherwise (invariant 3).
	Value Expression

	// PreviousValue is the last successfully computed value.
	PreviousValue Value
	hasPrevious   bool

	// PreviousGeneration is the generation at which PreviousValue was
	// last computed.
	PreviousGeneration int64

	// InEvaluation is true while this cell is on the evaluation stack
	// (invariant 1).
	InEvaluation bool

	// Recursed is true if a cycle was detected touching this cell during
	// the current generation.
	Recursed bool

	// Display width is tracked per-column, not per-cell — see
	// Sheet.columnWidths.
}

// NewCell returns a freshly initialized, unparsed VALUE cell, matching
// what Sheet.InitCellAt places (§4.1).
func NewCell() *Cell {
	return &Cell{
		Type:               CellKindValue,
		PreviousGeneration: noGeneration,
	}
}

// HasPreviousValue reports whether PreviousValue was ever set. Distinct
// from PreviousValue being the Nil Value, which is a legitimate computed
// result.
func (c *Cell) HasPreviousValue() bool { return c.hasPrevious }

func (c *Cell) setPreviousValue(v Value) {
	c.PreviousValue = v
	c.hasPrevious = true
}

// clearPreviousValue resets memoization state without touching the input
// text or parsed formula. Nothing in the repository calls it: Sheet
// mutators leave memoization alone per §4.1 ("do not clear the
// evaluation memoization"); it is kept for completeness of the Cell API.
func (c *Cell) clearPreviousValue() {
	c.PreviousValue = Value{}
	c.hasPrevious = false
	c.PreviousGeneration = noGeneration
}

// Expression is the consumed interface every parsed formula implements
// (§6.2). Evaluate may recursively re-enter the Evaluator via cell
// references encountered in the tree.
type Expression interface {
	Evaluate(ctx *CallingContext) (Value, error)
	String() string
}

// constantExpression is the synthesised string-constant expression used
// for the LABEL fast path (§4.2 step 3).
type constantExpression struct {
	value Value
}

func (c *constantExpression) Evaluate(*CallingContext) (Value, error) { return c.value, nil }
func (c *constantExpression) String() string                          { return c.value.String() }

// newLabelExpression synthesises a string-constant expression equal to
// currentInput, per invariant 4.
func newLabelExpression(currentInput string) Expression {
	return &constantExpression{value: StringValue(currentInput)}
}
