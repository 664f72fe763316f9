package engine

// NameMap maps an identifier to a bound expression (§4.5). It is cleared
// at the start of each recalc (§4.3 step 1). Names are bound only through
// Define; no formula construct in package formula calls it.
//
// Adapted from the teacher's WorksheetTable/NamedRangeTable intern/
// ref-count pattern (worksheet.go, range.go), simplified for a single
// sheet: inter-sheet references are a Non-goal, so there is no ID
// indirection to a worksheet table, just identifier -> expression.
type NameMap struct {
	bound map[string]Expression
}

// NewNameMap returns an empty NameMap.
func NewNameMap() *NameMap {
	return &NameMap{bound: make(map[string]Expression)}
}

// Define binds name to expr, overwriting any prior binding.
func (m *NameMap) Define(name string, expr Expression) {
	m.bound[name] = expr
}

// Lookup resolves name to its bound expression, if any.
func (m *NameMap) Lookup(name string) (Expression, bool) {
	e, ok := m.bound[name]
	return e, ok
}

// Clear empties the map; called at the start of every recalc (§4.3).
func (m *NameMap) Clear() {
	m.bound = make(map[string]Expression)
}

// Len reports the number of currently bound names.
func (m *NameMap) Len() int { return len(m.bound) }
