package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Numeric stands in for the external arbitrary-precision decimal library
// ("Fixed") named out of scope in the spec. The engine only ever touches
// numbers through this interface, so a real Fixed implementation can be
// substituted without changing the evaluator.
type Numeric interface {
	Add(Numeric) Numeric
	Sub(Numeric) Numeric
	Mul(Numeric) Numeric
	Div(Numeric) (Numeric, error)
	Cmp(Numeric) int
	Float64() float64
	String() string
}

// Float64 is the shipped float64-backed Numeric. No decimal library
// appears anywhere in the retrieved pack, so this is the justified
// standard-library stand-in (see DESIGN.md).
type Float64 float64

func (f Float64) Add(o Numeric) Numeric { return Float64(float64(f) + o.Float64()) }
func (f Float64) Sub(o Numeric) Numeric { return Float64(float64(f) - o.Float64()) }
func (f Float64) Mul(o Numeric) Numeric { return Float64(float64(f) * o.Float64()) }
func (f Float64) Div(o Numeric) (Numeric, error) {
	d := o.Float64()
	if d == 0 {
		return nil, NewEvalError(ErrorCodeDiv0, "")
	}
	return Float64(float64(f) / d), nil
}
func (f Float64) Cmp(o Numeric) int {
	a, b := float64(f), o.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
func (f Float64) Float64() float64 { return float64(f) }
func (f Float64) String() string   { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// ValueKind tags the Value sum type (§6.2).
type ValueKind uint8

const (
	KindNil ValueKind = iota
	KindFloat
	KindString
	KindArray
	KindDictionary
	KindFunction
	KindCellRange
	KindCellRef
)

// Value is the sum type every expression node evaluates to.
type Value struct {
	Kind       ValueKind
	Float      Numeric
	Str        string
	Array      []Value
	Dictionary []DictEntry // kept ordered; map semantics enforced by callers
	Function   *FunctionValue
	Range      CellRangeRef
	Ref        CellRef
}

// DictEntry is one key/value pair of a Dictionary value.
type DictEntry struct {
	Key   Value
	Value Value
}

// FunctionValue is an opaque user-defined function value (Backwards is
// out of scope; the engine only needs to carry the value around).
type FunctionValue struct {
	Name string
	Call func(ctx *CallingContext, args []Value) (Value, error)
}

func Nil() Value                 { return Value{Kind: KindNil} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: Float64(f)} }
func NumValue(n Numeric) Value   { return Value{Kind: KindFloat, Float: n} }
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

func (v Value) IsNil() bool { return v.Kind == KindNil }

func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return ""
	case KindFloat:
		if v.Float == nil {
			return "0"
		}
		return v.Float.String()
	case KindString:
		return v.Str
	case KindArray:
		parts := make([]string, len(v.Array))
		for i, e := range v.Array {
			parts[i] = e.String()
		}
		return "{" + strings.Join(parts, ",") + "}"
	case KindDictionary:
		parts := make([]string, len(v.Dictionary))
		for i, e := range v.Dictionary {
			parts[i] = fmt.Sprintf("%s:%s", e.Key.String(), e.Value.String())
		}
		return "{" + strings.Join(parts, ",") + "}"
	case KindFunction:
		if v.Function != nil {
			return "function:" + v.Function.Name
		}
		return "function"
	case KindCellRange:
		return v.Range.String()
	case KindCellRef:
		return v.Ref.String()
	default:
		return ""
	}
}

// Compare defines the total order over all value kinds required by
// Dictionary key ordering (§6.2): first by kind tag, then kind-specific.
func Compare(a, b Value) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	switch a.Kind {
	case KindNil:
		return 0
	case KindFloat:
		af, bf := Float64(0), Float64(0)
		if a.Float != nil {
			af = Float64(a.Float.Float64())
		}
		if b.Float != nil {
			bf = Float64(b.Float.Float64())
		}
		return af.Cmp(bf)
	case KindString:
		return strings.Compare(a.Str, b.Str)
	case KindArray:
		return compareSlices(a.Array, b.Array)
	case KindDictionary:
		na, nb := len(a.Dictionary), len(b.Dictionary)
		if na != nb {
			if na < nb {
				return -1
			}
			return 1
		}
		for i := range a.Dictionary {
			if c := Compare(a.Dictionary[i].Key, b.Dictionary[i].Key); c != 0 {
				return c
			}
			if c := Compare(a.Dictionary[i].Value, b.Dictionary[i].Value); c != 0 {
				return c
			}
		}
		return 0
	case KindFunction:
		an, bn := "", ""
		if a.Function != nil {
			an = a.Function.Name
		}
		if b.Function != nil {
			bn = b.Function.Name
		}
		return strings.Compare(an, bn)
	case KindCellRange:
		return compareCellRange(a.Range, b.Range)
	case KindCellRef:
		return compareCellRef(a.Ref, b.Ref)
	default:
		return 0
	}
}

func compareSlices(a, b []Value) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// SortDictionary re-sorts a Dictionary's entries by Compare(Key), making
// iteration order deterministic regardless of insertion order.
func SortDictionary(d []DictEntry) {
	sort.SliceStable(d, func(i, j int) bool {
		return Compare(d[i].Key, d[j].Key) < 0
	})
}
