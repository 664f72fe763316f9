package engine

// GetterArity distinguishes the built-in function handler shapes named
// in §4.5: constant / unary / binary / ternary, each with or without
// context.
type GetterArity uint8

const (
	ArityConstant GetterArity = iota
	ArityUnary
	ArityBinary
	ArityTernary
	ArityVariadic
)

// GetterFunc is the handler signature a getter-registry entry implements.
// All arities are normalized to a variadic Go func so the registry is a
// single map, grounded on the teacher's BuiltInFunctions.Call dispatch
// shape (builtin.go).
type GetterFunc func(ctx *CallingContext, args []Value) (Value, error)

// Getter is one entry in the registry (§4.5): name, declared arity, and
// the handler. Arity is descriptive only: neither the parser nor the
// registry checks argument counts against it; handlers that need a fixed
// count (IF, NOT, ABS) check it themselves.
type Getter struct {
	Name  string
	Arity GetterArity
	Fn    GetterFunc
}

// GetterRegistry maps built-in function names to evaluator callbacks
// (§4.5). The parser does not consult it: a name followed by '(' always
// parses as a call, and the name is looked up here only when the call is
// evaluated, where an unknown name yields #NAME?.
type GetterRegistry struct {
	entries map[string]*Getter
}

// NewGetterRegistry returns a registry pre-populated with the engine's
// small arithmetic-appropriate builtin set (DESIGN.md: the CORE spec only
// requires the registry mechanism, not a complete Excel-surface function
// library).
func NewGetterRegistry() *GetterRegistry {
	r := &GetterRegistry{entries: make(map[string]*Getter)}
	registerCoreBuiltins(r)
	return r
}

// Register adds or replaces a getter.
func (r *GetterRegistry) Register(g *Getter) {
	r.entries[g.Name] = g
}

// Lookup returns the getter for name, if any.
func (r *GetterRegistry) Lookup(name string) (*Getter, bool) {
	g, ok := r.entries[name]
	return g, ok
}

// Names returns every registered built-in name, in no particular order.
func (r *GetterRegistry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	return names
}

func registerCoreBuiltins(r *GetterRegistry) {
	r.Register(&Getter{Name: "SUM", Arity: ArityVariadic, Fn: builtinSum})
	r.Register(&Getter{Name: "AVERAGE", Arity: ArityVariadic, Fn: builtinAverage})
	r.Register(&Getter{Name: "MIN", Arity: ArityVariadic, Fn: builtinMin})
	r.Register(&Getter{Name: "MAX", Arity: ArityVariadic, Fn: builtinMax})
	r.Register(&Getter{Name: "COUNT", Arity: ArityVariadic, Fn: builtinCount})
	r.Register(&Getter{Name: "IF", Arity: ArityTernary, Fn: builtinIf})
	r.Register(&Getter{Name: "CONCATENATE", Arity: ArityVariadic, Fn: builtinConcatenate})
	r.Register(&Getter{Name: "NOT", Arity: ArityUnary, Fn: builtinNot})
	r.Register(&Getter{Name: "ABS", Arity: ArityUnary, Fn: builtinAbs})
}

func flattenNumeric(args []Value) ([]float64, error) {
	var out []float64
	var walk func(v Value) error
	walk = func(v Value) error {
		switch v.Kind {
		case KindFloat:
			if v.Float != nil {
				out = append(out, v.Float.Float64())
			}
		case KindArray:
			for _, e := range v.Array {
				if err := walk(e); err != nil {
					return err
				}
			}
		case KindNil, KindString:
			// empty cells and text are silently skipped, matching the
			// original's "empty cells are zero/absent" treatment and
			// Excel-style SUM/COUNT/AVERAGE tolerance for text in ranges
		default:
			return NewEvalError(ErrorCodeValue, "expected numeric argument")
		}
		return nil
	}
	for _, a := range args {
		if err := walk(a); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func builtinSum(_ *CallingContext, args []Value) (Value, error) {
	nums, err := flattenNumeric(args)
	if err != nil {
		return Value{}, err
	}
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return FloatValue(total), nil
}

func builtinAverage(_ *CallingContext, args []Value) (Value, error) {
	nums, err := flattenNumeric(args)
	if err != nil {
		return Value{}, err
	}
	if len(nums) == 0 {
		return Value{}, NewEvalError(ErrorCodeDiv0, "")
	}
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return FloatValue(total / float64(len(nums))), nil
}

func builtinMin(_ *CallingContext, args []Value) (Value, error) {
	nums, err := flattenNumeric(args)
	if err != nil {
		return Value{}, err
	}
	if len(nums) == 0 {
		return Value{}, NewEvalError(ErrorCodeNum, "")
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n < m {
			m = n
		}
	}
	return FloatValue(m), nil
}

func builtinMax(_ *CallingContext, args []Value) (Value, error) {
	nums, err := flattenNumeric(args)
	if err != nil {
		return Value{}, err
	}
	if len(nums) == 0 {
		return Value{}, NewEvalError(ErrorCodeNum, "")
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n > m {
			m = n
		}
	}
	return FloatValue(m), nil
}

func builtinCount(_ *CallingContext, args []Value) (Value, error) {
	nums, err := flattenNumeric(args)
	if err != nil {
		return Value{}, err
	}
	return FloatValue(float64(len(nums))), nil
}

func builtinIf(_ *CallingContext, args []Value) (Value, error) {
	if len(args) != 3 {
		return Value{}, NewEvalError(ErrorCodeNA, "IF requires 3 arguments")
	}
	cond := args[0]
	truthy := false
	switch cond.Kind {
	case KindFloat:
		truthy = cond.Float != nil && cond.Float.Float64() != 0
	case KindString:
		truthy = cond.Str != ""
	}
	if truthy {
		return args[1], nil
	}
	return args[2], nil
}

func builtinConcatenate(_ *CallingContext, args []Value) (Value, error) {
	out := ""
	for _, a := range args {
		out += a.String()
	}
	return StringValue(out), nil
}

func builtinNot(_ *CallingContext, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, NewEvalError(ErrorCodeNA, "NOT requires 1 argument")
	}
	v := args[0]
	truthy := v.Kind == KindFloat && v.Float != nil && v.Float.Float64() != 0
	if truthy {
		return FloatValue(0), nil
	}
	return FloatValue(1), nil
}

func builtinAbs(_ *CallingContext, args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != KindFloat || args[0].Float == nil {
		return Value{}, NewEvalError(ErrorCodeValue, "ABS requires 1 numeric argument")
	}
	f := args[0].Float.Float64()
	if f < 0 {
		f = -f
	}
	return FloatValue(f), nil
}
