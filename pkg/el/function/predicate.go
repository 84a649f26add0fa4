package function

import "github.com/flowbeam/el/pkg/el/value"

func init() {
	register(Spec{Name: "isNull", Arity: 1, Call: fnIsNull})
	register(Spec{Name: "notNull", Arity: 1, Call: fnNotNull})
	register(Spec{Name: "isEmpty", Arity: 1, Call: fnIsEmpty})
	register(Spec{Name: "gt", Arity: 2, Call: fnGt})
	register(Spec{Name: "ge", Arity: 2, Call: fnGe})
	register(Spec{Name: "lt", Arity: 2, Call: fnLt})
	register(Spec{Name: "le", Arity: 2, Call: fnLe})
	register(Spec{Name: "and", Arity: 2, Call: fnAnd})
	register(Spec{Name: "or", Arity: 2, Call: fnOr})
	register(Spec{Name: "not", Arity: 1, Call: fnNot})
	register(Spec{Name: "ifElse", Arity: 3, Call: fnIfElse})
}

func fnIsNull(_ *Context, args []value.Value) (value.Value, error) {
	return boolValue(args[0].IsNull()), nil
}

func fnNotNull(_ *Context, args []value.Value) (value.Value, error) {
	return boolValue(!args[0].IsNull()), nil
}

func fnIsEmpty(_ *Context, args []value.Value) (value.Value, error) {
	return boolValue(args[0].IsNull() || args[0].IsEmptyString()), nil
}

func fnGt(_ *Context, args []value.Value) (value.Value, error) {
	return numericCompare(args[0], args[1], func(c int) bool { return c > 0 })
}

func fnGe(_ *Context, args []value.Value) (value.Value, error) {
	return numericCompare(args[0], args[1], func(c int) bool { return c >= 0 })
}

func fnLt(_ *Context, args []value.Value) (value.Value, error) {
	return numericCompare(args[0], args[1], func(c int) bool { return c < 0 })
}

func fnLe(_ *Context, args []value.Value) (value.Value, error) {
	return numericCompare(args[0], args[1], func(c int) bool { return c <= 0 })
}

func numericCompare(a, b value.Value, ok func(int) bool) (value.Value, error) {
	c, err := value.Compare(a, b)
	if err != nil {
		return value.Value{}, err
	}
	return boolValue(ok(c)), nil
}

func fnAnd(_ *Context, args []value.Value) (value.Value, error) {
	l, err := args[0].AsBool()
	if err != nil {
		return value.Value{}, err
	}
	r, err := args[1].AsBool()
	if err != nil {
		return value.Value{}, err
	}
	return boolValue(l && r), nil
}

func fnOr(_ *Context, args []value.Value) (value.Value, error) {
	l, err := args[0].AsBool()
	if err != nil {
		return value.Value{}, err
	}
	r, err := args[1].AsBool()
	if err != nil {
		return value.Value{}, err
	}
	return boolValue(l || r), nil
}

func fnNot(_ *Context, args []value.Value) (value.Value, error) {
	b, err := args[0].AsBool()
	if err != nil {
		return value.Value{}, err
	}
	return boolValue(!b), nil
}

func fnIfElse(_ *Context, args []value.Value) (value.Value, error) {
	b, err := args[0].AsBool()
	if err != nil {
		return value.Value{}, err
	}
	if b {
		return args[1], nil
	}
	return args[2], nil
}
