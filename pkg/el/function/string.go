package function

import (
	"strings"

	"github.com/flowbeam/el/pkg/el/value"
)

func init() {
	register(Spec{Name: "toUpper", Arity: 1, Call: fnToUpper})
	register(Spec{Name: "toLower", Arity: 1, Call: fnToLower})
	register(Spec{Name: "trim", Arity: 1, Call: fnTrim})
	register(Spec{Name: "substring", Arity: 2, Call: fnSubstringStart})
	register(Spec{Name: "substring", Arity: 3, Call: fnSubstringStartEnd})
	register(Spec{Name: "substringBefore", Arity: 2, Call: fnSubstringBefore})
	register(Spec{Name: "substringAfter", Arity: 2, Call: fnSubstringAfter})
	register(Spec{Name: "substringBeforeLast", Arity: 2, Call: fnSubstringBeforeLast})
	register(Spec{Name: "substringAfterLast", Arity: 2, Call: fnSubstringAfterLast})
	register(Spec{Name: "startsWith", Arity: 2, Call: fnStartsWith})
	register(Spec{Name: "endsWith", Arity: 2, Call: fnEndsWith})
	register(Spec{Name: "contains", Arity: 2, Call: fnContains})
	register(Spec{Name: "in", Arity: 2, Variadic: true, Call: fnIn})
	register(Spec{Name: "equals", Arity: 2, Call: fnEquals})
	register(Spec{Name: "equalsIgnoreCase", Arity: 2, Call: fnEqualsIgnoreCase})
	register(Spec{Name: "length", Arity: 1, Call: fnLength})
	register(Spec{Name: "prepend", Arity: 2, Call: fnPrepend})
	register(Spec{Name: "append", Arity: 2, Call: fnAppend})
	register(Spec{Name: "replaceNull", Arity: 2, Call: fnReplaceNull})
	register(Spec{Name: "replaceEmpty", Arity: 2, Call: fnReplaceEmpty})
}

func fnToUpper(_ *Context, args []value.Value) (value.Value, error) {
	return value.String(asciiUpper(args[0].AsString())), nil
}

func fnToLower(_ *Context, args []value.Value) (value.Value, error) {
	return value.String(asciiLower(args[0].AsString())), nil
}

func fnTrim(_ *Context, args []value.Value) (value.Value, error) {
	return value.String(strings.Trim(args[0].AsString(), asciiWhitespace)), nil
}

func fnSubstringStart(_ *Context, args []value.Value) (value.Value, error) {
	s := args[0].AsString()
	start, err := args[1].AsSignedLong()
	if err != nil {
		return value.Value{}, err
	}
	return value.String(clampSubstring(s, int(start), len(s))), nil
}

func fnSubstringStartEnd(_ *Context, args []value.Value) (value.Value, error) {
	s := args[0].AsString()
	start, err := args[1].AsSignedLong()
	if err != nil {
		return value.Value{}, err
	}
	end, err := args[2].AsSignedLong()
	if err != nil {
		return value.Value{}, err
	}
	return value.String(clampSubstring(s, int(start), int(end))), nil
}

// clampSubstring returns s[start:end] on byte positions, clamping
// out-of-range bounds.
func clampSubstring(s string, start, end int) string {
	n := len(s)
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end < start {
		end = start
	}
	if end > n {
		end = n
	}
	return s[start:end]
}

func fnSubstringBefore(_ *Context, args []value.Value) (value.Value, error) {
	s, sep := args[0].AsString(), args[1].AsString()
	if idx := strings.Index(s, sep); idx >= 0 {
		return value.String(s[:idx]), nil
	}
	return value.String(s), nil
}

func fnSubstringAfter(_ *Context, args []value.Value) (value.Value, error) {
	s, sep := args[0].AsString(), args[1].AsString()
	if idx := strings.Index(s, sep); idx >= 0 {
		return value.String(s[idx+len(sep):]), nil
	}
	return value.String(s), nil
}

func fnSubstringBeforeLast(_ *Context, args []value.Value) (value.Value, error) {
	s, sep := args[0].AsString(), args[1].AsString()
	if idx := strings.LastIndex(s, sep); idx >= 0 {
		return value.String(s[:idx]), nil
	}
	return value.String(s), nil
}

func fnSubstringAfterLast(_ *Context, args []value.Value) (value.Value, error) {
	s, sep := args[0].AsString(), args[1].AsString()
	if idx := strings.LastIndex(s, sep); idx >= 0 {
		return value.String(s[idx+len(sep):]), nil
	}
	return value.String(s), nil
}

func fnStartsWith(_ *Context, args []value.Value) (value.Value, error) {
	return boolValue(strings.HasPrefix(args[0].AsString(), args[1].AsString())), nil
}

func fnEndsWith(_ *Context, args []value.Value) (value.Value, error) {
	return boolValue(strings.HasSuffix(args[0].AsString(), args[1].AsString())), nil
}

func fnContains(_ *Context, args []value.Value) (value.Value, error) {
	return boolValue(strings.Contains(args[0].AsString(), args[1].AsString())), nil
}

func fnIn(_ *Context, args []value.Value) (value.Value, error) {
	s := args[0].AsString()
	for _, candidate := range args[1:] {
		if s == candidate.AsString() {
			return boolValue(true), nil
		}
	}
	return boolValue(false), nil
}

func fnEquals(_ *Context, args []value.Value) (value.Value, error) {
	return boolValue(args[0].AsString() == args[1].AsString()), nil
}

func fnEqualsIgnoreCase(_ *Context, args []value.Value) (value.Value, error) {
	return boolValue(strings.EqualFold(args[0].AsString(), args[1].AsString())), nil
}

func fnLength(_ *Context, args []value.Value) (value.Value, error) {
	return value.SignedInt(int64(len(args[0].AsString()))), nil
}

func fnPrepend(_ *Context, args []value.Value) (value.Value, error) {
	return value.String(args[1].AsString() + args[0].AsString()), nil
}

func fnAppend(_ *Context, args []value.Value) (value.Value, error) {
	return value.String(args[0].AsString() + args[1].AsString()), nil
}

func fnReplaceNull(_ *Context, args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return args[1], nil
	}
	return args[0], nil
}

func fnReplaceEmpty(_ *Context, args []value.Value) (value.Value, error) {
	if args[0].IsNull() || strings.TrimSpace(args[0].AsString()) == "" {
		return args[1], nil
	}
	return args[0], nil
}
