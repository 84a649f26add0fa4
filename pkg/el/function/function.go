// Package function implements the EL built-in function library: string,
// regex, numeric, predicate, codec, and environmental operations, all
// dispatched through a registry.Registry[Key, Spec] keyed by (name, arity)
// — arity counting the subject itself as the Call node's first argument.
package function

import (
	"errors"
	"fmt"
	"sync"

	"github.com/flowbeam/el/pkg/el/registry"
	"github.com/flowbeam/el/pkg/el/value"
)

// ErrUnknownFunction is wrapped into a ParseError when a template references
// a function name that is not registered at all.
var ErrUnknownFunction = errors.New("el/function: unknown function")

// ErrRegexDisabled is wrapped into a ParseError when a template references a
// regex-dependent function while the regex_enabled capability is off.
var ErrRegexDisabled = errors.New("el/function: regex functions unavailable")

// ArityError reports that name is known but was not called with one of its
// registered arities. Its Error() text reads "Expression language function
// <name> called with N argument(s), but M are required".
type ArityError struct {
	Name     string
	Got      int
	Required int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf(
		"Expression language function %s called with %d argument(s), but %d are required",
		e.Name, e.Got, e.Required,
	)
}

// variadicArity is the sentinel registry key arity for a variadic Spec;
// Spec.Arity then holds the minimum required arity.
const variadicArity = -1

// Key is the registry dispatch key: a function name plus its total arity
// (subject included).
type Key struct {
	Name  string
	Arity int
}

// Context carries the process-wide capability flags a Call may need. The
// zero Context has regex disabled.
type Context struct {
	RegexEnabled bool
}

// CallFunc implements a builtin. args includes the subject at args[0] for
// a chained call.
type CallFunc func(ctx *Context, args []value.Value) (value.Value, error)

// Spec describes one registered (name, arity) builtin.
type Spec struct {
	Name      string
	Arity     int // total arity including subject; for Variadic, the minimum
	Variadic  bool
	RegexOnly bool
	Call      CallFunc
}

var (
	reg      = registry.New[Key, Spec]()
	namesMu  sync.RWMutex
	namesIdx = map[string][]Key{}
)

func register(spec Spec) {
	key := Key{Name: spec.Name, Arity: spec.Arity}
	if spec.Variadic {
		key.Arity = variadicArity
	}
	reg.Register(key, spec)
	namesMu.Lock()
	namesIdx[spec.Name] = append(namesIdx[spec.Name], key)
	namesMu.Unlock()
}

// Resolve looks up the Spec for name called with the given total arity
// (subject included). It returns ErrUnknownFunction, ErrRegexDisabled, or an
// *ArityError when dispatch fails.
func Resolve(name string, arity int, ctx *Context) (Spec, error) {
	if spec, ok := lookupExact(name, arity); ok {
		if spec.RegexOnly && !ctx.RegexEnabled {
			return Spec{}, fmt.Errorf("%w: %s", ErrRegexDisabled, name)
		}
		return spec, nil
	}

	namesMu.RLock()
	keys := append([]Key(nil), namesIdx[name]...)
	namesMu.RUnlock()

	if len(keys) == 0 {
		return Spec{}, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}

	visibleMin := -1
	anyRegexOnly := false
	for _, k := range keys {
		spec, _ := reg.Get(k)
		if spec.RegexOnly {
			anyRegexOnly = true
			if !ctx.RegexEnabled {
				continue
			}
		}
		required := spec.Arity
		if visibleMin == -1 || required < visibleMin {
			visibleMin = required
		}
	}

	if visibleMin == -1 {
		if anyRegexOnly {
			return Spec{}, fmt.Errorf("%w: %s", ErrRegexDisabled, name)
		}
		return Spec{}, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}

	return Spec{}, &ArityError{Name: name, Got: arity, Required: visibleMin}
}

func lookupExact(name string, arity int) (Spec, bool) {
	if spec, ok := reg.Get(Key{Name: name, Arity: arity}); ok {
		return spec, true
	}
	if spec, ok := reg.Get(Key{Name: name, Arity: variadicArity}); ok && arity >= spec.Arity {
		return spec, true
	}
	return Spec{}, false
}
