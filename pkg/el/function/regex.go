package function

import (
	"regexp"
	"strings"
	"sync"

	"github.com/flowbeam/el/pkg/el/value"
)

func init() {
	// The entire Regex category is gated behind regex_enabled, even the
	// handful of members (replace, indexOf, lastIndexOf) that are literal
	// rather than pattern-based operations — RegexOnly follows the
	// category, not the mechanism.
	register(Spec{Name: "matches", Arity: 2, RegexOnly: true, Call: fnMatches})
	register(Spec{Name: "find", Arity: 2, RegexOnly: true, Call: fnFind})
	register(Spec{Name: "replace", Arity: 3, RegexOnly: true, Call: fnReplaceLiteral})
	register(Spec{Name: "replaceFirst", Arity: 3, RegexOnly: true, Call: fnReplaceFirst})
	register(Spec{Name: "replaceAll", Arity: 3, RegexOnly: true, Call: fnReplaceAll})
	register(Spec{Name: "indexOf", Arity: 2, RegexOnly: true, Call: fnIndexOf})
	register(Spec{Name: "lastIndexOf", Arity: 2, RegexOnly: true, Call: fnLastIndexOf})
}

// regexCache is a process-wide, lazily initialized compiled-pattern cache
// shared by every regex builtin.
var (
	regexCacheMu sync.RWMutex
	regexCache   = map[string]*regexp.Regexp{}
)

func compileRegex(pattern string) (*regexp.Regexp, error) {
	regexCacheMu.RLock()
	if re, ok := regexCache[pattern]; ok {
		regexCacheMu.RUnlock()
		return re, nil
	}
	regexCacheMu.RUnlock()

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	regexCacheMu.Lock()
	regexCache[pattern] = re
	regexCacheMu.Unlock()
	return re, nil
}

func fnMatches(_ *Context, args []value.Value) (value.Value, error) {
	re, err := compileRegex(args[1].AsString())
	if err != nil {
		return value.Value{}, err
	}
	loc := re.FindStringIndex(args[0].AsString())
	s := args[0].AsString()
	return boolValue(loc != nil && loc[0] == 0 && loc[1] == len(s)), nil
}

func fnFind(_ *Context, args []value.Value) (value.Value, error) {
	re, err := compileRegex(args[1].AsString())
	if err != nil {
		return value.Value{}, err
	}
	return boolValue(re.MatchString(args[0].AsString())), nil
}

// fnReplaceLiteral implements replace(literal, repl): literal (non-regex)
// replacement of every occurrence.
func fnReplaceLiteral(_ *Context, args []value.Value) (value.Value, error) {
	s := args[0].AsString()
	return value.String(strings.ReplaceAll(s, args[1].AsString(), args[2].AsString())), nil
}

func fnReplaceFirst(_ *Context, args []value.Value) (value.Value, error) {
	re, err := compileRegex(args[1].AsString())
	if err != nil {
		return value.Value{}, err
	}
	s := args[0].AsString()
	loc := re.FindStringIndex(s)
	if loc == nil {
		return value.String(s), nil
	}
	replaced := re.ReplaceAllString(s[loc[0]:loc[1]], args[2].AsString())
	return value.String(s[:loc[0]] + replaced + s[loc[1]:]), nil
}

// fnReplaceAll implements replaceAll(pattern, repl): $1-$9 in repl are
// capture-group back-references, which Go's ReplaceAllString supports
// natively (see DESIGN.md's regex-dialect Open Question resolution).
func fnReplaceAll(_ *Context, args []value.Value) (value.Value, error) {
	re, err := compileRegex(args[1].AsString())
	if err != nil {
		return value.Value{}, err
	}
	return value.String(re.ReplaceAllString(args[0].AsString(), args[2].AsString())), nil
}

func fnIndexOf(_ *Context, args []value.Value) (value.Value, error) {
	idx := strings.Index(args[0].AsString(), args[1].AsString())
	return value.SignedInt(int64(idx)), nil
}

func fnLastIndexOf(_ *Context, args []value.Value) (value.Value, error) {
	idx := strings.LastIndex(args[0].AsString(), args[1].AsString())
	return value.SignedInt(int64(idx)), nil
}
