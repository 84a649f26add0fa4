package function

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flowbeam/el/pkg/el/value"
)

func init() {
	register(Spec{Name: "hostname", Arity: 0, Call: fnHostname})
	register(Spec{Name: "hostname", Arity: 1, Call: fnHostnameFQDN})
	register(Spec{Name: "now", Arity: 0, Call: fnNow})
	register(Spec{Name: "literal", Arity: 1, Call: fnLiteral})
	register(Spec{Name: "UUID", Arity: 0, Call: fnUUID})
	register(Spec{Name: "ip", Arity: 0, Call: fnIP})
}

// hostnameOnce lazily and idempotently resolves the local hostname once per
// process; initialization is lazy and idempotent.
var (
	hostnameOnce  sync.Once
	cachedHost    string
	cachedHostErr error
)

func resolvedHostname() (string, error) {
	hostnameOnce.Do(func() {
		cachedHost, cachedHostErr = os.Hostname()
	})
	return cachedHost, cachedHostErr
}

func fnHostname(_ *Context, _ []value.Value) (value.Value, error) {
	h, err := resolvedHostname()
	if err != nil {
		return value.Value{}, fmt.Errorf("hostname: %w", err)
	}
	return value.String(h), nil
}

// fnHostnameFQDN implements the optional hostname(true) variant: if
// a fully-qualified name cannot be resolved, it falls back to the plain
// hostname rather than failing, since DNS availability is not guaranteed.
func fnHostnameFQDN(_ *Context, args []value.Value) (value.Value, error) {
	h, err := resolvedHostname()
	if err != nil {
		return value.Value{}, fmt.Errorf("hostname: %w", err)
	}
	wantFQDN, err := args[0].AsBool()
	if err != nil {
		return value.Value{}, err
	}
	if !wantFQDN {
		return value.String(h), nil
	}
	addrs, err := net.LookupCNAME(h)
	if err != nil || addrs == "" {
		return value.String(h), nil
	}
	return value.String(addrs), nil
}

func fnNow(_ *Context, _ []value.Value) (value.Value, error) {
	return value.SignedInt(time.Now().UnixMilli()), nil
}

// fnLiteral returns its argument verbatim, preserving whatever Value kind
// the parser produced for it (numeric literals keep their SignedInt or
// Decimal tag rather than being stringified).
func fnLiteral(_ *Context, args []value.Value) (value.Value, error) {
	return args[0], nil
}

func fnUUID(_ *Context, _ []value.Value) (value.Value, error) {
	return value.String(uuid.NewString()), nil
}

func fnIP(_ *Context, _ []value.Value) (value.Value, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return value.Value{}, fmt.Errorf("ip: %w", err)
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return value.String(v4.String()), nil
		}
	}
	return value.String(""), nil
}
