package function

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/flowbeam/el/pkg/el/value"
)

func init() {
	register(Spec{Name: "plus", Arity: 2, Call: fnPlus})
	register(Spec{Name: "minus", Arity: 2, Call: fnMinus})
	register(Spec{Name: "multiply", Arity: 2, Call: fnMultiply})
	register(Spec{Name: "divide", Arity: 2, Call: fnDivide})
	register(Spec{Name: "toRadix", Arity: 2, Call: fnToRadix})
	register(Spec{Name: "toRadix", Arity: 3, Call: fnToRadixWidth})
	register(Spec{Name: "fromRadix", Arity: 2, Call: fnFromRadix})
	register(Spec{Name: "random", Arity: 0, Call: fnRandom})
}

func fnPlus(_ *Context, args []value.Value) (value.Value, error) {
	return value.Plus(args[0], args[1])
}

func fnMinus(_ *Context, args []value.Value) (value.Value, error) {
	return value.Minus(args[0], args[1])
}

func fnMultiply(_ *Context, args []value.Value) (value.Value, error) {
	return value.Multiply(args[0], args[1])
}

func fnDivide(_ *Context, args []value.Value) (value.Value, error) {
	return value.Divide(args[0], args[1])
}

func fnToRadix(_ *Context, args []value.Value) (value.Value, error) {
	return toRadix(args[0], args[1], nil)
}

func fnToRadixWidth(_ *Context, args []value.Value) (value.Value, error) {
	return toRadix(args[0], args[1], &args[2])
}

func toRadix(subject, radixArg value.Value, widthArg *value.Value) (value.Value, error) {
	n, err := subject.AsSignedLong()
	if err != nil {
		return value.Value{}, fmt.Errorf("toRadix: %w", err)
	}
	radix, err := radixArg.AsSignedLong()
	if err != nil || radix < 2 || radix > 36 {
		return value.Value{}, fmt.Errorf("toRadix: radix must be between 2 and 36")
	}

	neg := n < 0
	mag := n
	if neg {
		mag = -n
	}
	digits := strconv.FormatInt(mag, int(radix))

	if widthArg != nil {
		width, werr := widthArg.AsSignedLong()
		if werr != nil {
			return value.Value{}, fmt.Errorf("toRadix: %w", werr)
		}
		if int(width) > len(digits) {
			digits = strings.Repeat("0", int(width)-len(digits)) + digits
		}
	}

	if neg {
		digits = "-" + digits
	}
	return value.String(digits), nil
}

func fnFromRadix(_ *Context, args []value.Value) (value.Value, error) {
	radix, err := args[1].AsSignedLong()
	if err != nil || radix < 2 || radix > 36 {
		return value.Value{}, fmt.Errorf("fromRadix: radix must be between 2 and 36")
	}
	n, err := strconv.ParseInt(args[0].AsString(), int(radix), 64)
	if err != nil {
		return value.Value{}, fmt.Errorf("fromRadix: %w", err)
	}
	return value.SignedInt(n), nil
}

// randMax bounds random() to a positive signed 64-bit value.
var randMax = big.NewInt(1 << 62)

func fnRandom(_ *Context, _ []value.Value) (value.Value, error) {
	n, err := rand.Int(rand.Reader, randMax)
	if err != nil {
		return value.Value{}, fmt.Errorf("random: %w", err)
	}
	return value.SignedInt(n.Int64()), nil
}
