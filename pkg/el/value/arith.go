package value

import (
	"errors"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrDivideByZero is returned by Divide when the right operand is zero.
var ErrDivideByZero = errors.New("el/value: division by zero")

// divisionFractionalDigits is the fixed precision for division
// always proceeds in decimal and rounds to 15 significant fractional digits,
// half-to-even.
const divisionFractionalDigits = 15

// divisionWorkingPrecision is the intermediate precision computed before
// rounding down to divisionFractionalDigits, generous enough that the
// half-to-even rounding at 15 digits is never starved of guard digits.
const divisionWorkingPrecision = 40

// plusMantissaBits is the significand width plus() sums at: 64 bits, the
// same width as a hardware 80-bit extended-precision ("long double")
// float. Decimal-valued operands to plus() are summed at this width
// instead of exactly, then rendered to plusFractionalDigits and trimmed —
// reproducing the binary rounding noise of the original float-backed
// implementation rather than the exact decimal sum (see DESIGN.md).
const plusMantissaBits = 64

// plusFractionalDigits is the number of fractional digits plus() renders
// its extended-precision sum to before trimming trailing zeros.
const plusFractionalDigits = 15

var integerLiteral = regexp.MustCompile(`^-?[0-9]+$`)

// tryInt64 reports whether v is exactly an integer literal — either already
// tagged SignedInt, or a String/UnsignedInt whose text is a bare base-10
// integer — both operands must parse exactly as integers.
// Decimal-kind values never qualify, even when their value is integral,
// because they already carry a decimal point or exponent in their origin.
func tryInt64(v Value) (int64, bool) {
	switch v.kind {
	case KindSignedInt:
		return v.i64, true
	case KindUnsignedInt:
		if v.u64 <= 1<<63-1 {
			return int64(v.u64), true
		}
		return 0, false
	case KindString:
		s := v.str
		if !integerLiteral.MatchString(s) {
			return 0, false
		}
		n, err := parseInt64(s)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func parseInt64(s string) (int64, error) {
	var neg bool
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var n int64
	for _, c := range []byte(s) {
		d := int64(c - '0')
		next := n*10 + d
		if next < n {
			return 0, errOverflow
		}
		n = next
	}
	if neg {
		n = -n
	}
	return n, nil
}

var errOverflow = errors.New("el/value: integer overflow")

// Plus implements the plus() builtin: integer-exact when both operands are
// bare integer literals and the sum fits in int64, extended-precision
// float otherwise (see plusMantissaBits).
func Plus(a, b Value) (Value, error) {
	if ai, aok := tryInt64(a); aok {
		if bi, bok := tryInt64(b); bok {
			sum := ai + bi
			if !addOverflows(ai, bi, sum) {
				return SignedInt(sum), nil
			}
		}
	}
	ad, err := a.AsDecimal()
	if err != nil {
		return Value{}, err
	}
	bd, err := b.AsDecimal()
	if err != nil {
		return Value{}, err
	}
	return extendedPlus(ad, bd)
}

// extendedPlus sums ad and bd as plusMantissaBits-wide binary floats and
// renders the result back to a Decimal. Parsing each operand's exact
// decimal text into a bounded-precision float, rather than adding exact
// decimals, is what reproduces NiFi's own plus() path.
func extendedPlus(ad, bd decimal.Decimal) (Value, error) {
	af, _, err := big.ParseFloat(ad.String(), 10, plusMantissaBits, big.ToNearestEven)
	if err != nil {
		return Value{}, err
	}
	bf, _, err := big.ParseFloat(bd.String(), 10, plusMantissaBits, big.ToNearestEven)
	if err != nil {
		return Value{}, err
	}
	sum := new(big.Float).SetPrec(plusMantissaBits).SetMode(big.ToNearestEven)
	sum.Add(af, bf)

	text := trimTrailingZeros(sum.Text('f', plusFractionalDigits))
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Value{}, err
	}
	return Decimal(d), nil
}

// trimTrailingZeros drops a formatted decimal's insignificant trailing
// zeros, and the decimal point itself if nothing follows it.
func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// Minus implements the minus() builtin.
func Minus(a, b Value) (Value, error) {
	if ai, aok := tryInt64(a); aok {
		if bi, bok := tryInt64(b); bok {
			diff := ai - bi
			if !subOverflows(ai, bi, diff) {
				return SignedInt(diff), nil
			}
		}
	}
	return decimalOp(a, b, decimal.Decimal.Sub)
}

// Multiply implements the multiply() builtin.
func Multiply(a, b Value) (Value, error) {
	if ai, aok := tryInt64(a); aok {
		if bi, bok := tryInt64(b); bok {
			if prod, ok := mulExact(ai, bi); ok {
				return SignedInt(prod), nil
			}
		}
	}
	return decimalOp(a, b, decimal.Decimal.Mul)
}

// Divide implements the divide() builtin. Division always proceeds in
// decimal and is fixed at 15 significant fractional digits, rounded
// half-to-even (see DESIGN.md for the rounding-mode rationale).
func Divide(a, b Value) (Value, error) {
	ad, err := a.AsDecimal()
	if err != nil {
		return Value{}, err
	}
	bd, err := b.AsDecimal()
	if err != nil {
		return Value{}, err
	}
	if bd.IsZero() {
		return Value{}, ErrDivideByZero
	}
	q := ad.DivRound(bd, divisionWorkingPrecision).RoundBank(divisionFractionalDigits)
	return Decimal(q), nil
}

func decimalOp(a, b Value, op func(decimal.Decimal, decimal.Decimal) decimal.Decimal) (Value, error) {
	ad, err := a.AsDecimal()
	if err != nil {
		return Value{}, err
	}
	bd, err := b.AsDecimal()
	if err != nil {
		return Value{}, err
	}
	return Decimal(op(ad, bd)), nil
}

func addOverflows(a, b, sum int64) bool {
	return (b > 0 && sum < a) || (b < 0 && sum > a)
}

func subOverflows(a, b, diff int64) bool {
	return (b < 0 && diff < a) || (b > 0 && diff > a)
}

func mulExact(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

// Compare orders a against b numerically (via AsDecimal), for use by the
// gt/ge/lt/le predicates.
func Compare(a, b Value) (int, error) {
	ad, err := a.AsDecimal()
	if err != nil {
		return 0, err
	}
	bd, err := b.AsDecimal()
	if err != nil {
		return 0, err
	}
	return ad.Cmp(bd), nil
}
