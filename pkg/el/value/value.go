// Package value implements the EL typed runtime Value: a tagged union of
// String, SignedInt, UnsignedInt, Decimal, and Bool, plus the null-marker
// sentinel used for missing attributes.
package value

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindString Kind = iota
	KindSignedInt
	KindUnsignedInt
	KindDecimal
	KindBool
	// KindNull is the null-marker: distinct from the empty string, produced
	// when an attribute reference finds no matching attribute.
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindSignedInt:
		return "signed_int"
	case KindUnsignedInt:
		return "unsigned_int"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is an immutable tagged value. The zero Value is the empty string,
// not null — use Null() for the null-marker.
type Value struct {
	kind Kind
	str  string
	i64  int64
	u64  uint64
	dec  decimal.Decimal
	b    bool
}

// String wraps a UTF-8 string as a Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// SignedInt wraps a base-10 signed 64-bit integer.
func SignedInt(i int64) Value { return Value{kind: KindSignedInt, i64: i} }

// UnsignedInt wraps an unsigned 64-bit integer (radix conversions, bit ops).
func UnsignedInt(u uint64) Value { return Value{kind: KindUnsignedInt, u64: u} }

// Decimal wraps an arbitrary-precision decimal.
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Null returns the null-marker Value: the sentinel produced when an
// attribute reference finds no attribute of that name anywhere in the
// record set.
func Null() Value { return Value{kind: KindNull} }

// Kind reports which variant this Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null-marker.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString renders v: Bool -> "true"/"false"; SignedInt/UnsignedInt
// -> base-10; Decimal -> its exact, minimal-digit representation; String ->
// itself; the null-marker -> "" (empty string, distinct from being one).
func (v Value) AsString() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindSignedInt:
		return strconv.FormatInt(v.i64, 10)
	case KindUnsignedInt:
		return strconv.FormatUint(v.u64, 10)
	case KindDecimal:
		return v.dec.String()
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNull:
		return ""
	default:
		return ""
	}
}

// AsSignedLong coerces v to a signed 64-bit integer: strings parse
// as base-10 (leading '-' allowed); Decimal truncates toward zero; Bool is
// an error; the null-marker coerces to 0.
func (v Value) AsSignedLong() (int64, error) {
	switch v.kind {
	case KindSignedInt:
		return v.i64, nil
	case KindUnsignedInt:
		return int64(v.u64), nil
	case KindDecimal:
		return v.dec.Truncate(0).IntPart(), nil
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("as_signed_long: %q is not an integer: %w", v.str, err)
		}
		return n, nil
	case KindNull:
		return 0, nil
	case KindBool:
		return 0, fmt.Errorf("as_signed_long: cannot coerce bool to integer")
	default:
		return 0, fmt.Errorf("as_signed_long: unsupported value kind %s", v.kind)
	}
}

// AsBool coerces v to a boolean: "true"/"false" (case-insensitive)
// map directly; a numeric value is truthy iff non-zero; the null-marker
// coerces to false.
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindNull:
		return false, nil
	case KindSignedInt:
		return v.i64 != 0, nil
	case KindUnsignedInt:
		return v.u64 != 0, nil
	case KindDecimal:
		return !v.dec.IsZero(), nil
	case KindString:
		s := strings.TrimSpace(v.str)
		switch strings.ToLower(s) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return !d.IsZero(), nil
		}
		return false, fmt.Errorf("as_bool: %q is not a boolean or numeric value", v.str)
	default:
		return false, fmt.Errorf("as_bool: unsupported value kind %s", v.kind)
	}
}

// AsDecimal coerces v to an arbitrary-precision decimal, accepting integer,
// decimal, or scientific notation for strings. The null-marker coerces to 0.
func (v Value) AsDecimal() (decimal.Decimal, error) {
	switch v.kind {
	case KindDecimal:
		return v.dec, nil
	case KindSignedInt:
		return decimal.NewFromInt(v.i64), nil
	case KindUnsignedInt:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v.u64), 0), nil
	case KindNull:
		return decimal.Zero, nil
	case KindString:
		d, err := decimal.NewFromString(strings.TrimSpace(v.str))
		if err != nil {
			return decimal.Zero, fmt.Errorf("as_decimal: %q is not numeric: %w", v.str, err)
		}
		return d, nil
	case KindBool:
		return decimal.Zero, fmt.Errorf("as_decimal: cannot coerce bool to decimal")
	default:
		return decimal.Zero, fmt.Errorf("as_decimal: unsupported value kind %s", v.kind)
	}
}

// IsEmptyString reports whether v's trimmed as_string form is empty.
// Used by isEmpty() and replaceEmpty(), which also special-case the
// null-marker independently.
func (v Value) IsEmptyString() bool {
	return strings.TrimSpace(v.AsString()) == ""
}

// Equal compares two Values by their as_string form, the comparison rule
// used by equals()/equalsIgnoreCase().
func (v Value) Equal(other Value) bool {
	return v.AsString() == other.AsString()
}
