/*
Package value implements EL's typed runtime Value and its coercions.

Value is a tagged union of five variants — String, SignedInt, UnsignedInt,
Decimal, and Bool — plus a null-marker sentinel distinct from the empty
string. Every Value renders to a string via AsString; numeric variants
round-trip through AsString and re-parsing without loss within their own
domain.

Minus and Multiply promote to arbitrary-precision Decimal (backed by
github.com/shopspring/decimal) whenever either operand is not a bare
integer literal. Divide always proceeds in decimal at a fixed 15
significant fractional digits rounded half-to-even. Plus with a
non-integer operand sums both operands as 64-bit-significand binary
floats and returns a Decimal rendered to at most 15 fractional digits,
so its result is not the exact decimal sum.
*/
package value
