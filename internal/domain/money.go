package domain

import (
	"fmt"
	"math"
)

// Money is an amount in minor currency units (cents).
// All price math is done on Money so no rounding ever happens mid-computation;
// formatting to a decimal string is a display concern.
type Money int64

// Dollars returns whole currency units as Money.
func Dollars(d int64) Money {
	return Money(d * 100)
}

// Times multiplies a unit price by a count (guests, quantity).
// It does not check for overflow; use MulChecked on untrusted counts.
func (m Money) Times(n int) Money {
	return m * Money(n)
}

// MulChecked multiplies a non-negative amount by a non-negative count and
// reports false if the product does not fit in Money.
func (m Money) MulChecked(n int) (Money, bool) {
	if m < 0 || n < 0 {
		return 0, false
	}
	if n != 0 && int64(m) > math.MaxInt64/int64(n) {
		return 0, false
	}
	return m * Money(n), true
}

// AddChecked adds two non-negative amounts and reports false on overflow.
func (m Money) AddChecked(o Money) (Money, bool) {
	if m < 0 || o < 0 || int64(m) > math.MaxInt64-int64(o) {
		return 0, false
	}
	return m + o, true
}

// Cents returns the raw minor-unit amount.
func (m Money) Cents() int64 {
	return int64(m)
}

// String formats m with exactly two fraction digits, e.g. "1850.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
