package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in minor currency units (paise, cents). All
// engine arithmetic happens on this fixed-point representation; floats and
// decimals exist only at the parse/format boundary.
type Money int64

// MaxAmount bounds a single expense: 1,00,00,000.00 in minor units.
const MaxAmount Money = 1_000_000_000

var hundred = decimal.NewFromInt(100)

// MoneyFromFloat converts a request-level amount (e.g. 33.34) to minor
// units, rounding to the nearest minor unit.
func MoneyFromFloat(f float64) Money {
	return Money(decimal.NewFromFloat(f).Mul(hundred).Round(0).IntPart())
}

// MoneyFromDecimal converts a major-unit decimal to minor units. It fails if
// the value carries sub-minor-unit precision, so callers cannot silently lose
// fractions of a cent.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: %s is not representable in minor units", ErrInvalidSplit, d)
	}
	return Money(cents.IntPart()), nil
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Float64 returns the amount in major units for JSON responses.
func (m Money) Float64() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

// String formats the amount at display precision, e.g. "33.34".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
