// Package money provides an exact decimal currency amount with half-up
// rounding to cents.
package money

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits of a rounded amount.
const Places = 2

// Zero is the zero amount.
var Zero = Money{}

// Money is a currency amount backed by an arbitrary-precision decimal.
// The zero value is 0.
type Money struct {
	d decimal.Decimal
}

// New wraps a decimal value.
func New(d decimal.Decimal) Money {
	return Money{d: d}
}

// FromInt returns an amount of whole currency units.
func FromInt(units int64) Money {
	return Money{d: decimal.NewFromInt(units)}
}

// FromString parses a decimal string such as "1299.99".
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errors.Wrapf(err, "parse amount %q", s)
	}
	return Money{d: d}, nil
}

// MustParse is like FromString but panics on malformed input.
func MustParse(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// MulRate multiplies the amount by a dimensionless rate without rounding.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{d: m.d.Mul(rate)}
}

// MulQuantity multiplies the amount by an item count without rounding.
func (m Money) MulQuantity(qty int) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(int64(qty)))}
}

// Round2 rounds to cents. A midpoint rounds away from zero, so 10.005
// becomes 10.01 and -10.005 becomes -10.01.
func (m Money) Round2() Money {
	return Money{d: m.d.Round(Places)}
}

// Ratio returns m/o rounded half-up to the given number of places.
// The caller must ensure o is not zero.
func (m Money) Ratio(o Money, places int32) decimal.Decimal {
	return m.d.DivRound(o.d, places)
}

// Cmp returns -1, 0 or +1 depending on whether m is less than, equal to or
// greater than o.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// Equal reports numeric equality, so 1.5 equals 1.50.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

func (m Money) IsNegative() bool { return m.d.IsNegative() }
func (m Money) IsPositive() bool { return m.d.IsPositive() }
func (m Money) IsZero() bool     { return m.d.IsZero() }

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.d.StringFixed(Places)
}

// exact formats the amount with at least two fractional digits and without
// dropping any precision the value carries.
func (m Money) exact() string {
	places := int32(Places)
	if e := -m.d.Exponent(); e > places {
		places = e
	}
	return m.d.StringFixed(places)
}

// MarshalJSON encodes the amount as a quoted decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.exact() + `"`), nil
}

// UnmarshalJSON accepts both quoted strings and bare JSON numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return errors.Wrap(err, "decode amount")
	}
	m.d = d
	return nil
}
