package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount is an exact monetary value. It wraps a decimal so that arithmetic
// on transaction amounts never goes through floating point.
//
// After consolidation every amount follows the banking convention: negative
// is money out, positive is money in.
type Amount struct {
	value decimal.Decimal
}

// A builds an Amount from any of the usual numeric types.
func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	}
	panic("unreachable")
}

// ParseAmount parses a decimal string like "-791.99" into an Amount.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

// MustParseAmount is like ParseAmount but panics on error.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err.Error())
	}
	return a
}

func (a Amount) IsZero() bool        { return a.value.IsZero() }
func (a Amount) IsPositive() bool    { return a.value.IsPositive() }
func (a Amount) IsNegative() bool    { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool { return a.value.Equal(b.value) }
func (a Amount) Neg() Amount         { return Amount{value: a.value.Neg()} }
func (a Amount) Abs() Amount         { return Amount{value: a.value.Abs()} }

// Cents returns the amount rounded to two decimal places.
func (a Amount) Cents() Amount { return Amount{value: a.value.Round(2)} }

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

// String formats the amount with exactly two decimal places, the format used
// in the consolidated output.
func (a Amount) String() string { return a.value.StringFixed(2) }

// Display formats the amount for human consumption in the given currency,
// e.g. Display("USD") on -26.40 yields "-$26.40".
func (a Amount) Display(currency string) string {
	cur := money.New(0, currency).Currency()
	shifted := a.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.IntPart())
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.value.Round(2))
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.value.UnmarshalJSON(data)
}

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
