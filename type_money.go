package vnfolio

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
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
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Money represents an amount of Vietnamese dong. The whole ledger is held in
// a single currency, so Money carries only an exact decimal value.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value)} }
func (m Money) Div(q Quantity) Money            { return Money{value: m.value.Div(q.value)} }

// MulPercent returns p percent of m (p is e.g. 0.15 for a 0.15% fee).
func (m Money) MulPercent(p decimal.Decimal) Money {
	return Money{value: m.value.Mul(p).Div(decimal.NewFromInt(100))}
}

// Decimal returns the underlying exact value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Deprecated: AsFloat should no longer be used, the purpose is to keep the calculation exact.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// String renders the amount as Vietnamese dong using the go-money VND
// formatter (no fraction digits, "." thousands grouping).
func (m Money) String() string {
	cur := *money.New(0, money.VND).Currency()
	return cur.Formatter().Format(m.value.Round(int32(cur.Fraction)).IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON persists the amount as a bare number, the document shape the
// webhook store exchanges.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}

// ParseMoney parses a monetary amount from user input in the Vietnamese text
// format: "." as thousands separator and "," as decimal separator
// (e.g. "2.503.750" or "25.037,5"). Plain computer formats parse too.
func ParseMoney(str string) (Money, error) {
	v, err := parseViNumber(str)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", str, err)
	}
	return Money{value: v}, nil
}

// parseViNumber normalizes a vi-locale numeric string into a decimal.
func parseViNumber(str string) (decimal.Decimal, error) {
	s := strings.TrimSpace(str)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty number")
	}
	if strings.Contains(s, ",") {
		// "," is the decimal separator, "." groups thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Count(s, ".") > 1 {
		// Several "." can only be grouping.
		s = strings.ReplaceAll(s, ".", "")
	} else if i := strings.Index(s, "."); i >= 0 && len(s)-i-1 == 3 {
		// A single "." followed by exactly three digits is grouping in
		// vi locale ("2.503" is two thousand five hundred and three).
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}
