package portfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a single currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// formatter returns a whole-unit formatter for the money's currency.
// Reports round everything to whole units, so the fraction is forced to zero.
func (m Money) formatter() *money.Formatter {
	cur := m.currency()
	return money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
}

func (m Money) Currency() string             { return m.cur }
func (m Money) Amount() decimal.Decimal      { return m.value }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool { return m.value.LessThanOrEqual(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money         { return Money{value: m.value.Mul(n.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Percent returns m as a percentage of the base value.
func (m Money) Percent(base Money) Percent {
	return Percent(m.value.Div(base.value).InexactFloat64() * 100)
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// Round returns the value rounded to whole major units.
func (m Money) Round() decimal.Decimal { return m.value.Round(0) }

// String formats the value as an unsigned whole-unit amount, e.g. "$1,234".
// The sign is carried by the display mode, not the plain string.
func (m Money) String() string {
	return m.formatter().Format(m.value.Abs().Round(0).IntPart())
}

// DeltaString formats a change in value: "+$123", "-$45" or "No change".
func (m Money) DeltaString() string {
	switch {
	case m.value.IsPositive():
		return "+" + m.String()
	case m.value.IsNegative():
		return "-" + m.String()
	default:
		return "No change"
	}
}

// SignedString formats the value with an explicit leading sign for negatives only.
func (m Money) SignedString() string {
	if m.value.IsNegative() {
		return "-" + m.String()
	}
	return m.String()
}
