package valueobjects

import "fmt"

// DefaultCurrency is used when none is supplied.
const DefaultCurrency = "BRL"

// Money is an amount in minor units (cents).
type Money struct {
	amountInCents int64
	currency      string
}

func NewMoney(amountInCents int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{
		amountInCents: amountInCents,
		currency:      currency,
	}
}

func (m Money) AmountInCents() int64 {
	return m.amountInCents
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsNegative() bool {
	return m.amountInCents < 0
}

func (m Money) Equals(other Money) bool {
	return m.amountInCents == other.amountInCents && m.currency == other.currency
}

// String renders the amount with two decimals, e.g. "49.90 BRL".
func (m Money) String() string {
	sign := ""
	cents := m.amountInCents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, m.currency)
}
