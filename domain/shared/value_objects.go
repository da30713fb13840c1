package shared

import "errors"

// DefaultCurrency is the marketplace settlement currency (Ethiopian birr).
const DefaultCurrency = "ETB"

// Money value object. Amounts are stored in whole birr.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a new Money value object.
func NewMoney(amount int64, currency string) *Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Money{
		amount:   amount,
		currency: currency,
	}
}

// NewBirr creates a Money value in the default currency.
func NewBirr(amount int64) *Money {
	return NewMoney(amount, DefaultCurrency)
}

// Amount returns the numeric amount.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns a new Money value; currencies must match.
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot add money with different currencies")
	}
	return &Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
	}, nil
}

// Subtract returns a new Money value; currencies must match.
func (m Money) Subtract(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot subtract money with different currencies")
	}
	return &Money{
		amount:   m.amount - other.amount,
		currency: m.currency,
	}, nil
}

// Multiply returns the amount multiplied by a non-negative quantity.
func (m Money) Multiply(qty int) (*Money, error) {
	if qty < 0 {
		return nil, errors.New("cannot multiply money by negative quantity")
	}
	if qty != 0 && m.amount > 0 && m.amount > (1<<62)/int64(qty) {
		return nil, errors.New("money multiplication overflow")
	}
	return &Money{
		amount:   m.amount * int64(qty),
		currency: m.currency,
	}, nil
}

// CeilPercent returns ceil(amount × bps/10000) in the same currency.
// The platform fee (2% = 200 bps) and the delivery estimate (5% = 500 bps)
// both round up so a fractional birr is never lost to truncation.
func (m Money) CeilPercent(bps int64) Money {
	raw := m.amount * bps
	amount := raw / 10000
	if raw%10000 != 0 {
		amount++
	}
	return Money{amount: amount, currency: m.currency}
}

func (m Money) IsGreaterThan(other Money) bool {
	return m.amount > other.amount
}

func (m Money) IsGreaterThanOrEqual(other Money) bool {
	return m.amount >= other.amount
}

func (m Money) IsPositive() bool {
	return m.amount > 0
}

func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}
