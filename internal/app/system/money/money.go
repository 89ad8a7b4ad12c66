// Package money bridges user-entered amounts, shopspring decimals, and the
// Decimal128 values stored in Mongo. All fee and payment arithmetic happens
// on decimal.Decimal; floats never touch money.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

// ParseAmount parses a user-entered amount string. It rejects non-numeric
// input and amounts ≤ 0, which is the validation the API layer applies
// before any charge or payment reaches a store.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return d, nil
}

// ToDecimal128 converts a decimal for storage.
func ToDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

// MustDecimal128 is ToDecimal128 for literals and already-validated values.
func MustDecimal128(d decimal.Decimal) primitive.Decimal128 {
	out, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// Decimal128 covers every value shopspring/decimal can print at the
		// scales money uses; failing here means a programming error.
		panic("money: unrepresentable amount " + d.String())
	}
	return out
}

// FromDecimal128 converts a stored amount back to a decimal. Malformed
// stored values decode as zero with an error, so callers can log and skip
// rather than corrupt a balance.
func FromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ValidCurrency reports whether code looks like an ISO 4217 currency code:
// exactly three ASCII letters.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
