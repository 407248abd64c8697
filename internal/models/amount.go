package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyAmount is returned when an amount is parsed from a blank string.
	ErrEmptyAmount = errors.New("amount is empty")

	// ErrAmountScale is returned for exponents beyond maxAmountExponent, such
	// as "1e99999999". Arithmetic on them would build enormous integers.
	ErrAmountScale = errors.New("amount exponent out of range")
)

const maxAmountExponent = 32

// Amount is a numeric field entered by the user (quantity, cost or sell price).
// It keeps the decimal value for arithmetic and the normalized text it was
// parsed from, so "2.50" is written back as "2.50" and not "2.5".
type Amount struct {
	value decimal.Decimal
	text  string
}

// ParseAmount accepts either ',' or '.' as decimal separator and normalizes
// it to '.'. Negative values are accepted; exponents are limited to
// ±maxAmountExponent.
func ParseAmount(s string) (Amount, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if normalized == "" {
		return Amount{}, ErrEmptyAmount
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Amount{}, fmt.Errorf("%q is not a number: %w", s, err)
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return Amount{}, fmt.Errorf("%q: %w", s, ErrAmountScale)
	}
	return Amount{value: d, text: normalized}, nil
}

// NewAmount wraps a decimal value.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d, text: d.String()}
}

func (a Amount) Decimal() decimal.Decimal { return a.value }
func (a Amount) Float64() float64         { return a.value.InexactFloat64() }
func (a Amount) IsZero() bool             { return a.value.IsZero() }

// String returns the normalized text the amount was parsed from.
func (a Amount) String() string {
	if a.text == "" {
		return a.value.String()
	}
	return a.text
}

// Equal compares values, so "2.5" equals "2.50".
func (a Amount) Equal(b Amount) bool { return a.value.Equal(b.value) }

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts the string form written by MarshalJSON and bare JSON numbers.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = Amount{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n json.Number
		if numErr := json.Unmarshal(b, &n); numErr != nil {
			return fmt.Errorf("invalid amount %s: %w", b, err)
		}
		s = n.String()
	}

	if strings.TrimSpace(s) == "" {
		*a = Amount{}
		return nil
	}

	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
