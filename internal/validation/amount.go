package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountRequired      = errors.New("amount is required")
	ErrInvalidAmountFormat = errors.New("amount must be a decimal number")
	ErrAmountNotPositive   = errors.New("amount must be greater than 0")
	ErrTooManyDecimals     = errors.New("amount must have at most 2 decimal places")
)

const maxAmountDecimals = 2

var amountPattern = regexp.MustCompile(`^\d+(?:[.,]\d+)?$`)

// ParseAmount reads a form amount such as "59,90" or "1200.5". Trailing zeros do not count as decimal places.
func ParseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, ErrAmountRequired
	}

	if !amountPattern.MatchString(value) {
		return decimal.Zero, ErrInvalidAmountFormat
	}

	normalized := strings.Replace(value, ",", ".", 1)
	if _, fraction, found := strings.Cut(normalized, "."); found {
		if len(strings.TrimRight(fraction, "0")) > maxAmountDecimals {
			return decimal.Zero, ErrTooManyDecimals
		}
	}

	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, ErrInvalidAmountFormat
	}

	if !amount.IsPositive() {
		return decimal.Zero, ErrAmountNotPositive
	}

	return amount, nil
}
