package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity converts a feed cell to an integer quantity.
// Values such as "5", " 5 ", "5.0" and "5.00" are all accepted; fractional
// quantities are rejected.
func ParseQuantity(val string) (int, error) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, fmt.Errorf("empty quantity")
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", val, err)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("fractional quantity %q", val)
	}
	return int(d.IntPart()), nil
}

// ParseMoney converts a feed or API value to a decimal amount.
// An empty string yields the zero amount with ok=false.
func ParseMoney(val string) (amount decimal.Decimal, ok bool, err error) {
	s := strings.TrimSpace(val)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("invalid amount %q: %w", val, err)
	}
	return d, true, nil
}

// FormatMoney renders an amount with two decimal places, the format the
// commerce API uses for prices.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ToBool converts a feed cell to a bool.
// It accepts "1", "true", "yes" and "y" (case-insensitive).
func ToBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
