package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is a monetary amount in minor units (hundredths). All pricing
// arithmetic happens on Cents so every intermediate value is already rounded
// to two decimal places.
type Cents int64

// ParseCents parses a decimal amount ("50", "50.5", "3130.00") into Cents.
// Fractions beyond two places round half away from zero. Negative amounts are
// rejected; monetary inputs in this service are never negative.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := strings.HasPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	if neg {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var frac int64
	var roundUp bool
	if fracPart != "" {
		for _, r := range fracPart {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid amount %q", s)
			}
		}
		digits := fracPart
		if len(digits) > 2 {
			if digits[2] >= '5' {
				roundUp = true
			}
			digits = digits[:2]
		}
		for len(digits) < 2 {
			digits += "0"
		}
		frac, err = strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	total := whole*100 + frac
	if roundUp {
		total++
	}
	return Cents(total), nil
}

// Mul multiplies by an integer factor (night count).
func (c Cents) Mul(n int) Cents {
	return c * Cents(n)
}

// String renders the amount with exactly two decimal places, e.g. "3130.00".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// SupportedCurrency reports whether the ISO code is accepted for quotes.
func SupportedCurrency(code string) bool {
	switch code {
	case "MXN", "USD", "EUR", "CAD":
		return true
	}
	return false
}
