package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// KRX numeric fields arrive as display strings: thousands separators, empty
// strings, or a lone "-" for "no value". Malformed text yields null, never
// an error.

// ParseDecimal parses a KRX numeric string into a nullable decimal.
func ParseDecimal(s string) decimal.NullDecimal {
	s = cleanNumeric(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// ParseInt64 parses a KRX integer string into a nullable int64.
func ParseInt64(s string) *int64 {
	s = cleanNumeric(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseDate parses an 8-digit YYYYMMDD string into a nullable date.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return nil
	}
	return &t
}

func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return ""
	}
	return strings.ReplaceAll(s, ",", "")
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
