package model

import (
	"fmt"
	"strings"
)

// Market identifies one of the two KRX stock markets.
type Market string

const (
	KOSPI  Market = "KOSPI"
	KOSDAQ Market = "KOSDAQ"
)

// Code returns the KRX dataset code for the market.
func (m Market) Code() string {
	switch m {
	case KOSPI:
		return "STK"
	case KOSDAQ:
		return "KSQ"
	default:
		return ""
	}
}

func (m Market) String() string {
	return string(m)
}

// Markets lists the two concrete markets in a stable order.
func Markets() []Market {
	return []Market{KOSPI, KOSDAQ}
}

// SelectorAll is the request-level selector meaning "both markets".
// It is never stored.
const SelectorAll = "ALL"

// ParseSelector normalizes a market selector from a request.
// An empty selector falls back to def. Returns KOSPI|KOSDAQ|ALL.
func ParseSelector(s, def string) (string, error) {
	if strings.TrimSpace(s) == "" {
		s = def
	}
	switch up := strings.ToUpper(strings.TrimSpace(s)); up {
	case string(KOSPI), string(KOSDAQ), SelectorAll:
		return up, nil
	default:
		return "", fmt.Errorf("market must be KOSPI|KOSDAQ|ALL, got %q", s)
	}
}
