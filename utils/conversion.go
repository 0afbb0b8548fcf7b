package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseExpiry converts strings like "30s", "15m", "2h" or "7d" to a duration.
// A bare number is read as seconds.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty expiry")
	}

	unit := time.Second
	num := s
	switch s[len(s)-1] {
	case 's':
		num = s[:len(s)-1]
	case 'm':
		unit, num = time.Minute, s[:len(s)-1]
	case 'h':
		unit, num = time.Hour, s[:len(s)-1]
	case 'd':
		unit, num = 24*time.Hour, s[:len(s)-1]
	}

	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid expiry %q", s)
	}
	return time.Duration(n) * unit, nil
}

// ParseExpiryOr is ParseExpiry with a fallback for bad input.
func ParseExpiryOr(s string, fallback time.Duration) time.Duration {
	d, err := ParseExpiry(s)
	if err != nil || d == 0 {
		return fallback
	}
	return d
}

// RoundMoney rounds to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
