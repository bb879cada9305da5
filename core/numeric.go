package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseCount parses a non-negative whole number typed by the seller.
// Empty or malformed input returns nil so the field falls back to its default.
func ParseCount(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// ParseAmount parses a non-negative decimal amount typed by the seller.
// Empty, malformed, NaN or infinite input returns nil.
func ParseAmount(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	return &f
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
