package core

import (
	"math"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   *float64
		decimals uint8
		expected uint64
	}{
		{"unset", nil, 9, 0},
		{"zero", floatPtr(0), 9, 0},
		{"negative", floatPtr(-1), 9, 0},
		{"NaN", floatPtr(math.NaN()), 9, 0},
		{"one tenth SOL", floatPtr(0.1), 9, 100_000_000},
		{"whole units", floatPtr(2), 6, 2_000_000},
		{"truncates below base unit", floatPtr(1.0000001), 6, 1_000_000},
		{"zero decimals", floatPtr(7.9), 0, 7},
		{"clamps overflow", floatPtr(1e30), 9, math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check.Equal(t, tt.expected, ToBaseUnits(tt.amount, tt.decimals))
		})
	}
}

func TestFormatBaseUnits(t *testing.T) {
	check.Equal(t, "1.5", FormatBaseUnits(1_500_000_000, 9))
	check.Equal(t, "0", FormatBaseUnits(0, 9))
	check.Equal(t, "42", FormatBaseUnits(42, 0))
}

func TestPriceFloorFor(t *testing.T) {
	tests := []struct {
		name     string
		floor    *float64
		expected PriceFloor
	}{
		{"unset", nil, PriceFloor{Type: PriceFloorNone}},
		{"zero", floatPtr(0), PriceFloor{Type: PriceFloorNone}},
		{"dust below one base unit", floatPtr(0.0000001), PriceFloor{Type: PriceFloorNone}},
		{"minimum", floatPtr(1.25), PriceFloor{Type: PriceFloorMinimum, MinPrice: 1_250_000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check.Equal(t, tt.expected, PriceFloorFor(tt.floor, 6))
		})
	}
}
