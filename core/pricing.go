package core

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var maxBaseUnits = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// ToBaseUnits converts a human-denominated amount into the smallest unit of a mint with the
// given decimals, truncating any remainder. Unset, NaN and non-positive amounts convert to zero.
// Uses decimal arithmetic so 0.1 SOL is exactly 100000000 lamports.
func ToBaseUnits(amount *float64, decimals uint8) uint64 {
	if amount == nil || math.IsNaN(*amount) || math.IsInf(*amount, 0) || *amount <= 0 {
		return 0
	}

	units := decimal.NewFromFloat(*amount).Shift(int32(decimals)).Truncate(0)
	if units.GreaterThan(maxBaseUnits) {
		return math.MaxUint64
	}
	return units.BigInt().Uint64()
}

// FormatBaseUnits renders base units back into the human-denominated amount.
func FormatBaseUnits(units uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -int32(decimals)).String()
}

// PriceFloorFor builds the reserve price of an auction. A floor that is unset or converts to
// zero base units means no reserve.
func PriceFloorFor(floor *float64, decimals uint8) PriceFloor {
	minPrice := ToBaseUnits(floor, decimals)
	if minPrice == 0 {
		return PriceFloor{Type: PriceFloorNone}
	}
	return PriceFloor{Type: PriceFloorMinimum, MinPrice: minPrice}
}
