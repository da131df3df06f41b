package token

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Normalize converts a raw token amount into whole-token units.
func Normalize(raw uint64, decimals uint8) float64 {
	if raw == 0 {
		return 0
	}
	amount := decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(decimals))
	return amount.InexactFloat64()
}
