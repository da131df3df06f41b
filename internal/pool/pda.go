package pool

import (
	"math"
	"strconv"

	"github.com/gagliardetto/solana-go"

	"pancakescope/internal/model"
)

// TickArraySize is the number of ticks per tick array.
// The program uses 60, not 64; other CLMM versions may differ.
const TickArraySize = 60

const (
	tickArraySeed       = "tick_array"
	tickArrayBitmapSeed = "tick_array_bitmap"
)

// DeriveAddress computes a program-derived address for tag followed by seeds.
func DeriveAddress(programID solana.PublicKey, tag string, seeds ...[]byte) (solana.PublicKey, bool) {
	all := make([][]byte, 0, len(seeds)+1)
	all = append(all, []byte(tag))
	all = append(all, seeds...)

	addr, _, err := solana.FindProgramAddress(all, programID)
	if err != nil {
		return solana.PublicKey{}, false
	}
	return addr, true
}

// TickArrayStartIndex returns the start ticks of the array containing tick and of the next one.
// ok is false for a zero spacing or when either start falls outside the int32 tick range.
func TickArrayStartIndex(tick int32, tickSpacing uint16) (lower int32, upper int32, ok bool) {
	arraySpacing := int64(tickSpacing) * TickArraySize
	if arraySpacing == 0 {
		return 0, 0, false
	}
	idx := floorDiv(int64(tick), arraySpacing)
	lo, hi := idx*arraySpacing, (idx+1)*arraySpacing
	if lo < math.MinInt32 || hi > math.MaxInt32 {
		return 0, 0, false
	}
	return int32(lo), int32(hi), true
}

// DeriveTickArrays derives the lower/upper tick arrays around the current tick and the bitmap account.
func DeriveTickArrays(programID, poolAddress solana.PublicKey, tick int32, tickSpacing uint16) (model.TickArrays, bool) {
	lowerStart, upperStart, ok := TickArrayStartIndex(tick, tickSpacing)
	if !ok {
		return model.TickArrays{}, false
	}

	lower, ok := DeriveAddress(programID, tickArraySeed, poolAddress.Bytes(), []byte(strconv.Itoa(int(lowerStart))))
	if !ok {
		return model.TickArrays{}, false
	}
	upper, ok := DeriveAddress(programID, tickArraySeed, poolAddress.Bytes(), []byte(strconv.Itoa(int(upperStart))))
	if !ok {
		return model.TickArrays{}, false
	}
	bitmap, ok := DeriveAddress(programID, tickArrayBitmapSeed, poolAddress.Bytes())
	if !ok {
		return model.TickArrays{}, false
	}

	return model.TickArrays{
		LowerStartIndex: lowerStart,
		UpperStartIndex: upperStart,
		Lower:           lower.String(),
		Upper:           upper.String(),
		Bitmap:          bitmap.String(),
	}, true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
