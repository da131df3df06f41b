package pool

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"pancakescope/internal/model"
)

// ProgramID is the PancakeSwap V3 (CLMM) program on Solana.
var ProgramID = solana.MustPublicKeyFromBase58("HpNfyc2Saw7RKkQd8nEL4khUcuPhQ7WwY1B2qjx8jxFq")

// Discriminator tags PoolState accounts of the program.
var Discriminator = [8]byte{247, 237, 227, 245, 215, 195, 222, 70}

// ErrShortAccount is returned for buffers smaller than MinAccountSize.
var ErrShortAccount = errors.New("account data too short")

// IsPoolAccount reports whether data starts with the PoolState discriminator.
func IsPoolAccount(data []byte) bool {
	return len(data) >= len(Discriminator) && bytes.Equal(data[:len(Discriminator)], Discriminator[:])
}

// Decode reads a PoolState from raw account data. The caller checks the discriminator.
func Decode(data []byte) (model.PoolState, error) {
	if len(data) < MinAccountSize {
		return model.PoolState{}, fmt.Errorf("%w: %d < %d", ErrShortAccount, len(data), MinAccountSize)
	}

	values, err := readLayout(data, poolStateLayout)
	if err != nil {
		return model.PoolState{}, err
	}

	tickSpacing, _ := values["tick_spacing"].(uint16)
	tickCurrent, _ := values["tick_current"].(int32)

	return model.PoolState{
		AmmConfig:    values.publicKey("amm_config"),
		TokenMint0:   values.publicKey("token_mint_0"),
		TokenMint1:   values.publicKey("token_mint_1"),
		TokenVault0:  values.publicKey("token_vault_0"),
		TokenVault1:  values.publicKey("token_vault_1"),
		TickSpacing:  tickSpacing,
		TickCurrent:  tickCurrent,
		SqrtPriceX64: "0",
		Liquidity:    "0",
	}, nil
}

// Parse checks the discriminator and decodes. Any failure means "not a pool".
func Parse(data []byte) (model.PoolState, bool) {
	if !IsPoolAccount(data) {
		return model.PoolState{}, false
	}
	state, err := Decode(data)
	if err != nil {
		return model.PoolState{}, false
	}
	return state, true
}
