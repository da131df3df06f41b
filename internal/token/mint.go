package token

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	tokenprog "github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"pancakescope/internal/chain"
)

// DefaultDecimals is used when a mint cannot be read.
const DefaultDecimals uint8 = 6

// Decimals returns the mint's decimals, or DefaultDecimals when unavailable.
func (r *Resolver) Decimals(ctx context.Context, mint string) uint8 {
	if decimals, ok := r.decimals.Get(mint); ok {
		return decimals
	}

	decimals, err := r.fetchDecimals(ctx, mint)
	if err != nil {
		r.logger.Debug("mint decimals unavailable", zap.String("mint", mint), zap.Error(err))
		return DefaultDecimals
	}
	r.decimals.Set(mint, decimals)
	return decimals
}

func (r *Resolver) fetchDecimals(ctx context.Context, mint string) (uint8, error) {
	if r.accounts == nil {
		return 0, fmt.Errorf("account fetcher is nil")
	}
	address, err := chain.ParseAddress(mint)
	if err != nil {
		return 0, err
	}
	account, err := r.accounts.AccountInfo(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("fetch mint: %w", err)
	}
	if account == nil {
		return 0, fmt.Errorf("mint not found")
	}
	return DecodeMintDecimals(account.Data)
}

// DecodeMintDecimals reads decimals from mint account data. Token-2022 mints share the base layout.
func DecodeMintDecimals(data []byte) (uint8, error) {
	var mint tokenprog.Mint
	if err := bin.NewBinDecoder(data).Decode(&mint); err != nil {
		return 0, fmt.Errorf("decode mint: %w", err)
	}
	if !mint.IsInitialized {
		return 0, fmt.Errorf("mint not initialized")
	}
	return mint.Decimals, nil
}
