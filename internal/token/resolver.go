package token

import (
	"context"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	tokenprog "github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"pancakescope/internal/chain"
)

// Token2022ProgramID is the extended SPL token program.
var Token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

const (
	// baseAccountSize is the classic SPL token account size; Token-2022 accounts share it as a prefix.
	baseAccountSize = 165
	// accountTypeAccount marks a Token-2022 account (as opposed to a mint) in its extension header.
	accountTypeAccount = 2
)

var errUnknownOwner = errors.New("unknown token program")

// AccountFetcher loads raw accounts. It returns nil, nil for missing accounts.
type AccountFetcher interface {
	AccountInfo(ctx context.Context, address solana.PublicKey) (*chain.Account, error)
}

// Resolver reads vault balances and mint decimals.
type Resolver struct {
	accounts AccountFetcher
	decimals *DecimalsCache
	logger   *zap.Logger
}

func NewResolver(accounts AccountFetcher, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		accounts: accounts,
		decimals: NewDecimalsCache(),
		logger:   logger,
	}
}

// Balance returns the normalized vault balance. A missing or unreadable vault counts as zero.
func (r *Resolver) Balance(ctx context.Context, vault string, decimals uint8) float64 {
	amount, _ := r.Lookup(ctx, vault, decimals)
	return amount
}

// Lookup returns the normalized vault balance and whether it was actually read from chain.
func (r *Resolver) Lookup(ctx context.Context, vault string, decimals uint8) (float64, bool) {
	raw, err := r.rawAmount(ctx, vault)
	if err != nil {
		r.logger.Debug("vault balance unavailable", zap.String("vault", vault), zap.Error(err))
		return 0, false
	}
	return Normalize(raw, decimals), true
}

func (r *Resolver) rawAmount(ctx context.Context, vault string) (uint64, error) {
	if r.accounts == nil {
		return 0, fmt.Errorf("account fetcher is nil")
	}
	address, err := chain.ParseAddress(vault)
	if err != nil {
		return 0, err
	}
	account, err := r.accounts.AccountInfo(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("fetch vault: %w", err)
	}
	if account == nil {
		return 0, fmt.Errorf("vault not found")
	}
	return DecodeAmount(account.Owner, account.Data)
}

// DecodeAmount reads the token amount from a vault owned by either token program.
func DecodeAmount(owner solana.PublicKey, data []byte) (uint64, error) {
	switch {
	case owner.Equals(solana.TokenProgramID):
		return decodeClassicAmount(data)
	case owner.Equals(Token2022ProgramID):
		return decodeExtendedAmount(data)
	default:
		return 0, fmt.Errorf("%w: %s", errUnknownOwner, owner)
	}
}

func decodeClassicAmount(data []byte) (uint64, error) {
	var account tokenprog.Account
	if err := bin.NewBinDecoder(data).Decode(&account); err != nil {
		return 0, fmt.Errorf("decode token account: %w", err)
	}
	return account.Amount, nil
}

func decodeExtendedAmount(data []byte) (uint64, error) {
	if len(data) < baseAccountSize {
		return 0, fmt.Errorf("token-2022 account too short: %d", len(data))
	}
	if len(data) > baseAccountSize && data[baseAccountSize] != accountTypeAccount {
		return 0, fmt.Errorf("token-2022 account type %d", data[baseAccountSize])
	}
	return decodeClassicAmount(data[:baseAccountSize])
}
