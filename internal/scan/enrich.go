package scan

import (
	"context"

	"golang.org/x/sync/errgroup"

	"pancakescope/internal/model"
	"pancakescope/internal/token"
)

// enrich attaches decimals-adjusted vault balances and symbols to a decoded pool.
// Missing mints fall back to default decimals; missing vaults count as zero balance.
func (s *Scanner) enrich(ctx context.Context, address string, state model.PoolState) model.PoolInfo {
	var decimals0, decimals1 uint8
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		decimals0 = s.resolver.Decimals(gctx, state.TokenMint0)
		return nil
	})
	g.Go(func() error {
		decimals1 = s.resolver.Decimals(gctx, state.TokenMint1)
		return nil
	})
	_ = g.Wait()

	var balance0, balance1 float64
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		balance0 = s.resolver.Balance(gctx, state.TokenVault0, decimals0)
		return nil
	})
	g.Go(func() error {
		balance1 = s.resolver.Balance(gctx, state.TokenVault1, decimals1)
		return nil
	})
	_ = g.Wait()

	return model.PoolInfo{
		Address:      address,
		AmmConfig:    state.AmmConfig,
		TokenMint0:   state.TokenMint0,
		TokenMint1:   state.TokenMint1,
		TokenSymbol0: token.Symbol(state.TokenMint0),
		TokenSymbol1: token.Symbol(state.TokenMint1),
		TokenVault0:  state.TokenVault0,
		TokenVault1:  state.TokenVault1,
		Balance0:     balance0,
		Balance1:     balance1,
		TickSpacing:  state.TickSpacing,
		CurrentTick:  state.TickCurrent,
		SqrtPriceX64: state.SqrtPriceX64,
		Liquidity:    state.Liquidity,
		IsV3:         true,
	}
}
