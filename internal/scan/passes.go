package scan

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pancakescope/internal/chain"
	"pancakescope/internal/model"
	"pancakescope/internal/pool"
)

// FetchInactivePools returns pools with an empty vault.
func (s *Scanner) FetchInactivePools(ctx context.Context) ([]model.PoolInfo, error) {
	pools, fromChain := s.loadPools(ctx, s.cfg.UseCache)
	s.refreshFull(ctx, pools, fromChain)

	inactive := FilterInactive(pools)
	s.logger.Info("inactive pools", zap.Int("pools", len(inactive)), zap.Int("scanned", len(pools)))
	return inactive, s.save(ctx, model.PassInactive, inactive)
}

// FetchNoVolumePools returns pools without a transaction inside the volume window.
// Qualifying pools are appended to the output file as they are found; the final
// list is then written to every sink.
func (s *Scanner) FetchNoVolumePools(ctx context.Context) ([]model.PoolInfo, error) {
	pools, fromChain := s.loadPools(ctx, s.cfg.UseCache)
	s.refreshFull(ctx, pools, fromChain)

	if s.store != nil {
		if err := s.store.PutPools(ctx, model.PassNoVolume, nil); err != nil {
			return nil, err
		}
	}

	cutoff := s.now().Add(-s.cfg.VolumeWindow)
	idle := make([]model.PoolInfo, 0)
	for i, p := range pools {
		if ctx.Err() != nil {
			s.logger.Warn("volume check interrupted", zap.Int("checked", i), zap.Int("pools", len(idle)))
			break
		}

		signatures, err := s.signatures(ctx, p.Address)
		if err != nil {
			s.logger.Warn("volume check failed", zap.String("pool", p.Address), zap.Error(err))
		} else if !HasRecentActivity(signatures, cutoff) {
			hasVolume := false
			lastTrade := latestBlockTime(signatures)
			p.HasVolume = &hasVolume
			p.LastTradeTime = &lastTrade
			idle = append(idle, p)

			if s.store != nil {
				if _, err := s.store.AppendPool(model.PassNoVolume, p); err != nil {
					s.logger.Warn("append no-volume pool failed", zap.String("pool", p.Address), zap.Error(err))
				}
			}
		}

		if err := s.sleep(ctx, s.cfg.VolumeDelay); err != nil {
			break
		}
	}

	s.logger.Info("no-volume pools", zap.Int("pools", len(idle)), zap.Int("scanned", len(pools)))
	return idle, s.save(ctx, model.PassNoVolume, idle)
}

func (s *Scanner) signatures(ctx context.Context, address string) ([]chain.Signature, error) {
	key, err := chain.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.VolumeTimeout)
	defer cancel()
	return s.chain.Signatures(ctx, key, s.cfg.SignatureLimit)
}

// FetchNewPools returns pools absent from the previous full snapshot. It always reads from chain.
func (s *Scanner) FetchNewPools(ctx context.Context) ([]model.PoolInfo, error) {
	previous, hasBaseline := s.baseline()
	pools, listed := s.scanChain(ctx)

	if !hasBaseline {
		s.logger.Info("no previous snapshot, every pool is new")
	}
	fresh := FilterNew(pools, previous)

	if listed && (!hasBaseline || s.cfg.Force) {
		if err := s.save(ctx, model.PassAll, pools); err != nil {
			s.logger.Warn("save baseline failed", zap.Error(err))
		}
	}

	s.logger.Info("new pools", zap.Int("pools", len(fresh)), zap.Int("scanned", len(pools)), zap.Int("baseline", len(previous)))
	return fresh, s.save(ctx, model.PassNew, fresh)
}

func (s *Scanner) baseline() (map[string]struct{}, bool) {
	if s.store == nil {
		return nil, false
	}
	path := s.cfg.PreviousPath
	if path == "" {
		path = s.store.Path(model.PassAll)
	}
	snapshot, ok, err := s.store.LoadFile(path)
	if err != nil {
		s.logger.Warn("previous snapshot unreadable", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return snapshot.Addresses(), true
}

// FetchTVLPools prices every pool and keeps those with over <= tvl <= under.
func (s *Scanner) FetchTVLPools(ctx context.Context, over, under *float64) ([]model.PoolInfo, error) {
	if over == nil && under == nil {
		return nil, ErrNoTVLBounds
	}

	pools, fromChain := s.loadPools(ctx, s.cfg.UseCache)
	s.refreshFull(ctx, pools, fromChain)

	prices := map[string]float64{}
	mints := DistinctMints(pools)
	if len(mints) > 0 && s.prices != nil {
		fetched, err := s.prices.Prices(ctx, mints)
		if err != nil {
			s.logger.Warn("price lookup incomplete, missing prices count as 0", zap.Error(err))
		}
		if fetched != nil {
			prices = fetched
		}
		s.logger.Info("prices fetched", zap.Int("mints", len(mints)), zap.Int("priced", len(prices)))
	}

	matched := FilterTVL(ApplyTVL(pools, prices), over, under)
	s.logger.Info("tvl pools", zap.Int("pools", len(matched)), zap.Int("scanned", len(pools)))
	return matched, s.save(ctx, model.PassTVL, matched)
}

// PoolDetail decodes a single pool and derives its tick array addresses.
func (s *Scanner) PoolDetail(ctx context.Context, address string) (model.PoolDetail, error) {
	key, err := chain.ParseAddress(address)
	if err != nil {
		return model.PoolDetail{}, err
	}
	account, err := s.chain.AccountInfo(ctx, key)
	if err != nil {
		return model.PoolDetail{}, fmt.Errorf("fetch pool account: %w", err)
	}
	if account == nil {
		return model.PoolDetail{}, fmt.Errorf("%w: %s not found", ErrNotPool, key)
	}
	state, ok := pool.Parse(account.Data)
	if !ok {
		return model.PoolDetail{}, fmt.Errorf("%w: %s", ErrNotPool, key)
	}

	detail := model.PoolDetail{
		Pool:        s.enrich(ctx, key.String(), state),
		AccountSize: len(account.Data),
	}
	if arrays, ok := pool.DeriveTickArrays(s.cfg.ProgramID, key, state.TickCurrent, state.TickSpacing); ok {
		detail.TickArrays = &arrays
	}
	return detail, nil
}
