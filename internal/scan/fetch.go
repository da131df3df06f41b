package scan

import (
	"context"

	"go.uber.org/zap"

	"pancakescope/internal/chain"
	"pancakescope/internal/model"
	"pancakescope/internal/pool"
)

// FetchPools returns every decoded pool and writes the full snapshot when it came from chain.
func (s *Scanner) FetchPools(ctx context.Context) ([]model.PoolInfo, error) {
	pools, fromChain := s.loadPools(ctx, s.cfg.UseCache)
	if !fromChain {
		return pools, nil
	}
	return pools, s.save(ctx, model.PassAll, pools)
}

// loadPools returns the working set for a pass, from the cache file when allowed.
// fromChain is true only when the working set is a fresh, successful chain listing.
func (s *Scanner) loadPools(ctx context.Context, useCache bool) (pools []model.PoolInfo, fromChain bool) {
	if useCache {
		if pools, ok := s.cachedPools(); ok {
			return pools, false
		}
	}
	return s.scanChain(ctx)
}

func (s *Scanner) cachedPools() ([]model.PoolInfo, bool) {
	if s.store == nil {
		return nil, false
	}
	snapshot, ok, err := s.store.Load(model.PassAll)
	if err != nil {
		s.logger.Warn("cached pools unreadable, fetching from chain", zap.Error(err))
		return nil, false
	}
	if !ok {
		s.logger.Warn("no cached pools, fetching from chain", zap.String("path", s.store.Path(model.PassAll)))
		return nil, false
	}

	pools := snapshot.Pools
	if s.cfg.MaxPools > 0 && len(pools) > s.cfg.MaxPools {
		pools = pools[:s.cfg.MaxPools]
	}
	out := make([]model.PoolInfo, len(pools))
	copy(out, pools)
	s.logger.Info("using cached pools", zap.Int("pools", len(out)), zap.String("saved_at", snapshot.Timestamp))
	return out, true
}

// refreshFull rewrites the full snapshot after a derived pass fetched from chain with --force.
func (s *Scanner) refreshFull(ctx context.Context, pools []model.PoolInfo, fromChain bool) {
	if !fromChain || !s.cfg.Force {
		return
	}
	if err := s.save(ctx, model.PassAll, pools); err != nil {
		s.logger.Warn("refresh full snapshot failed", zap.Error(err))
	}
}

// scanChain lists the program's accounts and decodes them in listing order.
// A listing failure yields an empty result and listed == false.
func (s *Scanner) scanChain(ctx context.Context) (pools []model.PoolInfo, listed bool) {
	pools = make([]model.PoolInfo, 0)

	var accounts []chain.Account
	err := s.retry(ctx, "getProgramAccounts", func(ctx context.Context) error {
		var err error
		accounts, err = s.chain.ProgramAccounts(ctx, s.cfg.ProgramID)
		return err
	})
	if err != nil {
		s.logger.Error("fetch pools failed", zap.Error(err))
		return pools, false
	}
	s.logger.Info("program accounts listed", zap.Int("accounts", len(accounts)))

	for i, account := range accounts {
		if ctx.Err() != nil {
			s.logger.Warn("scan interrupted", zap.Int("processed", i), zap.Int("pools", len(pools)))
			break
		}

		if state, ok := pool.Parse(account.Data); ok {
			pools = append(pools, s.enrich(ctx, account.Address.String(), state))
			if s.cfg.MaxPools > 0 && len(pools) >= s.cfg.MaxPools {
				break
			}
		}

		if (i+1)%s.cfg.BatchSize == 0 {
			s.logger.Info("scan progress", zap.Int("processed", i+1), zap.Int("total", len(accounts)), zap.Int("pools", len(pools)))
			if err := s.sleep(ctx, s.cfg.BatchDelay); err != nil {
				break
			}
		}
	}

	s.logger.Info("pools decoded", zap.Int("pools", len(pools)), zap.Int("accounts", len(accounts)))
	return pools, true
}
