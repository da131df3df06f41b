package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pancakescope/internal/model"
)

//go:embed schema.sql
var schema string

// Store mirrors pass results into Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the mirror tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PutPools upserts every pool and records the run.
func (s *Store) PutPools(ctx context.Context, pass model.Pass, pools []model.PoolInfo) error {
	batch := &pgx.Batch{}
	for _, p := range pools {
		batch.Queue(upsertPoolSQL, poolArgs(pass, p)...)
	}
	batch.Queue(`INSERT INTO pancake_scan_runs (pass, total_pools, created_at) VALUES ($1, $2, now())`,
		string(pass), len(pools))

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("mirror %s pools: %w", pass, err)
		}
	}
	return nil
}

const upsertPoolSQL = `
	INSERT INTO pancake_pools (
		pool_address, amm_config, token_mint0, token_mint1, token_symbol0, token_symbol1,
		token_vault0, token_vault1, balance0, balance1, tick_spacing, current_tick,
		price0_usd, price1_usd, tvl_usd, has_volume, last_trade_time, last_pass, created_at, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,now(),now())
	ON CONFLICT (pool_address)
	DO UPDATE SET
		balance0 = EXCLUDED.balance0,
		balance1 = EXCLUDED.balance1,
		current_tick = EXCLUDED.current_tick,
		token_symbol0 = EXCLUDED.token_symbol0,
		token_symbol1 = EXCLUDED.token_symbol1,
		price0_usd = COALESCE(EXCLUDED.price0_usd, pancake_pools.price0_usd),
		price1_usd = COALESCE(EXCLUDED.price1_usd, pancake_pools.price1_usd),
		tvl_usd = COALESCE(EXCLUDED.tvl_usd, pancake_pools.tvl_usd),
		has_volume = COALESCE(EXCLUDED.has_volume, pancake_pools.has_volume),
		last_trade_time = COALESCE(EXCLUDED.last_trade_time, pancake_pools.last_trade_time),
		last_pass = EXCLUDED.last_pass,
		updated_at = now()
`

func poolArgs(pass model.Pass, p model.PoolInfo) []any {
	return []any{
		p.Address,
		p.AmmConfig,
		p.TokenMint0,
		p.TokenMint1,
		p.TokenSymbol0,
		p.TokenSymbol1,
		p.TokenVault0,
		p.TokenVault1,
		p.Balance0,
		p.Balance1,
		int32(p.TickSpacing),
		p.CurrentTick,
		p.Price0USD,
		p.Price1USD,
		p.TVL,
		p.HasVolume,
		p.LastTradeTime,
		string(pass),
	}
}
