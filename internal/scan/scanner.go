package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"pancakescope/internal/chain"
	"pancakescope/internal/model"
	"pancakescope/internal/pool"
	"pancakescope/internal/storage"
	"pancakescope/internal/token"
)

var (
	// ErrNoTVLBounds is returned by FetchTVLPools when neither bound is given.
	ErrNoTVLBounds = errors.New("tvl filter needs --over and/or --under")
	// ErrNotPool is returned when an address does not hold a pool account.
	ErrNotPool = errors.New("not a pancakeswap v3 pool account")
)

// Chain is the subset of the RPC client the scanner needs.
type Chain interface {
	ProgramAccounts(ctx context.Context, program solana.PublicKey) ([]chain.Account, error)
	AccountInfo(ctx context.Context, address solana.PublicKey) (*chain.Account, error)
	Signatures(ctx context.Context, address solana.PublicKey, limit int) ([]chain.Signature, error)
}

// PriceSource returns USD prices keyed by mint. Mints without a price are omitted.
type PriceSource interface {
	Prices(ctx context.Context, mints []string) (map[string]float64, error)
}

// Config holds runtime settings for a scan pass.
type Config struct {
	ProgramID solana.PublicKey
	// MaxPools caps the number of decoded pools; <= 0 means unlimited.
	MaxPools int
	UseCache bool
	Force    bool
	// PreviousPath overrides the baseline snapshot for the new-pool pass.
	PreviousPath string

	BatchSize      int
	BatchDelay     time.Duration
	VolumeDelay    time.Duration
	VolumeTimeout  time.Duration
	VolumeWindow   time.Duration
	SignatureLimit int
	MaxRetries     int
	RetryDelay     time.Duration
}

func DefaultConfig() Config {
	return Config{
		ProgramID:      pool.ProgramID,
		BatchSize:      10,
		BatchDelay:     100 * time.Millisecond,
		VolumeDelay:    time.Second,
		VolumeTimeout:  10 * time.Second,
		VolumeWindow:   30 * 24 * time.Hour,
		SignatureLimit: 100,
		MaxRetries:     3,
		RetryDelay:     500 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ProgramID.IsZero() {
		c.ProgramID = def.ProgramID
	}
	if c.BatchSize <= 0 {
		c.BatchSize = def.BatchSize
	}
	if c.VolumeTimeout <= 0 {
		c.VolumeTimeout = def.VolumeTimeout
	}
	if c.VolumeWindow <= 0 {
		c.VolumeWindow = def.VolumeWindow
	}
	if c.SignatureLimit <= 0 {
		c.SignatureLimit = def.SignatureLimit
	}
	return c
}

// Scanner runs classification passes over the program's pool accounts.
type Scanner struct {
	cfg      Config
	chain    Chain
	prices   PriceSource
	resolver *token.Resolver
	store    *storage.JSONStore
	sinks    storage.Multi
	logger   *zap.Logger

	sleep func(context.Context, time.Duration) error
	now   func() time.Time
}

// NewScanner builds a Scanner. prices, store and mirror may be nil.
func NewScanner(cfg Config, chainClient Chain, prices PriceSource, store *storage.JSONStore, mirror storage.Storage, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	var sinks storage.Multi
	if store != nil {
		sinks = append(sinks, store)
	}
	if mirror != nil {
		sinks = append(sinks, mirror)
	}
	return &Scanner{
		cfg:      cfg.withDefaults(),
		chain:    chainClient,
		prices:   prices,
		resolver: token.NewResolver(chainClient, logger),
		store:    store,
		sinks:    sinks,
		logger:   logger,
		sleep:    sleepContext,
		now:      time.Now,
	}
}

// save writes a pass result to every sink: the JSON file first, then the mirror.
func (s *Scanner) save(ctx context.Context, pass model.Pass, pools []model.PoolInfo) error {
	if err := s.sinks.PutPools(ctx, pass, pools); err != nil {
		return fmt.Errorf("save %s pools: %w", pass, err)
	}
	if s.store != nil {
		s.logger.Info("pools saved", zap.String("pass", string(pass)), zap.Int("pools", len(pools)), zap.String("path", s.store.Path(pass)))
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
