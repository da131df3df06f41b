package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pancakescope/internal/chain"
	"pancakescope/internal/config"
	"pancakescope/internal/price"
	"pancakescope/internal/scan"
	"pancakescope/internal/storage"
	"pancakescope/internal/storage/postgres"
)

// app holds what every command needs once flags are resolved.
type app struct {
	cfg      config.Config
	rpcURL   string
	logger   *zap.Logger
	rpcStore *config.RPCStore
	chain    *chain.Client
	mirror   *postgres.Store
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	rpcStore := config.NewRPCStore(cfg.StateDir)
	rpcURL, err := config.ResolveRPC(cfg, rpcStore)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &app{cfg: cfg, rpcURL: rpcURL, logger: logger, rpcStore: rpcStore}, nil
}

func (a *app) Close() {
	if a.chain != nil {
		a.chain.Close()
	}
	if a.mirror != nil {
		a.mirror.Close()
	}
	_ = a.logger.Sync()
}

func (a *app) newScanner(ctx context.Context, maxPools int) (*scan.Scanner, error) {
	a.chain = chain.NewClient(a.rpcURL)

	var mirror storage.Storage
	if a.cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, a.cfg.PGDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.mirror = store
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		mirror = store
	}

	prices := price.NewClient(price.Config{BaseURL: a.cfg.PriceURL}, a.logger)

	scanCfg := scan.DefaultConfig()
	scanCfg.MaxPools = maxPools
	scanCfg.UseCache = a.cfg.Cached
	scanCfg.Force = a.cfg.Force
	scanCfg.PreviousPath = a.cfg.Path
	scanCfg.BatchDelay = a.cfg.BatchDelay
	scanCfg.VolumeDelay = a.cfg.VolumeDelay
	scanCfg.VolumeTimeout = a.cfg.VolumeTimeout
	scanCfg.MaxRetries = a.cfg.MaxRetries
	scanCfg.RetryDelay = a.cfg.RetryDelay

	a.logger.Info("scanner ready",
		zap.String("rpc", a.rpcURL),
		zap.Int("max_pools", maxPools),
		zap.Bool("cached", a.cfg.Cached),
		zap.Bool("force", a.cfg.Force),
		zap.String("state_dir", a.cfg.StateDir),
		zap.String("pg_dsn", redactDSN(a.cfg.PGDSN)),
	)

	return scan.NewScanner(scanCfg, a.chain, prices, storage.NewJSONStore(a.cfg.StateDir), mirror, a.logger), nil
}

// parseMax reads the optional [max] argument; absent means unlimited.
func parseMax(args []string) (int, error) {
	if len(args) == 0 {
		return -1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid max pools %q: want a positive number or a subcommand", args[0])
	}
	return n, nil
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
