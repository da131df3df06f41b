package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pancakescope/internal/model"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pancakescope [max]",
		Short:        "Scan PancakeSwap V3 pools on Solana",
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runRoot,
	}

	flags := root.PersistentFlags()
	flags.StringP("rpc", "r", "", "Solana RPC URL (saved for later runs)")
	flags.Bool("cached", false, "use the saved pool snapshot instead of scanning the chain")
	flags.Bool("force", false, "refresh the full pool snapshot while running a filter")
	flags.String("state-dir", ".", "directory for snapshots and the saved RPC config")
	flags.String("config", "", "config file path")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("pg-dsn", "", "Postgres DSN for mirroring results (optional)")

	root.AddCommand(
		newPassCmd("pools [max]", "Fetch and save every pool", model.PassAll),
		newPassCmd("inactive [max]", "Pools with an empty vault", model.PassInactive),
		newPassCmd("no-volume [max]", "Pools without a trade in the last 30 days", model.PassNoVolume),
		newNewCmd(),
		newTVLCmd(),
		newPoolCmd(),
		newConfigCmd(),
	)
	return root
}

func newPassCmd(use, short string, pass model.Pass) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, args, pass)
		},
	}
}

func newNewCmd() *cobra.Command {
	cmd := newPassCmd("new [max]", "Pools missing from the previous snapshot", model.PassNew)
	cmd.Flags().String("path", "", "previous snapshot to compare against (default: the saved pool snapshot)")
	return cmd
}

func newTVLCmd() *cobra.Command {
	cmd := newPassCmd("tvl [max]", "Pools with TVL inside [--over, --under]", model.PassTVL)
	cmd.Flags().Float64("over", 0, "minimum TVL in USD (inclusive)")
	cmd.Flags().Float64("under", 0, "maximum TVL in USD (inclusive)")
	cmd.Flags().String("price-url", "", "price API base URL")
	return cmd
}

func newPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool <address>",
		Short: "Show one pool with its tick array addresses",
		Args:  cobra.ExactArgs(1),
		RunE:  runPool,
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}
}

func newLogger(level, format string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if format != "json" {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return cfg.Build()
}
