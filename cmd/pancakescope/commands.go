package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pancakescope/internal/model"
	"pancakescope/internal/storage"
)

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && cmd.Flags().Changed("rpc") {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "RPC URL saved to %s: %s\n", a.rpcStore.Path(), a.rpcURL)
		fmt.Fprintln(cmd.OutOrStdout(), "You can now run commands without --rpc")
		return nil
	}
	return runPass(cmd, args, model.PassAll)
}

func runPass(cmd *cobra.Command, args []string, pass model.Pass) error {
	maxPools, err := parseMax(args)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanner, err := a.newScanner(ctx, maxPools)
	if err != nil {
		return err
	}

	var pools []model.PoolInfo
	switch pass {
	case model.PassInactive:
		pools, err = scanner.FetchInactivePools(ctx)
	case model.PassNoVolume:
		pools, err = scanner.FetchNoVolumePools(ctx)
	case model.PassNew:
		pools, err = scanner.FetchNewPools(ctx)
	case model.PassTVL:
		pools, err = scanner.FetchTVLPools(ctx, a.cfg.Over, a.cfg.Under)
	default:
		pools, err = scanner.FetchPools(ctx)
	}
	if err != nil {
		return err
	}

	label := string(pass) + " "
	if pass == model.PassAll {
		label = ""
	}
	out := storage.NewJSONStore(a.cfg.StateDir).Path(pass)
	fmt.Fprintf(cmd.OutOrStdout(), "Found %d %spools (%s)\n", len(pools), label, out)
	return nil
}

func runPool(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanner, err := a.newScanner(ctx, -1)
	if err != nil {
		return err
	}
	detail, err := scanner.PoolDetail(ctx, args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(detail)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rpc:            %s\n", a.rpcURL)
	fmt.Fprintf(out, "saved rpc file: %s\n", a.rpcStore.Path())
	fmt.Fprintf(out, "state dir:      %s\n", a.cfg.StateDir)
	fmt.Fprintf(out, "price url:      %s\n", a.cfg.PriceURL)
	fmt.Fprintf(out, "batch delay:    %s\n", a.cfg.BatchDelay)
	fmt.Fprintf(out, "volume delay:   %s\n", a.cfg.VolumeDelay)
	fmt.Fprintf(out, "volume timeout: %s\n", a.cfg.VolumeTimeout)
	fmt.Fprintf(out, "pg dsn:         %s\n", redactDSN(a.cfg.PGDSN))
	return nil
}
