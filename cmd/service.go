package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/peggy-bridge/orchestrator/config"
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/peggy-bridge/orchestrator/log"
	"github.com/peggy-bridge/orchestrator/otelcore"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

func serviceCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Relay Service Commands",
		Long:  "Commands to manage the relay service",
		RunE:  noCommand,
	}
	cmd.AddCommand(
		startCmd(ctx),
	)
	return cmd
}

func startCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Runs the relay loop until SIGINT or SIGTERM is received",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.Config.Validate(); err != nil {
				return err
			}
			return runUntilSignal(cmd.Context(), func(sctx context.Context) error {
				return startService(sctx, ctx)
			})
		},
	}
	return cmd
}

func startService(ctx context.Context, cctx *config.Context) error {
	c := cctx.Config
	relayers, err := cctx.BuildRelayers()
	if err != nil {
		return err
	}
	keys, err := loadKeys(c)
	if err != nil {
		return err
	}
	fee, err := c.Bridge.FeePolicy()
	if err != nil {
		return err
	}

	eth, err := c.Ethereum.Build(ctx)
	if err != nil {
		return err
	}
	defer eth.Close()
	cosmos, err := c.Cosmos.Build()
	if err != nil {
		return err
	}

	store, err := c.Checkpoint.Open(ctx, cctx.HomePath)
	if err != nil {
		return err
	}
	var cp core.Checkpoint
	if store != nil {
		defer store.Close()
		cp = store
	}

	tracer := otel.Tracer("github.com/peggy-bridge/orchestrator/otelcore")
	return core.StartService(ctx, core.RelayServiceConfig{
		Keys:            keys,
		Ethereum:        otelcore.NewEthereumChain(eth, tracer),
		Cosmos:          otelcore.NewCosmosChain(cosmos, tracer),
		ContractAddress: c.Bridge.Contract(),
		Relayers:        otelcore.NewRelayers(relayers, tracer),
		Fee:             fee,
		Interval:        c.Bridge.LoopInterval,
		RelayTimeout:    c.Bridge.RelayTimeout,
		Checkpoint:      cp,
	})
}

// runUntilSignal runs fn and cancels its context on SIGINT or SIGTERM
func runUntilSignal(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	// Ensure clean termination upon SIGINT, SIGTERM
	eg.Go(func() error {
		notify := make(chan os.Signal, 1)
		signal.Notify(notify, unix.SIGINT, unix.SIGTERM)
		defer signal.Stop(notify)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-notify:
			log.GetLogger().WithModule("cmd").Info("received signal", "signal", sig.String())
			cancel()
		}
		return nil
	})
	eg.Go(func() error {
		defer cancel()
		return fn(ctx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("service stopped: %w", err)
	}
	return nil
}
