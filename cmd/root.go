package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/peggy-bridge/orchestrator/config"
	"github.com/peggy-bridge/orchestrator/internal/telemetry"
	"github.com/peggy-bridge/orchestrator/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName    = "peggo"
	configPath = "config/config.yaml"
)

var (
	homePath    string
	defaultHome = os.ExpandEnv("$HOME/.peggo")

	// Version is set at build time with -ldflags
	Version = "dev"
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute(modules ...config.ModuleI) error {
	// rootCmd represents the base command when called without any subcommands
	var rootCmd = &cobra.Command{
		Use:     appName,
		Short:   "Orchestrator that relays validator sets, batches and events between a Cosmos chain and an Ethereum bridge contract",
		Version: Version,
	}

	ctx := &config.Context{Modules: modules, Config: &config.Config{}}

	// Register top level flags --home and --enable-telemetry
	rootCmd.PersistentFlags().StringVar(&homePath, flags.FlagHome, defaultHome, "set home directory")
	rootCmd.PersistentFlags().Bool(flagEnableTelemetry, false, "enable the OpenTelemetry SDK configured by OTEL_* environment variables")
	mustBindPFlag(flags.FlagHome, rootCmd.PersistentFlags().Lookup(flags.FlagHome))
	mustBindPFlag(flagEnableTelemetry, rootCmd.PersistentFlags().Lookup(flagEnableTelemetry))

	var shutdownTelemetry func(context.Context) error

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		// reads `homeDir/config/config.yaml` into `ctx.Config` before each command
		if err := initConfig(ctx); err != nil {
			return err
		}
		enableTelemetry := viper.GetBool(flagEnableTelemetry)
		g := ctx.Config.Global
		if err := log.InitLogger(g.LogLevel, g.LogFormat, g.LogOutput, enableTelemetry); err != nil {
			return err
		}
		if enableTelemetry {
			var err error
			if shutdownTelemetry, err = telemetry.SetupOTelSDK(cmd.Context(), Version); err != nil {
				return fmt.Errorf("failed to set up the OpenTelemetry SDK: %w", err)
			}
		}
		if err := telemetry.InitializeMetrics(); err != nil {
			return fmt.Errorf("failed to initialize the metrics: %w", err)
		}
		return nil
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		if shutdownTelemetry == nil {
			return nil
		}
		return shutdownTelemetry(cmd.Context())
	}

	rootCmd.AddCommand(
		configCmd(ctx),
		keysCmd(ctx),
		flags.LineBreak,
		queryCmd(ctx),
		serviceCmd(ctx),
		witnessCmd(ctx),
		flags.LineBreak,
		modulesCmd(ctx),
	)

	for _, module := range modules {
		if cmd := module.GetCmd(ctx); cmd != nil {
			rootCmd.AddCommand(cmd)
		}
	}

	return rootCmd.Execute()
}

func noCommand(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

func init() {
	cobra.EnableCommandSorting = false
}
