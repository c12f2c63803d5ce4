package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	flagJSON            = "json"
	flagYAML            = "yaml"
	flagEnableTelemetry = "enable-telemetry"
	flagABI             = "abi"
	flagEvent           = "event"
	flagFromBlock       = "from-block"
	flagInterval        = "interval"
)

func yamlFlag(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().BoolP(flagYAML, "y", false, "output using yaml")
	mustBindPFlag(flagYAML, cmd.Flags().Lookup(flagYAML))
	return cmd
}

func jsonFlag(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().BoolP(flagJSON, "j", false, "returns the response in json format")
	mustBindPFlag(flagJSON, cmd.Flags().Lookup(flagJSON))
	return cmd
}

func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
