package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peggy-bridge/orchestrator/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

func configCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "manage configuration file",
		RunE:    noCommand,
	}

	cmd.AddCommand(
		configShowCmd(ctx),
		configInitCmd(ctx),
		configValidateCmd(ctx),
	)

	return cmd
}

// Command for inititalizing a default config at the --home location
func configInitCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i"},
		Short:   "Creates a default home directory at path defined by --home",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := ctx.Config.ConfigPath
			// If the config doesn't exist...
			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				// And write the default config to that location...
				return config.DefaultConfig(cfgPath).WriteYAML()
			}

			// Otherwise, the config file exists, and an error is returned...
			return fmt.Errorf("config already exists: %s", cfgPath)
		},
	}
	return cmd
}

// Command for printing current configuration
func configShowCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"s", "list", "l"},
		Short:   "Prints current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := ctx.Config.ConfigPath
			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				return fmt.Errorf("config does not exist: %s", cfgPath)
			}

			var (
				out []byte
				err error
			)
			if viper.GetBool(flagYAML) {
				out, err = yaml.Marshal(ctx.Config)
			} else {
				out, err = json.MarshalIndent(ctx.Config, "", "  ")
			}
			if err != nil {
				return err
			}

			fmt.Println(string(out))
			return nil
		},
	}

	return yamlFlag(cmd)
}

func configValidateCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Checks the current configuration and the relayer module parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.Config.Validate(); err != nil {
				return err
			}
			if _, err := ctx.RelayerConfig(); err != nil {
				return err
			}
			fmt.Printf("%s is valid\n", ctx.Config.ConfigPath)
			return nil
		},
	}
	return cmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig(ctx *config.Context) error {
	ctx.HomePath = homePath
	cfgPath := filepath.Join(homePath, configPath)
	if _, err := os.Stat(cfgPath); err == nil {
		c, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		ctx.Config = c
	} else {
		defConfig := config.DefaultConfig(cfgPath)
		ctx.Config = &defConfig
	}
	return nil
}
