package config

import (
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/spf13/cobra"
)

// ModuleI defines an interface of Module
type ModuleI interface {
	// Name returns the name of the module. It is matched against `relayer.type` in the config file.
	Name() string

	// RelayerConfig returns a pointer to the default configuration of the module.
	// The `relayer.params` section is decoded into it.
	RelayerConfig() core.RelayerConfig

	// GetCmd returns the command
	GetCmd(ctx *Context) *cobra.Command
}
