package module

import (
	"github.com/peggy-bridge/orchestrator/config"
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/peggy-bridge/orchestrator/relayers/mock"
	"github.com/spf13/cobra"
)

type Module struct{}

var _ config.ModuleI = (*Module)(nil)

// Name returns the name of the module
func (Module) Name() string {
	return "mock"
}

// RelayerConfig returns the default configuration that the `relayer.params` section is decoded into
func (Module) RelayerConfig() core.RelayerConfig {
	return mock.DefaultRelayerConfig()
}

// GetCmd returns the command
func (Module) GetCmd(ctx *config.Context) *cobra.Command {
	return nil
}
