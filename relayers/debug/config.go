package debug

import (
	"fmt"

	"github.com/peggy-bridge/orchestrator/core"
)

const DefaultBlocksPerQuery uint64 = 1000

// RelayerConfig is the `params` section of the debug relayer
type RelayerConfig struct {
	BlocksPerQuery uint64 `mapstructure:"blocks_per_query" json:"blocks_per_query" yaml:"blocks_per_query"`
}

var _ core.RelayerConfig = (*RelayerConfig)(nil)

func DefaultRelayerConfig() *RelayerConfig {
	return &RelayerConfig{BlocksPerQuery: DefaultBlocksPerQuery}
}

func (c RelayerConfig) Validate() error {
	if c.BlocksPerQuery == 0 {
		return fmt.Errorf("blocks_per_query must be positive")
	}
	return nil
}

func (c RelayerConfig) Build() (*core.Relayers, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	r := NewRelayer(c)
	return &core.Relayers{Valsets: r, Batches: r, Events: r}, nil
}
