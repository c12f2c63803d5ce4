package mock

import (
	"fmt"
	"time"

	"github.com/peggy-bridge/orchestrator/core"
)

// RelayerConfig is the `params` section of the mock relayer.
// FailEvery=0 never fails; FailEvery=N fails every N-th call of each relay kind.
type RelayerConfig struct {
	FailEvery uint64        `mapstructure:"fail_every" json:"fail_every" yaml:"fail_every"`
	EventStep uint64        `mapstructure:"event_step" json:"event_step" yaml:"event_step"`
	Latency   time.Duration `mapstructure:"latency" json:"latency" yaml:"latency"`
}

var _ core.RelayerConfig = (*RelayerConfig)(nil)

func DefaultRelayerConfig() *RelayerConfig {
	return &RelayerConfig{EventStep: 10}
}

func (c RelayerConfig) Validate() error {
	if c.Latency < 0 {
		return fmt.Errorf("latency must not be negative: %v", c.Latency)
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
