package core

import (
	"context"

	"github.com/peggy-bridge/orchestrator/internal/telemetry"
	"github.com/peggy-bridge/orchestrator/log"
	"golang.org/x/sync/errgroup"
)

// HeightProbe reads the latest height of both chains for diagnostics only.
// Probe has no result: a failed read is logged at debug level and dropped.
type HeightProbe struct {
	ethereum Chain
	cosmos   Chain
}

func NewHeightProbe(ethereum, cosmos Chain) *HeightProbe {
	return &HeightProbe{ethereum: ethereum, cosmos: cosmos}
}

// Probe queries both chains concurrently and logs whatever heights were obtained
func (p *HeightProbe) Probe(ctx context.Context) {
	logger := log.GetLogger().WithModule("core.probe")

	var (
		eg                      errgroup.Group
		ethHeight, cosmosHeight uint64
		ethErr, cosmosErr       error
	)
	eg.Go(func() error {
		ethHeight, ethErr = p.ethereum.LatestHeight(ctx)
		return nil
	})
	eg.Go(func() error {
		cosmosHeight, cosmosErr = p.cosmos.LatestHeight(ctx)
		return nil
	})
	_ = eg.Wait()

	if ethErr != nil {
		logger.DebugContext(ctx, "failed to query latest height", "chain_id", p.ethereum.ChainID(), "error", ethErr)
	} else {
		telemetry.RecordChainHeight(p.ethereum.ChainID(), ethHeight)
	}
	if cosmosErr != nil {
		logger.DebugContext(ctx, "failed to query latest height", "chain_id", p.cosmos.ChainID(), "error", cosmosErr)
	} else {
		telemetry.RecordChainHeight(p.cosmos.ChainID(), cosmosHeight)
	}

	if ethErr == nil && cosmosErr == nil {
		logger.InfoContext(ctx, "latest heights", "ethereum_height", ethHeight, "cosmos_height", cosmosHeight)
	}
}
