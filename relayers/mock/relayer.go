package mock

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/peggy-bridge/orchestrator/core"
	"github.com/peggy-bridge/orchestrator/log"
)

// Relayer is a deterministic stand-in for the real relayers, useful to run the loop without chains doing any work.
// Every event relay moves the cursor by EventStep blocks.
type Relayer struct {
	config RelayerConfig

	valsets atomic.Uint64
	batches atomic.Uint64
	events  atomic.Uint64
}

var (
	_ core.ValsetRelayer = (*Relayer)(nil)
	_ core.BatchRelayer  = (*Relayer)(nil)
	_ core.EventRelayer  = (*Relayer)(nil)
)

func NewRelayer(config RelayerConfig) *Relayer {
	return &Relayer{config: config}
}

func (r *Relayer) RelayValsets(ctx context.Context, _ core.RelayParams) error {
	return r.call(ctx, core.RelayKindValsets, &r.valsets)
}

func (r *Relayer) RelayBatches(ctx context.Context, _ core.RelayParams) error {
	return r.call(ctx, core.RelayKindBatches, &r.batches)
}

func (r *Relayer) CheckForEvents(ctx context.Context, _ core.RelayParams, lastCheckedBlock uint64) (uint64, error) {
	if err := r.call(ctx, core.RelayKindEvents, &r.events); err != nil {
		return 0, err
	}
	return nextBlock(lastCheckedBlock, r.config.EventStep), nil
}

// nextBlock adds step to block, saturating at the largest height
func nextBlock(block, step uint64) uint64 {
	if next := block + step; next >= block {
		return next
	}
	return math.MaxUint64
}

// Calls returns the number of invocations of the given relay kind so far
func (r *Relayer) Calls(kind core.RelayKind) uint64 {
	switch kind {
	case core.RelayKindValsets:
		return r.valsets.Load()
	case core.RelayKindBatches:
		return r.batches.Load()
	case core.RelayKindEvents:
		return r.events.Load()
	default:
		return 0
	}
}

func (r *Relayer) call(ctx context.Context, kind core.RelayKind, counter *atomic.Uint64) error {
	n := counter.Add(1)
	if r.config.Latency > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.config.Latency):
		}
	}
	if r.config.FailEvery > 0 && n%r.config.FailEvery == 0 {
		return fmt.Errorf("mock %s failure: call=%d", kind, n)
	}
	log.GetLogger().WithModule("relayers.mock").WithRelay(string(kind)).DebugContext(ctx, "relay call", "call", n)
	return nil
}
