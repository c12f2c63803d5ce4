package debug

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/peggy-bridge/orchestrator/log"
)

// EnvFail names the relay kinds that fail on purpose, e.g. `DEBUG_RELAYER_FAIL=valsets,events`
const EnvFail = "DEBUG_RELAYER_FAIL"

// Relayer implements every relay kind without submitting anything.
// It logs what would be relayed and scans the bridge contract logs so that the event cursor moves like in production.
type Relayer struct {
	config RelayerConfig
}

var (
	_ core.ValsetRelayer = (*Relayer)(nil)
	_ core.BatchRelayer  = (*Relayer)(nil)
	_ core.EventRelayer  = (*Relayer)(nil)
)

func NewRelayer(config RelayerConfig) *Relayer {
	return &Relayer{config: config}
}

func debugFakeFailure(kind core.RelayKind) error {
	val, ok := os.LookupEnv(EnvFail)
	if !ok {
		return nil
	}
	for _, s := range strings.Split(val, ",") {
		if core.RelayKind(strings.TrimSpace(s)) == kind {
			return fmt.Errorf("fake %s failure: %s=%q", kind, EnvFail, val)
		}
	}
	return nil
}

func (r *Relayer) RelayValsets(ctx context.Context, p core.RelayParams) error {
	logger := GetRelayerLogger(core.RelayKindValsets)
	if err := debugFakeFailure(core.RelayKindValsets); err != nil {
		return err
	}
	logger.InfoContext(ctx, "relay valsets", "contract", p.ContractAddress.Hex(), "fee", p.Fee.String())
	return nil
}

func (r *Relayer) RelayBatches(ctx context.Context, p core.RelayParams) error {
	logger := GetRelayerLogger(core.RelayKindBatches)
	if err := debugFakeFailure(core.RelayKindBatches); err != nil {
		return err
	}
	logger.InfoContext(ctx, "relay batches", "contract", p.ContractAddress.Hex(), "fee", p.Fee.String())
	return nil
}

// CheckForEvents scans at most BlocksPerQuery blocks starting at lastCheckedBlock and returns the block after the window.
// If the chain has not reached lastCheckedBlock yet, lastCheckedBlock is returned unchanged.
func (r *Relayer) CheckForEvents(ctx context.Context, p core.RelayParams, lastCheckedBlock uint64) (uint64, error) {
	logger := GetRelayerLogger(core.RelayKindEvents)
	if err := debugFakeFailure(core.RelayKindEvents); err != nil {
		return 0, err
	}

	latest, err := p.Ethereum.LatestHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest height: %w", err)
	}
	if latest < lastCheckedBlock {
		logger.DebugContext(ctx, "no new blocks", "from", lastCheckedBlock, "latest", latest)
		return lastCheckedBlock, nil
	}

	to := scanWindowEnd(lastCheckedBlock, latest, r.config.BlocksPerQuery)
	logs, err := p.Ethereum.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(lastCheckedBlock),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{p.ContractAddress},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to filter logs: from=%d to=%d: %w", lastCheckedBlock, to, err)
	}
	for _, l := range logs {
		if l.Removed {
			continue
		}
		var topic string
		if len(l.Topics) > 0 {
			topic = l.Topics[0].Hex()
		}
		logger.InfoContext(ctx, "observed bridge event",
			"block_number", l.BlockNumber,
			"tx_hash", l.TxHash.Hex(),
			"log_index", l.Index,
			"topic", topic,
		)
	}
	logger.DebugContext(ctx, "scanned blocks", "from", lastCheckedBlock, "to", to, "logs", len(logs))
	if to == math.MaxUint64 {
		return to, nil
	}
	return to + 1, nil
}

// scanWindowEnd returns the last block of the window starting at from, capped by latest
func scanWindowEnd(from, latest, blocksPerQuery uint64) uint64 {
	to := from + blocksPerQuery - 1
	if to < from || to > latest {
		return latest
	}
	return to
}

func GetRelayerLogger(kind core.RelayKind) *log.RelayLogger {
	return log.GetLogger().WithModule("relayers.debug").WithRelay(string(kind))
}
