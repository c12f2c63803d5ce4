package witness

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/peggy-bridge/orchestrator/log"
	"github.com/peggy-bridge/orchestrator/otelcore/semconv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/peggy-bridge/orchestrator/witness")

// Scanner polls the logs of one contract event and forwards every decoded occurrence.
//
// Its cursor is the highest block in which an event was forwarded or an undecodable log was
// skipped, plus one. A scan that finds nothing leaves the cursor where it is, so the next scan
// starts from the same block again.
type Scanner struct {
	chain     core.EthereumChain
	contract  common.Address
	decoder   *Decoder
	forwarder Forwarder
	interval  time.Duration

	cursor uint64
}

func NewScanner(chain core.EthereumChain, contract common.Address, decoder *Decoder, forwarder Forwarder, start uint64, interval time.Duration) *Scanner {
	return &Scanner{
		chain:     chain,
		contract:  contract,
		decoder:   decoder,
		forwarder: forwarder,
		interval:  interval,
		cursor:    start,
	}
}

// Cursor returns the first block of the next scan
func (s *Scanner) Cursor() uint64 {
	return s.cursor
}

// Scan fetches the logs from the cursor up to the chain head and forwards them in order.
// It returns the number of forwarded events.
// Undecodable logs are logged and skipped, and the cursor moves past them. A forwarding failure stops the scan and leaves the
// cursor at the block of the failed event.
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	logger := log.GetLogger().WithModule("witness").WithChain(s.chain.ChainID())

	latest, err := s.chain.LatestHeight(ctx)
	if err != nil {
		return 0, err
	}
	if latest < s.cursor {
		return 0, nil
	}

	ctx, span := tracer.Start(ctx, "Scanner.Scan",
		core.WithChainAttributes(s.chain.ChainID()),
		trace.WithAttributes(
			semconv.ContractKey.String(s.contract.Hex()),
			semconv.EventNameKey.String(s.decoder.EventName()),
			semconv.FromBlockKey.Int64(int64(s.cursor)),
			semconv.ToBlockKey.Int64(int64(latest)),
		),
	)
	defer span.End()

	logs, err := s.chain.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(s.cursor),
		ToBlock:   new(big.Int).SetUint64(latest),
		Addresses: []common.Address{s.contract},
		Topics:    [][]common.Hash{{s.decoder.Topic()}},
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	var forwarded int
	for _, l := range logs {
		if l.Removed {
			continue
		}
		logger.DebugContext(ctx, "got log", "block", l.BlockNumber, "tx_hash", l.TxHash.Hex())

		ev, err := s.decoder.Decode(l)
		if err != nil {
			logger.ErrorContext(ctx, "failed to decode log", err, "block", l.BlockNumber)
			s.advance(l.BlockNumber)
			continue
		}
		if err := s.forwarder.Forward(ctx, ev); err != nil {
			err = fmt.Errorf("failed to forward %s event at block %d: %w", ev.Name, ev.BlockNumber, err)
			span.SetStatus(codes.Error, err.Error())
			return forwarded, err
		}
		forwarded++
		s.advance(l.BlockNumber)
	}
	return forwarded, nil
}

// advance moves the cursor just past `block` unless it is already further
func (s *Scanner) advance(block uint64) {
	if block == math.MaxUint64 {
		s.cursor = block
		return
	}
	if next := block + 1; next > s.cursor {
		s.cursor = next
	}
}

// Run scans every interval until ctx is cancelled
func (s *Scanner) Run(ctx context.Context) error {
	logger := log.GetLogger().WithModule("witness").WithChain(s.chain.ChainID())
	logger.InfoContext(ctx, "witness started", "contract", s.contract.Hex(), "event", s.decoder.EventName(), "cursor", s.cursor)

	for {
		n, err := s.Scan(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "scan failed", err, "cursor", s.cursor)
		} else if n > 0 {
			logger.InfoContext(ctx, "forwarded events", "count", n, "cursor", s.cursor)
		}

		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "witness stopped", "cursor", s.cursor)
			return nil
		case <-time.After(s.interval):
		}
	}
}
