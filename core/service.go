package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	retry "github.com/avast/retry-go"
	"github.com/ethereum/go-ethereum/common"
	"github.com/peggy-bridge/orchestrator/internal/telemetry"
	"github.com/peggy-bridge/orchestrator/log"
	"go.opentelemetry.io/otel/codes"
)

var (
	rtyAttNum = uint(5)
	rtyAtt    = retry.Attempts(rtyAttNum)
	rtyDel    = retry.Delay(time.Millisecond * 400)
	rtyErr    = retry.LastErrorOnly(true)
)

// Checkpoint persists the event cursor across restarts
type Checkpoint interface {
	Load(ctx context.Context, key string) (height uint64, found bool, err error)
	Save(ctx context.Context, key string, height uint64) error
}

// CheckpointKey identifies the cursor of a bridge contract on an Ethereum chain
func CheckpointKey(ethereumChainID string, contract common.Address) string {
	return ethereumChainID + "/" + strings.ToLower(contract.Hex())
}

// RelayServiceConfig holds everything a RelayService needs for its lifetime
type RelayServiceConfig struct {
	Keys            Keys
	Ethereum        EthereumChain
	Cosmos          CosmosChain
	ContractAddress common.Address
	Relayers        *Relayers
	Fee             *FeePolicy

	// Interval is the target duration of one iteration. It is a pacing hint, not a deadline.
	Interval time.Duration

	// RelayTimeout bounds each relay call. Zero disables the bound.
	RelayTimeout time.Duration

	// Checkpoint is optional
	Checkpoint Checkpoint
}

func (cfg RelayServiceConfig) Validate() error {
	var errs []error
	if cfg.Ethereum == nil {
		errs = append(errs, fmt.Errorf("ethereum chain is nil"))
	}
	if cfg.Cosmos == nil {
		errs = append(errs, fmt.Errorf("cosmos chain is nil"))
	}
	if cfg.Fee == nil {
		errs = append(errs, fmt.Errorf("fee policy is nil"))
	}
	if err := cfg.Relayers.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval must be positive: %v", cfg.Interval))
	}
	if cfg.RelayTimeout < 0 {
		errs = append(errs, fmt.Errorf("relay timeout must not be negative: %v", cfg.RelayTimeout))
	}
	return errors.Join(errs...)
}

// StartService determines the initial event cursor and runs a relay service until ctx is cancelled
func StartService(ctx context.Context, cfg RelayServiceConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid relay service config: %w", err)
	}
	height, err := InitialCursorHeight(ctx, cfg.Ethereum, cfg.Checkpoint, CheckpointKey(cfg.Ethereum.ChainID(), cfg.ContractAddress))
	if err != nil {
		return err
	}
	return NewRelayService(cfg, NewEventCursor(height)).Start(ctx)
}

// InitialCursorHeight returns the checkpointed cursor if one exists, otherwise the latest Ethereum height
func InitialCursorHeight(ctx context.Context, eth EthereumChain, cp Checkpoint, key string) (uint64, error) {
	logger := log.GetLogger().WithModule("core.service")
	if cp != nil {
		height, found, err := cp.Load(ctx, key)
		if err != nil {
			return 0, fmt.Errorf("failed to load event cursor checkpoint %q: %w", key, err)
		}
		if found {
			logger.InfoContext(ctx, "resuming from checkpoint", "key", key, "cursor", height)
			return height, nil
		}
	}

	var height uint64
	if err := retry.Do(func() error {
		var err error
		height, err = eth.LatestHeight(ctx)
		return err
	}, rtyAtt, rtyDel, rtyErr, retry.Context(ctx), retry.OnRetry(func(n uint, err error) {
		logger.InfoContext(ctx,
			"retrying to query the latest ethereum height",
			"chain_id", eth.ChainID(),
			"try", n+1,
			"try_limit", rtyAttNum,
			"error", err.Error(),
		)
	})); err != nil {
		return 0, fmt.Errorf("failed to query the latest height of %s: %w", eth.ChainID(), err)
	}
	logger.InfoContext(ctx, "starting from the latest ethereum height", "cursor", height)
	return height, nil
}

// RelayService runs the relay loop: probe heights, relay valsets, relay batches, relay events, pace.
// The cursor and the fee are owned by the service; relayers only receive copies.
type RelayService struct {
	keys          Keys
	ethereum      EthereumChain
	cosmos        CosmosChain
	contract      common.Address
	relayers      *Relayers
	fee           *FeePolicy
	cursor        *EventCursor
	probe         *HeightProbe
	interval      time.Duration
	relayTimeout  time.Duration
	checkpoint    Checkpoint
	checkpointKey string

	phase atomic.Int32

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewRelayService returns a new service
func NewRelayService(cfg RelayServiceConfig, cursor *EventCursor) *RelayService {
	return &RelayService{
		keys:          cfg.Keys,
		ethereum:      cfg.Ethereum,
		cosmos:        cfg.Cosmos,
		contract:      cfg.ContractAddress,
		relayers:      cfg.Relayers,
		fee:           cfg.Fee,
		cursor:        cursor,
		probe:         NewHeightProbe(cfg.Ethereum, cfg.Cosmos),
		interval:      cfg.Interval,
		relayTimeout:  cfg.RelayTimeout,
		checkpoint:    cfg.Checkpoint,
		checkpointKey: CheckpointKey(cfg.Ethereum.ChainID(), cfg.ContractAddress),
		now:           time.Now,
		sleep:         wait,
	}
}

// Phase returns the step the service is currently executing
func (srv *RelayService) Phase() Phase {
	return Phase(srv.phase.Load())
}

func (srv *RelayService) setPhase(p Phase) {
	srv.phase.Store(int32(p))
}

// Cursor returns the next Ethereum height to be scanned for events
func (srv *RelayService) Cursor() uint64 {
	return srv.cursor.Current()
}

func (srv *RelayService) logger() *log.RelayLogger {
	return log.GetLogger().WithModule("core.service").WithChains(srv.ethereum.ChainID(), srv.cosmos.ChainID())
}

// Start runs the relay loop until ctx is cancelled. Relay failures never stop the loop.
func (srv *RelayService) Start(ctx context.Context) error {
	logger := srv.logger()
	logger.InfoContext(ctx, "relay service started",
		"interval", srv.interval,
		"relay_timeout", srv.relayTimeout,
		"cursor", srv.cursor.Current(),
		"fee", srv.fee.String(),
	)
	defer srv.setPhase(PhaseIdle)

	for ctx.Err() == nil {
		started := srv.now()
		if err := srv.Serve(ctx); err != nil {
			logger.DebugContext(ctx, "iteration finished with failures", "error", err)
		}

		srv.setPhase(PhasePacing)
		elapsed := srv.now().Sub(started)
		delay := pacingDelay(srv.interval, elapsed)
		telemetry.RecordIteration(ctx, delay == 0)
		if delay == 0 {
			// drift above the interval is expected; start the next iteration right away
			logger.DebugContext(ctx, "iteration exceeded the loop interval", "elapsed", elapsed, "interval", srv.interval)
		} else if err := srv.sleep(ctx, delay); err != nil {
			break
		}
		srv.setPhase(PhaseIdle)
	}

	logger.InfoContext(ctx, "relay service stopped", "cursor", srv.cursor.Current())
	return nil
}

// Serve performs one iteration of the relay loop.
// All three relays are attempted regardless of earlier failures, in the order valsets, batches, events.
// The returned error joins the *RelayError of every failed relay.
func (srv *RelayService) Serve(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "RelayService.Serve",
		WithBridgeAttributes(srv.ethereum.ChainID(), srv.cosmos.ChainID(), srv.contract.Hex()),
	)
	defer span.End()

	srv.setPhase(PhaseProbingHeights)
	srv.probe.Probe(ctx)

	// every relay reads the same fee value
	p := srv.params()

	errs := []error{
		srv.invoke(ctx, RelayKindValsets, srv.relayers.Valsets, func(ctx context.Context) error {
			return srv.relayers.Valsets.RelayValsets(ctx, p)
		}),
		srv.invoke(ctx, RelayKindBatches, srv.relayers.Batches, func(ctx context.Context) error {
			return srv.relayers.Batches.RelayBatches(ctx, p)
		}),
		srv.relayEvents(ctx, p),
	}

	err := errors.Join(errs...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (srv *RelayService) params() RelayParams {
	return RelayParams{
		CosmosKey:       srv.keys.Cosmos,
		EthereumKey:     srv.keys.Ethereum,
		Ethereum:        srv.ethereum,
		Cosmos:          srv.cosmos,
		ContractAddress: srv.contract,
		Fee:             srv.fee.Current(),
		PacingHint:      srv.interval,
	}
}

func (srv *RelayService) relayEvents(ctx context.Context, p RelayParams) error {
	from := srv.cursor.Current()
	var next uint64
	if err := srv.invoke(ctx, RelayKindEvents, srv.relayers.Events, func(ctx context.Context) error {
		n, err := srv.relayers.Events.CheckForEvents(ctx, p, from)
		if err != nil {
			return err
		}
		next = n
		return nil
	}); err != nil {
		return err
	}

	if err := srv.cursor.Advance(next); err != nil {
		srv.logger().ErrorWithStack("event relayer returned a cursor behind the current one", err, "from", from, "returned", next)
		return NewRelayError(RelayKindEvents, err)
	}
	telemetry.RecordEventCursor(srv.ethereum.ChainID(), next)

	if next > from && srv.checkpoint != nil {
		if err := srv.checkpoint.Save(ctx, srv.checkpointKey, next); err != nil {
			srv.logger().WarnContext(ctx, "failed to save event cursor checkpoint", "key", srv.checkpointKey, "cursor", next, "error", err)
		}
	}
	return nil
}

// invoke runs a single relay call, wrapping any failure into a *RelayError
func (srv *RelayService) invoke(ctx context.Context, kind RelayKind, relayer any, fn func(context.Context) error) error {
	srv.setPhase(phaseOf(kind))
	ctx, span := tracer.Start(ctx, "RelayService.relay",
		WithRelayAttributes(kind),
		withPackage(relayer),
	)
	defer span.End()
	logger := srv.logger().WithRelay(string(kind))

	started := srv.now()
	err := callWithTimeout(ctx, srv.relayTimeout, fn)
	elapsed := srv.now().Sub(started)
	telemetry.RecordRelay(ctx, string(kind), elapsed.Seconds(), err != nil)

	if err != nil {
		rerr := NewRelayError(kind, err)
		span.RecordError(rerr)
		span.SetStatus(codes.Error, rerr.Error())
		logger.ErrorContext(ctx, "relay failed", rerr, "elapsed", elapsed)
		return rerr
	}
	logger.DebugContext(ctx, "relay finished", "elapsed", elapsed)
	return nil
}

// callWithTimeout runs fn with a deadline and always waits for fn to return, so relay calls never overlap.
// If the context ends before fn returns, the context error is reported even when fn itself succeeded,
// except for a plain cancellation of a successful call.
func callWithTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err := fn(ctx)
	cause := ctx.Err()
	switch {
	case cause == nil:
		return err
	case timeout > 0 && errors.Is(cause, context.DeadlineExceeded):
		if err != nil {
			return fmt.Errorf("relay call timed out after %v: %w: %v", timeout, cause, err)
		}
		return fmt.Errorf("relay call timed out after %v: %w", timeout, cause)
	case err != nil:
		return fmt.Errorf("relay call interrupted: %w: %v", cause, err)
	default:
		return nil
	}
}

// pacingDelay returns how long to sleep so that an iteration lasts `interval`.
// It is zero when the iteration already took `interval` or longer.
func pacingDelay(interval, elapsed time.Duration) time.Duration {
	if elapsed >= interval {
		return 0
	}
	return interval - elapsed
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
