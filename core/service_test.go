package core_test

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/peggy-bridge/orchestrator/core"
	"github.com/peggy-bridge/orchestrator/internal/telemetry"
	"github.com/peggy-bridge/orchestrator/log"
)

var testContract = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

// fakeClock advances only when a relay or the pacing sleep says so
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
	onWake func(n int)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	n := len(c.sleeps)
	c.mu.Unlock()
	if c.onWake != nil {
		c.onWake(n)
	}
	return ctx.Err()
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

type memCheckpoint struct {
	mu     sync.Mutex
	values map[string]uint64
	saves  []uint64
}

func newMemCheckpoint() *memCheckpoint {
	return &memCheckpoint{values: map[string]uint64{}}
}

func (m *memCheckpoint) Load(_ context.Context, key string) (uint64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.values[key]
	return h, ok, nil
}

func (m *memCheckpoint) Save(_ context.Context, key string, height uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = height
	m.saves = append(m.saves, height)
	return nil
}

type fixture struct {
	ethereum *core.MockEthereumChain
	cosmos   *core.MockCosmosChain
	valsets  *core.MockValsetRelayer
	batches  *core.MockBatchRelayer
	events   *core.MockEventRelayer
	clock    *fakeClock
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithHeights(t, nil, nil)
}

// newFixtureWithHeights makes LatestHeight fail on a chain whose error is non-nil
func newFixtureWithHeights(t *testing.T, ethErr, cosmosErr error) *fixture {
	log.InitLoggerWithWriter("debug", "text", os.Stdout, false)
	telemetry.InitializeMetrics()

	ctrl := gomock.NewController(t)
	f := &fixture{
		ethereum: core.NewMockEthereumChain(ctrl),
		cosmos:   core.NewMockCosmosChain(ctrl),
		valsets:  core.NewMockValsetRelayer(ctrl),
		batches:  core.NewMockBatchRelayer(ctrl),
		events:   core.NewMockEventRelayer(ctrl),
		clock:    newFakeClock(),
	}
	f.ethereum.EXPECT().ChainID().Return("ethereum-1337").AnyTimes()
	if ethErr != nil {
		f.ethereum.EXPECT().LatestHeight(gomock.Any()).Return(uint64(0), ethErr).AnyTimes()
	} else {
		f.ethereum.EXPECT().LatestHeight(gomock.Any()).Return(uint64(2000), nil).AnyTimes()
	}
	f.cosmos.EXPECT().ChainID().Return("peggy-1").AnyTimes()
	if cosmosErr != nil {
		f.cosmos.EXPECT().LatestHeight(gomock.Any()).Return(uint64(0), cosmosErr).AnyTimes()
	} else {
		f.cosmos.EXPECT().LatestHeight(gomock.Any()).Return(uint64(300), nil).AnyTimes()
	}
	return f
}

func (f *fixture) config(t *testing.T, interval, relayTimeout time.Duration) core.RelayServiceConfig {
	fee, err := core.NewFeePolicy("ubridge", core.DefaultFeeAmount)
	require.NoError(t, err)
	return core.RelayServiceConfig{
		Ethereum:        f.ethereum,
		Cosmos:          f.cosmos,
		ContractAddress: testContract,
		Relayers: &core.Relayers{
			Valsets: f.valsets,
			Batches: f.batches,
			Events:  f.events,
		},
		Fee:          fee,
		Interval:     interval,
		RelayTimeout: relayTimeout,
	}
}

func (f *fixture) service(t *testing.T, cursor uint64, interval time.Duration) *core.RelayService {
	srv := core.NewRelayService(f.config(t, interval, 0), core.NewEventCursor(cursor))
	srv.SetClock(f.clock.Now, f.clock.Sleep)
	return srv
}

func TestServeRelaysInOrder(t *testing.T) {
	f := newFixture(t)
	srv := f.service(t, 1000, 10*time.Second)

	gomock.InOrder(
		f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, core.RelayParams) error {
			assert.Equal(t, core.PhaseRelayingValsets, srv.Phase())
			return nil
		}),
		f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, core.RelayParams) error {
			assert.Equal(t, core.PhaseRelayingBatches, srv.Phase())
			return nil
		}),
		f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1000)).DoAndReturn(func(context.Context, core.RelayParams, uint64) (uint64, error) {
			assert.Equal(t, core.PhaseRelayingEvents, srv.Phase())
			return 1050, nil
		}),
	)

	require.NoError(t, srv.Serve(context.TODO()))
	assert.Equal(t, uint64(1050), srv.Cursor())
}

func TestServeIsolatesFailures(t *testing.T) {
	cases := map[string]struct {
		valsetErr  error
		batchErr   error
		eventErr   error
		wantKinds  []core.RelayKind
		wantCursor uint64
	}{
		"valsets fail": {
			valsetErr:  errors.New("ethereum rpc unavailable"),
			wantKinds:  []core.RelayKind{core.RelayKindValsets},
			wantCursor: 1010,
		},
		"batches fail": {
			batchErr:   errors.New("nonce too low"),
			wantKinds:  []core.RelayKind{core.RelayKindBatches},
			wantCursor: 1010,
		},
		"events fail": {
			eventErr:   errors.New("cosmos rpc unavailable"),
			wantKinds:  []core.RelayKind{core.RelayKindEvents},
			wantCursor: 1000,
		},
		"everything fails": {
			valsetErr:  errors.New("a"),
			batchErr:   errors.New("b"),
			eventErr:   errors.New("c"),
			wantKinds:  []core.RelayKind{core.RelayKindValsets, core.RelayKindBatches, core.RelayKindEvents},
			wantCursor: 1000,
		},
	}
	for n, c := range cases {
		t.Run(n, func(t *testing.T) {
			f := newFixture(t)
			srv := f.service(t, 1000, 10*time.Second)

			f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).Return(c.valsetErr)
			f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).Return(c.batchErr)
			next := uint64(1010)
			if c.eventErr != nil {
				next = 0
			}
			f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1000)).Return(next, c.eventErr)

			err := srv.Serve(context.TODO())
			require.Error(t, err)

			var kinds []core.RelayKind
			for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
				var rerr *core.RelayError
				require.True(t, errors.As(e, &rerr))
				kinds = append(kinds, rerr.Kind)
			}
			assert.Equal(t, c.wantKinds, kinds)
			assert.Equal(t, c.wantCursor, srv.Cursor())
		})
	}
}

func TestFailedEventRelayIsRetriedFromSameCursor(t *testing.T) {
	f := newFixture(t)
	srv := f.service(t, 1000, 10*time.Second)

	f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	gomock.InOrder(
		f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1000)).Return(uint64(0), errors.New("timeout")),
		f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1000)).Return(uint64(1050), nil),
		f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1050)).Return(uint64(1050), nil),
	)

	assert.Error(t, srv.Serve(context.TODO()))
	assert.Equal(t, uint64(1000), srv.Cursor())
	assert.NoError(t, srv.Serve(context.TODO()))
	assert.Equal(t, uint64(1050), srv.Cursor())
	assert.NoError(t, srv.Serve(context.TODO()))
	assert.Equal(t, uint64(1050), srv.Cursor())
}

func TestServeRejectsCursorRetreat(t *testing.T) {
	f := newFixture(t)
	srv := f.service(t, 1000, 10*time.Second)

	f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).Return(nil)
	f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).Return(nil)
	f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1000)).Return(uint64(900), nil)

	err := srv.Serve(context.TODO())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrOutOfOrderCursor))
	assert.Equal(t, uint64(1000), srv.Cursor())
}

func TestFeeIsConstantAcrossIterations(t *testing.T) {
	f := newFixture(t)
	srv := f.service(t, 0, 10*time.Second)

	want := sdk.NewInt64Coin("ubridge", 1)
	checkFee := func(_ context.Context, p core.RelayParams) error {
		assert.Equal(t, want, p.Fee)
		assert.Equal(t, testContract, p.ContractAddress)
		assert.Equal(t, 10*time.Second, p.PacingHint)
		// relayers only ever receive copies
		p.Fee.Denom = "stake"
		return nil
	}
	f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).DoAndReturn(checkFee).Times(100)
	f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).DoAndReturn(checkFee).Times(100)
	f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p core.RelayParams, from uint64) (uint64, error) {
			assert.Equal(t, want, p.Fee)
			return from + 1, nil
		},
	).Times(100)

	for i := 0; i < 100; i++ {
		require.NoError(t, srv.Serve(context.TODO()))
	}
	assert.Equal(t, uint64(100), srv.Cursor())
}

func TestPacingDelay(t *testing.T) {
	interval := 10 * time.Second
	cases := map[string]struct {
		elapsed time.Duration
		want    time.Duration
	}{
		"idle":     {elapsed: 0, want: interval},
		"partial":  {elapsed: 3 * time.Second, want: 7 * time.Second},
		"exact":    {elapsed: interval, want: 0},
		"overrun":  {elapsed: 12 * time.Second, want: 0},
		"just one": {elapsed: interval - time.Nanosecond, want: time.Nanosecond},
	}
	for n, c := range cases {
		t.Run(n, func(t *testing.T) {
			assert.Equal(t, c.want, core.PacingDelay(interval, c.elapsed))
		})
	}
}

func TestStartPacesIterations(t *testing.T) {
	f := newFixture(t)
	srv := f.service(t, 1000, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.clock.onWake = func(n int) {
		assert.Equal(t, core.PhasePacing, srv.Phase())
		if n == 3 {
			cancel()
		}
	}

	// every relay takes one second of the ten second budget
	f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, core.RelayParams) error {
		f.clock.Advance(time.Second)
		return nil
	}).Times(3)
	f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, core.RelayParams) error {
		f.clock.Advance(time.Second)
		return errors.New("batch failed")
	}).Times(3)
	f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ core.RelayParams, from uint64) (uint64, error) {
		f.clock.Advance(time.Second)
		return from + 10, nil
	}).Times(3)

	require.NoError(t, srv.Start(ctx))
	assert.Equal(t, []time.Duration{7 * time.Second, 7 * time.Second, 7 * time.Second}, f.clock.Sleeps())
	assert.Equal(t, uint64(1030), srv.Cursor())
	assert.Equal(t, core.PhaseIdle, srv.Phase())
}

func TestStartContinuesImmediatelyOnOverrun(t *testing.T) {
	f := newFixture(t)
	srv := f.service(t, 1000, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var iterations int
	f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, core.RelayParams) error {
		f.clock.Advance(12 * time.Second)
		return nil
	}).Times(3)
	f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ core.RelayParams, from uint64) (uint64, error) {
		iterations++
		if iterations == 3 {
			cancel()
		}
		return from, nil
	}).Times(3)

	require.NoError(t, srv.Start(ctx))
	assert.Empty(t, f.clock.Sleeps())
	assert.Equal(t, 3, iterations)
}

func TestStartStopsDuringPacing(t *testing.T) {
	f := newFixture(t)
	srv := core.NewRelayService(f.config(t, time.Hour, 0), core.NewEventCursor(1000))

	f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).Return(nil)
	f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).Return(nil)
	f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1000)).Return(uint64(1001), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		return srv.Phase() == core.PhasePacing
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop after cancellation")
	}
	assert.Equal(t, uint64(1001), srv.Cursor())
}

func TestStartReturnsImmediatelyWhenCancelled(t *testing.T) {
	f := newFixture(t)
	srv := f.service(t, 1000, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// no relay expectations: nothing may be called
	require.NoError(t, srv.Start(ctx))
}

func TestRelayTimeout(t *testing.T) {
	f := newFixture(t)
	srv := core.NewRelayService(f.config(t, 10*time.Second, 50*time.Millisecond), core.NewEventCursor(1000))

	var valsetRunning atomic.Bool
	f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, core.RelayParams) error {
		// ignores cancellation
		valsetRunning.Store(true)
		defer valsetRunning.Store(false)
		time.Sleep(100 * time.Millisecond)
		return nil
	})
	f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ core.RelayParams) error {
		assert.False(t, valsetRunning.Load(), "batches started while valsets was still running")
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	})
	f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1000)).DoAndReturn(func(ctx context.Context, _ core.RelayParams, _ uint64) (uint64, error) {
		<-ctx.Done()
		return 2000, nil
	})

	err := srv.Serve(context.TODO())
	require.Error(t, err)
	errs := err.(interface{ Unwrap() []error }).Unwrap()
	require.Len(t, errs, 2)
	for i, kind := range []core.RelayKind{core.RelayKindValsets, core.RelayKindEvents} {
		var rerr *core.RelayError
		require.True(t, errors.As(errs[i], &rerr))
		assert.Equal(t, kind, rerr.Kind)
		assert.True(t, errors.Is(rerr, context.DeadlineExceeded))
		assert.Contains(t, rerr.Error(), "timed out after 50ms")
	}
	assert.Equal(t, uint64(1000), srv.Cursor())
}

func TestRelayInterruptedByShutdown(t *testing.T) {
	f := newFixture(t)
	srv := core.NewRelayService(f.config(t, 10*time.Second, time.Hour), core.NewEventCursor(1000))

	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ core.RelayParams) error {
		return ctx.Err()
	})
	f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).Return(nil)
	f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1000)).DoAndReturn(func(ctx context.Context, _ core.RelayParams, _ uint64) (uint64, error) {
		return 0, ctx.Err()
	})

	err := srv.Serve(ctx)
	require.Error(t, err)
	errs := err.(interface{ Unwrap() []error }).Unwrap()
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.True(t, errors.Is(e, context.Canceled))
		assert.False(t, errors.Is(e, context.DeadlineExceeded))
		assert.NotContains(t, e.Error(), "timed out")
		assert.Contains(t, e.Error(), "interrupted")
	}
	assert.Equal(t, uint64(1000), srv.Cursor())
}

func TestServeSwallowsHeightFailures(t *testing.T) {
	unreachable := errors.New("connection refused")
	tests := map[string]struct {
		ethErr, cosmosErr error
	}{
		"ethereum": {ethErr: unreachable},
		"cosmos":   {cosmosErr: unreachable},
		"both":     {ethErr: unreachable, cosmosErr: unreachable},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixtureWithHeights(t, tt.ethErr, tt.cosmosErr)
			srv := f.service(t, 1000, 10*time.Second)

			f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).Return(nil)
			f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).Return(nil)
			f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1000)).Return(uint64(1010), nil)

			require.NoError(t, srv.Serve(context.TODO()))
			assert.Equal(t, uint64(1010), srv.Cursor())
		})
	}
}

func TestInitialCursorHeight(t *testing.T) {
	f := newFixture(t)
	key := core.CheckpointKey("ethereum-1337", testContract)
	assert.Equal(t, "ethereum-1337/0x5fbdb2315678afecb367f032d93f642f64180aa3", key)

	h, err := core.InitialCursorHeight(context.TODO(), f.ethereum, nil, key)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), h)

	cp := newMemCheckpoint()
	h, err = core.InitialCursorHeight(context.TODO(), f.ethereum, cp, key)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), h)

	require.NoError(t, cp.Save(context.TODO(), key, 1500))
	h, err = core.InitialCursorHeight(context.TODO(), f.ethereum, cp, key)
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), h)
}

func TestCheckpointIsSavedAfterAdvance(t *testing.T) {
	f := newFixture(t)
	cp := newMemCheckpoint()
	cfg := f.config(t, 10*time.Second, 0)
	cfg.Checkpoint = cp
	srv := core.NewRelayService(cfg, core.NewEventCursor(1000))

	f.valsets.EXPECT().RelayValsets(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	f.batches.EXPECT().RelayBatches(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	gomock.InOrder(
		f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1000)).Return(uint64(1020), nil),
		f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1020)).Return(uint64(1020), nil),
		f.events.EXPECT().CheckForEvents(gomock.Any(), gomock.Any(), uint64(1020)).Return(uint64(0), errors.New("boom")),
	)
	for i := 0; i < 3; i++ {
		_ = srv.Serve(context.TODO())
	}
	assert.Equal(t, []uint64{1020}, cp.saves)
}

func TestRelayServiceConfigValidate(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, 10*time.Second, 0)
	require.NoError(t, cfg.Validate())

	cfg.Interval = 0
	cfg.RelayTimeout = -time.Second
	cfg.Relayers = &core.Relayers{Valsets: f.valsets}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interval")
	assert.Contains(t, err.Error(), "relay timeout")
	assert.Contains(t, err.Error(), "batch relayer")
}
