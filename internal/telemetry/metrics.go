package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/peggy-bridge/orchestrator/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	api "go.opentelemetry.io/otel/metric"
)

const (
	namespaceRoot = "orchestrator"
)

var (
	ChainHeightGauge        *Int64SyncGauge
	EventCursorGauge        *Int64SyncGauge
	IterationsCounter       api.Int64Counter
	IterationOverrunCounter api.Int64Counter
	RelayFailuresCounter    api.Int64Counter
	RelayDurationHistogram  api.Float64Histogram

	AttributeKeyChainID   = attribute.Key("chain_id")
	AttributeKeyRelayKind = attribute.Key("relay_kind")
)

// InitializeMetrics creates the orchestrator instruments on the global MeterProvider.
// Call it after SetupOTelSDK so that the instruments are bound to the configured exporters.
func InitializeMetrics() error {
	meter := otel.Meter(name)
	var err error

	// create the instrument "orchestrator.chain_height"
	n := fmt.Sprintf("%s.chain_height", namespaceRoot)
	if ChainHeightGauge, err = NewInt64SyncGauge(
		meter,
		n,
		api.WithUnit("1"),
		api.WithDescription("latest block height observed on each chain"),
	); err != nil {
		return fmt.Errorf("failed to create the instrument %s: %v", n, err)
	}

	// create the instrument "orchestrator.event_cursor"
	n = fmt.Sprintf("%s.event_cursor", namespaceRoot)
	if EventCursorGauge, err = NewInt64SyncGauge(
		meter,
		n,
		api.WithUnit("1"),
		api.WithDescription("next ethereum block height to be scanned for bridge events"),
	); err != nil {
		return fmt.Errorf("failed to create the instrument %s: %v", n, err)
	}

	n = fmt.Sprintf("%s.iterations", namespaceRoot)
	if IterationsCounter, err = meter.Int64Counter(
		n,
		api.WithUnit("1"),
		api.WithDescription("number of completed relay loop iterations"),
	); err != nil {
		return fmt.Errorf("failed to create the instrument %s: %v", n, err)
	}

	n = fmt.Sprintf("%s.iteration_overrun", namespaceRoot)
	if IterationOverrunCounter, err = meter.Int64Counter(
		n,
		api.WithUnit("1"),
		api.WithDescription("number of iterations that took longer than the loop interval"),
	); err != nil {
		return fmt.Errorf("failed to create the instrument %s: %v", n, err)
	}

	n = fmt.Sprintf("%s.relay_failures", namespaceRoot)
	if RelayFailuresCounter, err = meter.Int64Counter(
		n,
		api.WithUnit("1"),
		api.WithDescription("number of failed relay invocations"),
	); err != nil {
		return fmt.Errorf("failed to create the instrument %s: %v", n, err)
	}

	n = fmt.Sprintf("%s.relay_duration", namespaceRoot)
	if RelayDurationHistogram, err = meter.Float64Histogram(
		n,
		api.WithUnit("s"),
		api.WithDescription("duration of relay invocations"),
	); err != nil {
		return fmt.Errorf("failed to create the instrument %s: %v", n, err)
	}

	return nil
}

// RecordChainHeight is a no-op until InitializeMetrics has been called
func RecordChainHeight(chainID string, height uint64) {
	if ChainHeightGauge != nil {
		ChainHeightGauge.Set(int64(height), AttributeKeyChainID.String(chainID))
	}
}

func RecordEventCursor(chainID string, height uint64) {
	if EventCursorGauge != nil {
		EventCursorGauge.Set(int64(height), AttributeKeyChainID.String(chainID))
	}
}

func RecordIteration(ctx context.Context, overrun bool) {
	if IterationsCounter != nil {
		IterationsCounter.Add(ctx, 1)
	}
	if overrun && IterationOverrunCounter != nil {
		IterationOverrunCounter.Add(ctx, 1)
	}
}

func RecordRelay(ctx context.Context, kind string, seconds float64, failed bool) {
	attrs := api.WithAttributes(AttributeKeyRelayKind.String(kind))
	if RelayDurationHistogram != nil {
		RelayDurationHistogram.Record(ctx, seconds, attrs)
	}
	if failed && RelayFailuresCounter != nil {
		RelayFailuresCounter.Add(ctx, 1, attrs)
	}
}

func NewPrometheusExporter(addr string) (*prometheus.Exporter, error) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger := log.GetLogger().WithModule("telemetry")
			logger.Fatal("Prometheus exporter server failed", err)
		}
	}()

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create the Prometheus Exporter: %v", err)
	}

	return exporter, nil
}
