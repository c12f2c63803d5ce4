package otelcore

import (
	"context"

	"github.com/peggy-bridge/orchestrator/core"
	"github.com/peggy-bridge/orchestrator/otelcore/semconv"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// NewRelayers wraps each relay operation so that every invocation is recorded as a span
func NewRelayers(rs *core.Relayers, tracer trace.Tracer) *core.Relayers {
	return &core.Relayers{
		Valsets: &ValsetRelayer{ValsetRelayer: rs.Valsets, tracer: tracer},
		Batches: &BatchRelayer{BatchRelayer: rs.Batches, tracer: tracer},
		Events:  &EventRelayer{EventRelayer: rs.Events, tracer: tracer},
	}
}

type ValsetRelayer struct {
	core.ValsetRelayer
	tracer trace.Tracer
}

var _ core.RelayerWrapper = (*ValsetRelayer)(nil)

func (r *ValsetRelayer) UnwrapRelayer() any {
	return r.ValsetRelayer
}

func (r *ValsetRelayer) RelayValsets(ctx context.Context, p core.RelayParams) error {
	ctx, span := r.tracer.Start(ctx, "ValsetRelayer.RelayValsets",
		core.WithRelayAttributes(core.RelayKindValsets),
	)
	defer span.End()

	err := r.ValsetRelayer.RelayValsets(ctx, p)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

type BatchRelayer struct {
	core.BatchRelayer
	tracer trace.Tracer
}

var _ core.RelayerWrapper = (*BatchRelayer)(nil)

func (r *BatchRelayer) UnwrapRelayer() any {
	return r.BatchRelayer
}

func (r *BatchRelayer) RelayBatches(ctx context.Context, p core.RelayParams) error {
	ctx, span := r.tracer.Start(ctx, "BatchRelayer.RelayBatches",
		core.WithRelayAttributes(core.RelayKindBatches),
	)
	defer span.End()

	err := r.BatchRelayer.RelayBatches(ctx, p)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

type EventRelayer struct {
	core.EventRelayer
	tracer trace.Tracer
}

var _ core.RelayerWrapper = (*EventRelayer)(nil)

func (r *EventRelayer) UnwrapRelayer() any {
	return r.EventRelayer
}

func (r *EventRelayer) CheckForEvents(ctx context.Context, p core.RelayParams, lastCheckedBlock uint64) (uint64, error) {
	ctx, span := r.tracer.Start(ctx, "EventRelayer.CheckForEvents",
		core.WithRelayAttributes(core.RelayKindEvents),
		trace.WithAttributes(semconv.FromBlockKey.Int64(int64(lastCheckedBlock))),
	)
	defer span.End()

	next, err := r.EventRelayer.CheckForEvents(ctx, p, lastCheckedBlock)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(semconv.NextBlockKey.Int64(int64(next)))
	}
	return next, err
}
