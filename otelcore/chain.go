package otelcore

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/peggy-bridge/orchestrator/otelcore/semconv"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type EthereumChain struct {
	core.EthereumChain
	tracer trace.Tracer
}

func NewEthereumChain(chain core.EthereumChain, tracer trace.Tracer) core.EthereumChain {
	return &EthereumChain{
		EthereumChain: chain,
		tracer:        tracer,
	}
}

func UnwrapEthereumChain(chain core.EthereumChain) (core.EthereumChain, error) {
	c, ok := chain.(*EthereumChain)
	if !ok {
		return nil, fmt.Errorf("chain type is not %T, but %T", &EthereumChain{}, chain)
	}
	return c.EthereumChain, nil
}

func (c *EthereumChain) LatestHeight(ctx context.Context) (uint64, error) {
	ctx, span := c.tracer.Start(ctx, "EthereumChain.LatestHeight",
		core.WithChainAttributes(c.ChainID()),
	)
	defer span.End()

	height, err := c.EthereumChain.LatestHeight(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return height, err
}

func (c *EthereumChain) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]gethtypes.Log, error) {
	attrs := []trace.SpanStartOption{core.WithChainAttributes(c.ChainID())}
	if q.FromBlock != nil {
		attrs = append(attrs, trace.WithAttributes(semconv.FromBlockKey.Int64(q.FromBlock.Int64())))
	}
	if q.ToBlock != nil {
		attrs = append(attrs, trace.WithAttributes(semconv.ToBlockKey.Int64(q.ToBlock.Int64())))
	}
	ctx, span := c.tracer.Start(ctx, "EthereumChain.FilterLogs", attrs...)
	defer span.End()

	logs, err := c.EthereumChain.FilterLogs(ctx, q)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(semconv.LogCountKey.Int(len(logs)))
	}
	return logs, err
}

type CosmosChain struct {
	core.CosmosChain
	tracer trace.Tracer
}

func NewCosmosChain(chain core.CosmosChain, tracer trace.Tracer) core.CosmosChain {
	return &CosmosChain{
		CosmosChain: chain,
		tracer:      tracer,
	}
}

func UnwrapCosmosChain(chain core.CosmosChain) (core.CosmosChain, error) {
	c, ok := chain.(*CosmosChain)
	if !ok {
		return nil, fmt.Errorf("chain type is not %T, but %T", &CosmosChain{}, chain)
	}
	return c.CosmosChain, nil
}

func (c *CosmosChain) LatestHeight(ctx context.Context) (uint64, error) {
	ctx, span := c.tracer.Start(ctx, "CosmosChain.LatestHeight",
		core.WithChainAttributes(c.ChainID()),
	)
	defer span.End()

	height, err := c.CosmosChain.LatestHeight(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return height, err
}
