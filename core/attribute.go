package core

import (
	"github.com/peggy-bridge/orchestrator/otelcore/semconv"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	AttributeKeyChainID         = semconv.ChainIDKey
	AttributeKeyEthereumChainID = attribute.Key("ethereum_chain_id")
	AttributeKeyCosmosChainID   = attribute.Key("cosmos_chain_id")
	AttributeKeyRelayKind       = semconv.RelayKindKey
	AttributeKeyContract        = semconv.ContractKey
	AttributeKeyPackage         = attribute.Key("package")
)

func WithChainAttributes(chainID string) trace.SpanStartOption {
	return trace.WithAttributes(AttributeKeyChainID.String(chainID))
}

func WithBridgeAttributes(ethereumChainID, cosmosChainID, contract string) trace.SpanStartOption {
	return trace.WithAttributes(semconv.AttributeGroup("bridge",
		AttributeKeyEthereumChainID.String(ethereumChainID),
		AttributeKeyCosmosChainID.String(cosmosChainID),
		AttributeKeyContract.String(contract),
	)...)
}

func WithRelayAttributes(kind RelayKind) trace.SpanStartOption {
	return trace.WithAttributes(AttributeKeyRelayKind.String(string(kind)))
}
