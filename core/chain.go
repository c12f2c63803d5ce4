package core

import (
	"context"

	"github.com/ethereum/go-ethereum"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
)

//go:generate mockgen -source=chain.go -destination=mock_chain.go -package=core

// Chain represents a chain whose head the orchestrator can observe
type Chain interface {
	// ChainID returns ID of the chain
	ChainID() string

	// LatestHeight queries the chain for the latest block height and returns it
	LatestHeight(ctx context.Context) (uint64, error)
}

// CosmosChain is the Cosmos-side client handle shared by every relay step.
// Submission of claims and confirmations is implemented by the relayer modules.
type CosmosChain interface {
	Chain

	// AccountPrefix returns the bech32 prefix of account addresses on the chain
	AccountPrefix() string
}

// EthereumChain is the Ethereum-side client handle shared by every relay step.
type EthereumChain interface {
	Chain

	// FilterLogs returns the logs matching the given filter query
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]gethtypes.Log, error)
}
