package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/peggy-bridge/orchestrator/log"
)

// Client is the subset of *ethclient.Client used by Chain
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]gethtypes.Log, error)
	Close()
}

var _ Client = (*ethclient.Client)(nil)

// Chain is an Ethereum JSON-RPC client
type Chain struct {
	chainID string
	client  Client
}

var _ core.EthereumChain = (*Chain)(nil)

// Dial connects to the node at rpcAddr.
// If expectedChainID is not empty it must match the id reported by the node.
func Dial(ctx context.Context, rpcAddr, expectedChainID string) (*Chain, error) {
	client, err := ethclient.DialContext(ctx, rpcAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcAddr, err)
	}
	chain, err := NewChain(ctx, client, expectedChainID)
	if err != nil {
		client.Close()
		return nil, err
	}
	log.GetLogger().WithModule("ethereum").InfoContext(ctx, "connected to chain", "endpoint", rpcAddr, "chain_id", chain.ChainID())
	return chain, nil
}

// NewChain queries the chain id of the connected node and returns a new Chain
func NewChain(ctx context.Context, client Client, expectedChainID string) (*Chain, error) {
	id, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query chain id: %w", err)
	}
	if expectedChainID != "" && id.String() != expectedChainID {
		return nil, fmt.Errorf("chain id mismatch: expected=%s, actual=%s", expectedChainID, id)
	}
	return &Chain{chainID: id.String(), client: client}, nil
}

// ChainID returns ID of the chain
func (c *Chain) ChainID() string {
	return c.chainID
}

// LatestHeight queries the chain for the latest block number
func (c *Chain) LatestHeight(ctx context.Context) (uint64, error) {
	height, err := c.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to query block number: chain_id=%s: %w", c.chainID, err)
	}
	return height, nil
}

// FilterLogs returns the logs matching q
func (c *Chain) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]gethtypes.Log, error) {
	logs, err := c.client.FilterLogs(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to filter logs: chain_id=%s: %w", c.chainID, err)
	}
	return logs, nil
}

func (c *Chain) Close() {
	c.client.Close()
}
