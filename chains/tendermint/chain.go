package tendermint

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	errorsmod "cosmossdk.io/errors"
	rpcclient "github.com/cometbft/cometbft/rpc/client"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	libclient "github.com/cometbft/cometbft/rpc/jsonrpc/client"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/peggy-bridge/orchestrator/core"
	"github.com/peggy-bridge/orchestrator/log"
)

// ErrNodeCatchingUp is returned while the queried node is still syncing
var ErrNodeCatchingUp = errorsmod.Register("peggo-tendermint", 2, "node is catching up")

type heightQuerier interface {
	LatestHeight(ctx context.Context) (uint64, error)
}

// Chain is a read-only client of a Cosmos SDK chain
type Chain struct {
	config  ChainConfig
	querier heightQuerier
}

var _ core.CosmosChain = (*Chain)(nil)

func (c *Chain) ChainID() string {
	return c.config.ChainID
}

func (c *Chain) Config() ChainConfig {
	return c.config
}

func (c *Chain) AccountPrefix() string {
	return c.config.AccountPrefix
}

// LatestHeight queries the chain for the latest height and returns it
func (c *Chain) LatestHeight(ctx context.Context) (uint64, error) {
	h, err := c.querier.LatestHeight(ctx)
	if err != nil {
		return 0, errorsmod.Wrapf(err, "failed to query the latest height of %s", c.ChainID())
	}
	return h, nil
}

type rpcQuerier struct {
	addr   string
	client rpcclient.StatusClient
}

func newRPCQuerier(addr string, timeout time.Duration) (*rpcQuerier, error) {
	client, err := newRPCClient(addr, timeout)
	if err != nil {
		return nil, err
	}
	return &rpcQuerier{addr: addr, client: client}, nil
}

func (q *rpcQuerier) LatestHeight(ctx context.Context) (uint64, error) {
	res, err := q.client.Status(ctx)
	if err != nil {
		return 0, err
	} else if res.SyncInfo.CatchingUp {
		return 0, errorsmod.Wrapf(ErrNodeCatchingUp, "node at %s", q.addr)
	}
	return uint64(res.SyncInfo.LatestBlockHeight), nil
}

func newRPCClient(addr string, timeout time.Duration) (*rpchttp.HTTP, error) {
	httpClient, err := libclient.DefaultHTTPClient(addr)
	if err != nil {
		return nil, err
	}

	httpClient.Timeout = timeout
	httpClient.Transport = otelhttp.NewTransport(httpClient.Transport)
	rpcClient, err := rpchttp.NewWithClient(addr, "/websocket", httpClient)
	if err != nil {
		return nil, err
	}

	return rpcClient, nil
}

const latestBlockPath = "/cosmos/base/tendermint/v1beta1/blocks/latest"

type lcdQuerier struct {
	client *resty.Client
}

func newLCDQuerier(addr string, timeout time.Duration) *lcdQuerier {
	client := resty.New().
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetBaseURL(addr).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &lcdQuerier{client: client}
}

type latestBlockResponse struct {
	Block struct {
		Header struct {
			ChainID string `json:"chain_id"`
			Height  string `json:"height"`
		} `json:"header"`
	} `json:"block"`
}

func (q *lcdQuerier) LatestHeight(ctx context.Context) (uint64, error) {
	var out latestBlockResponse
	resp, err := q.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get(latestBlockPath)
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, fmt.Errorf("unexpected response from %s: %s", resp.Request.URL, resp.Status())
	}
	h, err := strconv.ParseUint(out.Block.Header.Height, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid block height %q: %w", out.Block.Header.Height, err)
	}
	return h, nil
}

func GetChainLogger() *log.RelayLogger {
	return log.GetLogger().
		WithModule("tendermint.chain")
}
