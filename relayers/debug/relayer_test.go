package debug

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testContract = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func params(eth core.EthereumChain) core.RelayParams {
	return core.RelayParams{Ethereum: eth, ContractAddress: testContract}
}

func TestScanWindowEnd(t *testing.T) {
	cases := []struct {
		from, latest, bpq, want uint64
	}{
		{from: 100, latest: 5000, bpq: 1000, want: 1099},
		{from: 100, latest: 500, bpq: 1000, want: 500},
		{from: 100, latest: 100, bpq: 1000, want: 100},
		{from: 100, latest: 5000, bpq: 1, want: 100},
		{from: ^uint64(0) - 1, latest: ^uint64(0), bpq: 10, want: ^uint64(0)},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, scanWindowEnd(c.from, c.latest, c.bpq), "from=%d latest=%d bpq=%d", c.from, c.latest, c.bpq)
	}
}

func TestCheckForEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	eth := core.NewMockEthereumChain(ctrl)
	eth.EXPECT().LatestHeight(gomock.Any()).Return(uint64(1500), nil)
	eth.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q ethereum.FilterQuery) ([]gethtypes.Log, error) {
		assert.Equal(t, uint64(1000), q.FromBlock.Uint64())
		assert.Equal(t, uint64(1099), q.ToBlock.Uint64())
		assert.Equal(t, []common.Address{testContract}, q.Addresses)
		return []gethtypes.Log{
			{Address: testContract, BlockNumber: 1010, Topics: []common.Hash{common.HexToHash("0x01")}},
			{Address: testContract, BlockNumber: 1011, Removed: true},
		}, nil
	})

	r := NewRelayer(RelayerConfig{BlocksPerQuery: 100})
	next, err := r.CheckForEvents(context.Background(), params(eth), 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1100), next)
}

func TestCheckForEventsWaitsForChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	eth := core.NewMockEthereumChain(ctrl)
	eth.EXPECT().LatestHeight(gomock.Any()).Return(uint64(999), nil)

	r := NewRelayer(RelayerConfig{BlocksPerQuery: 100})
	next, err := r.CheckForEvents(context.Background(), params(eth), 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), next)
}

func TestCheckForEventsAtMaxHeight(t *testing.T) {
	ctrl := gomock.NewController(t)
	eth := core.NewMockEthereumChain(ctrl)
	eth.EXPECT().LatestHeight(gomock.Any()).Return(uint64(math.MaxUint64), nil)
	eth.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q ethereum.FilterQuery) ([]gethtypes.Log, error) {
		assert.Equal(t, uint64(math.MaxUint64), q.ToBlock.Uint64())
		return nil, nil
	})

	r := NewRelayer(RelayerConfig{BlocksPerQuery: 100})
	next, err := r.CheckForEvents(context.Background(), params(eth), math.MaxUint64-1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), next)
}

func TestCheckForEventsFilterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	eth := core.NewMockEthereumChain(ctrl)
	eth.EXPECT().LatestHeight(gomock.Any()).Return(uint64(1500), nil)
	eth.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return(nil, errors.New("rpc down"))

	r := NewRelayer(RelayerConfig{BlocksPerQuery: 100})
	_, err := r.CheckForEvents(context.Background(), params(eth), 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc down")
}

func TestFailureInjection(t *testing.T) {
	t.Setenv(EnvFail, "valsets, events")

	ctrl := gomock.NewController(t)
	eth := core.NewMockEthereumChain(ctrl)
	r := NewRelayer(RelayerConfig{BlocksPerQuery: 100})
	ctx := context.Background()

	assert.Error(t, r.RelayValsets(ctx, params(eth)))
	assert.NoError(t, r.RelayBatches(ctx, params(eth)))
	_, err := r.CheckForEvents(ctx, params(eth), 1000)
	assert.Error(t, err)
}

func TestRelayerConfig(t *testing.T) {
	assert.Error(t, RelayerConfig{}.Validate())

	rs, err := DefaultRelayerConfig().Build()
	require.NoError(t, err)
	require.NoError(t, rs.Validate())

	_, err = RelayerConfig{}.Build()
	assert.Error(t, err)
}
