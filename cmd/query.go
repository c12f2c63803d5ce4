package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/peggy-bridge/orchestrator/chains/ethereum"
	"github.com/peggy-bridge/orchestrator/config"
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// queryCmd represents the query command
func queryCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query Commands",
		Long:    "Commands to query the configured chains and the persisted event cursor.",
		RunE:    noCommand,
	}

	cmd.AddCommand(
		queryHeightsCmd(ctx),
		queryCursorCmd(ctx),
	)

	return cmd
}

type heightsResult struct {
	Ethereum chainHeight `json:"ethereum"`
	Cosmos   chainHeight `json:"cosmos"`
}

type chainHeight struct {
	ChainID string `json:"chain_id"`
	Height  uint64 `json:"height"`
}

func queryHeightsCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heights",
		Short: "Query the latest block height of both chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			qctx, cancel := context.WithTimeout(cmd.Context(), ctx.Config.Global.Timeout)
			defer cancel()

			eth, err := ctx.Config.Ethereum.Build(qctx)
			if err != nil {
				return err
			}
			defer eth.Close()
			cosmos, err := ctx.Config.Cosmos.Build()
			if err != nil {
				return err
			}

			var res heightsResult
			res.Ethereum.ChainID = eth.ChainID()
			if res.Ethereum.Height, err = eth.LatestHeight(qctx); err != nil {
				return err
			}
			res.Cosmos.ChainID = cosmos.ChainID()
			if res.Cosmos.Height, err = cosmos.LatestHeight(qctx); err != nil {
				return err
			}

			if viper.GetBool(flagJSON) {
				bz, err := json.Marshal(res)
				if err != nil {
					return err
				}
				fmt.Println(string(bz))
				return nil
			}
			fmt.Printf("ethereum %s: %d\n", res.Ethereum.ChainID, res.Ethereum.Height)
			fmt.Printf("cosmos %s: %d\n", res.Cosmos.ChainID, res.Cosmos.Height)
			return nil
		},
	}
	return jsonFlag(cmd)
}

func queryCursorCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Query the persisted event cursor of the configured bridge contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.Config.Bridge.Validate(); err != nil {
				return err
			}
			qctx, cancel := context.WithTimeout(cmd.Context(), ctx.Config.Global.Timeout)
			defer cancel()

			store, err := ctx.Config.Checkpoint.Open(qctx, ctx.HomePath)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("checkpointing is disabled")
			}
			defer store.Close()

			ethChainID, err := ethereumChainID(qctx, ctx.Config.Ethereum)
			if err != nil {
				return err
			}
			key := core.CheckpointKey(ethChainID, ctx.Config.Bridge.Contract())
			height, found, err := store.Load(qctx, key)
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("%s: no checkpoint\n", key)
				return nil
			}
			fmt.Printf("%s: %d\n", key, height)
			return nil
		},
	}
	return cmd
}

// ethereumChainID returns the configured chain id, asking the node only when it is not configured
func ethereumChainID(ctx context.Context, c ethereum.ChainConfig) (string, error) {
	if c.ChainID != "" {
		return c.ChainID, nil
	}
	eth, err := c.Build(ctx)
	if err != nil {
		return "", err
	}
	defer eth.Close()
	return eth.ChainID(), nil
}
