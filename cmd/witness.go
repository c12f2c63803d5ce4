package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/peggy-bridge/orchestrator/config"
	"github.com/peggy-bridge/orchestrator/otelcore"
	"github.com/peggy-bridge/orchestrator/witness"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

func witnessCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "witness",
		Short: "Watches one event of the bridge contract and logs every occurrence",
		Long: "Polls the configured Ethereum node for logs of the bridge contract, decodes the given event " +
			"with the contract ABI and logs each decoded event. The scan starts at --from-block, or at the latest block when it is 0.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			abiPath, err := cmd.Flags().GetString(flagABI)
			if err != nil {
				return err
			}
			event, err := cmd.Flags().GetString(flagEvent)
			if err != nil {
				return err
			}
			from, err := cmd.Flags().GetUint64(flagFromBlock)
			if err != nil {
				return err
			}
			interval, err := cmd.Flags().GetDuration(flagInterval)
			if err != nil {
				return err
			}
			if err := ctx.Config.Ethereum.Validate(); err != nil {
				return err
			}
			if !common.IsHexAddress(ctx.Config.Bridge.ContractAddress) {
				return fmt.Errorf("config attribute \"bridge.contract_address\" is not a hex address: %q", ctx.Config.Bridge.ContractAddress)
			}

			f, err := os.Open(abiPath)
			if err != nil {
				return err
			}
			decoder, err := witness.NewDecoder(f, event)
			f.Close()
			if err != nil {
				return err
			}

			return runUntilSignal(cmd.Context(), func(sctx context.Context) error {
				eth, err := ctx.Config.Ethereum.Build(sctx)
				if err != nil {
					return err
				}
				defer eth.Close()
				if from == 0 {
					if from, err = eth.LatestHeight(sctx); err != nil {
						return err
					}
				}
				chain := otelcore.NewEthereumChain(eth, otel.Tracer("github.com/peggy-bridge/orchestrator/otelcore"))
				scanner := witness.NewScanner(chain, ctx.Config.Bridge.Contract(), decoder, witness.LogForwarder{}, from, interval)
				return scanner.Run(sctx)
			})
		},
	}

	cmd.Flags().String(flagABI, "", "path to the JSON ABI of the bridge contract")
	cmd.Flags().String(flagEvent, "SendToCosmosEvent", "name of the event to watch")
	cmd.Flags().Uint64(flagFromBlock, 0, "first block to scan, 0 for the latest block")
	cmd.Flags().Duration(flagInterval, 5*time.Second, "polling interval")
	if err := cmd.MarkFlagRequired(flagABI); err != nil {
		panic(err)
	}
	return cmd
}
