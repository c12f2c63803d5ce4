package cmd

import (
	"fmt"

	"github.com/peggy-bridge/orchestrator/chains/ethereum"
	"github.com/peggy-bridge/orchestrator/chains/tendermint"
	"github.com/peggy-bridge/orchestrator/config"
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/spf13/cobra"
)

func keysCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keys",
		Aliases: []string{"k"},
		Short:   "manage the orchestrator keys",
		RunE:    noCommand,
	}

	cmd.AddCommand(
		keysShowCmd(ctx),
		keysMnemonicCmd(ctx),
	)

	return cmd
}

func keysShowCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Shows the cosmos and ethereum addresses of the configured keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := loadKeys(ctx.Config)
			if err != nil {
				return err
			}
			cosmosAddr, err := tendermint.Address(ctx.Config.Cosmos.AccountPrefix, keys.Cosmos)
			if err != nil {
				return err
			}
			fmt.Printf("cosmos:   %s\n", cosmosAddr)
			fmt.Printf("ethereum: %s\n", ethereum.Address(keys.Ethereum).Hex())
			return nil
		},
	}
	return cmd
}

func keysMnemonicCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generates a new bip39 mnemonic for the cosmos key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mnemonic, err := tendermint.CreateMnemonic()
			if err != nil {
				return err
			}
			fmt.Println(mnemonic)
			return nil
		},
	}
	return cmd
}

func loadKeys(c *config.Config) (core.Keys, error) {
	cosmosKey, err := c.Cosmos.PrivKey()
	if err != nil {
		return core.Keys{}, fmt.Errorf("cosmos: %w", err)
	}
	ethKey, err := ethereum.ResolvePrivateKey(c.Ethereum.PrivateKey, c.Ethereum.PrivateKeyFile)
	if err != nil {
		return core.Keys{}, fmt.Errorf("ethereum: %w", err)
	}
	return core.Keys{Cosmos: cosmosKey, Ethereum: ethKey}, nil
}
