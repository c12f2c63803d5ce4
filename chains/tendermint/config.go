package tendermint

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// ChainConfig is the `cosmos` section of the config file.
// Heights are read from the CometBFT RPC endpoint, or from the LCD REST endpoint when rpc_addr is empty.
type ChainConfig struct {
	ChainID       string `mapstructure:"chain_id" json:"chain_id" yaml:"chain_id"`
	RPCAddr       string `mapstructure:"rpc_addr" json:"rpc_addr,omitempty" yaml:"rpc_addr,omitempty"`
	LCDAddr       string `mapstructure:"lcd_addr" json:"lcd_addr,omitempty" yaml:"lcd_addr,omitempty"`
	AccountPrefix string `mapstructure:"account_prefix" json:"account_prefix" yaml:"account_prefix"`

	// Timeout bounds every request to the node. Zero means the default.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// the signing key is given as a mnemonic, a file holding one, or a hex encoded private key
	Mnemonic     string `mapstructure:"mnemonic" json:"mnemonic,omitempty" yaml:"mnemonic,omitempty"`
	MnemonicFile string `mapstructure:"mnemonic_file" json:"mnemonic_file,omitempty" yaml:"mnemonic_file,omitempty"`
	PrivateKey   string `mapstructure:"private_key" json:"private_key,omitempty" yaml:"private_key,omitempty"`
	HDPath       string `mapstructure:"hd_path" json:"hd_path,omitempty" yaml:"hd_path,omitempty"`
}

func (c ChainConfig) Validate() error {
	isEmpty := func(s string) bool {
		return strings.TrimSpace(s) == ""
	}

	var errs []error
	if isEmpty(c.ChainID) {
		errs = append(errs, fmt.Errorf("config attribute \"chain_id\" is empty"))
	}
	if isEmpty(c.RPCAddr) && isEmpty(c.LCDAddr) {
		errs = append(errs, fmt.Errorf("either config attribute \"rpc_addr\" or \"lcd_addr\" must be set"))
	}
	if isEmpty(c.AccountPrefix) {
		errs = append(errs, fmt.Errorf("config attribute \"account_prefix\" is empty"))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("config attribute \"timeout\" is negative: %v", c.Timeout))
	}
	keySources := 0
	for _, s := range []string{c.Mnemonic, c.MnemonicFile, c.PrivateKey} {
		if !isEmpty(s) {
			keySources++
		}
	}
	if keySources > 1 {
		errs = append(errs, fmt.Errorf("config attributes \"mnemonic\", \"mnemonic_file\" and \"private_key\" are exclusive"))
	}

	// errors.Join returns nil if len(errs) == 0
	return errors.Join(errs...)
}

func (c ChainConfig) timeout() time.Duration {
	if c.Timeout == 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// Build returns a chain client. No request is sent to the node.
func (c ChainConfig) Build() (*Chain, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var (
		q   heightQuerier
		err error
	)
	if c.RPCAddr != "" {
		q, err = newRPCQuerier(c.RPCAddr, c.timeout())
		if err != nil {
			return nil, fmt.Errorf("failed to create rpc client for %s: %w", c.RPCAddr, err)
		}
		GetChainLogger().Debug("using rpc endpoint", "chain_id", c.ChainID, "rpc_addr", c.RPCAddr)
	} else {
		q = newLCDQuerier(c.LCDAddr, c.timeout())
		GetChainLogger().Debug("using lcd endpoint", "chain_id", c.ChainID, "lcd_addr", c.LCDAddr)
	}
	return &Chain{config: c, querier: q}, nil
}
