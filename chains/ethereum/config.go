package ethereum

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ChainConfig is the `ethereum` section of the config file
type ChainConfig struct {
	// ChainID is compared against the id reported by the node when it is not empty
	ChainID        string `mapstructure:"chain_id" json:"chain_id" yaml:"chain_id"`
	RPCAddr        string `mapstructure:"rpc_addr" json:"rpc_addr" yaml:"rpc_addr"`
	PrivateKey     string `mapstructure:"private_key" json:"private_key,omitempty" yaml:"private_key,omitempty"`
	PrivateKeyFile string `mapstructure:"private_key_file" json:"private_key_file,omitempty" yaml:"private_key_file,omitempty"`
}

func (c ChainConfig) Validate() error {
	var errs []error
	if c.RPCAddr == "" {
		errs = append(errs, fmt.Errorf("config attribute \"rpc_addr\" is empty"))
	} else if _, err := url.Parse(c.RPCAddr); err != nil {
		errs = append(errs, fmt.Errorf("config attribute \"rpc_addr\" is invalid: %v", err))
	}
	if c.PrivateKey != "" && c.PrivateKeyFile != "" {
		errs = append(errs, fmt.Errorf("config attributes \"private_key\" and \"private_key_file\" are exclusive"))
	}
	return errors.Join(errs...)
}

// Build dials the node and returns a chain client
func (c ChainConfig) Build(ctx context.Context) (*Chain, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return Dial(ctx, c.RPCAddr, c.ChainID)
}
