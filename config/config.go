package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"
	"github.com/peggy-bridge/orchestrator/chains/ethereum"
	"github.com/peggy-bridge/orchestrator/chains/tendermint"
	"github.com/peggy-bridge/orchestrator/checkpoint"
	"github.com/peggy-bridge/orchestrator/core"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	DefaultLoopInterval = 10 * time.Second
	DefaultTimeout      = 10 * time.Second

	envPrefix = "PEGGO"
)

type Config struct {
	Global     GlobalConfig           `mapstructure:"global" json:"global" yaml:"global"`
	Cosmos     tendermint.ChainConfig `mapstructure:"cosmos" json:"cosmos" yaml:"cosmos"`
	Ethereum   ethereum.ChainConfig   `mapstructure:"ethereum" json:"ethereum" yaml:"ethereum"`
	Bridge     BridgeConfig           `mapstructure:"bridge" json:"bridge" yaml:"bridge"`
	Checkpoint checkpoint.Config      `mapstructure:"checkpoint" json:"checkpoint" yaml:"checkpoint"`
	Relayer    RelayerConfig          `mapstructure:"relayer" json:"relayer" yaml:"relayer"`

	// ConfigPath is the file the config was loaded from
	ConfigPath string `mapstructure:"-" json:"-" yaml:"-"`
}

type GlobalConfig struct {
	// Timeout bounds the RPCs made by one-shot commands such as `query`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
	LogLevel  string        `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	LogFormat string        `mapstructure:"log_format" json:"log_format" yaml:"log_format"`
	LogOutput string        `mapstructure:"log_output" json:"log_output" yaml:"log_output"`
}

// BridgeConfig holds the parameters of the relay loop
type BridgeConfig struct {
	ContractAddress string `mapstructure:"contract_address" json:"contract_address" yaml:"contract_address"`
	FeeDenom        string `mapstructure:"fee_denom" json:"fee_denom" yaml:"fee_denom"`
	FeeAmount       uint64 `mapstructure:"fee_amount" json:"fee_amount" yaml:"fee_amount"`

	LoopInterval time.Duration `mapstructure:"loop_interval" json:"loop_interval" yaml:"loop_interval"`

	// RelayTimeout bounds each relay call. Zero disables the bound.
	RelayTimeout time.Duration `mapstructure:"relay_timeout" json:"relay_timeout,omitempty" yaml:"relay_timeout,omitempty"`
}

// RelayerConfig selects the relayer module and carries its module specific parameters
type RelayerConfig struct {
	Type   string         `mapstructure:"type" json:"type" yaml:"type"`
	Params map[string]any `mapstructure:"params" json:"params,omitempty" yaml:"params,omitempty"`
}

func DefaultConfig(configPath string) Config {
	return Config{
		Global: GlobalConfig{
			Timeout:   DefaultTimeout,
			LogLevel:  "INFO",
			LogFormat: "json",
			LogOutput: "stderr",
		},
		Cosmos: tendermint.ChainConfig{
			ChainID:       "peggy-1",
			RPCAddr:       "http://localhost:26657",
			AccountPrefix: "cosmos",
		},
		Ethereum: ethereum.ChainConfig{
			RPCAddr: "http://localhost:8545",
		},
		Bridge: BridgeConfig{
			FeeDenom:     "stake",
			FeeAmount:    core.DefaultFeeAmount,
			LoopInterval: DefaultLoopInterval,
		},
		Checkpoint: checkpoint.DefaultConfig(),
		Relayer: RelayerConfig{
			Type: "debug",
		},
		ConfigPath: configPath,
	}
}

func (c GlobalConfig) Validate() error {
	var errs []error
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("config attribute \"global.timeout\" must be positive: %v", c.Timeout))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("config attribute \"global.log_level\" is invalid: %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config attribute \"global.log_format\" is invalid: %q", c.LogFormat))
	}
	switch strings.ToLower(c.LogOutput) {
	case "stdout", "stderr":
	default:
		errs = append(errs, fmt.Errorf("config attribute \"global.log_output\" is invalid: %q", c.LogOutput))
	}
	return errors.Join(errs...)
}

func (c BridgeConfig) Validate() error {
	var errs []error
	if !common.IsHexAddress(c.ContractAddress) {
		errs = append(errs, fmt.Errorf("config attribute \"bridge.contract_address\" is not a hex address: %q", c.ContractAddress))
	}
	if _, err := c.FeePolicy(); err != nil {
		errs = append(errs, err)
	}
	if c.LoopInterval <= 0 {
		errs = append(errs, fmt.Errorf("config attribute \"bridge.loop_interval\" must be positive: %v", c.LoopInterval))
	}
	if c.RelayTimeout < 0 {
		errs = append(errs, fmt.Errorf("config attribute \"bridge.relay_timeout\" must not be negative: %v", c.RelayTimeout))
	}
	return errors.Join(errs...)
}

func (c BridgeConfig) Contract() common.Address {
	return common.HexToAddress(c.ContractAddress)
}

func (c BridgeConfig) FeePolicy() (*core.FeePolicy, error) {
	return core.NewFeePolicy(c.FeeDenom, c.FeeAmount)
}

// Validate accumulates the problems of every section
func (c Config) Validate() error {
	var errs []error
	if err := c.Global.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Cosmos.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("cosmos: %w", err))
	}
	if err := c.Ethereum.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ethereum: %w", err))
	}
	if err := c.Bridge.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Checkpoint.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("checkpoint: %w", err))
	}
	if c.Relayer.Type == "" {
		errs = append(errs, fmt.Errorf("config attribute \"relayer.type\" is empty"))
	}
	return errors.Join(errs...)
}

// Load reads the config file on top of the defaults.
// Keys present in the file can be overridden by PEGGO_<SECTION>_<KEY> environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	c := DefaultConfig(configPath)
	if err := v.Unmarshal(&c, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", configPath, err)
	}
	c.ConfigPath = configPath
	return &c, nil
}

// WriteYAML writes the config to its ConfigPath, creating the parent directory
func (c Config) WriteYAML() error {
	bz, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.ConfigPath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.ConfigPath, bz, 0o600)
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
