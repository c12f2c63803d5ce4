package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/peggy-bridge/orchestrator/core"
)

type Context struct {
	Modules  []ModuleI
	Config   *Config
	HomePath string
}

// Module returns the registered module of the given name
func (ctx *Context) Module(name string) (ModuleI, error) {
	for _, m := range ctx.Modules {
		if m.Name() == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("relayer module not found: type=%q", name)
}

// RelayerConfig decodes `relayer.params` into the configuration of the module selected by `relayer.type`
func (ctx *Context) RelayerConfig() (core.RelayerConfig, error) {
	m, err := ctx.Module(ctx.Config.Relayer.Type)
	if err != nil {
		return nil, err
	}
	rc := m.RelayerConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHook(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           rc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(ctx.Config.Relayer.Params); err != nil {
		return nil, fmt.Errorf("failed to decode params of relayer %q: %w", m.Name(), err)
	}
	if err := rc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params of relayer %q: %w", m.Name(), err)
	}
	return rc, nil
}

// BuildRelayers builds the relayers of the module selected by `relayer.type`
func (ctx *Context) BuildRelayers() (*core.Relayers, error) {
	rc, err := ctx.RelayerConfig()
	if err != nil {
		return nil, err
	}
	return rc.Build()
}
