package cmd

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/peggy-bridge/orchestrator/config"
	debugmodule "github.com/peggy-bridge/orchestrator/relayers/debug/module"
	mockmodule "github.com/peggy-bridge/orchestrator/relayers/mock/module"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noVersion(config.ModuleI) string { return "" }

func TestDescribeModules(t *testing.T) {
	modules := []config.ModuleI{mockmodule.Module{}, debugmodule.Module{}}

	var buf bytes.Buffer
	require.NoError(t, describeModules(&buf, modules, "debug", noVersion))
	assert.Equal(t, "* debug\n    blocks_per_query: 1000\n  mock\n", buf.String())

	buf.Reset()
	require.NoError(t, describeModules(&buf, modules, "mock", func(m config.ModuleI) string { return "v0.1.0" }))
	assert.Equal(t, "  debug v0.1.0\n* mock v0.1.0\n    fail_every: 0\n    event_step: 10\n    latency: 0s\n", buf.String())

	buf.Reset()
	require.NoError(t, describeModules(&buf, modules, "unknown", noVersion))
	assert.Equal(t, "  debug\n  mock\n", buf.String())
}

func TestModuleVersion(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/peggy-bridge/orchestrator", Version: "(devel)"},
		Deps: []*debug.Module{{Path: "github.com/spf13/cobra", Version: "v1.8.0"}},
	}
	assert.Equal(t, "github.com/peggy-bridge/orchestrator (devel)", moduleVersion(info, mockmodule.Module{}))
	assert.Empty(t, moduleVersion(nil, mockmodule.Module{}))

	info.Main.Path = "example.com/other"
	assert.Empty(t, moduleVersion(info, mockmodule.Module{}))
}
