package cmd

import (
	"fmt"
	"io"
	"reflect"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/peggy-bridge/orchestrator/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func modulesCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "show the relayer modules linked into this binary",
		RunE:  noCommand,
	}

	cmd.AddCommand(
		showModulesCmd(ctx),
	)

	return cmd
}

func showModulesCmd(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Lists the relayer modules, marking the one selected by `relayer.type` and printing its default params",
		RunE: func(cmd *cobra.Command, args []string) error {
			bi, _ := debug.ReadBuildInfo()
			return describeModules(cmd.OutOrStdout(), ctx.Modules, ctx.Config.Relayer.Type, func(m config.ModuleI) string {
				return moduleVersion(bi, m)
			})
		},
	}
	return cmd
}

// describeModules writes one line per module sorted by name.
// The module named `selected` is prefixed with `*` and followed by its default relayer params.
func describeModules(w io.Writer, modules []config.ModuleI, selected string, version func(config.ModuleI) string) error {
	sorted := slices.Clone(modules)
	slices.SortFunc(sorted, func(a, b config.ModuleI) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, m := range sorted {
		mark := " "
		if m.Name() == selected {
			mark = "*"
		}
		line := mark + " " + m.Name()
		if v := version(m); v != "" {
			line += " " + v
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if m.Name() != selected {
			continue
		}

		params, err := yaml.Marshal(m.RelayerConfig())
		if err != nil {
			return fmt.Errorf("failed to marshal the default params of module %s: %w", m.Name(), err)
		}
		for _, l := range strings.Split(strings.TrimRight(string(params), "\n"), "\n") {
			if _, err := fmt.Fprintln(w, "    "+l); err != nil {
				return err
			}
		}
	}
	return nil
}

// moduleVersion returns the path and version of the go module providing m, or "" if the build info does not say
func moduleVersion(info *debug.BuildInfo, m config.ModuleI) string {
	if info == nil {
		return ""
	}

	pkgPath := reflect.TypeOf(m).PkgPath()
	if info.Main.Path != "" && strings.HasPrefix(pkgPath, info.Main.Path) {
		return info.Main.Path + " " + info.Main.Version
	}
	i := slices.IndexFunc(info.Deps, func(dm *debug.Module) bool {
		return strings.HasPrefix(pkgPath, dm.Path)
	})
	if i == -1 {
		return ""
	}
	return info.Deps[i].Path + " " + info.Deps[i].Version
}
