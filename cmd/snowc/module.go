package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snowlang/snow/internal/config"
	"github.com/snowlang/snow/internal/errors"
	"github.com/snowlang/snow/internal/loader"
)

// newModuleCmd groups module-discovery subcommands under `snowc module`,
// the way cobra trees nest multi-word commands (graph, later: list, why).
func newModuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module",
		Short: "Inspect a project's module graph",
	}
	cmd.AddCommand(newGraphCmd())
	return cmd
}

// newGraphCmd loads every module under a project root and prints its
// dependency-ordered compilation order, the offline counterpart to what a
// language server's workspace-symbols view would otherwise compute. With
// no ROOT argument it falls back to snow.yaml's module_root.
func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [ROOT]",
		Short: "Print a project's module dependency graph in compilation order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("snow.yaml")
			if err != nil {
				return err
			}
			root := cfg.ModuleRoot
			if len(args) == 1 {
				root = args[0]
			}
			return runGraph(root, cfg.EntryModule)
		},
	}
}

func runGraph(root, entryModule string) error {
	graph, reports := loader.Load(root)

	renderer := errors.NewRenderer(os.Stdout, true)
	renderer.RenderAll(reports)

	if graph == nil {
		return fmt.Errorf("failed to load project at %s", root)
	}

	for i, name := range graph.Order {
		mod := graph.Modules[name]
		marker := ""
		if name == entryModule {
			marker = " " + green("(entry)")
		}
		fmt.Fprintf(os.Stdout, "%2d. %s %s%s\n", i+1, bold(name), dim("("+mod.Path+")"), marker)
		for _, imp := range mod.Imports {
			fmt.Fprintf(os.Stdout, "      imports %s\n", cyan(imp))
		}
	}
	if _, ok := graph.Modules[entryModule]; !ok {
		fmt.Fprintf(os.Stdout, "%s entry module %s not found among discovered modules\n", yellow("warning:"), entryModule)
	}

	if len(reports) > 0 {
		return fmt.Errorf("module graph has %d error(s)", len(reports))
	}
	return nil
}
