package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/snowlang/snow/internal/backend"
	"github.com/snowlang/snow/internal/config"
	"github.com/snowlang/snow/internal/errors"
	"github.com/snowlang/snow/internal/mir"
	"github.com/snowlang/snow/internal/pipeline"
)

var (
	compileConfigPath string
	dumpMIR           bool
	dumpLayout        bool
)

// newCompileCmd runs the full pipeline (parse, lower, pattern check,
// layout) over a file and reports diagnostics the way the teacher's
// runFile/checkFile commands do, via internal/errors.Renderer rather than
// hand-rolled fmt.Printf calls.
func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "Compile a Snow source file and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(args[0])
		},
	}
	cmd.Flags().StringVar(&compileConfigPath, "config", "snow.yaml", "project config file")
	cmd.Flags().BoolVar(&dumpMIR, "dump-mir", false, "print the lowered MIR module's declaration names")
	cmd.Flags().BoolVar(&dumpLayout, "dump-layout", false, "print backend layout decisions for every sum type")
	return cmd
}

func runCompile(path string) error {
	cfg, err := config.Load(compileConfigPath)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	pcfg := pipeline.DefaultConfig()
	pcfg.Target = backend.TargetInfo{PointerSize: cfg.Target.PointerSize}

	result := pipeline.Run(pcfg, pipeline.Source{Code: string(src), Filename: path})

	renderer := errors.NewRenderer(os.Stdout, true)
	renderer.Source = map[string][]byte{path: src}
	renderer.RenderAll(result.Reports)

	if dumpMIR && result.Artifacts.Module != nil {
		dumpModule(result.Artifacts.Module)
	}
	if dumpLayout {
		dumpLayouts(result.Layouts)
	}

	if result.HasErrors() {
		return fmt.Errorf("%s: compilation failed with %d diagnostic(s)", path, len(result.Reports))
	}
	fmt.Fprintf(os.Stdout, "%s: %s\n", path, green("ok"))
	return nil
}

func dumpModule(mod *mir.MirModule) {
	fmt.Fprintln(os.Stdout, bold("functions:"))
	for _, name := range sortedKeys(mod.Functions) {
		fmt.Fprintf(os.Stdout, "  %s\n", name)
	}
	fmt.Fprintln(os.Stdout, bold("structs:"))
	for _, name := range sortedKeys(mod.Structs) {
		fmt.Fprintf(os.Stdout, "  %s\n", name)
	}
	fmt.Fprintln(os.Stdout, bold("sum types:"))
	for _, name := range sortedKeys(mod.SumTypes) {
		fmt.Fprintf(os.Stdout, "  %s\n", name)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func dumpLayouts(layouts []pipeline.LayoutReport) {
	names := make([]string, len(layouts))
	byName := make(map[string]pipeline.LayoutReport, len(layouts))
	for i, l := range layouts {
		names[i] = l.TypeName
		byName[l.TypeName] = l
	}
	sort.Strings(names)
	for _, name := range names {
		l := byName[name]
		fmt.Fprintf(os.Stdout, "%s: %s\n", bold(name), layoutKindName(l.Layout.Kind, l.Layout.NBytes))
	}
}

func layoutKindName(kind backend.LayoutKind, nbytes int) string {
	switch kind {
	case backend.LayoutTagOnly:
		return "tag-only"
	case backend.LayoutPtr:
		return "tagged-pointer"
	case backend.LayoutBytes:
		return fmt.Sprintf("tagged-bytes(%d)", nbytes)
	default:
		return "unknown"
	}
}
