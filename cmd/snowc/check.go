package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snowlang/snow/internal/errors"
	"github.com/snowlang/snow/internal/pipeline"
)

// newCheckCmd runs parsing, lowering and pattern-exhaustiveness checking
// without computing backend layouts: a cheap diagnostics-only pass over
// one file.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Check a Snow source file for diagnostics without compiling layouts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := checkFile(args[0])
			if err != nil {
				return err
			}
			if len(reports) > 0 {
				return fmt.Errorf("%s: %d diagnostic(s)", args[0], len(reports))
			}
			fmt.Fprintf(os.Stdout, "%s: %s\n", args[0], green("ok"))
			return nil
		},
	}
}

// checkFile runs the cheap half of the pipeline and renders any
// diagnostics found; the check subcommand calls it.
func checkFile(path string) ([]*errors.Report, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := pipeline.Config{CheckPatterns: true, ComputeLayout: false}
	result := pipeline.Run(cfg, pipeline.Source{Code: string(src), Filename: path})

	renderer := errors.NewRenderer(os.Stdout, true)
	renderer.Source = map[string][]byte{path: src}
	renderer.RenderAll(result.Reports)

	return result.Reports, nil
}
