package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/format"
	"github.com/snowlang/snow/internal/lexer"
)

var fmtWrite bool

// newFmtCmd reformats a Snow source file, following gofmt's convention of
// printing to stdout unless -w is given.
func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Format a Snow source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(args[0])
		},
	}
	cmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to the source file instead of stdout")
	return cmd
}

func runFmt(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	toks := lexer.New(string(src), path).Tokenize()
	node, errs := cst.Parse(toks)
	if len(errs) > 0 {
		return fmt.Errorf("%s: %d parse error(s), not formatting", path, len(errs))
	}

	out := format.Format(cst.NewFile(node))

	if !fmtWrite {
		fmt.Fprint(os.Stdout, out)
		return nil
	}
	if out == string(src) {
		return nil
	}
	return os.WriteFile(path, []byte(out), 0o644)
}
