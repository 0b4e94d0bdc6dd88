// Command snowc is the Snow toolchain driver: compile, check, format,
// repl, module-graph and language-server entry points over the
// internal/pipeline, internal/loader and internal/format packages.
//
// Grounded on the teacher's cmd/ailang/main.go for the overall command
// set (run/repl/check/watch/lsp) and the colored-output conventions, but
// rebuilt on spf13/cobra's subcommand tree instead of stdlib flag — the
// same upgrade theRebelliousNerd-codenerd's cmd/nerd/main.go makes, with
// a persistent --verbose flag driving a zap logger the same way.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  *zap.Logger

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "snowc",
	Short: "Snow toolchain: compile, check, format and run Snow programs",
	Long: `snowc drives the Snow compiler pipeline: parsing, pattern-exhaustiveness
checking, memory layout computation, module loading and source formatting.

Run a subcommand, or "snowc repl" with no file to start the interactive shell.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = ""
		if !verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newCompileCmd(),
		newCheckCmd(),
		newFmtCmd(),
		newReplCmd(),
		newModuleCmd(),
		newWatchCmd(),
		newLSPCmd(),
	)
}

func main() {
	// Copies a .env file in the working directory, if any, into the
	// process environment; a missing file is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
}
