package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/snowlang/snow/internal/config"
	"github.com/snowlang/snow/internal/dist"
	"github.com/snowlang/snow/internal/repl"
)

var (
	buildVersion   = "dev"
	buildTimestamp = "unknown"
)

// newReplCmd starts the interactive shell, the teacher CLI's default
// command when invoked with no file argument.
func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive Snow shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("snow.yaml")
			if err != nil {
				return err
			}
			nodeName := cfg.Dist.NodeName
			if nodeName == "" {
				nodeName = dist.NewNodeName("repl")
			}
			logger.Sugar().Debugf("starting repl as node %s with %d worker(s)", nodeName, cfg.Dist.WorkerCount)
			repl.NewWithVersion(buildVersion, buildTimestamp).Start(os.Stdin, os.Stdout)
			return nil
		},
	}
}
