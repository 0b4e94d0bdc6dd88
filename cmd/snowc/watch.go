package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/snowlang/snow/internal/config"
	"github.com/snowlang/snow/internal/errors"
	"github.com/snowlang/snow/internal/loader"
)

// newWatchCmd rechecks every module under a project root every time one
// of its .snow files changes on disk. Grounded on
// theRebelliousNerd-codenerd's MangleWatcher: an fsnotify.Watcher plus a
// debounce window absorbing the burst of events an editor's save
// generates, generalized here from a single watched directory of .mg
// files to every directory loader.Discover finds .snow files under.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [ROOT]",
		Short: "Recheck a project's modules every time a source file changes",
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
			return runWatch(root, time.Duration(cfg.Watch.DebounceMillis)*time.Millisecond)
		},
	}
}

func runWatch(root string, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchedDirs(watcher, root); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "watching %s (%s)\n", bold(root), dim(debounce.String()+" debounce"))
	recheckProject(root)

	var lastRun time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if time.Since(lastRun) < debounce {
				continue
			}
			lastRun = time.Now()
			fmt.Fprintf(os.Stdout, "\n%s %s\n", cyan("rerun"), event.Name)
			recheckProject(root)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, red("watch error: "+err.Error()))
		}
	}
}

// addWatchedDirs watches root plus every directory a discovered .snow
// file lives in; fsnotify doesn't watch subtrees recursively on its own.
func addWatchedDirs(watcher *fsnotify.Watcher, root string) error {
	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	paths, err := loader.Discover(root)
	if err != nil {
		return fmt.Errorf("failed to discover modules under %s: %w", root, err)
	}
	seen := map[string]bool{root: true}
	for _, rel := range paths {
		dir := filepath.Join(root, filepath.Dir(rel))
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := watcher.Add(dir); err != nil {
			fmt.Fprintln(os.Stderr, red("warning: failed to watch "+dir+": "+err.Error()))
		}
	}
	return nil
}

func recheckProject(root string) {
	graph, reports := loader.Load(root)

	renderer := errors.NewRenderer(os.Stdout, true)
	renderer.RenderAll(reports)

	if graph == nil {
		fmt.Fprintln(os.Stderr, red("failed to load project"))
		return
	}
	if len(reports) > 0 {
		fmt.Fprintf(os.Stdout, "%s %d module(s), %d diagnostic(s)\n", red("fail:"), len(graph.Modules), len(reports))
		return
	}
	fmt.Fprintf(os.Stdout, "%s %d module(s)\n", green("ok:"), len(graph.Modules))
}
