// Package config loads the optional project settings file (snow.yaml)
// that the snowc CLI reads alongside command-line flags. Grounded on
// theRebelliousNerd-codenerd's internal/config.Config/DefaultConfig/Load
// shape: a struct of nested, yaml-tagged sub-structs with a constructor
// producing sane defaults and a loader that falls back to those defaults
// when the file is simply absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TargetConfig controls the backend layout target snowc compiles against.
type TargetConfig struct {
	PointerSize int `yaml:"pointer_size"`
}

// FormatConfig controls internal/format's rendering width.
type FormatConfig struct {
	Width int `yaml:"width"`
}

// WatchConfig controls the watch subcommand's debounce behavior.
type WatchConfig struct {
	DebounceMillis int `yaml:"debounce_millis"`
}

// DistConfig names this node for internal/dist's cluster membership and
// sizes the actor runtime's worker pool.
type DistConfig struct {
	NodeName    string `yaml:"node_name"`
	WorkerCount int    `yaml:"worker_count"`
}

// Config is the full set of project settings snow.yaml can carry: the
// module root a `snowc module graph`/`watch` run with no path argument
// defaults to, the entry module, plus the target/format/watch/dist
// settings each subcommand reads.
type Config struct {
	ModuleRoot  string       `yaml:"module_root"`
	EntryModule string       `yaml:"entry_module"`
	Target      TargetConfig `yaml:"target"`
	Format      FormatConfig `yaml:"format"`
	Watch       WatchConfig  `yaml:"watch"`
	Dist        DistConfig   `yaml:"dist"`
}

// DefaultConfig returns the settings snowc uses when no snow.yaml is
// present: the current directory as module root, Main as entry module, a
// 64-bit target, 80-column formatting, a 300ms watch debounce, and a
// single-worker, unnamed dist node (NodeName empty tells internal/dist to
// mint one via NewNodeName).
func DefaultConfig() *Config {
	return &Config{
		ModuleRoot:  ".",
		EntryModule: "Main",
		Target:      TargetConfig{PointerSize: 8},
		Format:      FormatConfig{Width: 80},
		Watch:       WatchConfig{DebounceMillis: 300},
		Dist:        DistConfig{WorkerCount: 1},
	}
}

// Load reads path and unmarshals it over the defaults, so a snow.yaml
// that only sets one field doesn't blank out the rest. A missing file is
// not an error: Load returns the defaults, letting callers treat "no
// project config" and "default project config" identically.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
