package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".", cfg.ModuleRoot)
	assert.Equal(t, "Main", cfg.EntryModule)
	assert.Equal(t, 8, cfg.Target.PointerSize)
	assert.Equal(t, 80, cfg.Format.Width)
	assert.Equal(t, 300, cfg.Watch.DebounceMillis)
	assert.Equal(t, 1, cfg.Dist.WorkerCount)
	assert.Empty(t, cfg.Dist.NodeName)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "snow.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverlaysPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snow.yaml")
	writeFile(t, path, "format:\n  width: 100\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Format.Width)
	assert.Equal(t, 8, cfg.Target.PointerSize, "unset fields keep their default")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snow.yaml")
	writeFile(t, path, "format: [this is not a mapping\n")

	_, err := Load(path)
	require.Error(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
}
