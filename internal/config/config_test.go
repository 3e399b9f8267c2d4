package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasWarningBudgetTwenty(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 20, cfg.WarningBudget)
	assert.Empty(t, cfg.SearchPath)
}

func TestLoadWithNoPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.WarningBudget)
}

func TestLoadParsesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nilva.yaml")
	content := "stdlib_path: /opt/nilva/stdlib\nsearch_path:\n  - /extra/one\n  - /extra/two\nwarning_budget: 5\ntarget_triple: x86_64-linux\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/nilva/stdlib", cfg.StdlibPath)
	assert.Equal(t, []string{"/extra/one", "/extra/two"}, cfg.SearchPath)
	assert.Equal(t, 5, cfg.WarningBudget)
	assert.Equal(t, "x86_64-linux", cfg.TargetTriple)
}

func TestLoadMissingFileIsAnError(t *testing.T) {
	_, err := Load("/nonexistent/nilva.yaml")
	assert.Error(t, err)
}

func TestLoadClampsNonPositiveWarningBudget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nilva.yaml")
	require.NoError(t, os.WriteFile(path, []byte("warning_budget: 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.WarningBudget)
}

func TestEnvStdlibOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nilva.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stdlib_path: /file/stdlib\n"), 0o644))

	t.Setenv(envStdlib, "/env/stdlib")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/stdlib", cfg.StdlibPath)
}

func TestEnvPathAppendsColonSeparatedEntries(t *testing.T) {
	t.Setenv(envPath, "/a:/b:/c")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b", "/c"}, cfg.SearchPath)
}
