// File: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Viper holds global state, so these tests reset it and cannot run in
// parallel with each other.

// chdirTemp switches to a fresh temp directory for the duration of the
// test (t.Chdir requires Go 1.24+).
func chdirTemp(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestInit_DefaultsWithoutConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdirTemp(t)

	require.NoError(t, Init(""))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "jakarta-cli", cfg.Logger.ServiceName)
	assert.Equal(t, 30*time.Second, cfg.Verifier.Timeout)
	assert.Equal(t, "java", cfg.Verifier.JavaBin)
	assert.Equal(t, 5000, cfg.Planner.MaxSourceFiles)
	assert.Empty(t, cfg.Analysis.MappingTablePath)
}

func TestInit_ExplicitConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logger:
  level: debug
verifier:
  timeout: 90s
  java_bin: /opt/jdk17/bin/java
analysis:
  mapping_table_path: /etc/jakarta/mappings.json
`), 0644))

	require.NoError(t, Init(path))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 90*time.Second, cfg.Verifier.Timeout)
	assert.Equal(t, "/opt/jdk17/bin/java", cfg.Verifier.JavaBin)
	assert.Equal(t, "/etc/jakarta/mappings.json", cfg.Analysis.MappingTablePath)
	// Untouched keys keep their defaults.
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestInit_MissingExplicitFileIsAnError(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	err := Init(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInit_EnvironmentOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdirTemp(t)
	t.Setenv("JAKARTA_LOGGER_LEVEL", "warn")
	t.Setenv("JAKARTA_VERIFIER_JAVA_BIN", "java21")

	require.NoError(t, Init(""))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "java21", cfg.Verifier.JavaBin)
}
