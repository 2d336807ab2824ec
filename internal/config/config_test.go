package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-simex/internal/config"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, `
project: run1
modules:
  - Source
  - Propagator
catalog: modules.yaml
strict_contracts: true
log:
  level: debug
  format: json
`)

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "run1", settings.Project)
	assert.Equal(t, []string{"Source", "Propagator"}, settings.Modules)
	assert.True(t, settings.StrictContracts)
	assert.Equal(t, filepath.Dir(path), settings.Dir)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "modules.yaml"), settings.CatalogPath())
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, "json", settings.Log.Format)
	assert.Equal(t, "stderr", settings.Log.Output)
}

func TestLoadWithoutModules(t *testing.T) {
	t.Parallel()

	settings, err := config.Load(writeSettings(t, "project: empty\n"))
	require.NoError(t, err)
	assert.Nil(t, settings.Modules)
	assert.Empty(t, settings.CatalogPath())
	assert.Equal(t, "info", settings.Log.Level)
	assert.Equal(t, "text", settings.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SIMEX_PROJECT", "fromenv")
	t.Setenv("SIMEX_LOG_LEVEL", "warn")

	settings, err := config.Load(writeSettings(t, "project: run1\n"))
	require.NoError(t, err)
	assert.Equal(t, "fromenv", settings.Project)
	assert.Equal(t, "warn", settings.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content string
	}{
		"no project":     {content: "modules: [Source]\n"},
		"project path":   {content: "project: a/b\n"},
		"project space":  {content: "project: \"run 1\"\n"},
		"log level":      {content: "project: run1\nlog:\n  level: loud\n"},
		"log format":     {content: "project: run1\nlog:\n  format: xml\n"},
		"log output":     {content: "project: run1\nlog:\n  output: syslog\n"},
		"log file path":  {content: "project: run1\nlog:\n  output: file\n"},
		"malformed yaml": {content: "project: [run1\n"},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(writeSettings(t, tc.content))
			assert.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateProjectRequired(t *testing.T) {
	t.Parallel()

	settings := &config.Settings{Log: config.LogConfig{Level: "info", Format: "text", Output: "stdout"}}
	assert.ErrorIs(t, settings.Validate(), config.ErrProjectRequired)

	settings.Project = "run1"
	assert.NoError(t, settings.Validate())
}
