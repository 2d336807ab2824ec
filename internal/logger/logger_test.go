package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-simex/internal/config"
	"github.com/askiada/go-simex/internal/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in       string
		expected slog.Level
		wantErr  bool
	}{
		"debug":   {in: "debug", expected: slog.LevelDebug},
		"upper":   {in: "INFO", expected: slog.LevelInfo},
		"warning": {in: "warning", expected: slog.LevelWarn},
		"error":   {in: "error", expected: slog.LevelError},
		"unknown": {in: "loud", expected: slog.LevelInfo, wantErr: true},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			level, err := logger.ParseLevel(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := logger.New(config.LogConfig{Level: "warn", Format: "json"}, buf)
	require.NoError(t, err)

	log.Info("hidden")
	logger.WithRunID(log, "abc").Warn("shown", "stage", "Source")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "abc", record["run_id"])
	assert.Equal(t, "Source", record["stage"])
	assert.NotEmpty(t, record["time"])
}

func TestNewInvalid(t *testing.T) {
	t.Parallel()

	_, err := logger.New(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = logger.New(config.LogConfig{Level: "loud", Format: "text"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simex.log")
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	log, closeFn, err := logger.Setup(config.LogConfig{Level: "info", Format: "text", Output: "file", FilePath: path}, nil, nil)
	require.NoError(t, err)

	log.Info("generated", "project", "run1")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=generated project=run1")

	_, _, err = logger.Setup(config.LogConfig{Level: "info", Format: "text", Output: "file"}, nil, nil)
	assert.Error(t, err)
	_, _, err = logger.Setup(config.LogConfig{Level: "info", Format: "text", Output: "syslog"}, nil, nil)
	assert.Error(t, err)

	stderr := &bytes.Buffer{}
	log, closeFn, err = logger.Setup(config.LogConfig{Level: "info", Format: "text", Output: "stderr"}, nil, stderr)
	require.NoError(t, err)
	require.NoError(t, closeFn())
	log.Info("to stderr")
	assert.Contains(t, stderr.String(), "msg=\"to stderr\"")
}
