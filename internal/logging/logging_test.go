package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_WritesJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "diag.log")

	logger, err := NewLogger(Config{Level: "debug", Format: "json", OutputPath: out})
	require.NoError(t, err)
	logger.Warn("unlink of item not in a list", zap.String("class", "Track"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Track", entry["class"])
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	out := filepath.Join(t.TempDir(), "diag.log")

	logger, err := NewLogger(Config{Level: "error", OutputPath: out})
	require.NoError(t, err)
	logger.Warn("dropped")
	logger.Error("kept")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	out := filepath.Join(t.TempDir(), "diag.log")

	logger, err := NewLogger(Config{Level: "loud", Format: "console", OutputPath: out})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestMustDefault(t *testing.T) {
	logger := MustDefault()
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
}
