package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"QMAZE_HOST", "QMAZE_PORT", "QMAZE_BASE_URL", "GIN_MODE", "QMAZE_SIZE", "QMAZE_SEED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "/api", cfg.BaseURL)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Zero(t, cfg.MazeSize)
	assert.Zero(t, cfg.Seed)
}

func TestLoadFromFile(t *testing.T) {
	for _, key := range []string{"QMAZE_HOST", "QMAZE_PORT", "QMAZE_SIZE", "QMAZE_SEED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("GIN_MODE", "test")

	file := filepath.Join(t.TempDir(), ".env")
	content := "QMAZE_HOST=127.0.0.1\nQMAZE_PORT=9090\nQMAZE_SIZE=8\nQMAZE_SEED=42\nGIN_MODE=debug\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, 8, cfg.MazeSize)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "test", cfg.GinMode, "existing variables win over the file")
}

func TestLoadInvalidInt(t *testing.T) {
	t.Setenv("QMAZE_PORT", "eighty")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
