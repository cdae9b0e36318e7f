package utilities

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-extensions/internal/config"
)

func TestSetupLogging(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, SetupLogging(config.LoggingConfig{Dir: dir, MaxSizeMB: 1}))
	t.Cleanup(func() { SetDebug(false) })

	Info("saved %d articles", 3)
	Warn("slow query")
	Error("boom: %v", os.ErrNotExist)
	SetDebug(false)
	Debug("hidden")
	SetDebug(true)
	Debug("shown")
	CloseLogging()

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(data)
	}

	info := read("info.log")
	assert.Contains(t, info, "INFO: ")
	assert.Contains(t, info, "[utilities.TestSetupLogging] saved 3 articles")
	assert.Contains(t, info, "DEBUG: ")
	assert.Contains(t, info, "shown")
	assert.NotContains(t, info, "hidden")
	assert.NotContains(t, info, "slow query")

	assert.Contains(t, read("warn.log"), "WARNING: ")
	assert.Contains(t, read("error.log"), "boom: file does not exist")
}

func TestSetupLogging_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	err := SetupLogging(config.LoggingConfig{Dir: filepath.Join(file, "logs")})
	assert.Error(t, err)
}
