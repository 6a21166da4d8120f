package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitGlobalLoggersWritesToFiles(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "logs", "app.log")
	accessPath := filepath.Join(dir, "logs", "access.log")

	require.NoError(t, InitGlobalLoggers(appPath, accessPath, "info"))
	t.Cleanup(CloseLogFiles)

	Info("mounted %s", "/v1_0")
	Debug("hidden %d", 1)
	Access("GET /v1_0/items 200")

	app, err := os.ReadFile(appPath)
	require.NoError(t, err)
	assert.Contains(t, string(app), "mounted /v1_0")
	assert.NotContains(t, string(app), "hidden 1")

	access, err := os.ReadFile(accessPath)
	require.NoError(t, err)
	assert.Contains(t, string(access), "GET /v1_0/items 200")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	require.NoError(t, InitGlobalLoggers("", "", "verbose"))
	t.Cleanup(CloseLogFiles)

	assert.Equal(t, "INFO", logLevel)
	assert.True(t, enabled("WARN"))
	assert.False(t, enabled("DEBUG"))
}

func TestDebugLevelEnablesEverything(t *testing.T) {
	require.NoError(t, InitGlobalLoggers("", "", "debug"))
	t.Cleanup(CloseLogFiles)

	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		assert.True(t, enabled(level), level)
	}
}
