package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger_WritesJSONFile(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, err := InitLogger("test", false)
	require.NoError(t, err)

	logger.Debug("debug goes to file only")
	_ = logger.Sync()

	entries, err := os.ReadDir(LogsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "test_"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".log"))

	data, err := os.ReadFile(filepath.Join(LogsDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"debug goes to file only"`)
	assert.Contains(t, string(data), `"env":"test"`)
}

func TestLogFilePath(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	assert.Equal(t, filepath.Join(LogsDir, "prod_2026-03-04_05-06-07.log"), logFilePath("prod", at))
}

func TestConsoleCore_Levels(t *testing.T) {
	var quiet, verbose bytes.Buffer

	assert.False(t, consoleCore(&quiet, false).Enabled(zapcore.DebugLevel))
	assert.True(t, consoleCore(&quiet, false).Enabled(zapcore.InfoLevel))
	assert.True(t, consoleCore(&verbose, true).Enabled(zapcore.DebugLevel))
}

func TestFileCore_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := zap.New(fileCore(&buf))

	logger.Debug("allocation ran", zap.Int("allocated", 2))
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), `"msg":"allocation ran"`)
	assert.Contains(t, buf.String(), `"allocated":2`)
	assert.Contains(t, buf.String(), `"timestamp":`)
}
