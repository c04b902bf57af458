package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1mZ1kk4d0/nw-dds-converter/internal/config"
)

func TestFileSinkReceivesMessages(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "run.log")

	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = logFile

	log, err := NewLogger(&cfg)
	require.NoError(t, err)

	log.Info("converted %d file(s)", 7)
	log.Success("done")
	log.Warn("slow disk")
	log.Error("bad input: %s", "x.dds")
	log.Debug(true, "visible debug")
	log.Debug(false, "suppressed debug")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "converted 7 file(s)")
	assert.Contains(t, text, "✓ done")
	assert.Contains(t, text, "slow disk")
	assert.Contains(t, text, "bad input: x.dds")
	assert.Contains(t, text, "visible debug")
	assert.NotContains(t, text, "suppressed debug")
	// The file sink writes plain text, no ANSI escapes.
	assert.NotContains(t, text, "\x1b[")
}

func TestNoFileSinkByDefault(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever

	log, err := NewLogger(&cfg)
	require.NoError(t, err)
	log.Info("terminal only")
	assert.NoError(t, log.Close())
}

func TestCloseIsIdempotent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")

	log, err := NewLogger(&cfg)
	require.NoError(t, err)
	require.NoError(t, log.Close())
	assert.NoError(t, log.Close())
}
