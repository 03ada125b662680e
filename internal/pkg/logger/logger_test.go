package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterAppendsToDailyFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	w.now = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) }

	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "brand-hub_2026-03-09.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(raw))
}

func TestNewWritesThroughZap(t *testing.T) {
	dir := t.TempDir()
	log, err := New(dir, true)
	require.NoError(t, err)
	log.Debug("profile saved")

	raw, err := os.ReadFile(filepath.Join(dir, DailyFilename(time.Now())))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "profile saved"))
}

func TestResolveDirHonoursEnv(t *testing.T) {
	t.Setenv(EnvLogDir, "/var/log/brand")
	assert.Equal(t, "/var/log/brand", ResolveDir())
}
