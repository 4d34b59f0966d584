package logger

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigIntCoercion(t *testing.T) {
	cfg := map[string]interface{}{
		"max_file_mb":    float64(25),
		"retention_days": 7,
	}
	assert.Equal(t, 25, configInt(cfg, "max_file_mb", 10))
	assert.Equal(t, 7, configInt(cfg, "retention_days", 30))
	assert.Equal(t, 30, configInt(cfg, "missing", 30))
	assert.Equal(t, 10, configInt(map[string]interface{}{"max_file_mb": 0}, "max_file_mb", 10))
}

func TestLoggerWritesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	l := NewLoggerService(map[string]interface{}{
		"folder_path": dir,
		"max_file_mb": 1,
	})

	require.NoError(t, l.Start())
	log.Println("hello from the settlement service")
	require.NoError(t, l.Stop())
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "sellerpulse_"))

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the settlement service")
}
