package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"vault_path":              "/json/v.vltr",
		"auto_lock_timeout":       "2m",
		"clipboard_clear_timeout": 5000000000,
		"kdf_memory_kib":          4096,
		"kdf_time":                2,
		"kdf_parallelism":         1,
		"journal_path":            "",
		"log_level":               "info",
	})

	t.Run("loads every key", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", full}))

		assert.Equal(t, "/json/v.vltr", cfg.VaultPath)
		assert.Equal(t, 2*time.Minute, cfg.AutoLockTimeout)
		assert.Equal(t, 5*time.Second, cfg.ClipboardClearTimeout)
		assert.EqualValues(t, 4096, cfg.KdfMemoryKiB)
		assert.EqualValues(t, 2, cfg.KdfTime)
		assert.EqualValues(t, 1, cfg.KdfParallelism)
		assert.Empty(t, cfg.JournalPath)
		assert.True(t, cfg.journalSet, "explicit empty journal path must stick")
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("absent keys keep earlier values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"kdf_time": 7})

		cfg := &Config{VaultPath: "/keep.vltr", LogLevel: "warn", KdfMemoryKiB: 65536}
		require.NoError(t, parseJson(cfg, []string{"-c", partial}))

		assert.Equal(t, "/keep.vltr", cfg.VaultPath)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.EqualValues(t, 65536, cfg.KdfMemoryKiB)
		assert.EqualValues(t, 7, cfg.KdfTime)
		assert.False(t, cfg.journalSet)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		cfg := &Config{VaultPath: "/defaults.vltr", AutoLockTimeout: 42 * time.Second}
		require.NoError(t, parseJson(cfg, []string{"-v", "/other.vltr"}))

		assert.Equal(t, "/defaults.vltr", cfg.VaultPath)
		assert.Equal(t, 42*time.Second, cfg.AutoLockTimeout)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJson(&Config{}, []string{"-config", bad}))
	})

	t.Run("invalid duration", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "dur.json", map[string]any{"auto_lock_timeout": "later"})
		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})
}
