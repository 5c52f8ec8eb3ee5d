package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/vaultura/internal/flagx"
	"github.com/dmitrijs2005/vaultura/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key apart from an explicit zero value.
type JsonConfig struct {
	VaultPath             *string         `json:"vault_path"`
	AutoLockTimeout       *timex.Duration `json:"auto_lock_timeout"`
	ClipboardClearTimeout *timex.Duration `json:"clipboard_clear_timeout"`
	KdfMemoryKiB          *uint32         `json:"kdf_memory_kib"`
	KdfTime               *uint32         `json:"kdf_time"`
	KdfParallelism        *uint32         `json:"kdf_parallelism"`
	JournalPath           *string         `json:"journal_path"`
	LogLevel              *string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.VaultPath != nil {
		cfg.VaultPath = *jc.VaultPath
	}
	if jc.AutoLockTimeout != nil {
		cfg.AutoLockTimeout = jc.AutoLockTimeout.Duration
	}
	if jc.ClipboardClearTimeout != nil {
		cfg.ClipboardClearTimeout = jc.ClipboardClearTimeout.Duration
	}
	if jc.KdfMemoryKiB != nil {
		cfg.KdfMemoryKiB = *jc.KdfMemoryKiB
	}
	if jc.KdfTime != nil {
		cfg.KdfTime = *jc.KdfTime
	}
	if jc.KdfParallelism != nil {
		cfg.KdfParallelism = *jc.KdfParallelism
	}
	if jc.JournalPath != nil {
		cfg.JournalPath = *jc.JournalPath
		cfg.journalSet = true
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
