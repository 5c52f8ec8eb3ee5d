package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/cryptox"
	"github.com/dmitrijs2005/vaultura/internal/logging"
	"github.com/dmitrijs2005/vaultura/internal/models"
)

const (
	appDir          = "vaultura"
	vaultFileName   = "vault.vltr"
	journalFileName = "activity.db"
)

// Config holds runtime settings for the vaultura CLI.
type Config struct {
	VaultPath             string
	AutoLockTimeout       time.Duration
	ClipboardClearTimeout time.Duration
	KdfMemoryKiB          uint32
	KdfTime               uint32
	KdfParallelism        uint32
	JournalPath           string
	LogLevel              string

	// journalSet records that JournalPath came from JSON or flags rather
	// than being derived from VaultPath.
	journalSet bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	kdf := models.DefaultKdfParams()

	c.VaultPath = filepath.Join(dataDir(), appDir, vaultFileName)
	c.AutoLockTimeout = 5 * time.Minute
	c.ClipboardClearTimeout = 30 * time.Second
	c.KdfMemoryKiB = kdf.MemoryKiB
	c.KdfTime = kdf.Time
	c.KdfParallelism = kdf.Parallelism
	c.JournalPath = defaultJournalPath(c.VaultPath)
	c.LogLevel = "warn"
	c.journalSet = false
}

// KdfParams returns the cost parameters used for newly written vaults.
func (c *Config) KdfParams() models.KdfParams {
	return models.KdfParams{
		MemoryKiB:   c.KdfMemoryKiB,
		Time:        c.KdfTime,
		Parallelism: c.KdfParallelism,
	}
}

// Validate checks values that flags and JSON cannot constrain by type.
func (c *Config) Validate() error {
	if c.VaultPath == "" {
		return fmt.Errorf("%w: vault path is empty", common.ErrConfig)
	}
	if c.AutoLockTimeout < 0 {
		return fmt.Errorf("%w: auto-lock timeout must not be negative", common.ErrConfig)
	}
	if c.ClipboardClearTimeout < 0 {
		return fmt.Errorf("%w: clipboard clear timeout must not be negative", common.ErrConfig)
	}
	if err := cryptox.ValidateParams(c.KdfParams()); err != nil {
		return fmt.Errorf("%w: %w", common.ErrConfig, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", common.ErrConfig, err)
	}
	return nil
}

// LoadConfig builds a Config from defaults, the JSON file and the process
// command line, in that order, and validates the result.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list (without the program
// name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfig, err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfig, err)
	}

	if !cfg.journalSet {
		cfg.JournalPath = defaultJournalPath(cfg.VaultPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// dataDir follows the XDG base directory convention.
func dataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func defaultJournalPath(vaultPath string) string {
	return filepath.Join(filepath.Dir(vaultPath), journalFileName)
}
