package config

import (
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/vaultura/internal/flagx"
)

var knownFlags = []string{"-v", "-l", "-b", "-m", "-t", "-p", "-j", "-log"}

// parseFlags overlays cfg with command-line flags from args. Flags owned by
// other stages (such as -c) are filtered out before parsing.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("vaultura", flag.ContinueOnError)

	fs.StringVar(&cfg.VaultPath, "v", cfg.VaultPath, "vault file path")
	autoLock := fs.Int("l", int(cfg.AutoLockTimeout.Seconds()), "auto-lock timeout in seconds (0 disables)")
	clipClear := fs.Int("b", int(cfg.ClipboardClearTimeout.Seconds()), "clipboard clear timeout in seconds (0 disables)")
	mem := fs.Uint("m", uint(cfg.KdfMemoryKiB), "argon2id memory cost in KiB")
	iter := fs.Uint("t", uint(cfg.KdfTime), "argon2id time cost")
	lanes := fs.Uint("p", uint(cfg.KdfParallelism), "argon2id parallelism")
	fs.StringVar(&cfg.JournalPath, "j", cfg.JournalPath, "activity journal path (empty disables)")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for name, v := range map[string]uint{"m": *mem, "t": *iter, "p": *lanes} {
		if set[name] && v > math.MaxUint32 {
			return fmt.Errorf("flag -%s: value %d out of range", name, v)
		}
	}

	// Untouched values are left alone so sub-second JSON durations survive.
	if set["l"] {
		cfg.AutoLockTimeout = time.Duration(*autoLock) * time.Second
	}
	if set["b"] {
		cfg.ClipboardClearTimeout = time.Duration(*clipClear) * time.Second
	}
	if set["m"] {
		cfg.KdfMemoryKiB = uint32(*mem)
	}
	if set["t"] {
		cfg.KdfTime = uint32(*iter)
	}
	if set["p"] {
		cfg.KdfParallelism = uint32(*lanes)
	}
	if set["j"] {
		cfg.journalSet = true
	}
	return nil
}
