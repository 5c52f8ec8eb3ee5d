package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/awnumar/memguard"
	"github.com/dmitrijs2005/vaultura/internal/activity"
	"github.com/dmitrijs2005/vaultura/internal/buildinfo"
	"github.com/dmitrijs2005/vaultura/internal/cli"
	"github.com/dmitrijs2005/vaultura/internal/clipboard"
	"github.com/dmitrijs2005/vaultura/internal/config"
	"github.com/dmitrijs2005/vaultura/internal/logging"
	"github.com/dmitrijs2005/vaultura/internal/platform"
	"github.com/dmitrijs2005/vaultura/internal/vault"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := platform.DisableCoreDumps(); err != nil {
		log.Printf("could not disable core dumps: %v", err)
	}

	memguard.CatchInterrupt()
	defer memguard.Purge()

	// Validate already accepted the level.
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(os.Stderr, level)

	ctx := context.Background()

	opts := []vault.Option{vault.WithLogger(logger)}

	var journal cli.ActivityLog
	if cfg.JournalPath != "" {
		db, err := activity.Open(ctx, cfg.JournalPath)
		if err != nil {
			logger.Warn(ctx, "activity journal disabled", "path", cfg.JournalPath, "error", err)
		} else {
			defer func(db *sql.DB) { _ = db.Close() }(db)
			j := activity.NewJournal(db)
			opts = append(opts, vault.WithJournal(j))
			journal = j
		}
	}

	svc := vault.NewService(cfg.VaultPath, cfg.KdfParams(), opts...)

	var clip cli.Clipboard
	if backend, err := clipboard.NewSystemBackend(); err != nil {
		logger.Warn(ctx, "clipboard unavailable", "error", err)
	} else {
		clip = clipboard.NewManager(backend, cfg.ClipboardClearTimeout, logger)
	}

	app := cli.NewApp(cfg, svc, clip, journal, logger)
	app.Run(ctx)

}
