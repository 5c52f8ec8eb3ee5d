package cli

import (
	"context"
	"time"
)

// StartAutoLockWatcher locks the vault once no command has been entered for
// timeout. It checks every interval and returns when ctx is done. A zero
// timeout disables the watcher.
//
// Pending changes are saved before locking; the lock happens even if that
// save fails, in which case the changes are lost and the failure is logged.
func (a *App) StartAutoLockWatcher(ctx context.Context, timeout, interval time.Duration) {
	if timeout <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if a.vault.IsUnlocked() && a.idleFor() >= timeout {
				a.autoLock(ctx)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) autoLock(ctx context.Context) {
	if _, err := a.vault.SaveAndLock(ctx); err != nil {
		a.log.Error(ctx, "auto-lock save failed, unsaved changes discarded", "error", err)
	}
	a.flushClipboard(ctx)
	a.log.Info(ctx, "vault auto-locked")
	printlnFn("\nVault locked after inactivity.")
}
