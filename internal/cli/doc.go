// Package cli provides the interactive vaultura command-line front end.
//
// It wires the vault service, the clipboard manager and the activity journal
// into a line-oriented REPL. Typical flow: create or unlock the vault, work
// with groups and items, save, and exit. A background watcher locks the
// vault after a period without commands, saving pending changes first.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See App, StartAutoLockWatcher and runREPL for details.
package cli
