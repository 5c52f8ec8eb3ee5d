package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/vaultura/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errPasswordMismatch = errors.New("passwords do not match")

// readNewPassword asks for a password twice. The caller wipes the result.
func (a *App) readNewPassword(prompt string) ([]byte, error) {
	pw, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	again, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	defer common.WipeByteArray(again)

	if !bytes.Equal(pw, again) {
		common.WipeByteArray(pw)
		return nil, errPasswordMismatch
	}
	return pw, nil
}

// Create writes a new empty vault at the configured path and unlocks it.
// An existing file is never overwritten.
func (a *App) Create(ctx context.Context, _ []string) error {
	if a.vault.Exists() {
		return fmt.Errorf("a vault already exists at %s", a.vault.Path())
	}

	password, err := a.readNewPassword("Enter master password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if len(password) == 0 {
		ok, err := Confirm(a.reader, "The master password is empty. Continue?", a.out)
		if err != nil || !ok {
			return err
		}
	}

	fmt.Fprintln(a.out, "Deriving key, this may take a moment...")
	if err := a.vault.Create(ctx, password); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Vault created at %s\n", a.vault.Path())
	return nil
}

// Unlock asks for the master password and opens the vault.
func (a *App) Unlock(ctx context.Context, _ []string) error {
	if !a.vault.Exists() {
		return fmt.Errorf("no vault at %s, use 'create'", a.vault.Path())
	}

	password, err := getPassword(a.reader, "Enter master password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.vault.Unlock(ctx, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Vault unlocked.")
	return nil
}

// Lock locks the vault, offering to save unsaved changes first.
func (a *App) Lock(ctx context.Context, _ []string) error {
	if !a.vault.IsUnlocked() {
		fmt.Fprintln(a.out, "Vault is already locked.")
		return nil
	}

	if a.vault.IsDirty() {
		save, err := Confirm(a.reader, "There are unsaved changes. Save before locking?", a.out)
		if err != nil {
			return err
		}
		if save {
			if err := a.vault.Save(ctx); err != nil {
				return err
			}
		}
	}

	a.vault.Lock(ctx)
	a.flushClipboard(ctx)
	fmt.Fprintln(a.out, "Vault locked.")
	return nil
}

// Save writes the vault to disk.
func (a *App) Save(ctx context.Context, _ []string) error {
	if err := a.vault.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}

// Status prints the vault path, lock state and cost parameters.
func (a *App) Status(ctx context.Context, _ []string) error {
	fmt.Fprintf(a.out, "Vault:      %s\n", a.vault.Path())

	if !a.vault.Exists() && !a.vault.IsUnlocked() {
		fmt.Fprintln(a.out, "State:      not created")
		return nil
	}

	if !a.vault.IsUnlocked() {
		fmt.Fprintln(a.out, "State:      locked")
		h, err := a.vault.Header()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "KDF:        %s\n", h.Params)
		return nil
	}

	state := "unlocked"
	if a.vault.IsDirty() {
		state = "unlocked, unsaved changes"
	}
	fmt.Fprintf(a.out, "State:      %s\n", state)

	params, err := a.vault.KdfParams()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "KDF:        %s\n", params)

	groups, err := a.vault.Groups()
	if err != nil {
		return err
	}
	items, err := a.vault.Items()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Contents:   %d groups, %d items\n", len(groups), len(items))

	if t := a.config.AutoLockTimeout; t > 0 {
		left := t - a.idleFor()
		if left < 0 {
			left = 0
		}
		fmt.Fprintf(a.out, "Auto-lock:  in %s\n", left.Round(time.Second))
	} else {
		fmt.Fprintln(a.out, "Auto-lock:  off")
	}
	return nil
}

const defaultLogEntries = 20

// ActivityLog prints the newest journal entries, 20 unless a count is given.
func (a *App) ActivityLog(ctx context.Context, args []string) error {
	if a.journal == nil {
		return errors.New("activity journal is disabled")
	}

	n := defaultLogEntries
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("usage: log [n], n must be a positive number")
		}
		n = v
	}

	events, err := a.journal.Recent(ctx, n)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(a.out, "No activity recorded.")
		return nil
	}

	for _, e := range events {
		line := fmt.Sprintf("%s  %-14s %s", e.At.Local().Format(time.DateTime), e.Kind, e.VaultPath)
		if e.Detail != "" {
			line += "  (" + e.Detail + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}
