package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultura/internal/common"
)

// Export writes the unlocked vault to another file under a new password.
func (a *App) Export(ctx context.Context, _ []string) error {
	if !a.vault.IsUnlocked() {
		return common.ErrVaultLocked
	}

	path, err := getSimpleText(a.reader, "Export file path", a.out)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("path must not be empty")
	}

	password, err := a.readNewPassword("Password for the exported file")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.vault.Export(ctx, path, password); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported to %s\n", path)
	return nil
}

// Import merges groups and items from another vault file. Records whose ids
// already exist are skipped.
func (a *App) Import(ctx context.Context, _ []string) error {
	if !a.vault.IsUnlocked() {
		return common.ErrVaultLocked
	}

	path, err := getSimpleText(a.reader, "Import file path", a.out)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("path must not be empty")
	}

	password, err := getPassword(a.reader, "Password of the imported file", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	n, err := a.vault.Import(ctx, path, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Imported %d new records.\n", n)
	return nil
}
