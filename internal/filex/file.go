// Package filex holds small filesystem helpers used by the vault codec.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// tempPattern names the scratch files created next to the destination.
const tempPattern = ".vaultura-*.tmp"

// EnsureParentDir creates the directory that will hold path, with owner-only
// permissions, if it does not exist yet.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// WriteFileAtomic replaces path with data so that a crash at any point
// leaves either the old file or the new one, never a mix.
//
// The data goes to a temporary file in the same directory, which is synced,
// closed and then renamed over path. The directory is synced afterwards so
// the rename itself survives a power loss. On any failure the temporary file
// is removed and path is left untouched.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)

	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = f.Chmod(perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}

	syncDir(dir)
	return nil
}

// syncDir flushes directory metadata. Some platforms cannot fsync a
// directory; the rename has already happened by then, so errors are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
