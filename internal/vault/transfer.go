package vault

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/dmitrijs2005/vaultura/internal/vaultfile"
	"github.com/google/uuid"
)

// ErrExportTarget is returned when an export would overwrite the live vault.
var ErrExportTarget = errors.New("export target is the vault file itself")

// Export writes the current payload to path, encrypted under password and
// the KDF params the open vault is saved with. The live vault and its dirty
// flag are not touched.
func (s *Service) Export(ctx context.Context, path string, password []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return err
	}
	if samePath(path, s.path) {
		return ErrExportTarget
	}

	if err := vaultfile.Export(path, password, sess.params, sess.payload); err != nil {
		s.log.Error(ctx, "export failed", "target", path, "error", err)
		return err
	}

	n := len(sess.payload.Groups) + len(sess.payload.Items)
	s.log.Info(ctx, "vault exported", "target", path, "records", n)
	s.record(ctx, models.EventExported, fmt.Sprintf("records=%d", n))
	return nil
}

// Import decrypts the vault file at path and merges its groups and items
// into the open payload. Records whose id is already present are skipped,
// whatever their content. It returns how many records were added and marks
// the vault dirty only if that number is positive.
func (s *Service) Import(ctx context.Context, path string, password []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return 0, err
	}

	src, err := vaultfile.Import(path, password)
	if err != nil {
		s.log.Warn(ctx, "import failed", "source", path, "reason", errorKind(err))
		return 0, err
	}
	defer src.Scrub()

	p := sess.payload
	added := 0

	seenGroups := make(map[uuid.UUID]struct{}, len(p.Groups)+len(src.Groups))
	for _, g := range p.Groups {
		seenGroups[g.ID] = struct{}{}
	}
	for _, g := range src.Groups {
		if _, ok := seenGroups[g.ID]; ok {
			continue
		}
		seenGroups[g.ID] = struct{}{}
		p.Groups = append(p.Groups, g.Clone())
		added++
	}

	seenItems := make(map[uuid.UUID]struct{}, len(p.Items)+len(src.Items))
	for _, it := range p.Items {
		seenItems[it.ID] = struct{}{}
	}
	for _, it := range src.Items {
		if _, ok := seenItems[it.ID]; ok {
			continue
		}
		seenItems[it.ID] = struct{}{}
		p.Items = append(p.Items, it.Clone())
		added++
	}

	if added > 0 {
		sess.dirty = true
	}
	s.log.Info(ctx, "vault imported", "source", path, "added", added)
	s.record(ctx, models.EventImported, fmt.Sprintf("added=%d", added))
	return added, nil
}

func samePath(a, b string) bool {
	aa, errA := filepath.Abs(a)
	bb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
