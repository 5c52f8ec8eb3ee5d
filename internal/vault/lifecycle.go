package vault

import (
	"context"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/filex"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/dmitrijs2005/vaultura/internal/vaultfile"
)

// Create writes a new empty vault to Path, replacing any file there, and
// leaves the service Unlocked with a clean dirty flag. The parent
// directory is created when missing. On failure the service stays Locked.
func (s *Service) Create(ctx context.Context, password []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil {
		return common.ErrVaultUnlocked
	}

	if err := filex.EnsureParentDir(s.path); err != nil {
		return err
	}

	payload := models.NewPayload(s.now())
	if err := vaultfile.Write(s.path, password, s.defaults, payload); err != nil {
		s.log.Error(ctx, "create vault failed", "path", s.path, "error", err)
		return err
	}

	s.sess = newSession(payload, password, s.defaults)
	s.log.Info(ctx, "vault created", "path", s.path, "kdf", s.defaults.String())
	s.record(ctx, models.EventCreated, s.defaults.String())
	return nil
}

// Unlock decrypts the vault at Path. It returns common.ErrWrongPassword if
// the password is wrong or the ciphertext is damaged, and
// common.ErrInvalidVaultFile if the file is not a vault. The service stays
// Locked on any error.
func (s *Service) Unlock(ctx context.Context, password []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil {
		return common.ErrVaultUnlocked
	}

	payload, params, err := vaultfile.Read(s.path, password)
	if err != nil {
		kind := errorKind(err)
		s.log.Warn(ctx, "unlock failed", "path", s.path, "reason", kind)
		s.record(ctx, models.EventUnlockFailed, kind)
		return err
	}

	s.sess = newSession(payload, password, params)
	s.log.Info(ctx, "vault unlocked", "path", s.path, "groups", len(payload.Groups), "items", len(payload.Items))
	s.record(ctx, models.EventUnlocked, "")
	return nil
}

// Lock discards the payload and the sealed password. Unsaved changes are
// lost; callers that want them kept must Save first, or use SaveAndLock.
// Locking a locked service does nothing.
func (s *Service) Lock(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lock(ctx)
}

// Save re-encrypts the payload with a fresh salt and nonce and atomically
// replaces the vault file. The dirty flag is cleared only on success; a
// failed save leaves the previous file intact.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return err
	}
	return s.save(ctx, sess)
}

// SaveAndLock saves pending changes, if any, and locks the vault without
// releasing the service in between, so no mutation can slip in after the
// save and be discarded by the lock. The vault is locked even if the save
// fails. saved reports whether a save was written. A locked service returns
// (false, nil).
func (s *Service) SaveAndLock(ctx context.Context) (saved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return false, nil
	}
	if s.sess.dirty {
		err = s.save(ctx, s.sess)
		saved = err == nil
	}
	s.lock(ctx)
	return saved, err
}

func (s *Service) save(ctx context.Context, sess *session) error {
	err := sess.withPassword(func(password []byte) error {
		return vaultfile.Write(s.path, password, sess.params, sess.payload)
	})
	if err != nil {
		s.log.Error(ctx, "save failed", "path", s.path, "error", err)
		return err
	}

	sess.dirty = false
	s.log.Info(ctx, "vault saved", "path", s.path)
	s.record(ctx, models.EventSaved, "")
	return nil
}

func (s *Service) lock(ctx context.Context) {
	if s.sess == nil {
		return
	}
	dirty := s.sess.dirty
	s.sess.destroy()
	s.sess = nil

	s.log.Info(ctx, "vault locked", "path", s.path, "discarded_changes", dirty)
	s.record(ctx, models.EventLocked, "")
}
