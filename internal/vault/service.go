package vault

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/awnumar/memguard"
	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/logging"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/dmitrijs2005/vaultura/internal/vaultfile"
)

// Journal receives non-secret lifecycle events. Failures are logged and
// never abort the vault operation that produced the event.
type Journal interface {
	Record(ctx context.Context, e models.ActivityEvent) error
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithJournal sets the activity journal.
func WithJournal(j Journal) Option {
	return func(s *Service) { s.journal = j }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service owns one vault file.
type Service struct {
	mu       sync.Mutex
	path     string
	defaults models.KdfParams
	sess     *session

	log     logging.Logger
	journal Journal
	now     func() time.Time
}

// NewService returns a locked Service for the vault at path. defaults are
// the KDF params used for Create and Export; an existing vault keeps the
// params stored in its header.
func NewService(path string, defaults models.KdfParams, opts ...Option) *Service {
	s := &Service{
		path:     path,
		defaults: defaults,
		log:      logging.Discard(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "vault")
	return s
}

// session is the Unlocked state.
type session struct {
	payload  *models.VaultPayload
	password *memguard.Enclave
	params   models.KdfParams
	dirty    bool
}

func newSession(payload *models.VaultPayload, password []byte, params models.KdfParams) *session {
	var sealed *memguard.Enclave
	if len(password) > 0 {
		buf := make([]byte, len(password))
		copy(buf, password)
		sealed = memguard.NewEnclave(buf) // wipes buf
	}
	return &session{payload: payload, password: sealed, params: params}
}

// withPassword opens the sealed password for the duration of fn. The
// plaintext copy is destroyed when fn returns.
func (s *session) withPassword(fn func(password []byte) error) error {
	if s.password == nil {
		return fn(nil)
	}
	lb, err := s.password.Open()
	if err != nil {
		return err
	}
	defer lb.Destroy()
	return fn(lb.Bytes())
}

func (s *session) destroy() {
	if s.payload != nil {
		s.payload.Scrub()
	}
	s.payload = nil
	s.password = nil
	s.dirty = false
}

// unlocked is the single gate to the Unlocked state. Callers hold s.mu.
func (s *Service) unlocked() (*session, error) {
	if s.sess == nil {
		return nil, common.ErrVaultLocked
	}
	return s.sess, nil
}

// Path returns the vault file location.
func (s *Service) Path() string {
	return s.path
}

// Exists reports whether a vault file is present at Path.
func (s *Service) Exists() bool {
	fi, err := os.Stat(s.path)
	return err == nil && fi.Mode().IsRegular()
}

// IsUnlocked reports whether the service holds a decrypted payload.
func (s *Service) IsUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess != nil
}

// IsDirty reports whether there are changes not yet written by Save. It is
// always false while Locked.
func (s *Service) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess != nil && s.sess.dirty
}

// KdfParams returns the params the open vault is saved with.
func (s *Service) KdfParams() (models.KdfParams, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.unlocked()
	if err != nil {
		return models.KdfParams{}, err
	}
	return sess.params, nil
}

// Header reads the unencrypted header of the vault file. It works in
// either state and needs no password.
func (s *Service) Header() (vaultfile.Header, error) {
	return vaultfile.ReadHeader(s.path)
}

func (s *Service) record(ctx context.Context, kind models.EventKind, detail string) {
	if s.journal == nil {
		return
	}
	e := models.ActivityEvent{Kind: kind, VaultPath: s.path, Detail: detail, At: s.now()}
	if err := s.journal.Record(ctx, e); err != nil {
		s.log.Warn(ctx, "activity journal write failed", "kind", kind, "error", err)
	}
}

// errorKind reduces err to a short non-secret label for logs and the journal.
func errorKind(err error) string {
	switch {
	case errors.Is(err, common.ErrWrongPassword):
		return "wrong password"
	case errors.Is(err, common.ErrInvalidVaultFile):
		return "invalid vault file"
	case errors.Is(err, common.ErrKdf):
		return "kdf"
	case errors.Is(err, os.ErrNotExist):
		return "not found"
	}
	return "io"
}
