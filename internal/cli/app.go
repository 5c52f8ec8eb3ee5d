package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/vaultura/internal/config"
	"github.com/dmitrijs2005/vaultura/internal/logging"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/dmitrijs2005/vaultura/internal/vaultfile"
	"github.com/google/uuid"
)

// autoLockCheckInterval is how often the watcher compares idle time with
// the configured timeout.
const autoLockCheckInterval = time.Second

// Vault is the vault service surface used by the CLI. *vault.Service
// satisfies it.
type Vault interface {
	Path() string
	Exists() bool
	IsUnlocked() bool
	IsDirty() bool
	KdfParams() (models.KdfParams, error)
	Header() (vaultfile.Header, error)

	Create(ctx context.Context, password []byte) error
	Unlock(ctx context.Context, password []byte) error
	Lock(ctx context.Context)
	Save(ctx context.Context) error
	SaveAndLock(ctx context.Context) (bool, error)

	Groups() ([]models.Group, error)
	Group(id uuid.UUID) (models.Group, error)
	CreateGroup(name string, parentID *uuid.UUID) (uuid.UUID, error)
	UpdateGroup(id uuid.UUID, name string, parentID *uuid.UUID) error
	DeleteGroup(id uuid.UUID) error

	Items() ([]models.Item, error)
	ItemsInGroup(groupID *uuid.UUID) ([]models.Item, error)
	Item(id uuid.UUID) (models.Item, error)
	CreateItem(d models.ItemDraft) (uuid.UUID, error)
	UpdateItem(id uuid.UUID, d models.ItemDraft) error
	DeleteItem(id uuid.UUID) error

	Search(query string) ([]models.Item, error)

	Export(ctx context.Context, path string, password []byte) error
	Import(ctx context.Context, path string, password []byte) (int, error)
}

// Clipboard is the clipboard manager surface. *clipboard.Manager satisfies it.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
	Flush() error
	Delay() time.Duration
}

// ActivityLog lists journal entries. *activity.Journal satisfies it.
type ActivityLog interface {
	Recent(ctx context.Context, n int) ([]models.ActivityEvent, error)
}

type App struct {
	config    *config.Config
	vault     Vault
	clipboard Clipboard
	journal   ActivityLog
	log       logging.Logger

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	// lastActivity is the UnixNano time of the last command.
	lastActivity atomic.Int64
}

// NewApp builds an App reading commands from stdin. clip and journal may be
// nil when the clipboard or the activity journal is unavailable.
func NewApp(c *config.Config, v Vault, clip Clipboard, journal ActivityLog, log logging.Logger) *App {
	a := &App{
		config:    c,
		vault:     v,
		clipboard: clip,
		journal:   journal,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		now:       time.Now,
	}
	a.touch()
	return a
}

// Run starts the auto-lock watcher and the REPL and blocks until the user
// exits. A dirty vault is saved and the clipboard flushed on the way out.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to vaultura (type 'help' for commands)")
	if a.vault.Exists() {
		fmt.Fprintf(a.out, "Vault: %s (use 'unlock')\n", a.vault.Path())
	} else {
		fmt.Fprintf(a.out, "No vault at %s (use 'create')\n", a.vault.Path())
	}

	go a.StartAutoLockWatcher(ctx, a.config.AutoLockTimeout, autoLockCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
	a.shutdown(ctx)
}

// getStatus renders the prompt state: locked, unlocked, or unlocked with
// unsaved changes.
func (a *App) getStatus() string {
	switch {
	case !a.vault.IsUnlocked():
		return "locked"
	case a.vault.IsDirty():
		return "unlocked*"
	default:
		return "unlocked"
	}
}

func (a *App) isUnlocked() bool {
	return a.vault.IsUnlocked()
}

// touch records user activity for the auto-lock watcher.
func (a *App) touch() {
	a.lastActivity.Store(a.now().UnixNano())
}

func (a *App) idleFor() time.Duration {
	return a.now().Sub(time.Unix(0, a.lastActivity.Load()))
}

func (a *App) shutdown(ctx context.Context) {
	saved, err := a.vault.SaveAndLock(ctx)
	switch {
	case err != nil:
		a.log.Error(ctx, "save on exit failed", "error", err)
		fmt.Fprintf(a.out, "Error: could not save changes: %v\n", err)
	case saved:
		fmt.Fprintln(a.out, "Changes saved.")
	}
	a.flushClipboard(ctx)
}

func (a *App) flushClipboard(ctx context.Context) {
	if a.clipboard == nil {
		return
	}
	if err := a.clipboard.Flush(); err != nil {
		a.log.Warn(ctx, "clipboard flush failed", "error", err)
	}
}
