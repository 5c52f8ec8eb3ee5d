// Package clipboard copies secrets to the system clipboard and wipes them
// after a delay.
//
// Every Copy bumps a process-wide generation counter. The delayed wipe
// remembers the generation it was scheduled for and does nothing if another
// Copy or Clear has happened since, so a stale timer never erases newer
// content. The check and the wipe are not atomic; the only property kept is
// that a superseded timer does not clear.
package clipboard

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/logging"
)

// Backend is the clipboard the Manager writes to.
type Backend interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type systemBackend struct{}

func (systemBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (systemBackend) ReadAll() (string, error)   { return clipboard.ReadAll() }

// NewSystemBackend returns the OS clipboard. It fails when no clipboard
// utility is available (for example xclip or xsel on Linux).
func NewSystemBackend() (Backend, error) {
	if clipboard.Unsupported {
		return nil, fmt.Errorf("%w: no clipboard utility found", common.ErrClipboard)
	}
	return systemBackend{}, nil
}

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func())

func afterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Manager copies text and schedules the delayed wipe.
type Manager struct {
	backend    Backend
	delay      time.Duration
	schedule   Scheduler
	generation atomic.Uint64
	// wiped is the generation the clipboard was last emptied at.
	wiped atomic.Uint64
	log   logging.Logger
}

// NewManager returns a Manager clearing the clipboard delay after each
// copy. A zero delay disables the automatic wipe.
func NewManager(b Backend, delay time.Duration, log logging.Logger) *Manager {
	return &Manager{backend: b, delay: delay, schedule: afterFunc, log: log}
}

// SetScheduler replaces time.AfterFunc. Intended for tests.
func (m *Manager) SetScheduler(s Scheduler) {
	m.schedule = s
}

// Generation returns the current copy generation.
func (m *Manager) Generation() uint64 {
	return m.generation.Load()
}

// Delay returns how long copied text stays on the clipboard.
func (m *Manager) Delay() time.Duration {
	return m.delay
}

// Copy puts text on the clipboard and schedules its removal.
func (m *Manager) Copy(ctx context.Context, text string) error {
	if err := m.backend.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", common.ErrClipboard, err)
	}
	gen := m.generation.Add(1)

	if m.delay > 0 {
		m.schedule(m.delay, func() {
			if m.clearIfCurrent(gen) {
				m.log.Debug(ctx, "clipboard cleared", "generation", gen)
			}
		})
	}
	return nil
}

// Clear wipes the clipboard now and invalidates pending timers.
func (m *Manager) Clear() error {
	gen := m.generation.Add(1)
	if err := m.backend.WriteAll(""); err != nil {
		return fmt.Errorf("%w: %v", common.ErrClipboard, err)
	}
	m.wiped.Store(gen)
	return nil
}

// Flush clears the clipboard if something copied by this Manager may
// still be on it. It is meant for shutdown and lock.
func (m *Manager) Flush() error {
	if m.generation.Load() == m.wiped.Load() {
		return nil
	}
	return m.Clear()
}

// clearIfCurrent wipes the clipboard if gen is still the latest copy.
func (m *Manager) clearIfCurrent(gen uint64) bool {
	if m.generation.Load() != gen {
		return false
	}
	if err := m.backend.WriteAll(""); err != nil {
		m.log.Warn(context.Background(), "clipboard clear failed", "error", err)
		return false
	}
	m.wiped.Store(gen)
	return true
}
