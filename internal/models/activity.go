package models

import "time"

// EventKind names a vault lifecycle event recorded in the activity journal.
type EventKind string

const (
	EventCreated      EventKind = "created"
	EventUnlocked     EventKind = "unlocked"
	EventUnlockFailed EventKind = "unlock_failed"
	EventLocked       EventKind = "locked"
	EventSaved        EventKind = "saved"
	EventExported     EventKind = "exported"
	EventImported     EventKind = "imported"
)

// ActivityEvent is one journal row. It never carries secrets or item
// contents, only what happened, to which file and when.
type ActivityEvent struct {
	ID        int64
	Kind      EventKind
	VaultPath string
	Detail    string
	At        time.Time
}
