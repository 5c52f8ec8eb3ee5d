// Package models defines the records stored inside an encrypted vault.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PayloadVersion is the schema version written into VaultMeta.
const PayloadVersion uint32 = 1

// VaultMeta describes the payload itself. ModifiedAt is advisory.
type VaultMeta struct {
	Version    uint32
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// Group is a named folder for items. ParentID is not checked against the
// group list and may form a chain of any shape.
type Group struct {
	ID        uuid.UUID
	Name      string
	ParentID  *uuid.UUID
	CreatedAt time.Time
}

// PasswordHistoryEntry records a password that was replaced.
type PasswordHistoryEntry struct {
	Password  string
	ChangedAt time.Time
}

// Item is a single credential record.
type Item struct {
	ID              uuid.UUID
	GroupID         *uuid.UUID
	Title           string
	Username        string
	Password        string
	URL             string
	Notes           string
	Tags            []string
	PasswordHistory []PasswordHistoryEntry
	CreatedAt       time.Time
	ModifiedAt      time.Time
}

// ItemDraft carries the user-editable fields of an Item.
type ItemDraft struct {
	Title    string
	Username string
	Password string
	URL      string
	Notes    string
	Tags     []string
	GroupID  *uuid.UUID
}

// VaultPayload is the complete decrypted content of a vault. One payload is
// encrypted into exactly one blob.
type VaultPayload struct {
	Meta   VaultMeta
	Groups []Group
	Items  []Item
}

// NewPayload returns an empty payload stamped with now.
func NewPayload(now time.Time) *VaultPayload {
	return &VaultPayload{
		Meta: VaultMeta{Version: PayloadVersion, CreatedAt: now, ModifiedAt: now},
	}
}

// NewGroup builds a group with a fresh random id.
func NewGroup(name string, parentID *uuid.UUID, now time.Time) Group {
	return Group{ID: uuid.New(), Name: name, ParentID: cloneID(parentID), CreatedAt: now}
}

// NewItem builds an item from d with a fresh random id.
func NewItem(d ItemDraft, now time.Time) Item {
	it := Item{ID: uuid.New(), CreatedAt: now, ModifiedAt: now}
	it.Apply(d)
	return it
}

// Apply overwrites the editable fields of it with the values from d.
// History and timestamps are left to the caller.
func (it *Item) Apply(d ItemDraft) {
	it.Title = d.Title
	it.Username = d.Username
	it.Password = d.Password
	it.URL = d.URL
	it.Notes = d.Notes
	it.Tags = append([]string(nil), d.Tags...)
	it.GroupID = cloneID(d.GroupID)
}

// Draft returns the editable fields of it.
func (it Item) Draft() ItemDraft {
	return ItemDraft{
		Title:    it.Title,
		Username: it.Username,
		Password: it.Password,
		URL:      it.URL,
		Notes:    it.Notes,
		Tags:     append([]string(nil), it.Tags...),
		GroupID:  cloneID(it.GroupID),
	}
}

// InGroup reports whether the item belongs to the group with the given id.
func (it Item) InGroup(id uuid.UUID) bool {
	return it.GroupID != nil && *it.GroupID == id
}

// Clone returns a deep copy of g.
func (g Group) Clone() Group {
	g.ParentID = cloneID(g.ParentID)
	return g
}

// Clone returns a deep copy of it.
func (it Item) Clone() Item {
	it.GroupID = cloneID(it.GroupID)
	it.Tags = append([]string(nil), it.Tags...)
	it.PasswordHistory = append([]PasswordHistoryEntry(nil), it.PasswordHistory...)
	return it
}

// Clone returns a deep copy of p.
func (p *VaultPayload) Clone() *VaultPayload {
	out := &VaultPayload{Meta: p.Meta}
	if p.Groups != nil {
		out.Groups = make([]Group, len(p.Groups))
		for i, g := range p.Groups {
			out.Groups[i] = g.Clone()
		}
	}
	if p.Items != nil {
		out.Items = make([]Item, len(p.Items))
		for i, it := range p.Items {
			out.Items[i] = it.Clone()
		}
	}
	return out
}

// Scrub blanks the secret strings held by the payload and drops its
// records. Go strings are immutable, so this only releases references.
func (p *VaultPayload) Scrub() {
	for i := range p.Items {
		p.Items[i].Password = ""
		p.Items[i].Notes = ""
		for j := range p.Items[i].PasswordHistory {
			p.Items[i].PasswordHistory[j].Password = ""
		}
	}
	p.Items = nil
	p.Groups = nil
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
