package vault

import (
	"fmt"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/google/uuid"
)

// Items returns a copy of every item in payload order.
func (s *Service) Items() ([]models.Item, error) {
	return s.ItemsInGroup(nil)
}

// ItemsInGroup returns copies of the items in the given group, or of all
// items when groupID is nil.
func (s *Service) ItemsInGroup(groupID *uuid.UUID) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return nil, err
	}
	return collect(sess.payload.Items, func(it *models.Item) bool {
		return groupID == nil || it.InGroup(*groupID)
	}), nil
}

// Item returns a copy of the item with the given id.
func (s *Service) Item(id uuid.UUID) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return models.Item{}, err
	}
	i := findItem(sess.payload, id)
	if i < 0 {
		return models.Item{}, itemNotFound(id)
	}
	return sess.payload.Items[i].Clone(), nil
}

// CreateItem adds an item built from d and returns its new id.
func (s *Service) CreateItem(d models.ItemDraft) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return uuid.Nil, err
	}
	it := models.NewItem(d, s.now())
	sess.payload.Items = append(sess.payload.Items, it)
	sess.dirty = true
	return it.ID, nil
}

// UpdateItem overwrites every editable field of the item with d.
//
// When the stored password is non-empty and d carries a different one, the
// stored password is appended to the item's history first. ModifiedAt is
// refreshed on every call.
func (s *Service) UpdateItem(id uuid.UUID, d models.ItemDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return err
	}
	i := findItem(sess.payload, id)
	if i < 0 {
		return itemNotFound(id)
	}

	now := s.now()
	it := &sess.payload.Items[i]
	if it.Password != "" && it.Password != d.Password {
		it.PasswordHistory = append(it.PasswordHistory, models.PasswordHistoryEntry{
			Password:  it.Password,
			ChangedAt: now,
		})
	}
	it.Apply(d)
	it.ModifiedAt = now
	sess.dirty = true
	return nil
}

// DeleteItem removes the item with the given id.
func (s *Service) DeleteItem(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return err
	}
	i := findItem(sess.payload, id)
	if i < 0 {
		return itemNotFound(id)
	}
	p := sess.payload
	p.Items = append(p.Items[:i], p.Items[i+1:]...)
	sess.dirty = true
	return nil
}

// collect copies the items accepted by keep. The result is never nil.
func collect(items []models.Item, keep func(*models.Item) bool) []models.Item {
	out := make([]models.Item, 0, len(items))
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i].Clone())
		}
	}
	return out
}

func findItem(p *models.VaultPayload, id uuid.UUID) int {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func itemNotFound(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", common.ErrItemNotFound, id)
}
