package vault

import (
	"fmt"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/google/uuid"
)

// Groups returns a copy of every group in payload order.
func (s *Service) Groups() ([]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return nil, err
	}
	out := make([]models.Group, len(sess.payload.Groups))
	for i, g := range sess.payload.Groups {
		out[i] = g.Clone()
	}
	return out, nil
}

// Group returns a copy of the group with the given id.
func (s *Service) Group(id uuid.UUID) (models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return models.Group{}, err
	}
	i := findGroup(sess.payload, id)
	if i < 0 {
		return models.Group{}, groupNotFound(id)
	}
	return sess.payload.Groups[i].Clone(), nil
}

// CreateGroup adds a group and returns its new id. parentID is stored as
// given; it is not checked against existing groups.
func (s *Service) CreateGroup(name string, parentID *uuid.UUID) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return uuid.Nil, err
	}
	g := models.NewGroup(name, parentID, s.now())
	sess.payload.Groups = append(sess.payload.Groups, g)
	sess.dirty = true
	return g.ID, nil
}

// UpdateGroup renames and reparents a group.
func (s *Service) UpdateGroup(id uuid.UUID, name string, parentID *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return err
	}
	i := findGroup(sess.payload, id)
	if i < 0 {
		return groupNotFound(id)
	}
	g := &sess.payload.Groups[i]
	g.Name = name
	g.ParentID = nil
	if parentID != nil {
		p := *parentID
		g.ParentID = &p
	}
	sess.dirty = true
	return nil
}

// DeleteGroup removes a group and moves every item that was in it to no
// group. Child groups keep their ParentID.
func (s *Service) DeleteGroup(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return err
	}
	i := findGroup(sess.payload, id)
	if i < 0 {
		return groupNotFound(id)
	}
	p := sess.payload
	p.Groups = append(p.Groups[:i], p.Groups[i+1:]...)

	for j := range p.Items {
		if p.Items[j].InGroup(id) {
			p.Items[j].GroupID = nil
		}
	}
	sess.dirty = true
	return nil
}

func findGroup(p *models.VaultPayload, id uuid.UUID) int {
	for i := range p.Groups {
		if p.Groups[i].ID == id {
			return i
		}
	}
	return -1
}

func groupNotFound(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", common.ErrGroupNotFound, id)
}
