package vault

import (
	"strings"

	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/google/uuid"
)

// Search returns copies of the items matching query.
//
// An empty query matches everything. Otherwise the query is lowercased and
// split on whitespace, and an item matches when every token occurs in its
// lowercased title, username, url, notes and tags joined by spaces.
func (s *Service) Search(query string) ([]models.Item, error) {
	return s.SearchInGroup(query, nil)
}

// SearchInGroup is Search limited to one group. A nil groupID searches all
// items.
func (s *Service) SearchInGroup(query string, groupID *uuid.UUID) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.unlocked()
	if err != nil {
		return nil, err
	}

	tokens := strings.Fields(strings.ToLower(query))
	return collect(sess.payload.Items, func(it *models.Item) bool {
		if groupID != nil && !it.InGroup(*groupID) {
			return false
		}
		return matches(it, tokens)
	}), nil
}

func matches(it *models.Item, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		it.Title, it.Username, it.URL, it.Notes, strings.Join(it.Tags, " "),
	}, " "))
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}
