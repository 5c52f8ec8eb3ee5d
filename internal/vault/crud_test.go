package vault

import (
	"testing"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroups_CRUD(t *testing.T) {
	s := newUnlocked(t)

	root, err := s.CreateGroup("Root", nil)
	require.NoError(t, err)
	child, err := s.CreateGroup("Child", &root)
	require.NoError(t, err)
	assert.NotEqual(t, root, child)

	groups, err := s.Groups()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Root", groups[0].Name)
	assert.Nil(t, groups[0].ParentID)
	require.NotNil(t, groups[1].ParentID)
	assert.Equal(t, root, *groups[1].ParentID)

	require.NoError(t, s.UpdateGroup(child, "Renamed", nil))
	g, err := s.Group(child)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", g.Name)
	assert.Nil(t, g.ParentID)

	require.NoError(t, s.DeleteGroup(root))
	_, err = s.Group(root)
	require.ErrorIs(t, err, common.ErrGroupNotFound)
	require.ErrorIs(t, s.DeleteGroup(root), common.ErrGroupNotFound)

	groups, err = s.Groups()
	require.NoError(t, err)
	require.Len(t, groups, 1)
}

func TestGroups_ParentNotValidated(t *testing.T) {
	s := newUnlocked(t)
	dangling := uuid.New()

	id, err := s.CreateGroup("orphan", &dangling)
	require.NoError(t, err)

	// a group may even name itself as parent
	require.NoError(t, s.UpdateGroup(id, "self", &id))
}

func TestDeleteGroup_ClearsItemGroup(t *testing.T) {
	s := newUnlocked(t)

	g1, err := s.CreateGroup("g1", nil)
	require.NoError(t, err)
	g2, err := s.CreateGroup("g2", nil)
	require.NoError(t, err)

	in1, err := s.CreateItem(models.ItemDraft{Title: "a", GroupID: &g1})
	require.NoError(t, err)
	_, err = s.CreateItem(models.ItemDraft{Title: "b", GroupID: &g1})
	require.NoError(t, err)
	in2, err := s.CreateItem(models.ItemDraft{Title: "c", GroupID: &g2})
	require.NoError(t, err)

	require.NoError(t, s.DeleteGroup(g1))

	items, err := s.Items()
	require.NoError(t, err)
	for _, it := range items {
		assert.False(t, it.InGroup(g1), "item %s still points at deleted group", it.Title)
	}

	a, err := s.Item(in1)
	require.NoError(t, err)
	assert.Nil(t, a.GroupID)

	c, err := s.Item(in2)
	require.NoError(t, err)
	assert.True(t, c.InGroup(g2))
}

func TestItems_CRUD(t *testing.T) {
	s := newUnlocked(t)

	id, err := s.CreateItem(models.ItemDraft{
		Title: "GitHub", Username: "me", Password: "pw", URL: "https://github.com",
		Notes: "n", Tags: []string{"dev"},
	})
	require.NoError(t, err)

	it, err := s.Item(id)
	require.NoError(t, err)
	assert.Equal(t, "GitHub", it.Title)
	assert.Equal(t, "me", it.Username)
	assert.Equal(t, "pw", it.Password)
	assert.Equal(t, []string{"dev"}, it.Tags)
	assert.Empty(t, it.PasswordHistory)
	assert.Equal(t, it.CreatedAt, it.ModifiedAt)

	require.NoError(t, s.UpdateItem(id, models.ItemDraft{Title: "GitLab", Password: "pw"}))
	updated, err := s.Item(id)
	require.NoError(t, err)
	assert.Equal(t, "GitLab", updated.Title)
	assert.Empty(t, updated.Username, "update overwrites every field")
	assert.Empty(t, updated.Tags)
	assert.True(t, updated.ModifiedAt.After(it.ModifiedAt))
	assert.Equal(t, it.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.DeleteItem(id))
	_, err = s.Item(id)
	require.ErrorIs(t, err, common.ErrItemNotFound)
	assert.Contains(t, err.Error(), id.String())
}

func TestUpdateItem_PasswordHistory(t *testing.T) {
	s := newUnlocked(t)

	id, err := s.CreateItem(models.ItemDraft{Title: "t", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateItem(id, models.ItemDraft{Title: "t", Password: "new_secret"}))
	it, err := s.Item(id)
	require.NoError(t, err)
	require.Len(t, it.PasswordHistory, 1)
	assert.Equal(t, "secret", it.PasswordHistory[0].Password)
	assert.False(t, it.PasswordHistory[0].ChangedAt.IsZero())
	assert.Equal(t, "new_secret", it.Password)

	require.NoError(t, s.UpdateItem(id, models.ItemDraft{Title: "renamed", Password: "new_secret"}))
	it, err = s.Item(id)
	require.NoError(t, err)
	assert.Len(t, it.PasswordHistory, 1, "same password adds no history")

	require.NoError(t, s.UpdateItem(id, models.ItemDraft{Title: "t", Password: ""}))
	it, err = s.Item(id)
	require.NoError(t, err)
	require.Len(t, it.PasswordHistory, 2, "clearing a password records it")
	assert.Equal(t, "new_secret", it.PasswordHistory[1].Password)

	require.NoError(t, s.UpdateItem(id, models.ItemDraft{Title: "t", Password: "fresh"}))
	it, err = s.Item(id)
	require.NoError(t, err)
	assert.Len(t, it.PasswordHistory, 2, "empty old password adds no history")
}

func TestItemsInGroup(t *testing.T) {
	s := newUnlocked(t)

	g, err := s.CreateGroup("g", nil)
	require.NoError(t, err)
	_, err = s.CreateItem(models.ItemDraft{Title: "in", GroupID: &g})
	require.NoError(t, err)
	_, err = s.CreateItem(models.ItemDraft{Title: "out"})
	require.NoError(t, err)

	in, err := s.ItemsInGroup(&g)
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, "in", in[0].Title)

	all, err := s.ItemsInGroup(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	other := uuid.New()
	none, err := s.ItemsInGroup(&other)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestReturnedValuesDoNotAliasState(t *testing.T) {
	s := newUnlocked(t)

	g, err := s.CreateGroup("g", nil)
	require.NoError(t, err)
	id, err := s.CreateItem(models.ItemDraft{Title: "t", Tags: []string{"a"}, GroupID: &g})
	require.NoError(t, err)

	it, err := s.Item(id)
	require.NoError(t, err)
	it.Tags[0] = "mutated"
	*it.GroupID = uuid.New()
	it.Title = "mutated"

	again, err := s.Item(id)
	require.NoError(t, err)
	assert.Equal(t, "t", again.Title)
	assert.Equal(t, []string{"a"}, again.Tags)
	assert.True(t, again.InGroup(g))

	groups, err := s.Groups()
	require.NoError(t, err)
	groups[0].Name = "mutated"
	g2, err := s.Group(g)
	require.NoError(t, err)
	assert.Equal(t, "g", g2.Name)
}
