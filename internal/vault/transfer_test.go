package vault

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()

	src := newUnlocked(t)
	g, err := src.CreateGroup("Work", nil)
	require.NoError(t, err)
	_, err = src.CreateItem(models.ItemDraft{Title: "a", Password: "1", GroupID: &g})
	require.NoError(t, err)
	_, err = src.CreateItem(models.ItemDraft{Title: "b", Password: "2"})
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "out", "export.vltr")
	require.NoError(t, src.Export(ctx, exportPath, []byte("P2")))
	assert.True(t, src.IsDirty(), "export does not touch the dirty flag")

	dst := newUnlocked(t)
	n, err := dst.Import(ctx, exportPath, []byte("P2"))
	require.NoError(t, err)
	assert.Equal(t, 3, n, "one group plus two items")
	assert.True(t, dst.IsDirty())

	items, err := dst.Items()
	require.NoError(t, err)
	assert.Len(t, items, 2)
	groups, err := dst.Groups()
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	require.NoError(t, dst.Save(ctx))
	n, err = dst.Import(ctx, exportPath, []byte("P2"))
	require.NoError(t, err)
	assert.Equal(t, 0, n, "ids already present are skipped")
	assert.False(t, dst.IsDirty(), "nothing added, nothing to save")
}

func TestImport_SkipsByIdNotContent(t *testing.T) {
	ctx := context.Background()
	s := newUnlocked(t)
	id, err := s.CreateItem(models.ItemDraft{Title: "original"})
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "export.vltr")
	require.NoError(t, s.Export(ctx, exportPath, []byte("p")))

	require.NoError(t, s.UpdateItem(id, models.ItemDraft{Title: "edited"}))

	n, err := s.Import(ctx, exportPath, []byte("p"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	it, err := s.Item(id)
	require.NoError(t, err)
	assert.Equal(t, "edited", it.Title)
}

func TestImport_WrongPassword(t *testing.T) {
	ctx := context.Background()
	s := newUnlocked(t)
	exportPath := filepath.Join(t.TempDir(), "export.vltr")
	require.NoError(t, s.Export(ctx, exportPath, []byte("right")))

	n, err := s.Import(ctx, exportPath, []byte("wrong"))
	require.ErrorIs(t, err, common.ErrWrongPassword)
	assert.Equal(t, 0, n)
	assert.False(t, s.IsDirty())
}

func TestExport_UsesOpenVaultParams(t *testing.T) {
	ctx := context.Background()
	s := newUnlocked(t)
	s.Lock(ctx)

	defaults := models.KdfParams{MemoryKiB: 2048, Time: 2, Parallelism: 2}
	s2 := NewService(s.Path(), defaults)
	require.NoError(t, s2.Unlock(ctx, []byte("master")))

	exportPath := filepath.Join(t.TempDir(), "export.vltr")
	require.NoError(t, s2.Export(ctx, exportPath, []byte("p")))

	h, err := NewService(exportPath, defaults).Header()
	require.NoError(t, err)
	assert.Equal(t, testParams, h.Params, "export follows the params read from the vault file")

	live, err := s2.KdfParams()
	require.NoError(t, err)
	assert.Equal(t, testParams, live)
}

func TestExport_RefusesLiveVault(t *testing.T) {
	s := newUnlocked(t)
	err := s.Export(context.Background(), s.Path(), []byte("other"))
	require.ErrorIs(t, err, ErrExportTarget)

	s.Lock(context.Background())
	require.NoError(t, s.Unlock(context.Background(), []byte("master")))
}

func TestJournal_RecordsTransfers(t *testing.T) {
	ctx := context.Background()
	j := &fakeJournal{}
	s := newUnlocked(t, WithJournal(j))
	_, err := s.CreateItem(models.ItemDraft{Title: "x"})
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "export.vltr")
	require.NoError(t, s.Export(ctx, exportPath, []byte("p")))
	_, err = s.Import(ctx, exportPath, []byte("p"))
	require.NoError(t, err)

	kinds := j.kinds()
	require.Len(t, kinds, 3)
	assert.Equal(t, models.EventExported, kinds[1])
	assert.Equal(t, "records=1", j.events[1].Detail)
	assert.Equal(t, models.EventImported, kinds[2])
	assert.Equal(t, "added=0", j.events[2].Detail)
}
