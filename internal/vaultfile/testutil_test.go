package vaultfile

import (
	"time"

	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
)

var testParams = models.KdfParams{MemoryKiB: 1024, Time: 1, Parallelism: 1}

var payloadOpts = cmp.Options{cmpopts.EquateEmpty()}

func samplePayload() *models.VaultPayload {
	now := time.Now()
	p := models.NewPayload(now)

	root := models.NewGroup("Work", nil, now)
	child := models.NewGroup("Servers", &root.ID, now)
	p.Groups = append(p.Groups, root, child)

	it := models.NewItem(models.ItemDraft{
		Title:    "GitHub",
		Username: "user@example.com",
		Password: "s3cr3t",
		URL:      "https://github.com",
		Notes:    "line one\nline two",
		Tags:     []string{"dev", "", "code"},
		GroupID:  &root.ID,
	}, now)
	it.PasswordHistory = []models.PasswordHistoryEntry{
		{Password: "older", ChangedAt: now.Add(-2 * time.Hour)},
		{Password: "old", ChangedAt: now.Add(-time.Hour)},
	}
	p.Items = append(p.Items, it, models.NewItem(models.ItemDraft{Title: "bare"}, now))

	orphan := uuid.New()
	p.Items = append(p.Items, models.NewItem(models.ItemDraft{Title: "orphan", GroupID: &orphan}, now))
	return p
}
