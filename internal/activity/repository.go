package activity

import (
	"context"

	"github.com/dmitrijs2005/vaultura/internal/models"
)

// Repository persists activity events.
type Repository interface {
	Append(ctx context.Context, e models.ActivityEvent) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.ActivityEvent, error)
	Trim(ctx context.Context, keep int) (int64, error)
	Count(ctx context.Context) (int64, error)
}
