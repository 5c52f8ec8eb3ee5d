package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultura/internal/dbx"
	"github.com/dmitrijs2005/vaultura/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Append inserts e and returns the new row id. e.ID is ignored.
func (r *SQLiteRepository) Append(ctx context.Context, e models.ActivityEvent) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO activity (kind, vault_path, detail, at) VALUES (?, ?, ?, ?)
	`, string(e.Kind), e.VaultPath, e.Detail, e.At.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to append activity: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read activity id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit events, newest first.
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]models.ActivityEvent, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, vault_path, detail, at FROM activity
		ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var out []models.ActivityEvent
	for rows.Next() {
		var (
			e    models.ActivityEvent
			kind string
			at   int64
		)
		if err := rows.Scan(&e.ID, &kind, &e.VaultPath, &e.Detail, &at); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		e.Kind = models.EventKind(kind)
		e.At = time.Unix(0, at).UTC()
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity rows: %w", err)
	}
	return out, nil
}

// Trim deletes everything but the newest keep rows and reports how many
// rows were removed.
func (r *SQLiteRepository) Trim(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM activity
		WHERE id NOT IN (SELECT id FROM activity ORDER BY id DESC LIMIT ?)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to trim activity: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read trimmed rows: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count activity: %w", err)
	}
	return n, nil
}
