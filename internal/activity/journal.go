package activity

import (
	"context"

	"github.com/dmitrijs2005/vaultura/internal/dbx"
	"github.com/dmitrijs2005/vaultura/internal/models"
)

// DefaultRetention is the number of rows kept by a Journal unless
// WithRetention says otherwise.
const DefaultRetention = 1000

// DB is what a Journal needs from its database handle. *sql.DB satisfies it.
type DB interface {
	dbx.DBTX
	dbx.TxBeginner
}

// Journal appends events and keeps the table bounded.
type Journal struct {
	db        DB
	retention int
	newRepo   func(dbx.DBTX) Repository
}

type JournalOption func(*Journal)

// WithRetention caps the number of stored events. Values below 1 are ignored.
func WithRetention(n int) JournalOption {
	return func(j *Journal) {
		if n > 0 {
			j.retention = n
		}
	}
}

func NewJournal(db DB, opts ...JournalOption) *Journal {
	j := &Journal{
		db:        db,
		retention: DefaultRetention,
		newRepo:   func(d dbx.DBTX) Repository { return NewSQLiteRepository(d) },
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

// Record appends e and trims old rows in a single transaction.
func (j *Journal) Record(ctx context.Context, e models.ActivityEvent) error {
	return dbx.WithTx(ctx, j.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := j.newRepo(tx)
		if _, err := repo.Append(ctx, e); err != nil {
			return err
		}
		_, err := repo.Trim(ctx, j.retention)
		return err
	})
}

// Recent returns up to n events, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]models.ActivityEvent, error) {
	return j.newRepo(j.db).Recent(ctx, n)
}
