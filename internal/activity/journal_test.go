package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_RecordAndRecent(t *testing.T) {
	j := NewJournal(setupDB(t))
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, newEvent(models.EventCreated, 0)))
	require.NoError(t, j.Record(ctx, newEvent(models.EventLocked, time.Second)))

	got, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.EventLocked, got[0].Kind)
	assert.Equal(t, models.EventCreated, got[1].Kind)
}

func TestJournal_RetentionTrims(t *testing.T) {
	db := setupDB(t)
	j := NewJournal(db, WithRetention(3))
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, j.Record(ctx, newEvent(models.EventSaved, time.Duration(i)*time.Second)))
	}

	n, err := NewSQLiteRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	got, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, t0.Add(6*time.Second).Equal(got[0].At))
}

func TestJournal_WithRetentionIgnoresNonPositive(t *testing.T) {
	j := NewJournal(setupDB(t), WithRetention(0))
	assert.Equal(t, DefaultRetention, j.retention)
}

func TestJournal_RollsBackWhenTrimFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("locked")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO activity").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM activity").WillReturnError(boom)
	mock.ExpectRollback()

	err = NewJournal(db).Record(context.Background(), newEvent(models.EventSaved, 0))
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_CommitsAppendAndTrim(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO activity").
		WithArgs("unlock_failed", "/tmp/v.vltr", "wrong password", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM activity").
		WithArgs(50).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	e := newEvent(models.EventUnlockFailed, 0)
	e.Detail = "wrong password"
	require.NoError(t, NewJournal(db, WithRetention(50)).Record(context.Background(), e))
	require.NoError(t, mock.ExpectationsWereMet())
}
