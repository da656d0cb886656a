package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schedlume-api/internal/models"
)

func overrideRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "date", "base_schedule_id", "kind", "subject_name", "start_time", "end_time", "location", "professor", "color", "created_at", "updated_at"})
}

func TestOverrideRepositoryListByDateRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOverrideRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM day_overrides WHERE date BETWEEN $1 AND $2")).
		WithArgs("2024-03-01", "2024-03-31").
		WillReturnRows(overrideRows().
			AddRow("o-1", "2024-03-04", "s-1", "cancel", "Calculus", "09:00", "10:30", nil, nil, nil, now, now).
			AddRow("o-2", "2024-03-05", nil, "add", "Study group", "18:00", "19:00", "Library", nil, nil, now, now))

	items, err := repo.ListByDateRange(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.OverrideCancel, items[0].Kind)
	assert.Equal(t, "s-1", items[0].BaseID())
	assert.Equal(t, models.OverrideAdd, items[1].Kind)
	assert.Nil(t, items[1].BaseScheduleID)
}

func TestOverrideRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOverrideRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM day_overrides WHERE date = $1")).
		WithArgs("2024-03-04").
		WillReturnRows(overrideRows())

	items, err := repo.ListByDate(context.Background(), "2024-03-04")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOverrideRepositoryUpsertRemovesSibling(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOverrideRepository(db)

	base := "s-1"
	o := models.DayOverride{ID: "o-1", Date: "2024-03-04", BaseScheduleID: &base, Kind: models.OverrideEdit, SubjectName: "Calculus", StartTime: "10:00", EndTime: "11:30"}
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM day_overrides WHERE date = $1 AND base_schedule_id = $2 AND id <> $3")).
		WithArgs("2024-03-04", "s-1", "o-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO day_overrides")).
		WithArgs("o-1", "2024-03-04", "s-1", "edit", "Calculus", "10:00", "11:30", nil, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(overrideRows().AddRow("o-1", "2024-03-04", "s-1", "edit", "Calculus", "10:00", "11:30", nil, nil, nil, now, now))
	mock.ExpectCommit()

	stored, err := repo.Upsert(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, "10:00", stored.StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverrideRepositoryUpsertAddSkipsDedupe(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOverrideRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO day_overrides")).
		WillReturnRows(overrideRows().AddRow("o-9", "2024-03-05", nil, "add", "Lab", "15:00", "16:00", nil, nil, nil, now, now))
	mock.ExpectCommit()

	stored, err := repo.Upsert(context.Background(), models.DayOverride{ID: "o-9", Date: "2024-03-05", Kind: models.OverrideAdd, SubjectName: "Lab", StartTime: "15:00", EndTime: "16:00"})
	require.NoError(t, err)
	assert.Equal(t, "o-9", stored.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverrideRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOverrideRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM day_overrides WHERE id = $1")).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "nope")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
