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

func settingsRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"week_start", "time_format", "last_imported_file_name", "last_imported_at", "schema_version", "notifications_enabled", "notification_time", "notification_permission", "updated_at"})
}

func TestSettingsRepositoryGetDefaultsWhenMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM app_settings WHERE id = 1")).WillReturnError(sql.ErrNoRows)

	s, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), *s)
}

func TestSettingsRepositorySave(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	now := time.Now()
	in := models.DefaultSettings()
	in.WeekStart = models.WeekStartSunday
	in.NotificationsEnabled = true

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO app_settings")).
		WithArgs("sunday", "24h", nil, nil, 1, true, "08:00", "default", sqlmock.AnyArg()).
		WillReturnRows(settingsRows().AddRow("sunday", "24h", nil, nil, 1, true, "08:00", "default", now))

	out, err := repo.Save(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.WeekStartSunday, out.WeekStart)
	assert.True(t, out.NotificationsEnabled)
}

func TestSettingsRepositoryUpdateLastImport(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE app_settings SET last_imported_file_name = $1")).
		WithArgs("spring.csv", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastImport(context.Background(), "spring.csv", at))
}

func TestDataRepositoryClearAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDataRepository(db)

	mock.ExpectBegin()
	for _, table := range clearOrder {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM " + table)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO app_settings (id) VALUES (1)")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ClearAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDataRepositoryClearAllRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDataRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notification_records")).WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	require.Error(t, repo.ClearAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	var dest map[string]string
	err := repo.Get(context.Background(), "timetable:day:2024-03-04", &dest)
	assert.Error(t, err)
	assert.NoError(t, repo.Set(context.Background(), "k", "v", time.Minute))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "timetable:*"))
	assert.NoError(t, repo.Ping(context.Background()))
	assert.NoError(t, repo.Close())
}
