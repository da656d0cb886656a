package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schedlume-api/internal/models"
)

const settingsColumns = `week_start, time_format, last_imported_file_name, last_imported_at, schema_version, notifications_enabled, notification_time, notification_permission, updated_at`

// SettingsRepository persists the singleton settings row.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get loads the settings, falling back to defaults when the row is missing.
func (r *SettingsRepository) Get(ctx context.Context) (*models.AppSettings, error) {
	var s models.AppSettings
	err := r.db.GetContext(ctx, &s, `SELECT `+settingsColumns+` FROM app_settings WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		d := models.DefaultSettings()
		return &d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Save writes the full settings row and returns it.
func (r *SettingsRepository) Save(ctx context.Context, s models.AppSettings) (*models.AppSettings, error) {
	s.UpdatedAt = time.Now().UTC()
	query := `INSERT INTO app_settings (id, ` + settingsColumns + `)
VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
	week_start = EXCLUDED.week_start,
	time_format = EXCLUDED.time_format,
	last_imported_file_name = EXCLUDED.last_imported_file_name,
	last_imported_at = EXCLUDED.last_imported_at,
	schema_version = EXCLUDED.schema_version,
	notifications_enabled = EXCLUDED.notifications_enabled,
	notification_time = EXCLUDED.notification_time,
	notification_permission = EXCLUDED.notification_permission,
	updated_at = EXCLUDED.updated_at
RETURNING ` + settingsColumns

	var stored models.AppSettings
	if err := r.db.GetContext(ctx, &stored, query,
		s.WeekStart, s.TimeFormat, s.LastImportedFileName, s.LastImportedAt, s.SchemaVersion,
		s.NotificationsEnabled, s.NotificationTime, s.NotificationPermission, s.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return &stored, nil
}

// UpdateLastImport records the name and time of the latest successful import.
func (r *SettingsRepository) UpdateLastImport(ctx context.Context, fileName string, at time.Time) error {
	const query = `UPDATE app_settings SET last_imported_file_name = $1, last_imported_at = $2, updated_at = $2 WHERE id = 1`
	if _, err := r.db.ExecContext(ctx, query, fileName, at); err != nil {
		return fmt.Errorf("update last import: %w", err)
	}
	return nil
}
