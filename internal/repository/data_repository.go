package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// clearOrder lists tables so that dependants go first.
var clearOrder = []string{
	"notification_records",
	"general_notes",
	"class_notes",
	"day_overrides",
	"subject_schedules",
	"app_settings",
}

// DataRepository runs statements spanning every table.
type DataRepository struct {
	db *sqlx.DB
}

// NewDataRepository constructs the repository.
func NewDataRepository(db *sqlx.DB) *DataRepository {
	return &DataRepository{db: db}
}

// ClearAll deletes all user data and restores default settings atomically.
func (r *DataRepository) ClearAll(ctx context.Context) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear data: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range clearOrder {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO app_settings (id) VALUES (1)`); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit clear data: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (r *DataRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
