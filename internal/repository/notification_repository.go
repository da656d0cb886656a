package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schedlume-api/internal/models"
)

// NotificationRepository tracks which reminders were already shown.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Exists reports whether a record with id is stored.
func (r *NotificationRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM notification_records WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check notification record %s: %w", id, err)
	}
	return exists, nil
}

// Insert stores rec unless it already exists. It reports whether a row was written.
func (r *NotificationRepository) Insert(ctx context.Context, rec models.NotificationRecord) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notification_records (id, note_id, notification_date, shown_at) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.NoteID, rec.NotificationDate, rec.ShownAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert notification record %s: %w", rec.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert notification record %s: %w", rec.ID, err)
	}
	return n > 0, nil
}

// DeleteBefore purges records whose notification date is before date.
func (r *NotificationRepository) DeleteBefore(ctx context.Context, date string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notification_records WHERE notification_date < $1`, date)
	if err != nil {
		return 0, fmt.Errorf("delete notification records before %s: %w", date, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ListAll returns every record.
func (r *NotificationRepository) ListAll(ctx context.Context) ([]models.NotificationRecord, error) {
	var recs []models.NotificationRecord
	if err := r.db.SelectContext(ctx, &recs, `SELECT id, note_id, notification_date, shown_at FROM notification_records ORDER BY notification_date ASC, id ASC`); err != nil {
		return nil, fmt.Errorf("list notification records: %w", err)
	}
	return recs, nil
}
