package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schedlume-api/internal/models"
)

const overrideColumns = `id, date, base_schedule_id, kind, subject_name, start_time, end_time, location, professor, color, created_at, updated_at`

// OverrideRepository persists per-date overrides.
type OverrideRepository struct {
	db *sqlx.DB
}

// NewOverrideRepository constructs the repository.
func NewOverrideRepository(db *sqlx.DB) *OverrideRepository {
	return &OverrideRepository{db: db}
}

// ListByDate returns the overrides of a single date.
func (r *OverrideRepository) ListByDate(ctx context.Context, date string) ([]models.DayOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM day_overrides WHERE date = $1 ORDER BY created_at ASC, id ASC`
	var items []models.DayOverride
	if err := r.db.SelectContext(ctx, &items, query, date); err != nil {
		return nil, fmt.Errorf("list overrides for %s: %w", date, err)
	}
	return items, nil
}

// ListByDateRange returns overrides with start <= date <= end.
func (r *OverrideRepository) ListByDateRange(ctx context.Context, start, end string) ([]models.DayOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM day_overrides WHERE date BETWEEN $1 AND $2 ORDER BY date ASC, created_at ASC, id ASC`
	var items []models.DayOverride
	if err := r.db.SelectContext(ctx, &items, query, start, end); err != nil {
		return nil, fmt.Errorf("list overrides %s..%s: %w", start, end, err)
	}
	return items, nil
}

// ListAll returns every stored override.
func (r *OverrideRepository) ListAll(ctx context.Context) ([]models.DayOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM day_overrides ORDER BY date ASC, created_at ASC, id ASC`
	var items []models.DayOverride
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	return items, nil
}

// FindByID fetches one override. sql.ErrNoRows is returned wrapped when absent.
func (r *OverrideRepository) FindByID(ctx context.Context, id string) (*models.DayOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM day_overrides WHERE id = $1`
	var item models.DayOverride
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, fmt.Errorf("find override %s: %w", id, err)
	}
	return &item, nil
}

// Upsert stores o by id. Any other override for the same (date, base schedule)
// is removed first so at most one exists. The stored row is returned.
func (r *OverrideRepository) Upsert(ctx context.Context, o models.DayOverride) (_ *models.DayOverride, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin upsert override: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if o.BaseScheduleID != nil {
		const dedupe = `DELETE FROM day_overrides WHERE date = $1 AND base_schedule_id = $2 AND id <> $3`
		if _, err = tx.ExecContext(ctx, dedupe, o.Date, *o.BaseScheduleID, o.ID); err != nil {
			return nil, fmt.Errorf("remove superseded override: %w", err)
		}
	}

	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	query := `INSERT INTO day_overrides (` + overrideColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
	date = EXCLUDED.date,
	base_schedule_id = EXCLUDED.base_schedule_id,
	kind = EXCLUDED.kind,
	subject_name = EXCLUDED.subject_name,
	start_time = EXCLUDED.start_time,
	end_time = EXCLUDED.end_time,
	location = EXCLUDED.location,
	professor = EXCLUDED.professor,
	color = EXCLUDED.color,
	updated_at = EXCLUDED.updated_at
RETURNING ` + overrideColumns

	var stored models.DayOverride
	if err = tx.GetContext(ctx, &stored, query,
		o.ID, o.Date, o.BaseScheduleID, o.Kind, o.SubjectName, o.StartTime, o.EndTime,
		o.Location, o.Professor, o.Color, o.CreatedAt, o.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert override %s: %w", o.ID, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit upsert override: %w", err)
	}
	return &stored, nil
}

// Delete removes an override. sql.ErrNoRows is returned wrapped when nothing matched.
func (r *OverrideRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM day_overrides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete override %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete override %s: %w", id, sql.ErrNoRows)
	}
	return nil
}
