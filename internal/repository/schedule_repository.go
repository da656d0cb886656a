package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schedlume-api/internal/models"
)

const scheduleColumns = `id, subject_name, day_of_week, start_time, end_time, location, professor, color, created_at, updated_at`

// ScheduleRepository persists the imported base schedule.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GetAll returns every base schedule ordered by weekday, start time and import position.
func (r *ScheduleRepository) GetAll(ctx context.Context) ([]models.SubjectSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM subject_schedules ORDER BY day_of_week ASC, start_time ASC, position ASC`
	var items []models.SubjectSchedule
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return items, nil
}

// FindByID fetches a single base schedule. sql.ErrNoRows is returned wrapped when absent.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.SubjectSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM subject_schedules WHERE id = $1`
	var item models.SubjectSchedule
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, fmt.Errorf("find schedule %s: %w", id, err)
	}
	return &item, nil
}

// Count returns the number of stored base schedules.
func (r *ScheduleRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM subject_schedules`); err != nil {
		return 0, fmt.Errorf("count schedules: %w", err)
	}
	return n, nil
}

// ReplaceAll swaps the whole base schedule in one transaction. On any error
// the previous set is left untouched.
func (r *ScheduleRepository) ReplaceAll(ctx context.Context, schedules []models.SubjectSchedule) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace schedules: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM subject_schedules`); err != nil {
		return fmt.Errorf("clear schedules: %w", err)
	}

	const insertQuery = `INSERT INTO subject_schedules (id, subject_name, day_of_week, start_time, end_time, location, professor, color, position, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	now := time.Now().UTC()
	for i, s := range schedules {
		created, updated := s.CreatedAt, s.UpdatedAt
		if created.IsZero() {
			created = now
		}
		if updated.IsZero() {
			updated = created
		}
		if _, err = tx.ExecContext(ctx, insertQuery,
			s.ID, s.SubjectName, s.DayOfWeek, s.StartTime, s.EndTime,
			s.Location, s.Professor, s.Color, i, created, updated,
		); err != nil {
			return fmt.Errorf("insert schedule %s: %w", s.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace schedules: %w", err)
	}
	return nil
}
