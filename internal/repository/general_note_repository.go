package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schedlume-api/internal/models"
)

const generalNoteColumns = `id, date, title, note_text, has_due_date, due_date, created_at, updated_at`

// GeneralNoteRepository persists free-standing dated notes.
type GeneralNoteRepository struct {
	db *sqlx.DB
}

// NewGeneralNoteRepository constructs the repository.
func NewGeneralNoteRepository(db *sqlx.DB) *GeneralNoteRepository {
	return &GeneralNoteRepository{db: db}
}

// FindByID fetches a note. sql.ErrNoRows is returned wrapped when absent.
func (r *GeneralNoteRepository) FindByID(ctx context.Context, id string) (*models.GeneralNote, error) {
	query := `SELECT ` + generalNoteColumns + ` FROM general_notes WHERE id = $1`
	var note models.GeneralNote
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		return nil, fmt.Errorf("find general note %s: %w", id, err)
	}
	return &note, nil
}

// ListByDate returns the notes of a date, most recently updated first.
func (r *GeneralNoteRepository) ListByDate(ctx context.Context, date string) ([]models.GeneralNote, error) {
	query := `SELECT ` + generalNoteColumns + ` FROM general_notes WHERE date = $1 ORDER BY updated_at DESC, id ASC`
	var notes []models.GeneralNote
	if err := r.db.SelectContext(ctx, &notes, query, date); err != nil {
		return nil, fmt.Errorf("list general notes for %s: %w", date, err)
	}
	return notes, nil
}

// ListDatesInRange returns the distinct dates holding at least one note.
func (r *GeneralNoteRepository) ListDatesInRange(ctx context.Context, start, end string) ([]string, error) {
	var dates []string
	if err := r.db.SelectContext(ctx, &dates,
		`SELECT DISTINCT date FROM general_notes WHERE date BETWEEN $1 AND $2 ORDER BY date`,
		start, end,
	); err != nil {
		return nil, fmt.Errorf("list general note dates %s..%s: %w", start, end, err)
	}
	return dates, nil
}

// ListDueBetween returns notes with a due date between start and end inclusive.
func (r *GeneralNoteRepository) ListDueBetween(ctx context.Context, start, end string) ([]models.GeneralNote, error) {
	query := `SELECT ` + generalNoteColumns + ` FROM general_notes
WHERE has_due_date AND due_date BETWEEN $1 AND $2
ORDER BY due_date ASC, title ASC`
	var notes []models.GeneralNote
	if err := r.db.SelectContext(ctx, &notes, query, start, end); err != nil {
		return nil, fmt.Errorf("list notes due %s..%s: %w", start, end, err)
	}
	return notes, nil
}

// ListAll returns every general note.
func (r *GeneralNoteRepository) ListAll(ctx context.Context) ([]models.GeneralNote, error) {
	query := `SELECT ` + generalNoteColumns + ` FROM general_notes ORDER BY date ASC, updated_at DESC`
	var notes []models.GeneralNote
	if err := r.db.SelectContext(ctx, &notes, query); err != nil {
		return nil, fmt.Errorf("list general notes: %w", err)
	}
	return notes, nil
}

// Save inserts or updates a note by id. created_at of an existing row is kept.
func (r *GeneralNoteRepository) Save(ctx context.Context, note models.GeneralNote) (*models.GeneralNote, error) {
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	query := `INSERT INTO general_notes (` + generalNoteColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
	date = EXCLUDED.date,
	title = EXCLUDED.title,
	note_text = EXCLUDED.note_text,
	has_due_date = EXCLUDED.has_due_date,
	due_date = EXCLUDED.due_date,
	updated_at = EXCLUDED.updated_at
RETURNING ` + generalNoteColumns

	var stored models.GeneralNote
	if err := r.db.GetContext(ctx, &stored, query,
		note.ID, note.Date, note.Title, note.NoteText, note.HasDueDate, note.DueDate,
		note.CreatedAt, note.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("save general note %s: %w", note.ID, err)
	}
	return &stored, nil
}

// Delete removes a note and its notification records together.
// sql.ErrNoRows is returned wrapped when the note did not exist.
func (r *GeneralNoteRepository) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete general note: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM notification_records WHERE note_id = $1`, id); err != nil {
		return fmt.Errorf("delete notification records for %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM general_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete general note %s: %w", id, err)
	}
	if n, rowsErr := res.RowsAffected(); rowsErr == nil && n == 0 {
		err = fmt.Errorf("delete general note %s: %w", id, sql.ErrNoRows)
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete general note: %w", err)
	}
	return nil
}
