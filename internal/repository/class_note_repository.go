package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/schedlume-api/internal/models"
)

const classNoteColumns = `id, class_instance_key, date, subject_name, start_time, note_text, created_at, updated_at`

// ClassNoteRepository persists notes attached to class occurrences.
type ClassNoteRepository struct {
	db *sqlx.DB
}

// NewClassNoteRepository constructs the repository.
func NewClassNoteRepository(db *sqlx.DB) *ClassNoteRepository {
	return &ClassNoteRepository{db: db}
}

// FindByInstanceKey fetches the note for one occurrence. sql.ErrNoRows is returned wrapped when absent.
func (r *ClassNoteRepository) FindByInstanceKey(ctx context.Context, key string) (*models.ClassNote, error) {
	query := `SELECT ` + classNoteColumns + ` FROM class_notes WHERE class_instance_key = $1`
	var note models.ClassNote
	if err := r.db.GetContext(ctx, &note, query, key); err != nil {
		return nil, fmt.Errorf("find class note %s: %w", key, err)
	}
	return &note, nil
}

// ListKeysByDateRange returns the instance keys that carry a note between start and end inclusive.
func (r *ClassNoteRepository) ListKeysByDateRange(ctx context.Context, start, end string) ([]string, error) {
	var keys []string
	if err := r.db.SelectContext(ctx, &keys,
		`SELECT class_instance_key FROM class_notes WHERE date BETWEEN $1 AND $2 ORDER BY class_instance_key`,
		start, end,
	); err != nil {
		return nil, fmt.Errorf("list class note keys %s..%s: %w", start, end, err)
	}
	return keys, nil
}

// ListAll returns every class note.
func (r *ClassNoteRepository) ListAll(ctx context.Context) ([]models.ClassNote, error) {
	query := `SELECT ` + classNoteColumns + ` FROM class_notes ORDER BY date ASC, start_time ASC`
	var notes []models.ClassNote
	if err := r.db.SelectContext(ctx, &notes, query); err != nil {
		return nil, fmt.Errorf("list class notes: %w", err)
	}
	return notes, nil
}

// Upsert stores the note keyed by its instance key and returns the stored row.
func (r *ClassNoteRepository) Upsert(ctx context.Context, note models.ClassNote) (*models.ClassNote, error) {
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	query := `INSERT INTO class_notes (` + classNoteColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (class_instance_key) DO UPDATE SET
	date = EXCLUDED.date,
	subject_name = EXCLUDED.subject_name,
	start_time = EXCLUDED.start_time,
	note_text = EXCLUDED.note_text,
	updated_at = EXCLUDED.updated_at
RETURNING ` + classNoteColumns

	var stored models.ClassNote
	if err := r.db.GetContext(ctx, &stored, query,
		note.ID, note.ClassInstanceKey, note.Date, note.SubjectName, note.StartTime,
		note.NoteText, note.CreatedAt, note.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert class note %s: %w", note.ClassInstanceKey, err)
	}
	return &stored, nil
}

// DeleteByInstanceKey removes the note for an occurrence, if any.
func (r *ClassNoteRepository) DeleteByInstanceKey(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM class_notes WHERE class_instance_key = $1`, key); err != nil {
		return fmt.Errorf("delete class note %s: %w", key, err)
	}
	return nil
}
