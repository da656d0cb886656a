package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/internal/schedule"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
)

type classNoteRepository interface {
	FindByInstanceKey(ctx context.Context, key string) (*models.ClassNote, error)
	Upsert(ctx context.Context, note models.ClassNote) (*models.ClassNote, error)
	DeleteByInstanceKey(ctx context.Context, key string) error
}

type classFinder interface {
	FindClass(ctx context.Context, instanceKey string) (*models.ResolvedClass, error)
}

// NoteService manages the single note attached to a class occurrence.
type NoteService struct {
	repo    classNoteRepository
	classes classFinder
	cache   *CacheService
	logger  *zap.Logger
	newID   func() string
}

// NewNoteService constructs the service.
func NewNoteService(repo classNoteRepository, classes classFinder, cache *CacheService, logger *zap.Logger) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{repo: repo, classes: classes, cache: cache, logger: logger, newID: uuid.NewString}
}

// Get returns the note of an occurrence.
func (s *NoteService) Get(ctx context.Context, instanceKey string) (*models.ClassNote, error) {
	if _, err := schedule.ParseInstanceKey(instanceKey); err != nil {
		return nil, invalid(err.Error())
	}
	note, err := s.repo.FindByInstanceKey(ctx, instanceKey)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "note not found")
		}
		return nil, storageError(err, "failed to load note")
	}
	return note, nil
}

// Save sets the note text of an occurrence. Blank text deletes the note and returns nil.
func (s *NoteService) Save(ctx context.Context, instanceKey, text string) (*models.ClassNote, error) {
	ref, err := schedule.ParseInstanceKey(instanceKey)
	if err != nil {
		return nil, invalid(err.Error())
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, s.Delete(ctx, instanceKey)
	}
	if utf8.RuneCountInString(text) > models.NoteMaxLength {
		return nil, invalid("note must be at most 1000 characters")
	}

	class, err := s.classes.FindClass(ctx, instanceKey)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, models.ClassNote{
		ID:               s.newID(),
		ClassInstanceKey: instanceKey,
		Date:             ref.Date,
		SubjectName:      class.SubjectName,
		StartTime:        class.StartTime,
		NoteText:         text,
	})
	if err != nil {
		return nil, storageError(err, "failed to save note")
	}
	s.cache.InvalidateDays(ctx, ref.Date)
	return stored, nil
}

// Delete removes the note of an occurrence; deleting a missing note is not an error.
func (s *NoteService) Delete(ctx context.Context, instanceKey string) error {
	ref, err := schedule.ParseInstanceKey(instanceKey)
	if err != nil {
		return invalid(err.Error())
	}
	if err := s.repo.DeleteByInstanceKey(ctx, instanceKey); err != nil {
		return storageError(err, "failed to delete note")
	}
	s.cache.InvalidateDays(ctx, ref.Date)
	return nil
}
