package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
)

type generalNoteRepository interface {
	FindByID(ctx context.Context, id string) (*models.GeneralNote, error)
	ListByDate(ctx context.Context, date string) ([]models.GeneralNote, error)
	ListDatesInRange(ctx context.Context, start, end string) ([]string, error)
	Save(ctx context.Context, note models.GeneralNote) (*models.GeneralNote, error)
	Delete(ctx context.Context, id string) error
}

// GeneralNoteService manages dated notes that are not tied to a class.
type GeneralNoteService struct {
	repo      generalNoteRepository
	validator *validator.Validate
	logger    *zap.Logger
	newID     func() string
}

// NewGeneralNoteService constructs the service.
func NewGeneralNoteService(repo generalNoteRepository, validate *validator.Validate, logger *zap.Logger) *GeneralNoteService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeneralNoteService{repo: repo, validator: validate, logger: logger, newID: uuid.NewString}
}

// ListByDate returns the notes of a date, most recently updated first.
func (s *GeneralNoteService) ListByDate(ctx context.Context, date string) ([]models.GeneralNote, error) {
	if !dateutil.IsDate(date) {
		return nil, invalid("date must be in YYYY-MM-DD format")
	}
	notes, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, storageError(err, "failed to list general notes")
	}
	if notes == nil {
		notes = []models.GeneralNote{}
	}
	return notes, nil
}

// Dates lists the dates between start and end holding at least one note.
func (s *GeneralNoteService) Dates(ctx context.Context, query dto.DateRangeQuery) (*dto.NoteDates, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, validationError(err, "invalid date range")
	}
	if query.End < query.Start {
		return nil, invalid("end date must not be before start date")
	}
	dates, err := s.repo.ListDatesInRange(ctx, query.Start, query.End)
	if err != nil {
		return nil, storageError(err, "failed to list general note dates")
	}
	if dates == nil {
		dates = []string{}
	}
	return &dto.NoteDates{Start: query.Start, End: query.End, Dates: dates}, nil
}

// Get returns one note.
func (s *GeneralNoteService) Get(ctx context.Context, id string) (*models.GeneralNote, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "general note not found")
		}
		return nil, storageError(err, "failed to load general note")
	}
	return note, nil
}

// Create stores a new note.
func (s *GeneralNoteService) Create(ctx context.Context, req dto.GeneralNoteRequest) (*models.GeneralNote, error) {
	note, err := s.build(req)
	if err != nil {
		return nil, err
	}
	note.ID = s.newID()
	return s.save(ctx, *note)
}

// Update replaces the content of an existing note; its creation time is kept.
func (s *GeneralNoteService) Update(ctx context.Context, id string, req dto.GeneralNoteRequest) (*models.GeneralNote, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	note, err := s.build(req)
	if err != nil {
		return nil, err
	}
	note.ID = existing.ID
	note.CreatedAt = existing.CreatedAt
	return s.save(ctx, *note)
}

// Delete removes a note along with its reminder history.
func (s *GeneralNoteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "general note not found")
		}
		return storageError(err, "failed to delete general note")
	}
	return nil
}

func (s *GeneralNoteService) save(ctx context.Context, note models.GeneralNote) (*models.GeneralNote, error) {
	stored, err := s.repo.Save(ctx, note)
	if err != nil {
		return nil, storageError(err, "failed to save general note")
	}
	return stored, nil
}

func (s *GeneralNoteService) build(req dto.GeneralNoteRequest) (*models.GeneralNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid general note")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalid("title is required")
	}
	if utf8.RuneCountInString(title) > models.GeneralNoteTitleMaxLength {
		return nil, invalid("title must be at most 100 characters")
	}

	note := &models.GeneralNote{
		Date:       req.Date,
		Title:      title,
		NoteText:   trimmedPtr(req.NoteText),
		HasDueDate: req.HasDueDate,
	}
	if req.HasDueDate {
		due := trimmedPtr(req.DueDate)
		if due == nil {
			return nil, invalid("due_date is required when has_due_date is set")
		}
		note.DueDate = due
	}
	return note, nil
}
