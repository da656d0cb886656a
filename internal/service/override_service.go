package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
)

type overrideRepository interface {
	ListByDateRange(ctx context.Context, start, end string) ([]models.DayOverride, error)
	FindByID(ctx context.Context, id string) (*models.DayOverride, error)
	Upsert(ctx context.Context, o models.DayOverride) (*models.DayOverride, error)
	Delete(ctx context.Context, id string) error
}

type scheduleFinder interface {
	FindByID(ctx context.Context, id string) (*models.SubjectSchedule, error)
}

// OverrideService manages per-date edits, cancellations and additions.
type OverrideService struct {
	repo      overrideRepository
	schedules scheduleFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	newID     func() string
}

// NewOverrideService constructs the service.
func NewOverrideService(repo overrideRepository, schedules scheduleFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *OverrideService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverrideService{
		repo:      repo,
		schedules: schedules,
		cache:     cache,
		validator: validate,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// List returns overrides dated between start and end inclusive.
func (s *OverrideService) List(ctx context.Context, query dto.DateRangeQuery) ([]models.DayOverride, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, validationError(err, "invalid date range")
	}
	if query.End < query.Start {
		return nil, invalid("end date must not be before start date")
	}
	items, err := s.repo.ListByDateRange(ctx, query.Start, query.End)
	if err != nil {
		return nil, storageError(err, "failed to list overrides")
	}
	if items == nil {
		items = []models.DayOverride{}
	}
	return items, nil
}

// Get returns one override.
func (s *OverrideService) Get(ctx context.Context, id string) (*models.DayOverride, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "override not found")
		}
		return nil, storageError(err, "failed to load override")
	}
	return o, nil
}

// Create stores a new override. An existing override for the same date and
// base schedule is replaced.
func (s *OverrideService) Create(ctx context.Context, req dto.OverrideRequest) (*models.DayOverride, error) {
	o, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	o.ID = s.newID()
	return s.save(ctx, *o, "")
}

// Update replaces the override with id, keeping its creation time.
func (s *OverrideService) Update(ctx context.Context, id string, req dto.OverrideRequest) (*models.DayOverride, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	o, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	o.ID = existing.ID
	o.CreatedAt = existing.CreatedAt
	return s.save(ctx, *o, existing.Date)
}

// Delete removes an override.
func (s *OverrideService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "override not found")
		}
		return storageError(err, "failed to delete override")
	}
	s.cache.InvalidateDays(ctx, existing.Date)
	return nil
}

func (s *OverrideService) save(ctx context.Context, o models.DayOverride, previousDate string) (*models.DayOverride, error) {
	stored, err := s.repo.Upsert(ctx, o)
	if err != nil {
		return nil, storageError(err, "failed to save override")
	}
	s.cache.InvalidateDays(ctx, stored.Date, previousDate)
	s.logger.Debug("override saved", zap.String("id", stored.ID), zap.String("kind", string(stored.Kind)), zap.String("date", stored.Date))
	return stored, nil
}

// build validates req and produces the override to store, filling blank
// fields of edit and cancel overrides from the referenced base schedule.
func (s *OverrideService) build(ctx context.Context, req dto.OverrideRequest) (*models.DayOverride, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid override")
	}
	kind, err := models.ParseOverrideKind(req.Kind)
	if err != nil {
		return nil, invalid(err.Error())
	}
	date, err := dateutil.ParseDate(req.Date)
	if err != nil {
		return nil, invalid(err.Error())
	}

	o := &models.DayOverride{
		Date:        date.String(),
		Kind:        kind,
		SubjectName: strings.TrimSpace(req.SubjectName),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    trimmedPtr(req.Location),
		Professor:   trimmedPtr(req.Professor),
		Color:       trimmedPtr(req.Color),
	}

	baseID := ""
	if req.BaseScheduleID != nil {
		baseID = strings.TrimSpace(*req.BaseScheduleID)
	}

	switch kind {
	case models.OverrideEdit, models.OverrideCancel:
		if baseID == "" {
			return nil, invalid(string(kind) + " overrides require base_schedule_id")
		}
		base, err := s.schedules.FindByID(ctx, baseID)
		if err != nil {
			if isNotFound(err) {
				return nil, invalid("base schedule " + baseID + " does not exist")
			}
			return nil, storageError(err, "failed to load base schedule")
		}
		if base.DayOfWeek != date.Weekday() {
			return nil, invalid("base schedule " + baseID + " does not occur on " + dateutil.WeekdayName(date.Weekday()))
		}
		o.BaseScheduleID = strPtr(baseID)
		fillFromBase(o, base)
	case models.OverrideAdd:
		if baseID != "" {
			return nil, invalid("add overrides must not reference a base schedule")
		}
		if o.SubjectName == "" || o.StartTime == "" || o.EndTime == "" {
			return nil, invalid("add overrides require subject_name, start_time and end_time")
		}
	}

	if dateutil.Minutes(o.EndTime) <= dateutil.Minutes(o.StartTime) {
		return nil, invalid("end time " + o.EndTime + " must be after start time " + o.StartTime)
	}
	return o, nil
}

func fillFromBase(o *models.DayOverride, base *models.SubjectSchedule) {
	if o.SubjectName == "" {
		o.SubjectName = base.SubjectName
	}
	if o.StartTime == "" {
		o.StartTime = base.StartTime
	}
	if o.EndTime == "" {
		o.EndTime = base.EndTime
	}
	if o.Location == nil {
		o.Location = base.Location
	}
	if o.Professor == nil {
		o.Professor = base.Professor
	}
	if o.Color == nil {
		o.Color = base.Color
	}
}
