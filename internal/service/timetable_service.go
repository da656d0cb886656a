package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/internal/schedule"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
)

type baseScheduleReader interface {
	GetAll(ctx context.Context) ([]models.SubjectSchedule, error)
}

type overrideReader interface {
	ListByDate(ctx context.Context, date string) ([]models.DayOverride, error)
	ListByDateRange(ctx context.Context, start, end string) ([]models.DayOverride, error)
}

type noteKeyReader interface {
	ListKeysByDateRange(ctx context.Context, start, end string) ([]string, error)
}

type noteDateReader interface {
	ListDatesInRange(ctx context.Context, start, end string) ([]string, error)
}

type weekStartReader interface {
	Get(ctx context.Context) (*models.AppSettings, error)
}

// TimetableService loads base schedules, overrides and note keys and resolves them into concrete days.
type TimetableService struct {
	schedules    baseScheduleReader
	overrides    overrideReader
	notes        noteKeyReader
	generalNotes noteDateReader
	settings     weekStartReader
	cache        *CacheService
	metrics      *MetricsService
	logger       *zap.Logger
}

// NewTimetableService constructs the service. cache, metrics and logger may be nil.
func NewTimetableService(schedules baseScheduleReader, overrides overrideReader, notes noteKeyReader, generalNotes noteDateReader, settings weekStartReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		schedules:    schedules,
		overrides:    overrides,
		notes:        notes,
		generalNotes: generalNotes,
		settings:     settings,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
	}
}

// Day resolves a single date. The second return value reports a cache hit.
func (s *TimetableService) Day(ctx context.Context, raw string) (*models.DaySchedule, bool, error) {
	date, err := dateutil.ParseDate(raw)
	if err != nil {
		return nil, false, invalid(err.Error())
	}

	var cached models.DaySchedule
	if s.cache.Get(ctx, DayKey(date.String()), &cached) {
		return &cached, true, nil
	}

	gen := s.cache.Generation()
	start := time.Now()
	base, err := s.schedules.GetAll(ctx)
	if err != nil {
		return nil, false, storageError(err, "failed to load schedules")
	}
	overrides, err := s.overrides.ListByDate(ctx, date.String())
	if err != nil {
		return nil, false, storageError(err, "failed to load overrides")
	}
	keys, err := s.notes.ListKeysByDateRange(ctx, date.String(), date.String())
	if err != nil {
		return nil, false, storageError(err, "failed to load class notes")
	}

	day := &models.DaySchedule{
		Date:    date.String(),
		Weekday: date.Weekday(),
		Classes: schedule.Resolve(date, base, overrides, schedule.NewNoteKeys(keys...)),
	}
	s.metrics.ObserveResolve("day", time.Since(start))
	s.cache.SetCurrent(ctx, DayKey(day.Date), day, 0, gen)
	return day, false, nil
}

// Range resolves every date from start to end inclusive.
func (s *TimetableService) Range(ctx context.Context, start, end dateutil.Date) ([]models.DaySchedule, error) {
	if end.Before(start) {
		return nil, invalid("end date must not be before start date")
	}
	if start.DaysUntil(end) >= dateutil.MaxRangeDays {
		return nil, invalid("date range is too long")
	}

	began := time.Now()
	base, err := s.schedules.GetAll(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load schedules")
	}
	overrides, err := s.overrides.ListByDateRange(ctx, start.String(), end.String())
	if err != nil {
		return nil, storageError(err, "failed to load overrides")
	}
	keys, err := s.notes.ListKeysByDateRange(ctx, start.String(), end.String())
	if err != nil {
		return nil, storageError(err, "failed to load class notes")
	}

	days, err := schedule.ResolveRange(start, end, base, overrides, schedule.NewNoteKeys(keys...))
	if err != nil {
		return nil, invalid(err.Error())
	}
	s.metrics.ObserveResolve("range", time.Since(began))
	return days, nil
}

// Week resolves the seven days of the week containing raw, starting on the configured week start.
func (s *TimetableService) Week(ctx context.Context, raw string) (*models.WeekSchedule, error) {
	date, err := dateutil.ParseDate(raw)
	if err != nil {
		return nil, invalid(err.Error())
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load settings")
	}

	first := dateutil.StartOfWeek(date, settings.WeekStart.Weekday())
	last := first.AddDays(6)
	days, err := s.Range(ctx, first, last)
	if err != nil {
		return nil, err
	}
	return &models.WeekSchedule{StartDate: first.String(), EndDate: last.String(), Days: days}, nil
}

// Month summarises every day of a "YYYY-MM" month for calendar grids.
func (s *TimetableService) Month(ctx context.Context, raw string) (*models.MonthSummary, error) {
	first, last, err := dateutil.ParseMonth(raw)
	if err != nil {
		return nil, invalid(err.Error())
	}
	days, err := s.Range(ctx, first, last)
	if err != nil {
		return nil, err
	}
	noteDates, err := s.generalNotes.ListDatesInRange(ctx, first.String(), last.String())
	if err != nil {
		return nil, storageError(err, "failed to load general note dates")
	}
	withNotes := make(map[string]struct{}, len(noteDates))
	for _, d := range noteDates {
		withNotes[d] = struct{}{}
	}

	summary := &models.MonthSummary{Month: raw, Days: make([]models.DaySummary, 0, len(days))}
	for _, day := range days {
		sum := schedule.Summarize(day)
		_, sum.HasGeneralNotes = withNotes[day.Date]
		summary.Days = append(summary.Days, sum)
	}
	return summary, nil
}

// FindClass returns the resolved occurrence identified by an instance key.
func (s *TimetableService) FindClass(ctx context.Context, instanceKey string) (*models.ResolvedClass, error) {
	ref, err := schedule.ParseInstanceKey(instanceKey)
	if err != nil {
		return nil, invalid(err.Error())
	}
	day, _, err := s.Day(ctx, ref.Date)
	if err != nil {
		return nil, err
	}
	for i := range day.Classes {
		if day.Classes[i].InstanceKey == instanceKey {
			return &day.Classes[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
