package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/csvimport"
	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
	"github.com/noah-isme/schedlume-api/pkg/export"
)

type rangeResolver interface {
	Range(ctx context.Context, start, end dateutil.Date) ([]models.DaySchedule, error)
}

// ExportService renders the base schedule and resolved timetables as downloadable files.
type ExportService struct {
	schedules baseScheduleReader
	timetable rangeResolver
	pdf       *export.PDFExporter
	ics       *export.ICSExporter
	loc       *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs the service. loc is the zone class times are interpreted in.
func NewExportService(schedules baseScheduleReader, timetable rangeResolver, loc *time.Location, logger *zap.Logger) *ExportService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		schedules: schedules,
		timetable: timetable,
		pdf:       export.NewPDFExporter(),
		ics:       export.NewICSExporter("-//SchedLume//Timetable//EN", "SchedLume"),
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns the base schedule in weekday and start time order.
func (s *ExportService) List(ctx context.Context) ([]models.SubjectSchedule, error) {
	items, err := s.schedules.GetAll(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load schedules")
	}
	models.SortSchedules(items)
	if items == nil {
		items = []models.SubjectSchedule{}
	}
	return items, nil
}

// CSV exports the base schedule in the import format.
func (s *ExportService) CSV(ctx context.Context) ([]byte, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	body, err := csvimport.SchedulesToCSV(items)
	if errors.Is(err, csvimport.ErrNoSchedules) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, err.Error())
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return body, nil
}

// Template returns the blank or example import template.
func (s *ExportService) Template(withExamples bool) ([]byte, error) {
	body, err := csvimport.Template(withExamples)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render template")
	}
	return body, nil
}

// PDF renders the base schedule as a weekly timetable, one section per weekday with classes.
func (s *ExportService) PDF(ctx context.Context) ([]byte, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, csvimport.ErrNoSchedules.Error())
	}

	byDay := make(map[int][]models.SubjectSchedule, 7)
	for _, item := range items {
		byDay[item.DayOfWeek] = append(byDay[item.DayOfWeek], item)
	}

	doc := export.PDFDocument{
		Title:    "Weekly timetable",
		Subtitle: fmt.Sprintf("%d classes, generated %s", len(items), s.now().In(s.loc).Format("2006-01-02 15:04")),
	}
	// Monday first, Sunday last.
	for _, wd := range []int{1, 2, 3, 4, 5, 6, 0} {
		day := byDay[wd]
		section := export.PDFSection{
			Heading: dateutil.WeekdayName(wd),
			Data:    export.Dataset{Headers: []string{"time", "subject", "location", "professor"}},
		}
		for _, c := range day {
			section.Data.Rows = append(section.Data.Rows, map[string]string{
				"time":      c.StartTime + " - " + c.EndTime,
				"subject":   c.SubjectName,
				"location":  deref(c.Location),
				"professor": deref(c.Professor),
			})
			section.Accent = append(section.Accent, models.DisplayColor(c.Color))
		}
		doc.Sections = append(doc.Sections, section)
	}

	body, err := s.pdf.Render(doc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return body, nil
}

// ICS renders the resolved classes between start and end as an iCalendar feed.
func (s *ExportService) ICS(ctx context.Context, start, end dateutil.Date) ([]byte, error) {
	days, err := s.timetable.Range(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var events []export.CalendarEvent
	for _, day := range days {
		date, err := dateutil.ParseDate(day.Date)
		if err != nil {
			continue
		}
		for _, c := range day.Classes {
			events = append(events, export.CalendarEvent{
				UID:         c.InstanceKey + "@schedlume",
				Summary:     c.SubjectName,
				Description: deref(c.Professor),
				Location:    deref(c.Location),
				Start:       at(date, c.StartTime, s.loc),
				End:         at(date, c.EndTime, s.loc),
				Cancelled:   c.IsCanceled,
			})
		}
	}

	body, err := s.ics.Render(events, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar")
	}
	return body, nil
}

func at(date dateutil.Date, clock string, loc *time.Location) time.Time {
	minutes := dateutil.Minutes(clock)
	if minutes < 0 {
		minutes = 0
	}
	return time.Date(date.Year, date.Month, date.Day, minutes/60, minutes%60, 0, 0, loc)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
