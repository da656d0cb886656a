package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schedlume-api/internal/middleware"
	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
	"github.com/noah-isme/schedlume-api/pkg/response"
)

// defaultCalendarDays is the feed length when no end date is given.
const defaultCalendarDays = 120

type timetableService interface {
	Day(ctx context.Context, raw string) (*models.DaySchedule, bool, error)
	Week(ctx context.Context, raw string) (*models.WeekSchedule, error)
	Month(ctx context.Context, raw string) (*models.MonthSummary, error)
}

type calendarExporter interface {
	ICS(ctx context.Context, start, end dateutil.Date) ([]byte, error)
}

// TimetableHandler serves resolved timetables.
type TimetableHandler struct {
	timetable timetableService
	calendar  calendarExporter
	loc       *time.Location
}

// NewTimetableHandler constructs the handler. loc decides what "today" is for the calendar feed.
func NewTimetableHandler(timetable timetableService, calendar calendarExporter, loc *time.Location) *TimetableHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TimetableHandler{timetable: timetable, calendar: calendar, loc: loc}
}

// Day godoc
// @Summary Resolved classes of a date
// @Tags Timetable
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /timetable/days/{date} [get]
func (h *TimetableHandler) Day(c *gin.Context) {
	day, hit, err := h.timetable.Day(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	respond(c, http.StatusOK, day)
}

// Week godoc
// @Summary Resolved week containing a date
// @Tags Timetable
// @Produce json
// @Param date path string true "Any date in the week (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /timetable/weeks/{date} [get]
func (h *TimetableHandler) Week(c *gin.Context) {
	week, err := h.timetable.Week(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, week)
}

// Month godoc
// @Summary Month grid summary
// @Tags Timetable
// @Produce json
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Router /timetable/months/{month} [get]
func (h *TimetableHandler) Month(c *gin.Context) {
	month, err := h.timetable.Month(c.Request.Context(), c.Param("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, http.StatusOK, month)
}

// Calendar godoc
// @Summary iCalendar feed of resolved classes
// @Tags Timetable
// @Produce text/calendar
// @Param start query string false "First date (default today)"
// @Param end query string false "Last date (default start + 119 days)"
// @Success 200 {file} file
// @Router /timetable/calendar.ics [get]
func (h *TimetableHandler) Calendar(c *gin.Context) {
	start := dateutil.Today(h.loc)
	if raw := c.Query("start"); raw != "" {
		d, err := dateParam(raw, "start")
		if err != nil {
			response.Error(c, err)
			return
		}
		start = d
	}
	end := start.AddDays(defaultCalendarDays - 1)
	if raw := c.Query("end"); raw != "" {
		d, err := dateParam(raw, "end")
		if err != nil {
			response.Error(c, err)
			return
		}
		end = d
	}
	if end.Before(start) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "end must not be before start"))
		return
	}

	body, err := h.calendar.ICS(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "text/calendar; charset=utf-8", "schedlume.ics", body)
}
