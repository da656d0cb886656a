package csvimport

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/csvparse"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
)

// FileColumn is the column reported for errors about the file as a whole.
const FileColumn = "file"

// ValidationError describes one problem found in the import file. Row is the
// file line the offending record starts on (1 is the header line); blank
// lines and multi-line quoted fields are counted. 0 marks file-level problems.
type ValidationError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

func (e ValidationError) String() string {
	if e.Row == 0 {
		return e.Message
	}
	return fmt.Sprintf("row %d, %s: %s", e.Row, e.Column, e.Message)
}

// ValidationResult carries either the accepted schedules or every problem found.
type ValidationResult struct {
	Valid     bool                     `json:"valid"`
	Schedules []models.SubjectSchedule `json:"schedules,omitempty"`
	Errors    []ValidationError        `json:"errors,omitempty"`
}

// Validator checks parsed rows and builds base schedules from them.
type Validator struct {
	newID func() string
	now   func() time.Time
}

// Option customises a Validator.
type Option func(*Validator)

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(fn func() string) Option {
	return func(v *Validator) {
		if fn != nil {
			v.newID = fn
		}
	}
}

// WithClock replaces the timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(v *Validator) {
		if fn != nil {
			v.now = fn
		}
	}
}

// NewValidator constructs a validator.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks data rows (header excluded) against the resolved headers,
// numbering them as if they directly followed the header line.
func (v *Validator) Validate(rows [][]string, headers HeaderMap) ValidationResult {
	records := make([]csvparse.Record, len(rows))
	for i, row := range rows {
		records[i] = csvparse.Record{Line: i + 2, Fields: row}
	}
	return v.ValidateRecords(records, headers)
}

// ValidateRecords checks parsed data records against the resolved headers.
// Errors carry each record's starting line. All problems are collected; any
// problem rejects every row.
func (v *Validator) ValidateRecords(records []csvparse.Record, headers HeaderMap) ValidationResult {
	var errs []ValidationError
	for _, field := range headers.Missing() {
		errs = append(errs, ValidationError{
			Row:     1,
			Column:  string(field),
			Message: fmt.Sprintf("missing required column %q", field),
		})
	}

	now := v.now()
	schedules := make([]models.SubjectSchedule, 0, len(records))
	dataRows := 0
	for _, rec := range records {
		if isBlank(rec.Fields) {
			continue
		}
		dataRows++
		schedule, rowErrs := v.validateRow(rec.Line, rec.Fields, headers)
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}
		schedule.CreatedAt = now
		schedule.UpdatedAt = now
		schedules = append(schedules, schedule)
	}

	if dataRows == 0 {
		errs = append(errs, ValidationError{Row: 0, Column: FileColumn, Message: "file contains no schedule rows"})
	}

	if len(errs) > 0 {
		return ValidationResult{Valid: false, Errors: errs}
	}
	return ValidationResult{Valid: true, Schedules: schedules}
}

// ValidateReader parses raw CSV, resolves its header row and validates the rest.
// Structural parse failures are reported as a single row 0 error.
func (v *Validator) ValidateReader(r io.Reader) ValidationResult {
	records, err := csvparse.Parse(r)
	if err != nil {
		return fileError(err)
	}
	if len(records) == 0 {
		return fileError(csvparse.ErrEmpty)
	}
	return v.ValidateRecords(records[1:], ResolveHeaders(records[0].Fields))
}

func (v *Validator) validateRow(rowNum int, row []string, headers HeaderMap) (models.SubjectSchedule, []ValidationError) {
	var errs []ValidationError
	fail := func(field Field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Row: rowNum, Column: string(field), Message: fmt.Sprintf(format, args...)})
	}

	schedule := models.SubjectSchedule{}

	if headers.Has(FieldSubjectName) {
		schedule.SubjectName = headers.Value(row, FieldSubjectName)
		if schedule.SubjectName == "" {
			fail(FieldSubjectName, "subject name is required")
		}
	}

	if headers.Has(FieldDayOfWeek) {
		raw := headers.Value(row, FieldDayOfWeek)
		if raw == "" {
			fail(FieldDayOfWeek, "day of week is required")
		} else if day, err := dateutil.ParseWeekday(raw); err != nil {
			fail(FieldDayOfWeek, "invalid day of week %q: use a day name, a 3-letter abbreviation or 0-6", raw)
		} else {
			schedule.DayOfWeek = day
		}
	}

	var startOK, endOK bool
	schedule.StartTime, startOK = parseTimeField(headers, row, FieldStartTime, fail)
	schedule.EndTime, endOK = parseTimeField(headers, row, FieldEndTime, fail)
	if startOK && endOK && dateutil.Minutes(schedule.EndTime) <= dateutil.Minutes(schedule.StartTime) {
		fail(FieldEndTime, "end time %s must be after start time %s", schedule.EndTime, schedule.StartTime)
	}

	schedule.Location = optional(headers.Value(row, FieldLocation))
	schedule.Professor = optional(headers.Value(row, FieldProfessor))
	schedule.Color = optional(headers.Value(row, FieldColor))

	if len(errs) > 0 {
		return models.SubjectSchedule{}, errs
	}
	schedule.ID = v.newID()
	return schedule, nil
}

func parseTimeField(headers HeaderMap, row []string, field Field, fail func(Field, string, ...interface{})) (string, bool) {
	if !headers.Has(field) {
		return "", false
	}
	raw := headers.Value(row, field)
	label := strings.ReplaceAll(string(field), "_", " ")
	if raw == "" {
		fail(field, "%s is required", label)
		return "", false
	}
	clock, err := dateutil.ParseClock(raw)
	if err != nil {
		fail(field, "invalid %s %q: use HH:mm or H:mm AM/PM", label, raw)
		return "", false
	}
	return clock, true
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func fileError(err error) ValidationResult {
	message := err.Error()
	var parseErr *csvparse.ParseError
	switch {
	case errors.As(err, &parseErr):
		message = "could not parse CSV: " + parseErr.Error()
	case errors.Is(err, csvparse.ErrEmpty):
		message = "file is empty"
	}
	return ValidationResult{Valid: false, Errors: []ValidationError{{Row: 0, Column: FileColumn, Message: message}}}
}
