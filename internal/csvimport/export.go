package csvimport

import (
	"errors"

	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/csvparse"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
	"github.com/noah-isme/schedlume-api/pkg/export"
)

// ErrNoSchedules is returned when there is nothing to export.
var ErrNoSchedules = errors.New("no schedule data to export")

// SchedulesToCSV writes schedules with canonical headers, sorted by weekday
// then start time, days as full English names and times as "HH:mm".
func SchedulesToCSV(schedules []models.SubjectSchedule) ([]byte, error) {
	if len(schedules) == 0 {
		return nil, ErrNoSchedules
	}
	sorted := make([]models.SubjectSchedule, len(schedules))
	copy(sorted, schedules)
	models.SortSchedules(sorted)

	dataset := export.Dataset{Headers: canonicalHeaders(), Rows: make([]map[string]string, 0, len(sorted))}
	for _, s := range sorted {
		dataset.Rows = append(dataset.Rows, map[string]string{
			string(FieldSubjectName): csvparse.NormalizeNewlines(s.SubjectName),
			string(FieldDayOfWeek):   dateutil.WeekdayName(s.DayOfWeek),
			string(FieldStartTime):   s.StartTime,
			string(FieldEndTime):     s.EndTime,
			string(FieldLocation):    deref(s.Location),
			string(FieldProfessor):   deref(s.Professor),
			string(FieldColor):       deref(s.Color),
		})
	}
	return export.NewCSVExporter().Render(dataset)
}

// Template returns a CSV template, either headers only or with sample rows.
func Template(withExamples bool) ([]byte, error) {
	dataset := export.Dataset{Headers: canonicalHeaders()}
	if withExamples {
		dataset.Rows = exampleRows
	}
	return export.NewCSVExporter().Render(dataset)
}

var exampleRows = []map[string]string{
	{"subject_name": "Mathematics", "day_of_week": "Monday", "start_time": "09:00", "end_time": "10:30", "location": "Room 201", "professor": "Dr. Smith", "color": "coral"},
	{"subject_name": "Physics", "day_of_week": "Monday", "start_time": "11:00", "end_time": "12:30", "location": "Lab A", "professor": "Prof. Johnson", "color": "sky"},
	{"subject_name": "English Literature", "day_of_week": "Tuesday", "start_time": "09:00", "end_time": "10:30", "location": "Room 105", "professor": "Ms. Davis", "color": "mint"},
	{"subject_name": "Computer Science", "day_of_week": "Wednesday", "start_time": "14:00", "end_time": "16:00", "location": "Lab B", "professor": "Dr. Chen", "color": "lavender"},
}

func canonicalHeaders() []string {
	headers := make([]string, len(CanonicalFields))
	for i, f := range CanonicalFields {
		headers[i] = string(f)
	}
	return headers
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return csvparse.NormalizeNewlines(*v)
}
