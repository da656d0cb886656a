package models

import (
	"sort"
	"time"

	"github.com/noah-isme/schedlume-api/pkg/dateutil"
)

// SubjectSchedule is one recurring weekly class from the imported base schedule.
type SubjectSchedule struct {
	ID          string    `db:"id" json:"id"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Location    *string   `db:"location" json:"location,omitempty"`
	Professor   *string   `db:"professor" json:"professor,omitempty"`
	Color       *string   `db:"color" json:"color,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// DayName returns the full English weekday name.
func (s SubjectSchedule) DayName() string {
	return dateutil.WeekdayName(s.DayOfWeek)
}

// SortSchedules orders schedules by weekday then start time, keeping input order for ties.
func SortSchedules(schedules []SubjectSchedule) {
	sort.SliceStable(schedules, func(i, j int) bool {
		if schedules[i].DayOfWeek != schedules[j].DayOfWeek {
			return schedules[i].DayOfWeek < schedules[j].DayOfWeek
		}
		return dateutil.Minutes(schedules[i].StartTime) < dateutil.Minutes(schedules[j].StartTime)
	})
}
