package models

// ResolvedClass is one concrete class occurrence on a date after overrides are applied.
// It is computed on demand and never stored.
type ResolvedClass struct {
	InstanceKey    string  `json:"instance_key"`
	BaseScheduleID *string `json:"base_schedule_id,omitempty"`
	OverrideID     *string `json:"override_id,omitempty"`
	Date           string  `json:"date"`
	SubjectName    string  `json:"subject_name"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Location       *string `json:"location,omitempty"`
	Professor      *string `json:"professor,omitempty"`
	Color          *string `json:"color,omitempty"`
	IsCanceled     bool    `json:"is_canceled"`
	IsOverridden   bool    `json:"is_overridden"`
	IsAdded        bool    `json:"is_added"`
	HasNote        bool    `json:"has_note"`
}

// DaySchedule groups the resolved classes of one date.
type DaySchedule struct {
	Date    string          `json:"date"`
	Weekday int             `json:"weekday"`
	Classes []ResolvedClass `json:"classes"`
}

// DaySummary condenses a day for month grids.
type DaySummary struct {
	Date            string `json:"date"`
	Weekday         int    `json:"weekday"`
	ClassCount      int    `json:"class_count"`
	CanceledCount   int    `json:"canceled_count"`
	OverriddenCount int    `json:"overridden_count"`
	AddedCount      int    `json:"added_count"`
	NoteCount       int    `json:"note_count"`
	HasGeneralNotes bool   `json:"has_general_notes"`
}

// WeekSchedule is a run of consecutive days starting on the configured week start.
type WeekSchedule struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Days      []DaySchedule `json:"days"`
}

// MonthSummary holds one summary per day of a calendar month.
type MonthSummary struct {
	Month string       `json:"month"`
	Days  []DaySummary `json:"days"`
}
