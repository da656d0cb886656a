package dto

// OverrideRequest is the payload for creating or replacing a day override.
// Empty schedule fields of edit and cancel overrides are filled from the base schedule.
type OverrideRequest struct {
	Date           string  `json:"date" validate:"required,isodate"`
	BaseScheduleID *string `json:"base_schedule_id" validate:"omitempty,min=1"`
	Kind           string  `json:"kind" validate:"required,overridekind"`
	SubjectName    string  `json:"subject_name" validate:"omitempty,max=200"`
	StartTime      string  `json:"start_time" validate:"omitempty,hhmm"`
	EndTime        string  `json:"end_time" validate:"omitempty,hhmm"`
	Location       *string `json:"location" validate:"omitempty,max=200"`
	Professor      *string `json:"professor" validate:"omitempty,max=200"`
	Color          *string `json:"color" validate:"omitempty,max=32"`
}

// DateRangeQuery bounds list endpoints; both ends are inclusive.
type DateRangeQuery struct {
	Start string `form:"start" validate:"required,isodate"`
	End   string `form:"end" validate:"required,isodate"`
}
