package dto

// ClassNoteRequest sets the note text of one class occurrence. Empty text deletes the note.
type ClassNoteRequest struct {
	NoteText string `json:"note_text"`
}

// GeneralNoteRequest creates or updates a general note.
type GeneralNoteRequest struct {
	Date       string  `json:"date" validate:"required,isodate"`
	Title      string  `json:"title" validate:"required"`
	NoteText   *string `json:"note_text"`
	HasDueDate bool    `json:"has_due_date"`
	DueDate    *string `json:"due_date" validate:"omitempty,isodate"`
}

// NoteDates lists the dates in a range that hold general notes.
type NoteDates struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Dates []string `json:"dates"`
}
