package models

import (
	"fmt"
	"strings"
	"time"
)

// OverrideKind tags what a DayOverride does to the base schedule on its date.
type OverrideKind string

const (
	OverrideEdit   OverrideKind = "edit"
	OverrideCancel OverrideKind = "cancel"
	OverrideAdd    OverrideKind = "add"
)

// ParseOverrideKind normalises a raw kind value.
func ParseOverrideKind(raw string) (OverrideKind, error) {
	kind := OverrideKind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", fmt.Errorf("unknown override kind %q", raw)
	}
	return kind, nil
}

// Valid reports whether k is one of the known kinds.
func (k OverrideKind) Valid() bool {
	switch k {
	case OverrideEdit, OverrideCancel, OverrideAdd:
		return true
	default:
		return false
	}
}

// RequiresBase reports whether the kind must reference a base schedule.
func (k OverrideKind) RequiresBase() bool {
	switch k {
	case OverrideEdit, OverrideCancel:
		return true
	case OverrideAdd:
		return false
	default:
		return false
	}
}

// DayOverride is a user-made exception to the base schedule on a single date.
type DayOverride struct {
	ID             string       `db:"id" json:"id"`
	Date           string       `db:"date" json:"date"`
	BaseScheduleID *string      `db:"base_schedule_id" json:"base_schedule_id,omitempty"`
	Kind           OverrideKind `db:"kind" json:"kind"`
	SubjectName    string       `db:"subject_name" json:"subject_name"`
	StartTime      string       `db:"start_time" json:"start_time"`
	EndTime        string       `db:"end_time" json:"end_time"`
	Location       *string      `db:"location" json:"location,omitempty"`
	Professor      *string      `db:"professor" json:"professor,omitempty"`
	Color          *string      `db:"color" json:"color,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

// BaseID returns the referenced base schedule id or "".
func (o DayOverride) BaseID() string {
	if o.BaseScheduleID == nil {
		return ""
	}
	return *o.BaseScheduleID
}
