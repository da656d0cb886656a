package dto

import (
	"time"

	"github.com/noah-isme/schedlume-api/internal/models"
)

// Backup is a full JSON snapshot of the user's data.
type Backup struct {
	SchemaVersion       int                         `json:"schema_version"`
	ExportedAt          time.Time                   `json:"exported_at"`
	Settings            models.AppSettings          `json:"settings"`
	Schedules           []models.SubjectSchedule    `json:"schedules"`
	Overrides           []models.DayOverride        `json:"overrides"`
	ClassNotes          []models.ClassNote          `json:"class_notes"`
	GeneralNotes        []models.GeneralNote        `json:"general_notes"`
	NotificationRecords []models.NotificationRecord `json:"notification_records"`
}
