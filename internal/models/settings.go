package models

import "time"

// CurrentSchemaVersion is stamped on settings and backups.
const CurrentSchemaVersion = 1

type WeekStart string

const (
	WeekStartMonday WeekStart = "monday"
	WeekStartSunday WeekStart = "sunday"
)

// Weekday converts the setting to a time.Weekday; unknown values mean Monday.
func (w WeekStart) Weekday() time.Weekday {
	if w == WeekStartSunday {
		return time.Sunday
	}
	return time.Monday
}

type TimeFormat string

const (
	TimeFormat12h TimeFormat = "12h"
	TimeFormat24h TimeFormat = "24h"
)

type NotificationPermission string

const (
	PermissionDefault NotificationPermission = "default"
	PermissionGranted NotificationPermission = "granted"
	PermissionDenied  NotificationPermission = "denied"
)

// NotificationTimes lists the times of day reminders may be delivered at.
var NotificationTimes = []string{"08:00", "12:00", "18:00"}

// AppSettings holds the single user's preferences and import bookkeeping.
type AppSettings struct {
	WeekStart              WeekStart              `db:"week_start" json:"week_start"`
	TimeFormat             TimeFormat             `db:"time_format" json:"time_format"`
	LastImportedFileName   *string                `db:"last_imported_file_name" json:"last_imported_file_name,omitempty"`
	LastImportedAt         *time.Time             `db:"last_imported_at" json:"last_imported_at,omitempty"`
	SchemaVersion          int                    `db:"schema_version" json:"schema_version"`
	NotificationsEnabled   bool                   `db:"notifications_enabled" json:"notifications_enabled"`
	NotificationTime       string                 `db:"notification_time" json:"notification_time"`
	NotificationPermission NotificationPermission `db:"notification_permission" json:"notification_permission"`
	UpdatedAt              time.Time              `db:"updated_at" json:"updated_at"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() AppSettings {
	return AppSettings{
		WeekStart:              WeekStartMonday,
		TimeFormat:             TimeFormat24h,
		SchemaVersion:          CurrentSchemaVersion,
		NotificationsEnabled:   false,
		NotificationTime:       "08:00",
		NotificationPermission: PermissionDefault,
	}
}
