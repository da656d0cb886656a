package dto

// UpdateSettingsRequest patches settings; nil fields are left unchanged.
type UpdateSettingsRequest struct {
	WeekStart              *string `json:"week_start" validate:"omitempty,oneof=monday sunday"`
	TimeFormat             *string `json:"time_format" validate:"omitempty,oneof=12h 24h"`
	NotificationsEnabled   *bool   `json:"notifications_enabled"`
	NotificationTime       *string `json:"notification_time" validate:"omitempty,oneof=08:00 12:00 18:00"`
	NotificationPermission *string `json:"notification_permission" validate:"omitempty,oneof=default granted denied"`
}
