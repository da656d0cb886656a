package app

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/csvimport"
	"github.com/noah-isme/schedlume-api/internal/repository"
	"github.com/noah-isme/schedlume-api/internal/service"
	"github.com/noah-isme/schedlume-api/pkg/config"
)

// Services holds every domain service built over one database handle.
type Services struct {
	Metrics      *service.MetricsService
	Cache        *service.CacheService
	Timetable    *service.TimetableService
	Import       *service.ImportService
	Export       *service.ExportService
	Overrides    *service.OverrideService
	ClassNotes   *service.NoteService
	GeneralNotes *service.GeneralNoteService
	Settings     *service.SettingsService
	Reminders    *service.ReminderService
	Backup       *service.BackupService
	Health       *service.HealthService
}

// NewServices wires repositories and services. redisClient may be nil, in
// which case resolved days are never cached.
func NewServices(db *sqlx.DB, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := cfg.Location()
	validate := service.NewValidator()

	schedules := repository.NewScheduleRepository(db)
	overrides := repository.NewOverrideRepository(db)
	classNotes := repository.NewClassNoteRepository(db)
	generalNotes := repository.NewGeneralNoteRepository(db)
	notifications := repository.NewNotificationRepository(db)
	settings := repository.NewSettingsRepository(db)
	data := repository.NewDataRepository(db)

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	var cachePinger service.Pinger
	if redisClient != nil {
		repo := repository.NewCacheRepository(redisClient, logger.Named("cache"))
		cacheRepo, cachePinger = repo, repo
	}
	cache := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logger.Named("cache"), cfg.Cache.Enabled && redisClient != nil)

	timetable := service.NewTimetableService(schedules, overrides, classNotes, generalNotes, settings, cache, metrics, logger.Named("timetable"))

	return &Services{
		Metrics:   metrics,
		Cache:     cache,
		Timetable: timetable,
		Import: service.NewImportService(schedules, settings, overrides, csvimport.NewValidator(), cache, metrics, logger.Named("import"), service.ImportServiceConfig{
			MaxUploadBytes:    cfg.Import.MaxUploadBytes,
			ErrorPreviewLimit: cfg.Import.ErrorPreviewLimit,
		}),
		Export:       service.NewExportService(schedules, timetable, loc, logger.Named("export")),
		Overrides:    service.NewOverrideService(overrides, schedules, cache, validate, logger.Named("overrides")),
		ClassNotes:   service.NewNoteService(classNotes, timetable, cache, logger.Named("notes")),
		GeneralNotes: service.NewGeneralNoteService(generalNotes, validate, logger.Named("general_notes")),
		Settings:     service.NewSettingsService(settings, validate, logger.Named("settings")),
		Reminders: service.NewReminderService(generalNotes, notifications, settings, service.NewLogNotifier(logger.Named("notifier")), metrics, logger.Named("reminders"), service.ReminderServiceConfig{
			Location:      loc,
			RetentionDays: cfg.Reminders.RetentionDays,
		}),
		Backup: service.NewBackupService(service.BackupSources{
			Schedules:     schedules,
			Overrides:     overrides,
			ClassNotes:    classNotes,
			GeneralNotes:  generalNotes,
			Notifications: notifications,
			Settings:      settings,
		}, data, cache, logger.Named("backup")),
		Health: service.NewHealthService(data, cachePinger),
	}
}
