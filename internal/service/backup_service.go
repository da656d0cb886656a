package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
)

// BackupSources groups the readers a snapshot draws from.
type BackupSources struct {
	Schedules     baseScheduleReader
	Overrides     overrideCatalog
	ClassNotes    interface{ ListAll(context.Context) ([]models.ClassNote, error) }
	GeneralNotes  interface{ ListAll(context.Context) ([]models.GeneralNote, error) }
	Notifications interface{ ListAll(context.Context) ([]models.NotificationRecord, error) }
	Settings      settingsReader
}

type dataClearer interface {
	ClearAll(ctx context.Context) error
}

// BackupService exports every stored record and wipes user data on request.
type BackupService struct {
	src    BackupSources
	data   dataClearer
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
}

// NewBackupService constructs the service.
func NewBackupService(src BackupSources, data dataClearer, cache *CacheService, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{src: src, data: data, cache: cache, logger: logger, now: time.Now}
}

// Snapshot collects all data into a single document.
func (s *BackupService) Snapshot(ctx context.Context) (*dto.Backup, error) {
	out := &dto.Backup{SchemaVersion: models.CurrentSchemaVersion, ExportedAt: s.now().UTC()}

	settings, err := s.src.Settings.Get(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load settings")
	}
	out.Settings = *settings

	if out.Schedules, err = s.src.Schedules.GetAll(ctx); err != nil {
		return nil, storageError(err, "failed to load schedules")
	}
	if out.Overrides, err = s.src.Overrides.ListAll(ctx); err != nil {
		return nil, storageError(err, "failed to load overrides")
	}
	if out.ClassNotes, err = s.src.ClassNotes.ListAll(ctx); err != nil {
		return nil, storageError(err, "failed to load class notes")
	}
	if out.GeneralNotes, err = s.src.GeneralNotes.ListAll(ctx); err != nil {
		return nil, storageError(err, "failed to load general notes")
	}
	if out.NotificationRecords, err = s.src.Notifications.ListAll(ctx); err != nil {
		return nil, storageError(err, "failed to load notification records")
	}
	return out, nil
}

// ClearAll deletes every schedule, override, note and reminder record and resets settings.
func (s *BackupService) ClearAll(ctx context.Context) error {
	if err := s.data.ClearAll(ctx); err != nil {
		return storageError(err, "failed to clear data")
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Warn("all user data cleared")
	return nil
}
