package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
)

type settingsRepository interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Save(ctx context.Context, s models.AppSettings) (*models.AppSettings, error)
}

// SettingsService reads and patches the user's preferences.
type SettingsService struct {
	repo      settingsRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs the service.
func NewSettingsService(repo settingsRepository, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, validator: validate, logger: logger}
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context) (*models.AppSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load settings")
	}
	return settings, nil
}

// Update applies the non-nil fields of req.
func (s *SettingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*models.AppSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid settings")
	}
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	next := *current
	if req.WeekStart != nil {
		next.WeekStart = models.WeekStart(*req.WeekStart)
	}
	if req.TimeFormat != nil {
		next.TimeFormat = models.TimeFormat(*req.TimeFormat)
	}
	if req.NotificationsEnabled != nil {
		next.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.NotificationTime != nil {
		next.NotificationTime = *req.NotificationTime
	}
	if req.NotificationPermission != nil {
		next.NotificationPermission = models.NotificationPermission(*req.NotificationPermission)
	}
	next.SchemaVersion = models.CurrentSchemaVersion

	stored, err := s.repo.Save(ctx, next)
	if err != nil {
		return nil, storageError(err, "failed to save settings")
	}
	return stored, nil
}
