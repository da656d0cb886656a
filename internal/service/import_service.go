package service

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/csvimport"
	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/internal/schedule"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
)

type scheduleWriter interface {
	GetAll(ctx context.Context) ([]models.SubjectSchedule, error)
	ReplaceAll(ctx context.Context, schedules []models.SubjectSchedule) error
}

type importBookkeeper interface {
	UpdateLastImport(ctx context.Context, fileName string, at time.Time) error
}

type overrideCatalog interface {
	ListAll(ctx context.Context) ([]models.DayOverride, error)
}

// ImportServiceConfig tunes upload limits.
type ImportServiceConfig struct {
	MaxUploadBytes    int64
	ErrorPreviewLimit int
}

// ImportService validates schedule CSV files and replaces the base schedule with their rows.
type ImportService struct {
	schedules scheduleWriter
	settings  importBookkeeper
	overrides overrideCatalog
	validator *csvimport.Validator
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ImportServiceConfig
	now       func() time.Time
}

// NewImportService constructs the service.
func NewImportService(schedules scheduleWriter, settings importBookkeeper, overrides overrideCatalog, csvValidator *csvimport.Validator, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg ImportServiceConfig) *ImportService {
	if csvValidator == nil {
		csvValidator = csvimport.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 2 << 20
	}
	if cfg.ErrorPreviewLimit <= 0 {
		cfg.ErrorPreviewLimit = 10
	}
	return &ImportService{
		schedules: schedules,
		settings:  settings,
		overrides: overrides,
		validator: csvValidator,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Validate checks a file without touching storage.
func (s *ImportService) Validate(r io.Reader) (*dto.ImportResult, csvimport.ValidationResult, error) {
	body, err := s.read(r)
	if err != nil {
		return nil, csvimport.ValidationResult{}, err
	}
	res := s.validator.ValidateReader(bytes.NewReader(body))
	out := s.summarize("", res)
	if headers, err := csvimport.InspectHeaders(bytes.NewReader(body)); err == nil {
		out.IgnoredColumns = headers.Ignored
		out.DuplicateColumns = headers.Duplicates
	}
	return out, res, nil
}

// Import validates the file and, when every row is valid, atomically replaces the base schedule.
// A rejected file returns the result together with an IMPORT_REJECTED error and leaves storage untouched.
func (s *ImportService) Import(ctx context.Context, fileName string, r io.Reader) (*dto.ImportResult, error) {
	if fileName = strings.TrimSpace(fileName); fileName != "" {
		fileName = filepath.Base(fileName)
	}
	result, validation, err := s.Validate(r)
	if err != nil {
		s.metrics.RecordImport("failed", 0)
		return nil, err
	}
	result.FileName = fileName

	if !validation.Valid {
		s.metrics.RecordImport("rejected", 0)
		s.logger.Info("schedule import rejected",
			zap.String("file", fileName),
			zap.Int("errors", result.TotalErrors),
		)
		return result, appErrors.WithDetails(appErrors.ErrImportRejected, result)
	}

	if err := s.schedules.ReplaceAll(ctx, validation.Schedules); err != nil {
		s.metrics.RecordImport("failed", 0)
		s.logger.Error("schedule import failed", zap.String("file", fileName), zap.Error(err))
		return nil, storageError(err, "failed to store imported schedules")
	}
	s.cache.InvalidateAll(ctx)

	if s.settings != nil {
		if err := s.settings.UpdateLastImport(ctx, fileName, s.now()); err != nil {
			s.logger.Warn("failed to record last import", zap.Error(err))
		}
	}

	result.OrphanOverrides = s.countOrphans(ctx, validation.Schedules)
	s.metrics.RecordImport("imported", result.Imported)
	s.logger.Info("schedule imported",
		zap.String("file", fileName),
		zap.Int("rows", result.Imported),
		zap.Int("orphan_overrides", result.OrphanOverrides),
	)
	return result, nil
}

func (s *ImportService) read(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	body, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "failed to read upload")
	}
	if int64(len(body)) > s.cfg.MaxUploadBytes {
		return nil, appErrors.ErrPayloadTooBig
	}
	return body, nil
}

func (s *ImportService) summarize(fileName string, res csvimport.ValidationResult) *dto.ImportResult {
	out := &dto.ImportResult{Success: res.Valid, FileName: fileName}
	if res.Valid {
		out.Imported = len(res.Schedules)
		return out
	}
	out.TotalErrors = len(res.Errors)
	preview := res.Errors
	if len(preview) > s.cfg.ErrorPreviewLimit {
		preview = preview[:s.cfg.ErrorPreviewLimit]
	}
	out.Errors = preview
	out.RemainingErrors = out.TotalErrors - len(preview)
	return out
}

// countOrphans reports overrides left pointing at schedules the import removed.
// Orphans are kept and ignored by resolution.
func (s *ImportService) countOrphans(ctx context.Context, base []models.SubjectSchedule) int {
	if s.overrides == nil {
		return 0
	}
	overrides, err := s.overrides.ListAll(ctx)
	if err != nil {
		s.logger.Warn("failed to count orphaned overrides", zap.Error(err))
		return 0
	}
	return len(schedule.Orphaned(base, overrides))
}
