package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
)

const (
	timetablePattern = "timetable:*"
	dayKeyPrefix     = "timetable:day:"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService caches resolved timetable days. When disabled every lookup misses.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
	generation atomic.Uint64
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// DayKey is the cache key of a resolved day.
func DayKey(date string) string {
	return dayKeyPrefix + date
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get attempts to retrieve a cached entry and reports whether it was a hit.
// Backend failures are logged and treated as misses.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

// Set stores the value; failures are logged and otherwise ignored.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Generation returns a counter bumped by every invalidation. Read it before
// loading the data a cached value is built from and pass it to SetCurrent.
func (s *CacheService) Generation() uint64 {
	if s == nil {
		return 0
	}
	return s.generation.Load()
}

// SetCurrent stores value unless an invalidation ran after gen was read. An
// invalidation that lands during the write drops the key again.
func (s *CacheService) SetCurrent(ctx context.Context, key string, value interface{}, ttl time.Duration, gen uint64) bool {
	if !s.Enabled() || s.generation.Load() != gen {
		return false
	}
	s.Set(ctx, key, value, ttl)
	if s.generation.Load() != gen {
		s.invalidate(ctx, key)
		return false
	}
	return true
}

// InvalidateDays drops the cached entries of the given dates.
func (s *CacheService) InvalidateDays(ctx context.Context, dates ...string) {
	for _, d := range dates {
		if d != "" {
			s.invalidate(ctx, DayKey(d))
		}
	}
}

// InvalidateAll drops every cached timetable entry.
func (s *CacheService) InvalidateAll(ctx context.Context) {
	s.invalidate(ctx, timetablePattern)
}

func (s *CacheService) invalidate(ctx context.Context, pattern string) {
	if !s.Enabled() {
		return
	}
	s.generation.Add(1)
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
