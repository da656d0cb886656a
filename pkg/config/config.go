package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	Timezone  string

	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Cache     CacheConfig
	Import    ImportConfig
	Reminders ReminderConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig governs the resolved timetable cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// ImportConfig bounds CSV uploads and the size of the error preview returned to clients.
type ImportConfig struct {
	MaxUploadBytes    int64
	ErrorPreviewLimit int
}

// ReminderConfig controls the due-date reminder scheduler.
type ReminderConfig struct {
	Enabled           bool
	Schedule          string
	CleanupSchedule   string
	RetentionDays     int
	WorkerConcurrency int
	WorkerRetries     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.Timezone = v.GetString("TIMEZONE")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("TIMETABLE_CACHE_TTL"), 10*time.Minute),
	}

	maxUpload := v.GetInt64("IMPORT_MAX_UPLOAD_BYTES")
	if maxUpload <= 0 {
		maxUpload = 2 * 1024 * 1024
	}
	previewLimit := v.GetInt("IMPORT_ERROR_PREVIEW_LIMIT")
	if previewLimit <= 0 {
		previewLimit = 10
	}
	cfg.Import = ImportConfig{
		MaxUploadBytes:    maxUpload,
		ErrorPreviewLimit: previewLimit,
	}

	cfg.Reminders = ReminderConfig{
		Enabled:           v.GetBool("ENABLE_REMINDERS"),
		Schedule:          v.GetString("REMINDERS_SCHEDULE"),
		CleanupSchedule:   v.GetString("REMINDERS_CLEANUP_SCHEDULE"),
		RetentionDays:     v.GetInt("REMINDERS_RETENTION_DAYS"),
		WorkerConcurrency: v.GetInt("REMINDERS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("REMINDERS_WORKER_RETRIES"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("TIMEZONE", "Local")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "schedlume")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("TIMETABLE_CACHE_TTL", "10m")

	v.SetDefault("IMPORT_MAX_UPLOAD_BYTES", 2*1024*1024)
	v.SetDefault("IMPORT_ERROR_PREVIEW_LIMIT", 10)

	v.SetDefault("ENABLE_REMINDERS", true)
	v.SetDefault("REMINDERS_SCHEDULE", "0 * * * *")
	v.SetDefault("REMINDERS_CLEANUP_SCHEDULE", "30 3 * * *")
	v.SetDefault("REMINDERS_RETENTION_DAYS", 7)
	v.SetDefault("REMINDERS_WORKER_CONCURRENCY", 1)
	v.SetDefault("REMINDERS_WORKER_RETRIES", 3)
}

// Location resolves the configured timezone, falling back to the process local zone.
func (c *Config) Location() *time.Location {
	if c == nil || c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
