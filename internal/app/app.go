// Package app assembles the SchedLume server from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/service"
	"github.com/noah-isme/schedlume-api/migrations"
	"github.com/noah-isme/schedlume-api/pkg/cache"
	"github.com/noah-isme/schedlume-api/pkg/config"
	"github.com/noah-isme/schedlume-api/pkg/database"
	"github.com/noah-isme/schedlume-api/pkg/jobs"
)

// App owns the server's connections, background jobs and HTTP handler.
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *sqlx.DB
	redis     *redis.Client
	services  *Services
	queue     *jobs.Queue
	scheduler *jobs.Scheduler
	server    *http.Server
}

// Open connects to PostgreSQL (and Redis when caching is enabled), applies
// pending migrations when configured to and builds the services.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, logger: logger, db: db}

	if cfg.Database.AutoMigrate {
		applied, err := migrations.Up(ctx, db.DB)
		if err != nil {
			a.closeStores()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		if len(applied) > 0 {
			logger.Info("migrations applied", zap.Strings("files", applied))
		}
	}

	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, timetable cache disabled", zap.Error(err))
		} else {
			a.redis = client
		}
	}

	a.services = NewServices(db, a.redis, cfg, logger)
	return a, nil
}

// Services exposes the wired services.
func (a *App) Services() *Services {
	return a.services
}

// DB exposes the database handle.
func (a *App) DB() *sqlx.DB {
	return a.db
}

// StartJobs starts the reminder queue and, when reminders are enabled, the cron schedules feeding it.
func (a *App) StartJobs(ctx context.Context) error {
	a.queue = jobs.NewQueue("reminders", jobs.QueueConfig{
		Workers:    a.cfg.Reminders.WorkerConcurrency,
		BufferSize: 64,
		MaxRetries: a.cfg.Reminders.WorkerRetries,
		RetryDelay: 30 * time.Second,
		Logger:     a.logger.Named("jobs"),
	})
	a.services.Reminders.Register(a.queue)
	a.queue.Start(ctx)

	if !a.cfg.Reminders.Enabled {
		return nil
	}
	a.scheduler = jobs.NewScheduler(a.queue, a.cfg.Location(), a.logger.Named("scheduler"))
	if err := a.scheduler.Every(a.cfg.Reminders.Schedule, service.JobReminderCheck); err != nil {
		return err
	}
	if err := a.scheduler.Every(a.cfg.Reminders.CleanupSchedule, service.JobReminderCleanup); err != nil {
		return err
	}
	a.scheduler.Start()
	a.scheduler.Trigger(service.JobReminderCheck)
	return nil
}

// Serve runs the HTTP server until ctx is cancelled, then drains it within shutdownTimeout.
func (a *App) Serve(ctx context.Context, shutdownTimeout time.Duration) error {
	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Port),
		Handler:           NewRouter(a.cfg, a.services, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", zap.String("addr", a.server.Addr), zap.String("env", a.cfg.Env))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("server shutting down")
	return a.server.Shutdown(shutdownCtx)
}

// Close stops background jobs and releases connections.
func (a *App) Close(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop(ctx)
	}
	if a.queue != nil {
		a.queue.Stop()
	}
	a.closeStores()
}

func (a *App) closeStores() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("database close failed", zap.Error(err))
		}
	}
}
