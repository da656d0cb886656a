package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler turns cron expressions into jobs on a Queue.
type Scheduler struct {
	cron   *cron.Cron
	queue  *Queue
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler builds a scheduler that evaluates specs in loc.
func NewScheduler(queue *Queue, loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		queue:  queue,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// ValidateSpec reports whether spec is a standard five-field cron expression.
func ValidateSpec(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

// Every enqueues a job of jobType each time spec fires. The payload is the
// fire time in the scheduler's location.
func (s *Scheduler) Every(spec, jobType string) error {
	if err := ValidateSpec(spec); err != nil {
		return err
	}
	_, err := s.cron.AddFunc(spec, func() {
		s.Trigger(jobType)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", jobType, err)
	}
	s.logger.Info("job scheduled", zap.String("type", jobType), zap.String("spec", spec))
	return nil
}

// Trigger enqueues jobType immediately.
func (s *Scheduler) Trigger(jobType string) {
	job := Job{ID: uuid.NewString(), Type: jobType, Payload: s.now()}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue scheduled job", zap.String("type", jobType), zap.Error(err))
	}
}

// Start runs the cron loop in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and waits for running triggers, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
