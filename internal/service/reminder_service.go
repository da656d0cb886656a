package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
	"github.com/noah-isme/schedlume-api/pkg/jobs"
)

// Job types handled by the reminder queue.
const (
	JobReminderCheck   = "reminders.check"
	JobReminderCleanup = "reminders.cleanup"
	JobReminderDeliver = "reminders.deliver"
)

// ReminderLeadDays is how many days ahead of a due date reminders start.
const ReminderLeadDays = 3

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, reminder models.Reminder) error
}

// LogNotifier writes reminders to the log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier constructs a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, r models.Reminder) error {
	n.logger.Info("reminder",
		zap.String("note_id", r.NoteID),
		zap.String("due_date", r.DueDate),
		zap.String("message", r.Message),
	)
	return nil
}

type dueNoteReader interface {
	ListDueBetween(ctx context.Context, start, end string) ([]models.GeneralNote, error)
}

type notificationStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, rec models.NotificationRecord) (bool, error)
	DeleteBefore(ctx context.Context, date string) (int64, error)
}

type settingsReader interface {
	Get(ctx context.Context) (*models.AppSettings, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// ReminderServiceConfig tunes reminder behaviour.
type ReminderServiceConfig struct {
	Location      *time.Location
	RetentionDays int
}

// ReminderService computes due-date reminders for general notes and hands them to a Notifier.
type ReminderService struct {
	notes         dueNoteReader
	records       notificationStore
	settings      settingsReader
	notifier      Notifier
	queue         jobEnqueuer
	metrics       *MetricsService
	logger        *zap.Logger
	loc           *time.Location
	retentionDays int
	now           func() time.Time
}

// NewReminderService constructs the service. Without a queue reminders are delivered inline.
func NewReminderService(notes dueNoteReader, records notificationStore, settings settingsReader, notifier Notifier, metrics *MetricsService, logger *zap.Logger, cfg ReminderServiceConfig) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 7
	}
	return &ReminderService{
		notes:         notes,
		records:       records,
		settings:      settings,
		notifier:      notifier,
		metrics:       metrics,
		logger:        logger,
		loc:           cfg.Location,
		retentionDays: cfg.RetentionDays,
		now:           time.Now,
	}
}

// Register wires the reminder job handlers onto q and routes deliveries through it.
func (s *ReminderService) Register(q *jobs.Queue) {
	q.Handle(JobReminderCheck, func(ctx context.Context, job jobs.Job) error {
		_, err := s.Check(ctx, jobTime(job, s.now))
		return err
	})
	q.Handle(JobReminderCleanup, func(ctx context.Context, job jobs.Job) error {
		_, err := s.ClearOldRecords(ctx, jobTime(job, s.now))
		return err
	})
	q.Handle(JobReminderDeliver, func(ctx context.Context, job jobs.Job) error {
		r, ok := job.Payload.(models.Reminder)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", job.Payload, job.Type)
		}
		return s.deliver(ctx, r)
	})
	s.queue = q
}

// Eligible builds the reminder for note as seen on today. It reports false unless
// the note has a due date one to ReminderLeadDays days after today.
func Eligible(today dateutil.Date, note models.GeneralNote) (models.Reminder, bool) {
	if !note.HasDueDate || note.DueDate == nil {
		return models.Reminder{}, false
	}
	due, err := dateutil.ParseDate(*note.DueDate)
	if err != nil {
		return models.Reminder{}, false
	}
	days := today.DaysUntil(due)
	if days < 1 || days > ReminderLeadDays {
		return models.Reminder{}, false
	}

	message := fmt.Sprintf("\"%s\" is due in %d days", note.Title, days)
	if days == 1 {
		message = fmt.Sprintf("\"%s\" is due tomorrow!", note.Title)
	}
	return models.Reminder{
		NoteID:       note.ID,
		Title:        note.Title,
		DueDate:      due.String(),
		DaysUntilDue: days,
		Message:      message,
	}, true
}

// Preview lists the reminders that apply on raw (today when empty), marking those already shown.
func (s *ReminderService) Preview(ctx context.Context, raw string) ([]models.Reminder, error) {
	today := dateutil.Today(s.loc)
	if raw != "" {
		d, err := dateutil.ParseDate(raw)
		if err != nil {
			return nil, invalid(err.Error())
		}
		today = d
	}

	reminders, err := s.eligible(ctx, today)
	if err != nil {
		return nil, err
	}
	for i := range reminders {
		shown, err := s.records.Exists(ctx, models.NotificationRecordID(reminders[i].NoteID, today.String()))
		if err != nil {
			return nil, storageError(err, "failed to check reminder history")
		}
		reminders[i].AlreadyShown = shown
	}
	return reminders, nil
}

// Check delivers the reminders due at now. Nothing happens unless notifications
// are enabled and granted and the configured notification time has passed.
// Each reminder is delivered at most once per note and day.
func (s *ReminderService) Check(ctx context.Context, now time.Time) (int, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 0, storageError(err, "failed to load settings")
	}
	local := now.In(s.loc)
	if !ShouldNotify(*settings, local) {
		return 0, nil
	}

	today := dateutil.FromTime(local)
	reminders, err := s.eligible(ctx, today)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range reminders {
		inserted, err := s.records.Insert(ctx, models.NotificationRecord{
			ID:               models.NotificationRecordID(r.NoteID, today.String()),
			NoteID:           r.NoteID,
			NotificationDate: today.String(),
			ShownAt:          now.UTC(),
		})
		if err != nil {
			s.metrics.RecordReminder("failed")
			return sent, storageError(err, "failed to record reminder")
		}
		if !inserted {
			s.metrics.RecordReminder("skipped")
			continue
		}
		if err := s.dispatch(ctx, r); err != nil {
			s.metrics.RecordReminder("failed")
			s.logger.Warn("reminder dispatch failed", zap.String("note_id", r.NoteID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// ClearOldRecords purges reminder history older than the retention window.
func (s *ReminderService) ClearOldRecords(ctx context.Context, now time.Time) (int64, error) {
	cutoff := dateutil.FromTime(now.In(s.loc)).AddDays(-s.retentionDays)
	n, err := s.records.DeleteBefore(ctx, cutoff.String())
	if err != nil {
		return 0, storageError(err, "failed to clear reminder history")
	}
	if n > 0 {
		s.logger.Info("reminder history purged", zap.Int64("records", n), zap.String("before", cutoff.String()))
	}
	return n, nil
}

// ShouldNotify reports whether settings allow delivery at local time now.
func ShouldNotify(settings models.AppSettings, now time.Time) bool {
	if !settings.NotificationsEnabled || settings.NotificationPermission != models.PermissionGranted {
		return false
	}
	at := dateutil.Minutes(settings.NotificationTime)
	if at < 0 {
		return false
	}
	return now.Hour()*60+now.Minute() >= at
}

func (s *ReminderService) eligible(ctx context.Context, today dateutil.Date) ([]models.Reminder, error) {
	notes, err := s.notes.ListDueBetween(ctx, today.AddDays(1).String(), today.AddDays(ReminderLeadDays).String())
	if err != nil {
		return nil, storageError(err, "failed to load due notes")
	}
	reminders := make([]models.Reminder, 0, len(notes))
	for _, n := range notes {
		if r, ok := Eligible(today, n); ok {
			reminders = append(reminders, r)
		}
	}
	return reminders, nil
}

func (s *ReminderService) dispatch(ctx context.Context, r models.Reminder) error {
	if s.queue == nil {
		return s.deliver(ctx, r)
	}
	return s.queue.Enqueue(jobs.Job{ID: r.NoteID, Type: JobReminderDeliver, Payload: r})
}

func (s *ReminderService) deliver(ctx context.Context, r models.Reminder) error {
	if err := s.notifier.Notify(ctx, r); err != nil {
		return err
	}
	s.metrics.RecordReminder("sent")
	return nil
}

func jobTime(job jobs.Job, now func() time.Time) time.Time {
	if t, ok := job.Payload.(time.Time); ok {
		return t
	}
	return now()
}
