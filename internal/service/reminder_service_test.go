package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
	"github.com/noah-isme/schedlume-api/pkg/jobs"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Reminder
}

func (n *recordingNotifier) Notify(_ context.Context, r models.Reminder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, r)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func dueNote(id, title, due string) models.GeneralNote {
	return models.GeneralNote{ID: id, Date: "2024-03-01", Title: title, HasDueDate: true, DueDate: ptr(due)}
}

func newReminderFixture(t *testing.T) (*ReminderService, *memStore, *recordingNotifier) {
	t.Helper()
	store := newMemStore()
	store.settings.NotificationsEnabled = true
	store.settings.NotificationPermission = models.PermissionGranted
	store.settings.NotificationTime = "08:00"
	notifier := &recordingNotifier{}
	svc := NewReminderService(generalNoteStore{store}, recordStore{store}, settingsStore{store}, notifier, nil, nil, ReminderServiceConfig{Location: time.UTC})
	return svc, store, notifier
}

func TestEligible(t *testing.T) {
	today, err := dateutil.ParseDate("2024-03-10")
	require.NoError(t, err)

	cases := []struct {
		name    string
		note    models.GeneralNote
		ok      bool
		message string
	}{
		{"tomorrow", dueNote("a", "Essay", "2024-03-11"), true, `"Essay" is due tomorrow!`},
		{"two days", dueNote("b", "Lab", "2024-03-12"), true, `"Lab" is due in 2 days`},
		{"three days", dueNote("c", "Quiz", "2024-03-13"), true, `"Quiz" is due in 3 days`},
		{"four days", dueNote("d", "Exam", "2024-03-14"), false, ""},
		{"today", dueNote("e", "Now", "2024-03-10"), false, ""},
		{"overdue", dueNote("f", "Late", "2024-03-01"), false, ""},
		{"no due flag", models.GeneralNote{ID: "g", Title: "Plain", DueDate: ptr("2024-03-11")}, false, ""},
		{"bad due date", dueNote("h", "Broken", "11/03/2024"), false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := Eligible(today, tc.note)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.message, r.Message)
		})
	}
}

func TestShouldNotify(t *testing.T) {
	settings := models.DefaultSettings()
	at := time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)
	assert.False(t, ShouldNotify(settings, at))

	settings.NotificationsEnabled = true
	assert.False(t, ShouldNotify(settings, at), "permission not granted")

	settings.NotificationPermission = models.PermissionGranted
	settings.NotificationTime = "12:00"
	assert.True(t, ShouldNotify(settings, at))

	settings.NotificationTime = "18:00"
	assert.False(t, ShouldNotify(settings, at))
}

func TestReminderServiceCheckDeliversOncePerDay(t *testing.T) {
	svc, store, notifier := newReminderFixture(t)
	store.generalNotes["a"] = dueNote("a", "Essay", "2024-03-11")
	store.generalNotes["b"] = dueNote("b", "Exam", "2024-03-20")
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	sent, err := svc.Check(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Equal(t, 1, notifier.count())
	assert.Equal(t, `"Essay" is due tomorrow!`, notifier.sent[0].Message)
	assert.Contains(t, store.records, models.NotificationRecordID("a", "2024-03-10"))

	sent, err = svc.Check(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Equal(t, 1, notifier.count())
}

func TestReminderServiceCheckRespectsSettings(t *testing.T) {
	svc, store, notifier := newReminderFixture(t)
	store.generalNotes["a"] = dueNote("a", "Essay", "2024-03-11")
	ctx := context.Background()

	sent, err := svc.Check(ctx, time.Date(2024, 3, 10, 7, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, sent)

	store.settings.NotificationPermission = models.PermissionDenied
	sent, err = svc.Check(ctx, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, notifier.count())
	assert.Empty(t, store.records)
}

func TestReminderServicePreviewMarksShown(t *testing.T) {
	svc, store, _ := newReminderFixture(t)
	store.generalNotes["a"] = dueNote("a", "Essay", "2024-03-11")
	store.generalNotes["b"] = dueNote("b", "Lab", "2024-03-12")
	store.records[models.NotificationRecordID("a", "2024-03-10")] = models.NotificationRecord{ID: models.NotificationRecordID("a", "2024-03-10"), NoteID: "a", NotificationDate: "2024-03-10"}

	reminders, err := svc.Preview(context.Background(), "2024-03-10")
	require.NoError(t, err)
	require.Len(t, reminders, 2)
	assert.True(t, reminders[0].AlreadyShown)
	assert.False(t, reminders[1].AlreadyShown)
	assert.Equal(t, 2, reminders[1].DaysUntilDue)

	_, err = svc.Preview(context.Background(), "tomorrow")
	assert.Error(t, err)
}

func TestReminderServiceClearOldRecords(t *testing.T) {
	svc, store, _ := newReminderFixture(t)
	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-09"} {
		id := models.NotificationRecordID("a", d)
		store.records[id] = models.NotificationRecord{ID: id, NoteID: "a", NotificationDate: d}
	}

	n, err := svc.ClearOldRecords(context.Background(), time.Date(2024, 3, 10, 3, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Len(t, store.records, 2)
}

func TestReminderServiceDeliversThroughQueue(t *testing.T) {
	svc, store, notifier := newReminderFixture(t)
	store.generalNotes["a"] = dueNote("a", "Essay", "2024-03-11")

	q := jobs.NewQueue("reminders-test", jobs.QueueConfig{Workers: 1, BufferSize: 4})
	svc.Register(q)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)
	defer q.Stop()

	require.NoError(t, q.Enqueue(jobs.Job{ID: "check", Type: JobReminderCheck, Payload: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}))

	require.Eventually(t, func() bool { return notifier.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}
