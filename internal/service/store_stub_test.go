package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/schedlume-api/internal/models"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
)

// memStore is an in-memory stand-in for every repository the services use.
type memStore struct {
	mu sync.Mutex

	schedules     []models.SubjectSchedule
	overrides     map[string]models.DayOverride
	classNotes    map[string]models.ClassNote
	generalNotes  map[string]models.GeneralNote
	records       map[string]models.NotificationRecord
	settings      models.AppSettings
	lastImport    string
	replaceErr    error
	err           error
	clearedCalled bool
}

func newMemStore() *memStore {
	return &memStore{
		overrides:    map[string]models.DayOverride{},
		classNotes:   map[string]models.ClassNote{},
		generalNotes: map[string]models.GeneralNote{},
		records:      map[string]models.NotificationRecord{},
		settings:     models.DefaultSettings(),
	}
}

func notFound(what string) error {
	return fmt.Errorf("find %s: %w", what, sql.ErrNoRows)
}

// schedules

func (m *memStore) GetAll(ctx context.Context) ([]models.SubjectSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.SubjectSchedule, len(m.schedules))
	copy(out, m.schedules)
	return out, nil
}

func (m *memStore) ReplaceAll(ctx context.Context, schedules []models.SubjectSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.schedules = append([]models.SubjectSchedule(nil), schedules...)
	return nil
}

type scheduleByID struct{ *memStore }

func (m scheduleByID) FindByID(ctx context.Context, id string) (*models.SubjectSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.schedules {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, notFound("schedule " + id)
}

func (m *memStore) UpdateLastImport(ctx context.Context, fileName string, at time.Time) error {
	m.lastImport = fileName
	m.settings.LastImportedFileName = &fileName
	m.settings.LastImportedAt = &at
	return nil
}

// overrides

type overrideStore struct{ *memStore }

func (m overrideStore) ListByDate(ctx context.Context, date string) ([]models.DayOverride, error) {
	return m.ListByDateRange(ctx, date, date)
}

func (m overrideStore) ListByDateRange(ctx context.Context, start, end string) ([]models.DayOverride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.DayOverride
	for _, o := range m.overrides {
		if o.Date >= start && o.Date <= end {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m overrideStore) ListAll(ctx context.Context) ([]models.DayOverride, error) {
	return m.ListByDateRange(ctx, "0000-00-00", "9999-99-99")
}

func (m overrideStore) FindByID(ctx context.Context, id string) (*models.DayOverride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.overrides[id]
	if !ok {
		return nil, notFound("override " + id)
	}
	return &o, nil
}

func (m overrideStore) Upsert(ctx context.Context, o models.DayOverride) (*models.DayOverride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for id, existing := range m.overrides {
		if id != o.ID && o.BaseScheduleID != nil && existing.Date == o.Date && existing.BaseID() == *o.BaseScheduleID {
			delete(m.overrides, id)
		}
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	m.overrides[o.ID] = o
	return &o, nil
}

func (m overrideStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.overrides[id]; !ok {
		return notFound("override " + id)
	}
	delete(m.overrides, id)
	return nil
}

// class notes

type classNoteStore struct{ *memStore }

func (m classNoteStore) FindByInstanceKey(ctx context.Context, key string) (*models.ClassNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.classNotes[key]
	if !ok {
		return nil, notFound("note " + key)
	}
	return &n, nil
}

func (m classNoteStore) ListKeysByDateRange(ctx context.Context, start, end string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k, n := range m.classNotes {
		if n.Date >= start && n.Date <= end {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m classNoteStore) ListAll(ctx context.Context) ([]models.ClassNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ClassNote
	for _, n := range m.classNotes {
		out = append(out, n)
	}
	return out, nil
}

func (m classNoteStore) Upsert(ctx context.Context, note models.ClassNote) (*models.ClassNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.classNotes[note.ClassInstanceKey]; ok {
		note.ID = existing.ID
		note.CreatedAt = existing.CreatedAt
	} else {
		note.CreatedAt = time.Now().UTC()
	}
	note.UpdatedAt = time.Now().UTC()
	m.classNotes[note.ClassInstanceKey] = note
	return &note, nil
}

func (m classNoteStore) DeleteByInstanceKey(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.classNotes, key)
	return nil
}

// general notes

type generalNoteStore struct{ *memStore }

func (m generalNoteStore) FindByID(ctx context.Context, id string) (*models.GeneralNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.generalNotes[id]
	if !ok {
		return nil, notFound("general note " + id)
	}
	return &n, nil
}

func (m generalNoteStore) ListByDate(ctx context.Context, date string) ([]models.GeneralNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.GeneralNote
	for _, n := range m.generalNotes {
		if n.Date == date {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m generalNoteStore) ListDatesInRange(ctx context.Context, start, end string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, n := range m.generalNotes {
		if n.Date >= start && n.Date <= end && !seen[n.Date] {
			seen[n.Date] = true
			out = append(out, n.Date)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m generalNoteStore) ListDueBetween(ctx context.Context, start, end string) ([]models.GeneralNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.GeneralNote
	for _, n := range m.generalNotes {
		if n.HasDueDate && n.DueDate != nil && *n.DueDate >= start && *n.DueDate <= end {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m generalNoteStore) ListAll(ctx context.Context) ([]models.GeneralNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.GeneralNote
	for _, n := range m.generalNotes {
		out = append(out, n)
	}
	return out, nil
}

func (m generalNoteStore) Save(ctx context.Context, note models.GeneralNote) (*models.GeneralNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.generalNotes[note.ID]; ok {
		note.CreatedAt = existing.CreatedAt
	} else if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	note.UpdatedAt = time.Now().UTC()
	m.generalNotes[note.ID] = note
	return &note, nil
}

func (m generalNoteStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.generalNotes[id]; !ok {
		return notFound("general note " + id)
	}
	delete(m.generalNotes, id)
	for rid, r := range m.records {
		if r.NoteID == id {
			delete(m.records, rid)
		}
	}
	return nil
}

// notification records

type recordStore struct{ *memStore }

func (m recordStore) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[id]
	return ok, nil
}

func (m recordStore) Insert(ctx context.Context, rec models.NotificationRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; ok {
		return false, nil
	}
	m.records[rec.ID] = rec
	return true, nil
}

func (m recordStore) DeleteBefore(ctx context.Context, date string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, r := range m.records {
		if r.NotificationDate < date {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}

func (m recordStore) ListAll(ctx context.Context) ([]models.NotificationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.NotificationRecord
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

// settings

type settingsStore struct{ *memStore }

func (m settingsStore) Get(ctx context.Context) (*models.AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m settingsStore) Save(ctx context.Context, s models.AppSettings) (*models.AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = time.Now().UTC()
	m.settings = s
	return &s, nil
}

func (m *memStore) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearedCalled = true
	m.schedules = nil
	m.overrides = map[string]models.DayOverride{}
	m.classNotes = map[string]models.ClassNote{}
	m.generalNotes = map[string]models.GeneralNote{}
	m.records = map[string]models.NotificationRecord{}
	m.settings = models.DefaultSettings()
	return nil
}

// cacheRepoStub records cache traffic.
type cacheRepoStub struct {
	mu          sync.Mutex
	values      map[string]interface{}
	invalidated []string
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{values: map[string]interface{}{}}
}

func (c *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if day, ok := v.(*models.DaySchedule); ok {
		*(dest.(*models.DaySchedule)) = *day
	}
	return nil
}

func (c *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, pattern)
	if pattern == timetablePattern {
		c.values = map[string]interface{}{}
		return nil
	}
	delete(c.values, pattern)
	return nil
}

func ptr(v string) *string {
	return &v
}

func seedSchedules(m *memStore) {
	m.schedules = []models.SubjectSchedule{
		{ID: "calc", SubjectName: "Calculus", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30", Location: ptr("Room 204"), Color: ptr("coral")},
		{ID: "phys", SubjectName: "Physics", DayOfWeek: 1, StartTime: "13:00", EndTime: "14:30", Professor: ptr("Dr. Lee")},
		{ID: "chem", SubjectName: "Chemistry", DayOfWeek: 3, StartTime: "11:00", EndTime: "12:00"},
	}
}
