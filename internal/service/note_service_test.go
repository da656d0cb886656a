package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
)

func newNoteFixture(t *testing.T) (*NoteService, *memStore, *cacheRepoStub) {
	t.Helper()
	timetable, store, cacheRepo := newTimetableFixture(t)
	cache := NewCacheService(cacheRepo, nil, 0, nil, true)
	return NewNoteService(classNoteStore{store}, timetable, cache, nil), store, cacheRepo
}

func TestNoteServiceSaveCopiesClassDetails(t *testing.T) {
	svc, store, cacheRepo := newNoteFixture(t)

	note, err := svc.Save(context.Background(), "2024-01-01:phys", "  lab report due  ")
	require.NoError(t, err)
	require.NotNil(t, note)

	assert.Equal(t, "lab report due", note.NoteText)
	assert.Equal(t, "Physics", note.SubjectName)
	assert.Equal(t, "13:00", note.StartTime)
	assert.Equal(t, "2024-01-01", note.Date)
	assert.Contains(t, store.classNotes, "2024-01-01:phys")
	assert.Contains(t, cacheRepo.invalidated, DayKey("2024-01-01"))
}

func TestNoteServiceSaveUpdatesInPlace(t *testing.T) {
	svc, store, _ := newNoteFixture(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, "2024-01-01:calc", "one")
	require.NoError(t, err)
	second, err := svc.Save(ctx, "2024-01-01:calc", "two")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.classNotes, 1)
	assert.Equal(t, "two", store.classNotes["2024-01-01:calc"].NoteText)
}

func TestNoteServiceBlankTextDeletes(t *testing.T) {
	svc, store, _ := newNoteFixture(t)
	store.classNotes["2024-01-01:calc"] = models.ClassNote{ClassInstanceKey: "2024-01-01:calc", Date: "2024-01-01"}

	note, err := svc.Save(context.Background(), "2024-01-01:calc", "   ")
	require.NoError(t, err)
	assert.Nil(t, note)
	assert.Empty(t, store.classNotes)
}

func TestNoteServiceRejects(t *testing.T) {
	svc, _, _ := newNoteFixture(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "2024-01-01:calc", strings.Repeat("é", models.NoteMaxLength+1))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Save(ctx, "2024-01-01:calc", strings.Repeat("é", models.NoteMaxLength))
	require.NoError(t, err)

	_, err = svc.Save(ctx, "garbage", "text")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	// Wednesday has no Calculus.
	_, err = svc.Save(ctx, "2024-01-03:calc", "text")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(ctx, "2024-01-08:calc")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGeneralNoteServiceLifecycle(t *testing.T) {
	store := newMemStore()
	svc := NewGeneralNoteService(generalNoteStore{store}, nil, nil)
	svc.newID = func() string { return "g1" }
	ctx := context.Background()

	note, err := svc.Create(ctx, dto.GeneralNoteRequest{Date: "2024-03-01", Title: "  Essay  ", NoteText: ptr(" "), HasDueDate: true, DueDate: ptr("2024-03-05")})
	require.NoError(t, err)
	assert.Equal(t, "Essay", note.Title)
	assert.Nil(t, note.NoteText)
	require.NotNil(t, note.DueDate)
	assert.Equal(t, "2024-03-05", *note.DueDate)

	created := store.generalNotes["g1"].CreatedAt
	updated, err := svc.Update(ctx, "g1", dto.GeneralNoteRequest{Date: "2024-03-01", Title: "Essay draft", DueDate: ptr("2024-03-09")})
	require.NoError(t, err)
	assert.Equal(t, created, updated.CreatedAt)
	assert.False(t, updated.HasDueDate)
	assert.Nil(t, updated.DueDate)

	notes, err := svc.ListByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, notes, 1)

	dates, err := svc.Dates(ctx, dto.DateRangeQuery{Start: "2024-03-01", End: "2024-03-31"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01"}, dates.Dates)

	require.NoError(t, svc.Delete(ctx, "g1"))
	err = svc.Delete(ctx, "g1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	notes, err = svc.ListByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestGeneralNoteServiceValidation(t *testing.T) {
	svc := NewGeneralNoteService(generalNoteStore{newMemStore()}, nil, nil)
	ctx := context.Background()

	cases := map[string]dto.GeneralNoteRequest{
		"blank title":      {Date: "2024-03-01", Title: "   "},
		"long title":       {Date: "2024-03-01", Title: strings.Repeat("x", models.GeneralNoteTitleMaxLength+1)},
		"bad date":         {Date: "March 1", Title: "Essay"},
		"due date missing": {Date: "2024-03-01", Title: "Essay", HasDueDate: true},
		"bad due date":     {Date: "2024-03-01", Title: "Essay", HasDueDate: true, DueDate: ptr("soon")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}

	_, err := svc.ListByDate(ctx, "yesterday")
	assert.Error(t, err)
}
