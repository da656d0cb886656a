package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/internal/service"
)

type settingsMock struct {
	patched dto.UpdateSettingsRequest
}

func (m *settingsMock) Get(ctx context.Context) (*models.AppSettings, error) {
	s := models.DefaultSettings()
	return &s, nil
}

func (m *settingsMock) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*models.AppSettings, error) {
	m.patched = req
	s := models.DefaultSettings()
	if req.WeekStart != nil {
		s.WeekStart = models.WeekStart(*req.WeekStart)
	}
	return &s, nil
}

type previewMock struct{ date string }

func (m *previewMock) Preview(ctx context.Context, raw string) ([]models.Reminder, error) {
	m.date = raw
	return []models.Reminder{{NoteID: "g1", Message: `"Essay" is due tomorrow!`, DaysUntilDue: 1}}, nil
}

type backupMock struct{ cleared bool }

func (m *backupMock) Snapshot(ctx context.Context) (*dto.Backup, error) {
	return &dto.Backup{SchemaVersion: 1, ExportedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Settings: models.DefaultSettings()}, nil
}

func (m *backupMock) ClearAll(ctx context.Context) error {
	m.cleared = true
	return nil
}

func settingsRouter(h *SettingsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/settings", h.Get)
	r.PUT("/settings", h.Update)
	r.GET("/reminders", h.Reminders)
	r.GET("/backup", h.Backup)
	r.DELETE("/data", h.ClearData)
	return r
}

func TestSettingsHandlerUpdate(t *testing.T) {
	svc := &settingsMock{}
	r := settingsRouter(NewSettingsHandler(svc, &previewMock{}, &backupMock{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPut, "/settings", `{"week_start":"sunday"}`))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.patched.WeekStart)
	assert.Nil(t, svc.patched.TimeFormat)
	assert.Contains(t, w.Body.String(), `"week_start":"sunday"`)
}

func TestSettingsHandlerReminders(t *testing.T) {
	preview := &previewMock{}
	r := settingsRouter(NewSettingsHandler(&settingsMock{}, preview, &backupMock{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reminders?date=2024-03-10", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-10", preview.date)
	assert.Contains(t, w.Body.String(), "is due tomorrow!")
}

func TestSettingsHandlerBackupAndClear(t *testing.T) {
	backup := &backupMock{}
	r := settingsRouter(NewSettingsHandler(&settingsMock{}, &previewMock{}, backup))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/backup", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "schedlume-backup-20240102-030405.json")
	assert.Contains(t, w.Body.String(), `"schema_version":1`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/data", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, backup.cleared)
}

type readinessMock struct{ ready bool }

func (m readinessMock) Ready(ctx context.Context) (bool, map[string]service.ComponentStatus) {
	if m.ready {
		return true, map[string]service.ComponentStatus{"database": {Status: "up"}}
	}
	return false, map[string]service.ComponentStatus{"database": {Status: "down", Error: errors.New("refused").Error()}}
}

func TestMetricsHandlerProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()

	for _, tc := range []struct {
		ready bool
		code  int
	}{{true, http.StatusOK}, {false, http.StatusServiceUnavailable}} {
		h := NewMetricsHandler(metrics, readinessMock{ready: tc.ready})
		r := gin.New()
		r.GET("/ready", h.Ready)
		r.GET("/health", h.Health)
		r.GET("/metrics", h.Prometheus)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, tc.code, w.Code)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "goroutines_total")
	}
}
