package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/response"
)

type settingsService interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*models.AppSettings, error)
}

type reminderPreviewer interface {
	Preview(ctx context.Context, raw string) ([]models.Reminder, error)
}

type backupService interface {
	Snapshot(ctx context.Context) (*dto.Backup, error)
	ClearAll(ctx context.Context) error
}

// SettingsHandler exposes preferences, reminder previews and data management.
type SettingsHandler struct {
	settings  settingsService
	reminders reminderPreviewer
	backup    backupService
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(settings settingsService, reminders reminderPreviewer, backup backupService) *SettingsHandler {
	return &SettingsHandler{settings: settings, reminders: reminders, backup: backup}
}

// Get godoc
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}

// Update godoc
// @Summary Update settings
// @Description Only the fields present in the payload change.
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body dto.UpdateSettingsRequest true "Settings patch"
// @Success 200 {object} response.Envelope
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, badRequest(err, "invalid settings payload"))
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}

// Reminders godoc
// @Summary Preview due-date reminders
// @Tags Reminders
// @Produce json
// @Param date query string false "Day to evaluate (default today)"
// @Success 200 {object} response.Envelope
// @Router /reminders [get]
func (h *SettingsHandler) Reminders(c *gin.Context) {
	reminders, err := h.reminders.Preview(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminders, map[string]interface{}{"total": len(reminders)})
}

// Backup godoc
// @Summary Download a JSON backup of all data
// @Tags Data
// @Produce json
// @Success 200 {object} dto.Backup
// @Router /backup [get]
func (h *SettingsHandler) Backup(c *gin.Context) {
	backup, err := h.backup.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	name := "schedlume-backup-" + backup.ExportedAt.Format("20060102-150405") + ".json"
	c.Header("Content-Disposition", "attachment; filename=\""+name+"\"")
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, backup)
}

// ClearData godoc
// @Summary Delete all user data
// @Description Removes schedules, overrides, notes and reminder history and resets settings.
// @Tags Data
// @Success 204
// @Router /data [delete]
func (h *SettingsHandler) ClearData(c *gin.Context) {
	if err := h.backup.ClearAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

