package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/response"
)

type classNoteService interface {
	Get(ctx context.Context, instanceKey string) (*models.ClassNote, error)
	Save(ctx context.Context, instanceKey, text string) (*models.ClassNote, error)
	Delete(ctx context.Context, instanceKey string) error
}

type generalNoteService interface {
	ListByDate(ctx context.Context, date string) ([]models.GeneralNote, error)
	Dates(ctx context.Context, query dto.DateRangeQuery) (*dto.NoteDates, error)
	Get(ctx context.Context, id string) (*models.GeneralNote, error)
	Create(ctx context.Context, req dto.GeneralNoteRequest) (*models.GeneralNote, error)
	Update(ctx context.Context, id string, req dto.GeneralNoteRequest) (*models.GeneralNote, error)
	Delete(ctx context.Context, id string) error
}

// NoteHandler exposes class notes and general notes.
type NoteHandler struct {
	classNotes   classNoteService
	generalNotes generalNoteService
}

// NewNoteHandler constructs the handler.
func NewNoteHandler(classNotes classNoteService, generalNotes generalNoteService) *NoteHandler {
	return &NoteHandler{classNotes: classNotes, generalNotes: generalNotes}
}

// GetClassNote godoc
// @Summary Get the note of a class occurrence
// @Tags Notes
// @Produce json
// @Param instanceKey path string true "Class instance key"
// @Success 200 {object} response.Envelope
// @Router /notes/{instanceKey} [get]
func (h *NoteHandler) GetClassNote(c *gin.Context) {
	note, err := h.classNotes.Get(c.Request.Context(), c.Param("instanceKey"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note)
}

// SaveClassNote godoc
// @Summary Set the note of a class occurrence
// @Description Blank text deletes the note.
// @Tags Notes
// @Accept json
// @Produce json
// @Param instanceKey path string true "Class instance key"
// @Param payload body dto.ClassNoteRequest true "Note payload"
// @Success 200 {object} response.Envelope
// @Success 204
// @Router /notes/{instanceKey} [put]
func (h *NoteHandler) SaveClassNote(c *gin.Context) {
	var req dto.ClassNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, badRequest(err, "invalid note payload"))
		return
	}
	note, err := h.classNotes.Save(c.Request.Context(), c.Param("instanceKey"), req.NoteText)
	if err != nil {
		response.Error(c, err)
		return
	}
	if note == nil {
		response.NoContent(c)
		return
	}
	response.JSON(c, http.StatusOK, note)
}

// DeleteClassNote godoc
// @Summary Delete the note of a class occurrence
// @Tags Notes
// @Param instanceKey path string true "Class instance key"
// @Success 204
// @Router /notes/{instanceKey} [delete]
func (h *NoteHandler) DeleteClassNote(c *gin.Context) {
	if err := h.classNotes.Delete(c.Request.Context(), c.Param("instanceKey")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListGeneralNotes godoc
// @Summary List general notes of a date
// @Tags General Notes
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /general-notes [get]
func (h *NoteHandler) ListGeneralNotes(c *gin.Context) {
	notes, err := h.generalNotes.ListByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes, map[string]interface{}{"total": len(notes)})
}

// GeneralNoteDates godoc
// @Summary Dates holding general notes
// @Tags General Notes
// @Produce json
// @Param start query string true "First date"
// @Param end query string true "Last date"
// @Success 200 {object} response.Envelope
// @Router /general-notes/dates [get]
func (h *NoteHandler) GeneralNoteDates(c *gin.Context) {
	var query dto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, badRequest(err, "invalid query parameters"))
		return
	}
	dates, err := h.generalNotes.Dates(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dates)
}

// GetGeneralNote godoc
// @Summary Get general note
// @Tags General Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} response.Envelope
// @Router /general-notes/{id} [get]
func (h *NoteHandler) GetGeneralNote(c *gin.Context) {
	note, err := h.generalNotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note)
}

// CreateGeneralNote godoc
// @Summary Create general note
// @Tags General Notes
// @Accept json
// @Produce json
// @Param payload body dto.GeneralNoteRequest true "Note payload"
// @Success 201 {object} response.Envelope
// @Router /general-notes [post]
func (h *NoteHandler) CreateGeneralNote(c *gin.Context) {
	var req dto.GeneralNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, badRequest(err, "invalid note payload"))
		return
	}
	note, err := h.generalNotes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// UpdateGeneralNote godoc
// @Summary Update general note
// @Tags General Notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param payload body dto.GeneralNoteRequest true "Note payload"
// @Success 200 {object} response.Envelope
// @Router /general-notes/{id} [put]
func (h *NoteHandler) UpdateGeneralNote(c *gin.Context) {
	var req dto.GeneralNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, badRequest(err, "invalid note payload"))
		return
	}
	note, err := h.generalNotes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note)
}

// DeleteGeneralNote godoc
// @Summary Delete general note
// @Tags General Notes
// @Param id path string true "Note ID"
// @Success 204
// @Router /general-notes/{id} [delete]
func (h *NoteHandler) DeleteGeneralNote(c *gin.Context) {
	if err := h.generalNotes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
