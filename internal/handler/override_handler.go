package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/response"
)

type overrideService interface {
	List(ctx context.Context, query dto.DateRangeQuery) ([]models.DayOverride, error)
	Get(ctx context.Context, id string) (*models.DayOverride, error)
	Create(ctx context.Context, req dto.OverrideRequest) (*models.DayOverride, error)
	Update(ctx context.Context, id string, req dto.OverrideRequest) (*models.DayOverride, error)
	Delete(ctx context.Context, id string) error
}

// OverrideHandler exposes per-date schedule exceptions.
type OverrideHandler struct {
	service overrideService
}

// NewOverrideHandler constructs the handler.
func NewOverrideHandler(service overrideService) *OverrideHandler {
	return &OverrideHandler{service: service}
}

// List godoc
// @Summary List overrides in a date range
// @Tags Overrides
// @Produce json
// @Param start query string true "First date"
// @Param end query string true "Last date"
// @Success 200 {object} response.Envelope
// @Router /overrides [get]
func (h *OverrideHandler) List(c *gin.Context) {
	var query dto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, badRequest(err, "invalid query parameters"))
		return
	}
	items, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"total": len(items)})
}

// Get godoc
// @Summary Get override
// @Tags Overrides
// @Produce json
// @Param id path string true "Override ID"
// @Success 200 {object} response.Envelope
// @Router /overrides/{id} [get]
func (h *OverrideHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create override
// @Description Creates an edit, cancel or add override. An existing override for the same date and base schedule is replaced.
// @Tags Overrides
// @Accept json
// @Produce json
// @Param payload body dto.OverrideRequest true "Override payload"
// @Success 201 {object} response.Envelope
// @Router /overrides [post]
func (h *OverrideHandler) Create(c *gin.Context) {
	var req dto.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, badRequest(err, "invalid override payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Replace override
// @Tags Overrides
// @Accept json
// @Produce json
// @Param id path string true "Override ID"
// @Param payload body dto.OverrideRequest true "Override payload"
// @Success 200 {object} response.Envelope
// @Router /overrides/{id} [put]
func (h *OverrideHandler) Update(c *gin.Context) {
	var req dto.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, badRequest(err, "invalid override payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete override
// @Tags Overrides
// @Param id path string true "Override ID"
// @Success 204
// @Router /overrides/{id} [delete]
func (h *OverrideHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
