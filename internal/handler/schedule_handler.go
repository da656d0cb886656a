package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schedlume-api/internal/csvimport"
	"github.com/noah-isme/schedlume-api/internal/dto"
	"github.com/noah-isme/schedlume-api/internal/models"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
	"github.com/noah-isme/schedlume-api/pkg/response"
)

type scheduleImporter interface {
	Validate(r io.Reader) (*dto.ImportResult, csvimport.ValidationResult, error)
	Import(ctx context.Context, fileName string, r io.Reader) (*dto.ImportResult, error)
}

type scheduleExporter interface {
	List(ctx context.Context) ([]models.SubjectSchedule, error)
	CSV(ctx context.Context) ([]byte, error)
	Template(withExamples bool) ([]byte, error)
	PDF(ctx context.Context) ([]byte, error)
}

// ScheduleHandler exposes base schedule import and export endpoints.
type ScheduleHandler struct {
	importer scheduleImporter
	exporter scheduleExporter
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(importer scheduleImporter, exporter scheduleExporter) *ScheduleHandler {
	return &ScheduleHandler{importer: importer, exporter: exporter}
}

// Import godoc
// @Summary Import base schedule
// @Description Replaces the whole base schedule with the rows of a CSV file. Any invalid row rejects the file.
// @Tags Schedules
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Schedule CSV"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /schedules/import [post]
func (h *ScheduleHandler) Import(c *gin.Context) {
	file, header, err := formFile(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	result, err := h.importer.Import(c.Request.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, appErrors.ErrImportRejected) && result != nil {
			response.ErrorWithData(c, err, result)
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Validate godoc
// @Summary Validate schedule CSV
// @Description Checks a CSV file without storing anything.
// @Tags Schedules
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Schedule CSV"
// @Success 200 {object} response.Envelope
// @Router /schedules/validate [post]
func (h *ScheduleHandler) Validate(c *gin.Context) {
	file, header, err := formFile(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	result, _, err := h.importer.Validate(file)
	if err != nil {
		response.Error(c, err)
		return
	}
	result.FileName = header.Filename
	response.JSON(c, http.StatusOK, result)
}

// List godoc
// @Summary List base schedules
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	items, err := h.exporter.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"total": len(items)})
}

// ExportCSV godoc
// @Summary Export base schedule as CSV
// @Tags Schedules
// @Produce text/csv
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /schedules/export.csv [get]
func (h *ScheduleHandler) ExportCSV(c *gin.Context) {
	body, err := h.exporter.CSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "text/csv; charset=utf-8", "schedule.csv", body)
}

// Template godoc
// @Summary Download CSV import template
// @Tags Schedules
// @Produce text/csv
// @Param example query bool false "Include sample rows"
// @Success 200 {file} file
// @Router /schedules/template.csv [get]
func (h *ScheduleHandler) Template(c *gin.Context) {
	withExamples, _ := strconv.ParseBool(c.DefaultQuery("example", "false"))
	body, err := h.exporter.Template(withExamples)
	if err != nil {
		response.Error(c, err)
		return
	}
	name := "schedule-template.csv"
	if withExamples {
		name = "schedule-example.csv"
	}
	response.Attachment(c, "text/csv; charset=utf-8", name, body)
}

// ExportPDF godoc
// @Summary Export weekly timetable as PDF
// @Tags Schedules
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /schedules/export.pdf [get]
func (h *ScheduleHandler) ExportPDF(c *gin.Context) {
	body, err := h.exporter.PDF(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "application/pdf", "timetable.pdf", body)
}

func formFile(c *gin.Context) (multipart.File, *multipart.FileHeader, error) {
	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, appErrors.ErrPayloadTooBig
		}
		return nil, nil, badRequest(err, "multipart field \"file\" is required")
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "failed to open upload")
	}
	return file, header, nil
}
