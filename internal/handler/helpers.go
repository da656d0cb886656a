package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schedlume-api/internal/middleware"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
	appErrors "github.com/noah-isme/schedlume-api/pkg/errors"
	"github.com/noah-isme/schedlume-api/pkg/response"
)

func badRequest(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
}

// dateParam parses a YYYY-MM-DD query or path value.
func dateParam(raw, name string) (dateutil.Date, error) {
	d, err := dateutil.ParseDate(raw)
	if err != nil {
		return dateutil.Date{}, badRequest(err, name+" must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// respond writes data with whatever response metadata the request collected.
func respond(c *gin.Context, status int, data interface{}) {
	response.JSON(c, status, data, middleware.ExtractMeta(c))
}
