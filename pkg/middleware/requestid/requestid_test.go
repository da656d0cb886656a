package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(seen *string, seenCtx *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		*seen = Value(c)
		*seenCtx = FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestMiddlewareReusesInboundID(t *testing.T) {
	var seen, seenCtx string
	r := newRouter(&seen, &seenCtx)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", seenCtx)
	assert.Equal(t, "abc-123", w.Header().Get(Header))
}

func TestMiddlewareGeneratesID(t *testing.T) {
	var seen, seenCtx string
	r := newRouter(&seen, &seenCtx)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, strings.Repeat("x", maxLength+1))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(Header))
	assert.Equal(t, seen, seenCtx)
}

func TestFromContextEmpty(t *testing.T) {
	assert.Equal(t, "", FromContext(nil)) //nolint:staticcheck
}
