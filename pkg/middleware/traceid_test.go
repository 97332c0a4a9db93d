package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func traceTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestTraceIDMiddlewareHonorsInboundHeader(t *testing.T) {
	r := traceTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "caller-supplied-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Trace-ID"); got != "caller-supplied-id" {
		t.Fatalf("X-Trace-ID = %q, want the inbound value", got)
	}
}

func TestTraceIDMiddlewareGeneratesWhenMissing(t *testing.T) {
	r := traceTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("X-Trace-ID") == "" {
		t.Fatalf("middleware should generate a trace ID when none is supplied")
	}
}
