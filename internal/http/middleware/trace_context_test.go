package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-navigation/internal/platform/ctxutil"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

func TestAttachTraceContext(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	var seen *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.Nop()))
	r.GET("/healthcheck", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(headerRequestID, "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen == nil {
		t.Fatalf("trace data not attached")
	}
	if seen.RequestID != "req-1" {
		t.Fatalf("request id: got=%q want=req-1", seen.RequestID)
	}
	if seen.TraceID == "" {
		t.Fatalf("trace id should be generated")
	}
	if got := rec.Header().Get(headerTraceID); got != seen.TraceID {
		t.Fatalf("trace header: got=%q want=%q", got, seen.TraceID)
	}
	if got := rec.Header().Get(headerRequestID); got != "req-1" {
		t.Fatalf("request header: got=%q", got)
	}
}

func TestAttachTraceContextRejectsUnsafeIDs(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(headerRequestID, "bad id\" injected=1")
	req.Header.Set(headerTraceID, "trace-abc.1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(headerRequestID); got == "" || strings.Contains(got, " ") {
		t.Fatalf("request id: got=%q want a generated id", got)
	}
	if got := rec.Header().Get(headerTraceID); got != "trace-abc.1" {
		t.Fatalf("trace id: got=%q want=trace-abc.1", got)
	}
}

func TestCleanID(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		" req-1 ":                "req-1",
		"a:b_c.d":                "a:b_c.d",
		"with space":             "",
		"quote\"":                "",
		strings.Repeat("x", 129): "",
		strings.Repeat("x", 128): strings.Repeat("x", 128),
	}
	for in, want := range cases {
		if got := cleanID(in); got != want {
			t.Fatalf("cleanID(%q): got=%q want=%q", in, got, want)
		}
	}
}
