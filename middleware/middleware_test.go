package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/ctxutil"
	"github.com/ncobase/qeonaru/logging/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	log := logger.Discard()
	r := gin.New()
	r.Use(Recovery(log), Trace(), Logger(log), CORS([]string{"https://app.example.com"}))
	r.GET("/trace", func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.GetTraceID(c.Request.Context()))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestTraceGeneratesAndEchoesID(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trace", nil))
	id := w.Header().Get(TraceHeader)
	if id == "" || w.Body.String() != id {
		t.Fatalf("header = %q, body = %q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set(TraceHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(TraceHeader); got != "abc-123" || w.Body.String() != "abc-123" {
		t.Fatalf("incoming trace id not reused: header %q body %q", got, w.Body.String())
	}
}

func TestRecoveryWritesErrorBody(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body %q: %v", w.Body.String(), err)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("body = %v", body)
	}
}

func TestCORS(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodOptions, "/trace", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("allowed origin = %q (status %d)", got, w.Code)
	}

	req = httptest.NewRequest(http.MethodOptions, "/trace", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin allowed: %q", got)
	}
}
