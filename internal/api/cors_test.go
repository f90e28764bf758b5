package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tweetforge/internal/config"
)

func newCORSRouter(mode string, origins ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.Mode = mode
	cfg.CORS.AllowedOrigins = origins

	r := gin.New()
	r.Use(CORSMiddleware(cfg))
	r.GET("/health", healthHandler)
	r.POST("/generate", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tweet": "stub"})
	})
	return r
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	r := newCORSRouter("release", "https://app.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for originless request, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("no CORS headers expected without an Origin, got %q", got)
	}
}

func TestCORS_AllowedOriginEchoed(t *testing.T) {
	r := newCORSRouter("release", "https://app.example.com", "http://localhost:3000")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected origin echoed back exactly, got %q", got)
	}
}

func TestCORS_UnlistedOriginRejected(t *testing.T) {
	r := newCORSRouter("release", "https://app.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/generate", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unlisted origin, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("rejection body should be empty, got %q", w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("rejected response must not carry an allow-origin header, got %q", got)
	}
}

func TestCORS_DebugModeAllowsAnyOrigin(t *testing.T) {
	r := newCORSRouter("debug")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 in debug mode, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected origin echoed in debug mode, got %q", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	r := newCORSRouter("release", "https://app.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/generate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("unexpected allow-methods header %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Errorf("unexpected allow-headers header %q", got)
	}
}

func TestCORS_PreflightFromUnlistedOrigin(t *testing.T) {
	r := newCORSRouter("release", "https://app.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/generate", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 preflight for unlisted origin, got %d", w.Code)
	}
}
