package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SerikaliMap/serikali-backend/internal/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	mw := middleware.CORSMiddleware([]string{"https://serikalimap.co.ke"})
	handler := mw(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://serikalimap.co.ke")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://serikalimap.co.ke" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestCORSMiddleware_UnknownOriginNotEchoed(t *testing.T) {
	mw := middleware.CORSMiddleware([]string{"https://serikalimap.co.ke"})
	handler := mw(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected Allow-Origin %q for unknown origin", got)
	}
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	mw := middleware.CORSMiddleware(nil)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler must not run on OPTIONS")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestRateLimiter_BlocksAfterBudget(t *testing.T) {
	rl := middleware.NewRateLimiter(3, time.Hour)
	handler := rl.Middleware(okHandler())

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/mail", nil)
		req.AddCookie(&http.Cookie{Name: "client_id", Value: "client-a"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	for i := 0; i < 3; i++ {
		if codes[i] != http.StatusOK {
			t.Errorf("request %d: got %d, want 200", i, codes[i])
		}
	}
	if codes[3] != http.StatusTooManyRequests {
		t.Errorf("request 4: got %d, want 429", codes[3])
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := middleware.NewRateLimiter(1, time.Hour)
	handler := rl.Middleware(okHandler())

	for _, client := range []string{"client-a", "client-b"} {
		req := httptest.NewRequest(http.MethodPost, "/mail", nil)
		req.AddCookie(&http.Cookie{Name: "client_id", Value: client})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("client %s: got %d, want 200", client, rec.Code)
		}
	}
}

func TestClientKey_FallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:4411"
	if got := middleware.ClientKey(req); got != "203.0.113.9" {
		t.Errorf("ClientKey = %q", got)
	}

	req.AddCookie(&http.Cookie{Name: "client_id", Value: "cookie-wins"})
	if got := middleware.ClientKey(req); got != "cookie-wins" {
		t.Errorf("ClientKey = %q, want cookie value", got)
	}
}
