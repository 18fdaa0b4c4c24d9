package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestForward_SingleCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Nairobi CBD" {
			t.Errorf("q = %q, want Nairobi CBD", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q, want 1", got)
		}
		if got := r.URL.Query().Get("access_token"); got != "test-token" {
			t.Errorf("access_token = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[36.8219,-1.2841]}}]}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-token", srv.URL)
	lng, lat, ok, err := c.Forward(context.Background(), "Nairobi CBD")
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a candidate")
	}
	if lng != 36.8219 || lat != -1.2841 {
		t.Errorf("got (%v, %v), want (36.8219, -1.2841)", lng, lat)
	}
}

func TestForward_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("t", srv.URL)
	_, _, ok, err := c.Forward(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if ok {
		t.Error("expected no candidate")
	}
}

func TestForward_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("bad-token", srv.URL)
	if _, _, _, err := c.Forward(context.Background(), "Nairobi"); err == nil {
		t.Error("expected an error for HTTP 401")
	}
}

func TestForward_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[36.8]}}]}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("t", srv.URL)
	if _, _, _, err := c.Forward(context.Background(), "Nairobi"); err == nil {
		t.Error("expected an error for a one-element coordinate pair")
	}
}

func TestForward_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClientWithBaseURL("t", srv.URL)
	if _, _, _, err := c.Forward(context.Background(), "Nairobi"); err == nil {
		t.Error("expected a transport error")
	}
}

func TestNewClient_NoToken(t *testing.T) {
	t.Setenv("MAPBOX_ACCESS_TOKEN", "")
	if c := NewClient(); c != nil {
		t.Error("expected nil client without MAPBOX_ACCESS_TOKEN")
	}
}
