package civics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type stubLeaders struct {
	leaders map[string]LeaderInfo
	err     error
	gotID   uuid.UUID
}

func (s *stubLeaders) CurrentLeaders(ctx context.Context, constituencyID uuid.UUID) (map[string]LeaderInfo, error) {
	s.gotID = constituencyID
	return s.leaders, s.err
}

func searchHandler(geo Geocoder, regions RegionIndex, leaders LeaderSource) *LocationSearchHandler {
	return &LocationSearchHandler{
		Resolver: NewPlaceResolver(geo, regions, time.Second),
		Leaders:  leaders,
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestLocationSearch_Get_Success(t *testing.T) {
	region := starehe()
	leaders := &stubLeaders{leaders: map[string]LeaderInfo{
		RoleMP: {Name: "Starehe MP", PhotoURL: "p.jpg", PartyName: "ODM", PartyAbbreviation: "ODM"},
	}}
	h := searchHandler(
		stubGeocoder{lng: 36.8219, lat: -1.2841, ok: true},
		&stubRegions{region: region},
		leaders,
	)

	req := httptest.NewRequest(http.MethodGet, "/location_search?place=Nairobi+CBD", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	loc := body["location"].(map[string]any)
	if loc["county"] != "Nairobi" || loc["constituency"] != "Starehe" {
		t.Errorf("unexpected location: %v", loc)
	}
	got := body["leaders"].(map[string]any)
	if _, ok := got["mp"]; !ok {
		t.Errorf("expected mp in leaders, got %v", got)
	}
	if leaders.gotID != region.ConstituencyID {
		t.Error("leader source queried with wrong constituency id")
	}
}

func TestLocationSearch_Get_NoLeadersStillOK(t *testing.T) {
	h := searchHandler(
		stubGeocoder{lng: 36.8, lat: -1.3, ok: true},
		&stubRegions{region: starehe()},
		&stubLeaders{leaders: map[string]LeaderInfo{}},
	)

	req := httptest.NewRequest(http.MethodGet, "/location_search?place=Nairobi", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if got := body["leaders"].(map[string]any); len(got) != 0 {
		t.Errorf("expected empty leaders map, got %v", got)
	}
}

func TestLocationSearch_Get_MissingPlace(t *testing.T) {
	h := searchHandler(stubGeocoder{}, &stubRegions{}, &stubLeaders{})

	req := httptest.NewRequest(http.MethodGet, "/location_search", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rec.Code)
	}
}

func TestLocationSearch_Get_GeocoderMissIs404(t *testing.T) {
	h := searchHandler(stubGeocoder{ok: false}, &stubRegions{}, &stubLeaders{})

	req := httptest.NewRequest(http.MethodGet, "/location_search?place=Atlantis", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != notFoundMessage {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["leaders"]; ok {
		t.Error("404 response must not carry a leaders payload")
	}
}

func TestLocationSearch_Get_OutsideCoverageIs404(t *testing.T) {
	h := searchHandler(
		stubGeocoder{lng: 2.35, lat: 48.85, ok: true}, // Paris: geocodes fine, no polygon
		&stubRegions{region: nil},
		&stubLeaders{},
	)

	req := httptest.NewRequest(http.MethodGet, "/location_search?place=Paris", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}

func TestLocationSearch_Post(t *testing.T) {
	h := searchHandler(
		stubGeocoder{lng: 36.8, lat: -1.3, ok: true},
		&stubRegions{region: starehe()},
		&stubLeaders{leaders: map[string]LeaderInfo{}},
	)

	req := httptest.NewRequest(http.MethodPost, "/location_search",
		strings.NewReader(`{"place":"Nairobi CBD"}`))
	rec := httptest.NewRecorder()
	h.Post(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("got %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/location_search", strings.NewReader(`{}`))
	rec = httptest.NewRecorder()
	h.Post(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing place: got %d, want 400", rec.Code)
	}
}
