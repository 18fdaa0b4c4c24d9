package civics

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SerikaliMap/serikali-backend/internal/db"
	"github.com/SerikaliMap/serikali-backend/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

const notFoundMessage = "No constituency found for this place"

// LocationSearchHandler serves GET/POST /location_search. Both the
// resolver's geocoder and the leader source are injected so the handler
// is testable without a database or network.
type LocationSearchHandler struct {
	Resolver *PlaceResolver
	Leaders  LeaderSource
}

type locationSearchResponse struct {
	Location struct {
		County       string `json:"county"`
		Constituency string `json:"constituency"`
	} `json:"location"`
	Leaders map[string]LeaderInfo `json:"leaders"`
}

// Get handles GET /location_search?place=...
func (h *LocationSearchHandler) Get(w http.ResponseWriter, r *http.Request) {
	place := r.URL.Query().Get("place")
	if place == "" {
		writeMessage(w, http.StatusBadRequest, "Place is required")
		return
	}
	h.respond(w, r, place)
}

// Post handles POST /location_search with {"place": "..."}.
func (h *LocationSearchHandler) Post(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Place string `json:"place"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Place == "" {
		writeMessage(w, http.StatusBadRequest, "Place is required")
		return
	}
	h.respond(w, r, body.Place)
}

func (h *LocationSearchHandler) respond(w http.ResponseWriter, r *http.Request, place string) {
	start := time.Now()
	metrics.LocationSearchTotal.Inc()

	resolved, err := h.Resolver.Resolve(r.Context(), place)
	if err != nil {
		log.Printf("[civics] location search %q: %v", place, err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if resolved == nil {
		metrics.LocationNotFoundTotal.Inc()
		writeMessage(w, http.StatusNotFound, notFoundMessage)
		return
	}

	leaders, err := h.Leaders.CurrentLeaders(r.Context(), resolved.Region.ConstituencyID)
	if err != nil {
		log.Printf("[civics] leaders for %s: %v", resolved.ConstituencyName, err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	var resp locationSearchResponse
	resp.Location.County = resolved.CountyName
	resp.Location.Constituency = resolved.ConstituencyName
	resp.Leaders = leaders

	metrics.LocationSearchDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	writeJSON(w, resp)
}

type nationalLeaderOut struct {
	Name              string  `json:"name"`
	Photo             string  `json:"photo"`
	Position          string  `json:"position"`
	StartYear         int     `json:"start_year,omitempty"`
	EndYear           *int    `json:"end_year,omitempty"`
	PartyName         *string `json:"party_name,omitempty"`
	PartyAbbreviation *string `json:"party_abbreviation,omitempty"`
}

// GetPresidents returns every national-level leader, split into the
// currently serving set and the full history.
func GetPresidents(w http.ResponseWriter, r *http.Request) {
	terms, err := NationalTerms(r.Context())
	if err != nil {
		log.Printf("[civics] presidents: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	current := []nationalLeaderOut{}
	all := []nationalLeaderOut{}
	for _, t := range terms {
		out := nationalLeaderOut{
			Name:      t.OfficialName,
			Photo:     t.PhotoURL,
			Position:  t.PositionName,
			StartYear: t.StartYear,
			EndYear:   t.EndYear,
			PartyName: t.PartyName,
		}
		if t.PartyName != nil {
			abbr := PrimaryAbbreviation(t.Abbreviations)
			out.PartyAbbreviation = &abbr
		}
		all = append(all, out)
		if t.EndYear == nil {
			current = append(current, nationalLeaderOut{
				Name:     t.OfficialName,
				Photo:    t.PhotoURL,
				Position: t.PositionName,
			})
		}
	}

	writeJSON(w, map[string]any{
		"current_leaders": current,
		"all_leaders":     all,
	})
}

func countyByParam(w http.ResponseWriter, r *http.Request) (*County, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "county_id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid county id")
		return nil, false
	}
	var county County
	if err := db.DB.WithContext(r.Context()).First(&county, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeMessage(w, http.StatusNotFound, "County not found")
		} else {
			log.Printf("[civics] county %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		}
		return nil, false
	}
	return &county, true
}

// GetCountyOfficials returns the full county-level term history (past and
// present) for one county.
func GetCountyOfficials(w http.ResponseWriter, r *http.Request) {
	county, ok := countyByParam(w, r)
	if !ok {
		return
	}
	entries, err := CountyTermHistory(r.Context(), county.ID)
	if err != nil {
		log.Printf("[civics] county officials %s: %v", county.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	out := make([]OfficialSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, summarize(e))
	}
	writeJSON(w, out)
}

// GetCountyMPs returns the full MP history for one county's
// constituencies.
func GetCountyMPs(w http.ResponseWriter, r *http.Request) {
	county, ok := countyByParam(w, r)
	if !ok {
		return
	}
	entries, err := CountyMPHistory(r.Context(), county.ID)
	if err != nil {
		log.Printf("[civics] county mps %s: %v", county.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	out := make([]OfficialSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, summarize(e))
	}
	writeJSON(w, out)
}

// GetAllCountyOfficials is the nationwide county-officials rollup.
func GetAllCountyOfficials(w http.ResponseWriter, r *http.Request) {
	rollup, err := AllCountyOfficials(r.Context())
	if err != nil {
		log.Printf("[civics] county officials rollup: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	writeJSON(w, rollup)
}

// GetAllMPs is the nationwide MP rollup.
func GetAllMPs(w http.ResponseWriter, r *http.Request) {
	rollup, err := AllMPs(r.Context())
	if err != nil {
		log.Printf("[civics] mp rollup: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	writeJSON(w, rollup)
}
