package civics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/SerikaliMap/serikali-backend/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Map endpoints return precomputed vector paths for each region,
// derived server-side with ST_AsSVG so the frontend never touches raw
// polygon coordinates.

type countyMapOut struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Code    string    `json:"code"`
	SVGPath *string   `json:"svgPath"`
}

type constituencyMapOut struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Code     string      `json:"code"`
	CountyID uuid.UUID   `json:"county_id"`
	SVGPath  *string     `json:"svgPath"`
	MP       *LeaderInfo `json:"mp"`
}

// GetCountiesMap returns every county with its SVG path.
func GetCountiesMap(w http.ResponseWriter, r *http.Request) {
	var out []countyMapOut
	err := db.DB.WithContext(r.Context()).Raw(`
		SELECT id, name, code, ST_AsSVG(geom, 0, 2) AS svg_path
		FROM civics.counties
		ORDER BY code
	`).Scan(&out).Error
	if err != nil {
		log.Printf("[civics] counties map: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if out == nil {
		out = []countyMapOut{}
	}
	writeJSON(w, out)
}

// GetConstituenciesMap returns every constituency with its SVG path and
// sitting MP. The MP rows come from a single nationwide query, folded
// into a lookup by constituency id.
func GetConstituenciesMap(w http.ResponseWriter, r *http.Request) {
	var shapes []constituencyMapOut
	err := db.DB.WithContext(r.Context()).Raw(`
		SELECT id, name, code, county_id, ST_AsSVG(geom, 0, 2) AS svg_path
		FROM civics.constituencies
		ORDER BY code
	`).Scan(&shapes).Error
	if err != nil {
		log.Printf("[civics] constituencies map: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	mpEntries, err := AllOpenMPTerms(r.Context())
	if err != nil {
		log.Printf("[civics] constituencies map mps: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	mps := mpByConstituency(mpEntries)

	for i := range shapes {
		if info, ok := mps[shapes[i].ID]; ok {
			shapes[i].MP = &info
		}
	}
	if shapes == nil {
		shapes = []constituencyMapOut{}
	}
	writeJSON(w, shapes)
}

func mpByConstituency(entries []LedgerEntry) map[uuid.UUID]LeaderInfo {
	out := make(map[uuid.UUID]LeaderInfo, len(entries))
	for _, e := range entries {
		if e.ConstituencyID == nil {
			continue
		}
		out[*e.ConstituencyID] = leaderInfo(e)
	}
	return out
}

// GetCountyDetailMap returns one county's shape, its current county-level
// leaders, and its constituencies with their shapes and MPs.
func GetCountyDetailMap(w http.ResponseWriter, r *http.Request) {
	county, ok := countyByParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	countySVG, err := regionSVG(ctx, "civics.counties", county.ID)
	if err != nil {
		log.Printf("[civics] county map %s: %v", county.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	countyTerms, err := OpenCountyTerms(ctx, county.ID)
	if err != nil {
		log.Printf("[civics] county map leaders %s: %v", county.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	leaders := BuildLeaders(countyTerms)

	var shapes []constituencyMapOut
	err = db.DB.WithContext(ctx).Raw(`
		SELECT id, name, code, county_id, ST_AsSVG(geom, 0, 2) AS svg_path
		FROM civics.constituencies
		WHERE county_id = ?
		ORDER BY code
	`, county.ID).Scan(&shapes).Error
	if err != nil {
		log.Printf("[civics] county map constituencies %s: %v", county.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	mpEntries, err := OpenMPTermsByCounty(ctx, county.ID)
	if err != nil {
		log.Printf("[civics] county map mps %s: %v", county.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	mpLookup := mpByConstituency(mpEntries)

	mps := []LeaderInfo{}
	for i := range shapes {
		if info, ok := mpLookup[shapes[i].ID]; ok {
			shapes[i].MP = &info
			mps = append(mps, info)
		}
	}
	if shapes == nil {
		shapes = []constituencyMapOut{}
	}

	resp := map[string]any{
		"county": map[string]any{
			"id":                 county.ID,
			"name":               county.Name,
			"code":               county.Code,
			"svgPath":            countySVG,
			"population":         county.Population,
			"population_density": county.PopulationDensity,
			"area":               county.Area,
		},
		"leaders":        leaders,
		"mps":            mps,
		"constituencies": shapes,
	}
	writeJSON(w, resp)
}

func regionSVG(ctx context.Context, table string, id uuid.UUID) (*string, error) {
	var svg *string
	query := fmt.Sprintf(`SELECT ST_AsSVG(geom, 0, 2) FROM %s WHERE id = ?`, table)
	err := db.DB.WithContext(ctx).Raw(query, id).Scan(&svg).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return svg, nil
}
