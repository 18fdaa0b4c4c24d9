package civics

import (
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes wires the civics endpoints onto the parent router. The
// geocoder comes in from main so the place resolver never reaches for a
// global client.
func RegisterRoutes(r chi.Router, geo Geocoder, geocoderTimeout time.Duration) {
	loc := &LocationSearchHandler{
		Resolver: NewPlaceResolver(geo, PGRegionIndex{}, geocoderTimeout),
		Leaders:  LedgerLeaderSource{},
	}

	r.Get("/location_search", loc.Get)
	r.Post("/location_search", loc.Post)

	r.Get("/presidents", GetPresidents)

	r.Get("/counties/{county_id}/officials", GetCountyOfficials)
	r.Get("/counties/{county_id}/mps", GetCountyMPs)

	r.Get("/officials/counties", GetAllCountyOfficials)
	r.Get("/officials/mps", GetAllMPs)

	r.Get("/maps/counties", GetCountiesMap)
	r.Get("/maps/counties/{county_id}", GetCountyDetailMap)
	r.Get("/maps/constituencies", GetConstituenciesMap)
}
