package civics

import (
	"context"
	"log"
	"time"
)

// Geocoder turns free text into a coordinate. ok is false when the
// provider had no candidate; err is reserved for transport-level trouble
// the caller may want to log.
type Geocoder interface {
	Forward(ctx context.Context, place string) (lng, lat float64, ok bool, err error)
}

// ResolvedPlace is the outcome of a successful place resolution.
type ResolvedPlace struct {
	CountyName       string
	ConstituencyName string
	Region           ContainingRegion
}

// PlaceResolver orchestrates geocode → containment. The geocoder is a
// constructor argument so tests can substitute a double.
type PlaceResolver struct {
	geo     Geocoder
	regions RegionIndex
	timeout time.Duration
}

func NewPlaceResolver(geo Geocoder, regions RegionIndex, timeout time.Duration) *PlaceResolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PlaceResolver{geo: geo, regions: regions, timeout: timeout}
}

// Resolve maps free text to its containing constituency and county.
// A geocoder miss or failure both come back as (nil, nil): the API treats
// "geocoder unreachable" the same as "place unknown", though the failure
// is logged here. A storage error propagates.
func (r *PlaceResolver) Resolve(ctx context.Context, place string) (*ResolvedPlace, error) {
	if r.geo == nil {
		log.Println("[resolver] no geocoder configured; treating lookup as not found")
		return nil, nil
	}

	geoCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	lng, lat, ok, err := r.geo.Forward(geoCtx, place)
	if err != nil {
		log.Printf("[resolver] geocode %q failed: %v", place, err)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}

	region, err := r.regions.FindContainingConstituency(ctx, lng, lat)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, nil
	}

	return &ResolvedPlace{
		CountyName:       region.CountyName,
		ConstituencyName: region.ConstituencyName,
		Region:           *region,
	}, nil
}
