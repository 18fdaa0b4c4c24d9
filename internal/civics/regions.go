package civics

import (
	"context"
	"fmt"

	"github.com/SerikaliMap/serikali-backend/internal/db"
	"github.com/google/uuid"
)

// ContainingRegion is the result of a point containment lookup: the
// constituency the point falls in, plus its parent county.
type ContainingRegion struct {
	ConstituencyID   uuid.UUID `json:"constituency_id"`
	ConstituencyName string    `json:"constituency_name"`
	CountyID         uuid.UUID `json:"county_id"`
	CountyName       string    `json:"county_name"`
}

// RegionIndex answers "which constituency contains this point". The DB
// implementation runs a PostGIS containment test; a stub stands in for it
// in handler tests.
type RegionIndex interface {
	FindContainingConstituency(ctx context.Context, lng, lat float64) (*ContainingRegion, error)
}

// PGRegionIndex is the PostGIS-backed RegionIndex.
type PGRegionIndex struct{}

// FindContainingConstituency runs a point-in-polygon query against the
// constituency geometries. Constituencies are the finest granularity we
// resolve from a point; ward geometries are kept for map rendering only.
// Returns (nil, nil) when no polygon contains the point.
func (PGRegionIndex) FindContainingConstituency(ctx context.Context, lng, lat float64) (*ContainingRegion, error) {
	query := `
		SELECT c.id AS constituency_id,
		       c.name AS constituency_name,
		       k.id AS county_id,
		       k.name AS county_name
		FROM civics.constituencies c
		JOIN civics.counties k ON k.id = c.county_id
		WHERE ST_Contains(
			c.geom,
			ST_SetSRID(ST_MakePoint(?, ?), 4326)
		)
		LIMIT 1
	`

	var matches []ContainingRegion
	if err := db.DB.WithContext(ctx).Raw(query, lng, lat).Scan(&matches).Error; err != nil {
		return nil, fmt.Errorf("constituency containment query failed: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// ParentCounty resolves a constituency's county through the foreign key
// (no spatial work involved).
func ParentCounty(ctx context.Context, constituencyID uuid.UUID) (*County, error) {
	var constituency Constituency
	if err := db.DB.WithContext(ctx).First(&constituency, "id = ?", constituencyID).Error; err != nil {
		return nil, fmt.Errorf("constituency %s: %w", constituencyID, err)
	}
	var county County
	if err := db.DB.WithContext(ctx).First(&county, "id = ?", constituency.CountyID).Error; err != nil {
		return nil, fmt.Errorf("county %s: %w", constituency.CountyID, err)
	}
	return &county, nil
}
