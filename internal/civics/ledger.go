package civics

import (
	"context"
	"fmt"

	"github.com/SerikaliMap/serikali-backend/internal/db"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// LedgerEntry is one term row joined with its official, position, party
// and region names. Every ledger query returns this shape so the fold
// logic downstream stays uniform.
type LedgerEntry struct {
	TermID         uuid.UUID      `json:"term_id"`
	StartYear      int            `json:"start_year"`
	EndYear        *int           `json:"end_year"`
	NominationType *string        `json:"nomination_type"`
	PositionName   string         `json:"position_name"`
	PositionLevel  string         `json:"position_level"`
	PositionKind   string         `json:"position_kind"`
	OfficialName   string         `json:"official_name"`
	Gender         string         `json:"gender"`
	PhotoURL       string         `json:"photo_url"`
	PartyName      *string        `json:"party_name"`
	Abbreviations  pq.StringArray `json:"abbreviations" gorm:"type:text[]"`

	CountyID         *uuid.UUID `json:"county_id"`
	CountyName       *string    `json:"county_name"`
	ConstituencyID   *uuid.UUID `json:"constituency_id"`
	ConstituencyName *string    `json:"constituency_name"`
}

// ledgerSelect is the shared projection for all term queries. One round
// trip with joins; no per-row follow-up reads.
const ledgerSelect = `
	SELECT t.id AS term_id,
	       t.start_year,
	       t.end_year,
	       t.nomination_type,
	       p.name AS position_name,
	       p.level AS position_level,
	       p.kind AS position_kind,
	       o.name AS official_name,
	       o.gender,
	       o.photo_url,
	       pa.name AS party_name,
	       pa.abbreviations,
	       t.county_id,
	       k.name AS county_name,
	       t.constituency_id,
	       c.name AS constituency_name
	FROM civics.terms t
	JOIN civics.officials o ON o.id = t.official_id
	JOIN civics.positions p ON p.id = t.position_id
	LEFT JOIN civics.parties pa ON pa.id = t.party_id
	LEFT JOIN civics.counties k ON k.id = t.county_id
	LEFT JOIN civics.constituencies c ON c.id = t.constituency_id
`

func queryLedger(ctx context.Context, where string, args ...interface{}) ([]LedgerEntry, error) {
	var entries []LedgerEntry
	if err := db.DB.WithContext(ctx).Raw(ledgerSelect+where, args...).Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("term ledger query failed: %w", err)
	}
	return entries, nil
}

// OpenConstituencyMPTerms returns currently-open MP terms scoped to one
// constituency. The kind filter replaces the old substring probing on
// position names; kinds are assigned once at import.
func OpenConstituencyMPTerms(ctx context.Context, constituencyID uuid.UUID) ([]LedgerEntry, error) {
	return queryLedger(ctx, `
		WHERE t.end_year IS NULL
		  AND t.constituency_id = ?
		  AND p.level = 'constituency'
		  AND p.kind = 'mp'
	`, constituencyID)
}

// OpenCountyTerms returns currently-open county-level terms for one
// county. The constituency_id IS NULL guard keeps constituency-scoped
// rows out even if a term row was denormalized with both ids.
func OpenCountyTerms(ctx context.Context, countyID uuid.UUID) ([]LedgerEntry, error) {
	return queryLedger(ctx, `
		WHERE t.end_year IS NULL
		  AND t.county_id = ?
		  AND t.constituency_id IS NULL
		  AND p.level = 'county'
	`, countyID)
}

// NationalTerms returns every national-level term, past and present.
func NationalTerms(ctx context.Context) ([]LedgerEntry, error) {
	return queryLedger(ctx, `
		WHERE p.level = 'national'
		ORDER BY t.start_year
	`)
}

// CountyTermHistory returns all county-level terms (open and closed) for
// one county.
func CountyTermHistory(ctx context.Context, countyID uuid.UUID) ([]LedgerEntry, error) {
	return queryLedger(ctx, `
		WHERE t.county_id = ?
		  AND p.level = 'county'
		ORDER BY t.start_year
	`, countyID)
}

// CountyMPHistory returns all MP terms for the constituencies of one
// county, resolved through the constituency's county FK rather than the
// term's own county column.
func CountyMPHistory(ctx context.Context, countyID uuid.UUID) ([]LedgerEntry, error) {
	return queryLedger(ctx, `
		WHERE c.county_id = ?
		  AND p.level = 'constituency'
		ORDER BY t.start_year
	`, countyID)
}

// AllOpenCountyTerms is the nationwide scan behind the county officials
// rollup.
func AllOpenCountyTerms(ctx context.Context) ([]LedgerEntry, error) {
	return queryLedger(ctx, `
		WHERE t.end_year IS NULL
		  AND p.level = 'county'
	`)
}

// AllOpenMPTerms is the nationwide scan behind the MP rollup.
func AllOpenMPTerms(ctx context.Context) ([]LedgerEntry, error) {
	return queryLedger(ctx, `
		WHERE t.end_year IS NULL
		  AND p.level = 'constituency'
		  AND p.kind = 'mp'
	`)
}

// OpenMPTermsByCounty returns the open MP term rows for every
// constituency in one county, for the county map detail view.
func OpenMPTermsByCounty(ctx context.Context, countyID uuid.UUID) ([]LedgerEntry, error) {
	return queryLedger(ctx, `
		WHERE t.end_year IS NULL
		  AND c.county_id = ?
		  AND p.level = 'constituency'
		  AND p.kind = 'mp'
	`, countyID)
}
