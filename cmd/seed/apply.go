package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SerikaliMap/serikali-backend/internal/civics"
	"github.com/lib/pq"
)

// Plan is everything loaded and validated before any write happens.
type Plan struct {
	Counties       []RegionRow
	Constituencies []RegionRow
	Wards          []RegionRow
	Roster         []RosterRow
}

func loadAll(countiesPath, constituenciesPath, wardsPath, rosterPath string) (*Plan, error) {
	var plan Plan
	var err error
	if countiesPath != "" {
		if plan.Counties, err = loadRegions(countiesPath, "county"); err != nil {
			return nil, err
		}
	}
	if constituenciesPath != "" {
		if plan.Constituencies, err = loadRegions(constituenciesPath, "constituency"); err != nil {
			return nil, err
		}
	}
	if wardsPath != "" {
		if plan.Wards, err = loadRegions(wardsPath, "ward"); err != nil {
			return nil, err
		}
	}
	if rosterPath != "" {
		if plan.Roster, err = loadRoster(rosterPath); err != nil {
			return nil, err
		}
	}
	return &plan, nil
}

func apply(ctx context.Context, db *sql.DB, plan *Plan) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, c := range plan.Counties {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO civics.counties (id, name, code, population, area, geom, created_at, updated_at)
			VALUES (uuid_generate_v4(), $1, $2, $3, $4,
			        ST_Multi(ST_SetSRID(ST_GeomFromGeoJSON($5), 4326)), now(), now())
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name,
				population = EXCLUDED.population,
				area = EXCLUDED.area,
				geom = EXCLUDED.geom,
				updated_at = now()
		`, c.Name, c.Code, c.Population, c.Area, c.Geometry)
		if err != nil {
			return fmt.Errorf("county %s (%s): %w", c.Name, c.Code, err)
		}
	}

	for _, c := range plan.Constituencies {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO civics.constituencies (id, name, code, county_id, population, area, geom, created_at, updated_at)
			SELECT uuid_generate_v4(), $1, $2, k.id, $3, $4,
			       ST_Multi(ST_SetSRID(ST_GeomFromGeoJSON($5), 4326)), now(), now()
			FROM civics.counties k WHERE k.code = $6
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name,
				county_id = EXCLUDED.county_id,
				population = EXCLUDED.population,
				area = EXCLUDED.area,
				geom = EXCLUDED.geom,
				updated_at = now()
		`, c.Name, c.Code, c.Population, c.Area, c.Geometry, c.ParentCode)
		if err != nil {
			return fmt.Errorf("constituency %s (%s): %w", c.Name, c.Code, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("constituency %s (%s): parent county code %s not found", c.Name, c.Code, c.ParentCode)
		}
	}

	for _, w := range plan.Wards {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO civics.wards (id, name, code, constituency_id, geom, created_at, updated_at)
			SELECT uuid_generate_v4(), $1, $2, c.id,
			       ST_Multi(ST_SetSRID(ST_GeomFromGeoJSON($3), 4326)), now(), now()
			FROM civics.constituencies c WHERE c.code = $4
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name,
				constituency_id = EXCLUDED.constituency_id,
				geom = EXCLUDED.geom,
				updated_at = now()
		`, w.Name, w.Code, w.Geometry, w.ParentCode)
		if err != nil {
			return fmt.Errorf("ward %s (%s): %w", w.Name, w.Code, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("ward %s (%s): parent constituency code %s not found", w.Name, w.Code, w.ParentCode)
		}
	}

	for i, row := range plan.Roster {
		if err := applyRosterRow(ctx, tx, row); err != nil {
			return fmt.Errorf("roster row %d (%s): %w", i+1, row.Official, err)
		}
	}

	return tx.Commit()
}

func applyRosterRow(ctx context.Context, tx *sql.Tx, row RosterRow) error {
	// Position kind is assigned here, once, so request-time leader
	// resolution never re-derives it from the raw name.
	kind := civics.ClassifyPositionName(row.Position)
	var positionID string
	err := tx.QueryRowContext(ctx, `
		INSERT INTO civics.positions (id, name, level, kind, created_at, updated_at)
		VALUES (uuid_generate_v4(), $1, $2, $3, now(), now())
		ON CONFLICT (name) DO UPDATE SET level = EXCLUDED.level, kind = EXCLUDED.kind, updated_at = now()
		RETURNING id
	`, row.Position, row.Level, kind).Scan(&positionID)
	if err != nil {
		return fmt.Errorf("position: %w", err)
	}

	var partyID *string
	if row.Party != "" {
		abbrs := civics.NormalizeAbbreviations(row.PartyAbbrevRaw)
		var id string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO civics.parties (id, name, abbreviations, created_at, updated_at)
			VALUES (uuid_generate_v4(), $1, $2, now(), now())
			ON CONFLICT (name) DO UPDATE SET abbreviations = EXCLUDED.abbreviations, updated_at = now()
			RETURNING id
		`, row.Party, pq.StringArray(abbrs)).Scan(&id)
		if err != nil {
			return fmt.Errorf("party: %w", err)
		}
		partyID = &id
	}

	// Officials have no natural key beyond their name; reuse an
	// existing row rather than duplicating the person per term.
	var officialID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM civics.officials WHERE name = $1`, row.Official).Scan(&officialID)
	if err == sql.ErrNoRows {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO civics.officials (id, name, gender, photo_url, created_at, updated_at)
			VALUES (uuid_generate_v4(), $1, $2, $3, now(), now())
			RETURNING id
		`, row.Official, row.Gender, row.PhotoURL).Scan(&officialID)
	}
	if err != nil {
		return fmt.Errorf("official: %w", err)
	}

	var countyID, constituencyID, wardID *string
	if row.CountyCode != "" {
		id, err := regionIDByCode(ctx, tx, "civics.counties", row.CountyCode)
		if err != nil {
			return err
		}
		countyID = &id
	}
	if row.ConstituencyCode != "" {
		id, err := regionIDByCode(ctx, tx, "civics.constituencies", row.ConstituencyCode)
		if err != nil {
			return err
		}
		constituencyID = &id
	}
	if row.WardCode != "" {
		id, err := regionIDByCode(ctx, tx, "civics.wards", row.WardCode)
		if err != nil {
			return err
		}
		wardID = &id
	}

	// Closed terms carry no unique index, so reruns dedupe here
	// instead of relying on ON CONFLICT.
	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM civics.terms
			WHERE official_id = $1 AND position_id = $2 AND start_year = $3
			  AND county_id IS NOT DISTINCT FROM $4
			  AND constituency_id IS NOT DISTINCT FROM $5
			  AND ward_id IS NOT DISTINCT FROM $6
		)
	`, officialID, positionID, row.StartYear, countyID, constituencyID, wardID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("term lookup: %w", err)
	}
	if exists {
		return nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO civics.terms
			(id, official_id, position_id, party_id, start_year, end_year,
			 county_id, constituency_id, ward_id, nomination_type, created_at, updated_at)
		VALUES (uuid_generate_v4(), $1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	`, officialID, positionID, partyID, row.StartYear, row.EndYear,
		countyID, constituencyID, wardID, row.NominationType)
	if err != nil {
		return fmt.Errorf("term: %w", err)
	}
	return nil
}

func regionIDByCode(ctx context.Context, tx *sql.Tx, table, code string) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE code = $1`, table), code).Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no region in %s with code %s", table, code)
	}
	if err != nil {
		return "", fmt.Errorf("region lookup %s/%s: %w", table, code, err)
	}
	return id, nil
}
