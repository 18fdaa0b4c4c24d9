package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/SerikaliMap/serikali-backend/internal/civics"
)

// Roster CSV contract:
// official,gender,photo_url,position,level,party,party_abbreviation,start_year,end_year,county_code,constituency_code,ward_code,nomination_type
//
// end_year empty means currently serving. party empty means independent.
// party_abbreviation is the raw registry string; it is normalized here,
// not at read time.

type RosterRow struct {
	Official         string
	Gender           string
	PhotoURL         string
	Position         string
	Level            string
	Party            string
	PartyAbbrevRaw   string
	StartYear        int
	EndYear          *int
	CountyCode       string
	ConstituencyCode string
	WardCode         string
	NominationType   *string
}

const rosterColumns = 13

func loadRoster(path string) ([]RosterRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = rosterColumns

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	if strings.TrimSpace(strings.ToLower(header[0])) != "official" {
		return nil, fmt.Errorf("%s: unexpected header %q", path, header[0])
	}

	var rows []RosterRow
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		row, err := parseRosterRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRosterRecord(rec []string) (RosterRow, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	row := RosterRow{
		Official:         rec[0],
		Gender:           strings.ToLower(rec[1]),
		PhotoURL:         rec[2],
		Position:         rec[3],
		Level:            strings.ToLower(rec[4]),
		Party:            rec[5],
		PartyAbbrevRaw:   rec[6],
		CountyCode:       rec[9],
		ConstituencyCode: rec[10],
		WardCode:         rec[11],
	}

	if row.Official == "" || row.Position == "" {
		return row, fmt.Errorf("official and position are required")
	}
	switch row.Gender {
	case "male", "female", "other":
	default:
		return row, fmt.Errorf("gender %q must be male, female or other", rec[1])
	}

	start, err := strconv.Atoi(rec[7])
	if err != nil {
		return row, fmt.Errorf("start_year %q: %w", rec[7], err)
	}
	row.StartYear = start
	if rec[8] != "" {
		end, err := strconv.Atoi(rec[8])
		if err != nil {
			return row, fmt.Errorf("end_year %q: %w", rec[8], err)
		}
		row.EndYear = &end
	}
	if !civics.ValidTermYears(row.StartYear, row.EndYear) {
		return row, fmt.Errorf("invalid term span %d-%v", row.StartYear, rec[8])
	}

	if rec[12] != "" {
		if !civics.ValidNominationType(rec[12]) {
			return row, fmt.Errorf("nomination_type %q is not recognized", rec[12])
		}
		nt := rec[12]
		row.NominationType = &nt
	}

	return row, validateScope(row)
}

// validateScope enforces the level/region consistency rules, including
// the invariant that county-level terms never carry a constituency or
// ward scope. Bad scopes are an import error, never patched up at read
// time.
func validateScope(row RosterRow) error {
	switch row.Level {
	case "national":
		if row.CountyCode != "" || row.ConstituencyCode != "" || row.WardCode != "" {
			return fmt.Errorf("national position %q must not carry a region scope", row.Position)
		}
	case "county":
		if row.CountyCode == "" {
			return fmt.Errorf("county position %q requires county_code", row.Position)
		}
		if row.ConstituencyCode != "" || row.WardCode != "" {
			return fmt.Errorf("county position %q must not carry constituency/ward scope", row.Position)
		}
	case "constituency":
		if row.ConstituencyCode == "" {
			return fmt.Errorf("constituency position %q requires constituency_code", row.Position)
		}
		if row.WardCode != "" {
			return fmt.Errorf("constituency position %q must not carry ward scope", row.Position)
		}
	case "ward":
		if row.WardCode == "" {
			return fmt.Errorf("ward position %q requires ward_code", row.Position)
		}
	default:
		return fmt.Errorf("level %q must be national, county, constituency or ward", row.Level)
	}
	return nil
}
