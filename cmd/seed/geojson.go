package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The boundary files come from the IEBC shapefile exports converted to
// GeoJSON. Property names follow the shapefile columns: COUNTY_COD /
// COUNTY_NAM on counties, CONST_CODE / CONSTITUEN on constituencies,
// COUNTY_ASS / WARD on wards.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties map[string]json.RawMessage `json:"properties"`
	Geometry   json.RawMessage            `json:"geometry"`
}

// RegionRow is one region to upsert: code, display name, parent code and
// the raw GeoJSON geometry passed straight to ST_GeomFromGeoJSON.
type RegionRow struct {
	Code       string
	Name       string
	ParentCode string
	Population *int
	Area       *float64
	Geometry   string
}

var titleCaser = cases.Title(language.English)

// displayName turns the shapefile's ALL-CAPS names ("NAIROBI CITY") into
// display casing.
func displayName(raw string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(raw)))
}

func (f feature) stringProp(keys ...string) string {
	for _, k := range keys {
		raw, ok := f.Properties[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		// Some exports carry codes as bare numbers.
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return fmt.Sprintf("%.0f", n)
		}
	}
	return ""
}

func (f feature) intProp(keys ...string) *int {
	for _, k := range keys {
		raw, ok := f.Properties[k]
		if !ok {
			continue
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			v := int(n)
			return &v
		}
	}
	return nil
}

func (f feature) floatProp(keys ...string) *float64 {
	for _, k := range keys {
		raw, ok := f.Properties[k]
		if !ok {
			continue
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return &n
		}
	}
	return nil
}

func loadRegions(path, kind string) ([]RegionRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var rows []RegionRow
	seen := make(map[string]struct{})
	for i, f := range fc.Features {
		var row RegionRow
		switch kind {
		case "county":
			row = RegionRow{
				Code:       f.stringProp("COUNTY_COD", "COUNTY_CODE"),
				Name:       displayName(f.stringProp("COUNTY_NAM", "COUNTY_NAME")),
				Population: f.intProp("POPULATION", "POP_2019"),
				Area:       f.floatProp("AREA", "Shape_Area"),
			}
		case "constituency":
			row = RegionRow{
				Code:       f.stringProp("CONST_CODE", "CONSTITUENCY_CODE"),
				Name:       displayName(f.stringProp("CONSTITUEN", "CONSTITUENCY_NAME")),
				ParentCode: f.stringProp("COUNTY_COD", "COUNTY_CODE"),
				Population: f.intProp("POPULATION", "POP_2019"),
				Area:       f.floatProp("AREA", "Shape_Area"),
			}
		case "ward":
			row = RegionRow{
				Code:       f.stringProp("COUNTY_ASS", "WARD_CODE"),
				Name:       displayName(f.stringProp("WARD", "WARD_NAME")),
				ParentCode: f.stringProp("CONST_CODE", "CONSTITUENCY_CODE"),
			}
		}
		if row.Code == "" || row.Name == "" {
			return nil, fmt.Errorf("%s: feature %d has no usable code/name", path, i)
		}
		if _, dup := seen[row.Code]; dup {
			return nil, fmt.Errorf("%s: duplicate %s code %s", path, kind, row.Code)
		}
		seen[row.Code] = struct{}{}
		if len(f.Geometry) == 0 {
			return nil, fmt.Errorf("%s: feature %d (%s) has no geometry", path, i, row.Name)
		}
		row.Geometry = string(f.Geometry)
		rows = append(rows, row)
	}
	return rows, nil
}
