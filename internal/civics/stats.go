package civics

import (
	"context"
	"fmt"
)

// OfficialSummary is the flat display row used by the rollup endpoints.
type OfficialSummary struct {
	Name              string  `json:"name"`
	Gender            string  `json:"gender"`
	PhotoURL          string  `json:"photo_url"`
	Position          string  `json:"position"`
	PartyName         string  `json:"party_name"`
	PartyAbbreviation string  `json:"party_abbreviation"`
	County            *string `json:"county,omitempty"`
	Constituency      *string `json:"constituency,omitempty"`
	Term              string  `json:"term"`
	NominationType    *string `json:"nomination_type,omitempty"`
}

// PositionStats aggregates one position name across counties.
type PositionStats struct {
	GenderCounts      map[string]int `json:"gender_counts"`
	PartyDistribution map[string]int `json:"party_distribution"`
}

// CountyOfficialsRollup is the payload of GET /officials/counties.
type CountyOfficialsRollup struct {
	Officials []OfficialSummary        `json:"officials"`
	Stats     map[string]PositionStats `json:"stats"`
}

// MPStatsSplit carries the all / elected-only split for the MP rollup.
// "Elected only" excludes every term with a non-null nomination_type.
type MPStatsSplit struct {
	GenderCounts struct {
		All         map[string]int `json:"all"`
		ElectedOnly map[string]int `json:"elected_only"`
	} `json:"gender_counts"`
	PartyDistribution struct {
		All         map[string]int `json:"all"`
		ElectedOnly map[string]int `json:"elected_only"`
	} `json:"party_distribution"`
}

// MPRollup is the payload of GET /officials/mps.
type MPRollup struct {
	Officials []OfficialSummary `json:"officials"`
	Stats     MPStatsSplit      `json:"stats"`
}

func summarize(e LedgerEntry) OfficialSummary {
	s := OfficialSummary{
		Name:              e.OfficialName,
		Gender:            e.Gender,
		PhotoURL:          e.PhotoURL,
		Position:          e.PositionName,
		PartyName:         independentLabel,
		PartyAbbreviation: independentLabel,
		County:            e.CountyName,
		Constituency:      e.ConstituencyName,
		Term:              formatTermSpan(e.StartYear, e.EndYear),
		NominationType:    e.NominationType,
	}
	if e.PartyName != nil {
		s.PartyName = *e.PartyName
		s.PartyAbbreviation = PrimaryAbbreviation(e.Abbreviations)
	}
	return s
}

func formatTermSpan(start int, end *int) string {
	if end == nil {
		return fmt.Sprintf("%d-present", start)
	}
	return fmt.Sprintf("%d-%d", start, *end)
}

// partyKey is the normalized party identity used for distributions:
// party name plus display abbreviation, or just "Independent".
func partyKey(e LedgerEntry) string {
	if e.PartyName == nil {
		return independentLabel
	}
	return fmt.Sprintf("%s (%s)", *e.PartyName, PrimaryAbbreviation(e.Abbreviations))
}

// BuildCountyOfficialsRollup folds open county-level ledger entries into
// the flat officials list plus per-position statistics.
func BuildCountyOfficialsRollup(entries []LedgerEntry) CountyOfficialsRollup {
	out := CountyOfficialsRollup{
		Officials: make([]OfficialSummary, 0, len(entries)),
		Stats:     make(map[string]PositionStats),
	}
	for _, e := range entries {
		out.Officials = append(out.Officials, summarize(e))

		st, ok := out.Stats[e.PositionName]
		if !ok {
			st = PositionStats{
				GenderCounts:      make(map[string]int),
				PartyDistribution: make(map[string]int),
			}
		}
		st.GenderCounts[BucketGender(e.Gender)]++
		st.PartyDistribution[partyKey(e)]++
		out.Stats[e.PositionName] = st
	}
	return out
}

// BuildMPRollup folds open MP ledger entries into the flat list plus the
// all / elected-only statistics split.
func BuildMPRollup(entries []LedgerEntry) MPRollup {
	out := MPRollup{Officials: make([]OfficialSummary, 0, len(entries))}
	out.Stats.GenderCounts.All = make(map[string]int)
	out.Stats.GenderCounts.ElectedOnly = make(map[string]int)
	out.Stats.PartyDistribution.All = make(map[string]int)
	out.Stats.PartyDistribution.ElectedOnly = make(map[string]int)

	for _, e := range entries {
		out.Officials = append(out.Officials, summarize(e))

		g := BucketGender(e.Gender)
		p := partyKey(e)
		out.Stats.GenderCounts.All[g]++
		out.Stats.PartyDistribution.All[p]++
		if e.NominationType == nil {
			out.Stats.GenderCounts.ElectedOnly[g]++
			out.Stats.PartyDistribution.ElectedOnly[p]++
		}
	}
	return out
}

// AllCountyOfficials runs the nationwide county-officials scan and folds it.
func AllCountyOfficials(ctx context.Context) (CountyOfficialsRollup, error) {
	entries, err := AllOpenCountyTerms(ctx)
	if err != nil {
		return CountyOfficialsRollup{}, err
	}
	return BuildCountyOfficialsRollup(entries), nil
}

// AllMPs runs the nationwide MP scan and folds it.
func AllMPs(ctx context.Context) (MPRollup, error) {
	entries, err := AllOpenMPTerms(ctx)
	if err != nil {
		return MPRollup{}, err
	}
	return BuildMPRollup(entries), nil
}
