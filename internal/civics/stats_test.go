package civics

import (
	"testing"

	"github.com/lib/pq"
)

func mpEntry(official, gender string, party *string, nomination *string, abbrs ...string) LedgerEntry {
	return LedgerEntry{
		PositionKind:   RoleMP,
		PositionLevel:  LevelConstituency,
		PositionName:   "MP",
		OfficialName:   official,
		Gender:         gender,
		NominationType: nomination,
		PartyName:      party,
		Abbreviations:  pq.StringArray(abbrs),
		StartYear:      2022,
	}
}

func TestBuildMPRollup_ElectedOnlyExcludesNominated(t *testing.T) {
	nominated := "Nominated"
	entries := []LedgerEntry{
		mpEntry("Elected MP", "male", strPtr("ODM"), nil, "ODM"),
		mpEntry("Nominated MP", "female", strPtr("ODM"), &nominated, "ODM"),
	}

	rollup := BuildMPRollup(entries)

	if got := rollup.Stats.GenderCounts.All["male"] + rollup.Stats.GenderCounts.All["female"]; got != 2 {
		t.Errorf("all gender counts = %d, want 2", got)
	}
	if got := rollup.Stats.GenderCounts.ElectedOnly["female"]; got != 0 {
		t.Errorf("nominated MP leaked into elected_only: %d", got)
	}
	if got := rollup.Stats.GenderCounts.ElectedOnly["male"]; got != 1 {
		t.Errorf("elected_only male = %d, want 1", got)
	}
	if got := rollup.Stats.PartyDistribution.All["ODM (ODM)"]; got != 2 {
		t.Errorf("all party distribution = %d, want 2", got)
	}
	if got := rollup.Stats.PartyDistribution.ElectedOnly["ODM (ODM)"]; got != 1 {
		t.Errorf("elected_only party distribution = %d, want 1", got)
	}
}

func TestBuildMPRollup_UnknownGenderBucketsToOther(t *testing.T) {
	entries := []LedgerEntry{
		mpEntry("MP One", "nonbinary", nil, nil),
		mpEntry("MP Two", "", nil, nil),
	}
	rollup := BuildMPRollup(entries)
	if got := rollup.Stats.GenderCounts.All["other"]; got != 2 {
		t.Errorf("other bucket = %d, want 2", got)
	}
}

func TestBuildMPRollup_IndependentPartyKey(t *testing.T) {
	rollup := BuildMPRollup([]LedgerEntry{mpEntry("Solo MP", "male", nil, nil)})
	if got := rollup.Stats.PartyDistribution.All["Independent"]; got != 1 {
		t.Errorf("independent distribution = %d, want 1; map: %v", got, rollup.Stats.PartyDistribution.All)
	}
	if got := rollup.Officials[0].PartyAbbreviation; got != "Independent" {
		t.Errorf("party abbreviation = %q, want Independent", got)
	}
}

func TestBuildCountyOfficialsRollup(t *testing.T) {
	nairobi := "Nairobi"
	entries := []LedgerEntry{
		{
			PositionName:  "Governor",
			PositionKind:  RoleGovernor,
			PositionLevel: LevelCounty,
			OfficialName:  "A. Governor",
			Gender:        "male",
			CountyName:    &nairobi,
			PartyName:     strPtr("Orange Democratic Movement"),
			Abbreviations: pq.StringArray{"ODM", "Orange"},
			StartYear:     2022,
		},
		{
			PositionName:  "Governor",
			PositionKind:  RoleGovernor,
			PositionLevel: LevelCounty,
			OfficialName:  "B. Governor",
			Gender:        "female",
			PartyName:     strPtr("United Democratic Alliance"),
			Abbreviations: pq.StringArray{"UDA"},
			StartYear:     2022,
		},
		{
			PositionName:  "Senator",
			PositionKind:  RoleSenator,
			PositionLevel: LevelCounty,
			OfficialName:  "C. Senator",
			Gender:        "male",
			StartYear:     2022,
		},
	}

	rollup := BuildCountyOfficialsRollup(entries)

	if len(rollup.Officials) != 3 {
		t.Fatalf("officials = %d, want 3", len(rollup.Officials))
	}
	gov := rollup.Stats["Governor"]
	if gov.GenderCounts["male"] != 1 || gov.GenderCounts["female"] != 1 {
		t.Errorf("governor gender counts wrong: %v", gov.GenderCounts)
	}
	if gov.PartyDistribution["Orange Democratic Movement (ODM)"] != 1 {
		t.Errorf("governor party distribution wrong: %v", gov.PartyDistribution)
	}
	sen := rollup.Stats["Senator"]
	if sen.PartyDistribution["Independent"] != 1 {
		t.Errorf("senator party distribution wrong: %v", sen.PartyDistribution)
	}
	if rollup.Officials[0].Term != "2022-present" {
		t.Errorf("term span = %q, want 2022-present", rollup.Officials[0].Term)
	}
}

func TestFormatTermSpan(t *testing.T) {
	if got := formatTermSpan(2017, intPtr(2022)); got != "2017-2022" {
		t.Errorf("got %q", got)
	}
	if got := formatTermSpan(2022, nil); got != "2022-present" {
		t.Errorf("got %q", got)
	}
}
