package civics

import (
	"context"

	"github.com/google/uuid"
)

// LeaderInfo is the per-role payload in the leaders mapping.
type LeaderInfo struct {
	Name              string `json:"name"`
	PhotoURL          string `json:"photo_url"`
	PartyName         string `json:"party_name"`
	PartyAbbreviation string `json:"party_abbreviation"`
}

// LeaderSource produces the role-keyed mapping of currently serving
// officials for a constituency and its parent county.
type LeaderSource interface {
	CurrentLeaders(ctx context.Context, constituencyID uuid.UUID) (map[string]LeaderInfo, error)
}

// LedgerLeaderSource is the DB-backed LeaderSource.
type LedgerLeaderSource struct{}

// CurrentLeaders fetches the open constituency MP terms and the open
// county-level terms for the constituency's county, then folds them into
// the role mapping.
func (LedgerLeaderSource) CurrentLeaders(ctx context.Context, constituencyID uuid.UUID) (map[string]LeaderInfo, error) {
	county, err := ParentCounty(ctx, constituencyID)
	if err != nil {
		return nil, err
	}

	mpTerms, err := OpenConstituencyMPTerms(ctx, constituencyID)
	if err != nil {
		return nil, err
	}
	countyTerms, err := OpenCountyTerms(ctx, county.ID)
	if err != nil {
		return nil, err
	}

	return BuildLeaders(append(countyTerms, mpTerms...)), nil
}

// BuildLeaders folds ledger entries into the role-keyed mapping. Entries
// whose position kind is empty are dropped; an MP-kind entry outside the
// constituency level never lands in the map (a county row can't claim the
// mp slot and vice versa). When two entries carry the same role the later
// one wins, matching the long-standing behavior; the open-term unique
// index makes that case a data error anyway.
func BuildLeaders(entries []LedgerEntry) map[string]LeaderInfo {
	leaders := make(map[string]LeaderInfo)
	for _, e := range entries {
		role := e.PositionKind
		if role == "" {
			continue
		}
		if role == RoleMP && e.PositionLevel != LevelConstituency {
			continue
		}
		if role != RoleMP && e.PositionLevel != LevelCounty {
			continue
		}
		leaders[role] = leaderInfo(e)
	}
	return leaders
}

func leaderInfo(e LedgerEntry) LeaderInfo {
	info := LeaderInfo{
		Name:              e.OfficialName,
		PhotoURL:          e.PhotoURL,
		PartyName:         independentLabel,
		PartyAbbreviation: independentLabel,
	}
	if e.PartyName != nil {
		info.PartyName = *e.PartyName
		info.PartyAbbreviation = PrimaryAbbreviation(e.Abbreviations)
	}
	return info
}
