package civics

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Position levels. A position's level constrains which region columns a
// term may populate.
const (
	LevelNational     = "national"
	LevelCounty       = "county"
	LevelConstituency = "constituency"
	LevelWard         = "ward"
)

// County is the top of the administrative tree. Geometry lives in a
// geometry(MultiPolygon,4326) column created in Init; all geometry access
// goes through raw SQL so the model stays plain.
type County struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name              string    `gorm:"uniqueIndex;not null" json:"name"`
	Code              string    `gorm:"uniqueIndex;not null" json:"code"`
	Population        *int      `json:"population,omitempty"`
	Area              *float64  `json:"area,omitempty"`
	PopulationDensity *float64  `json:"population_density,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Constituencies []Constituency `gorm:"foreignKey:CountyID;constraint:OnDelete:CASCADE" json:"constituencies,omitempty"`
}

func (County) TableName() string {
	return "civics.counties"
}

type Constituency struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name              string    `gorm:"not null;index:uq_constituency_name_per_county,unique" json:"name"`
	CountyID          uuid.UUID `gorm:"type:uuid;not null;index:uq_constituency_name_per_county,unique" json:"county_id"`
	Code              string    `gorm:"uniqueIndex;not null" json:"code"`
	Population        *int      `json:"population,omitempty"`
	Area              *float64  `json:"area,omitempty"`
	PopulationDensity *float64  `json:"population_density,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	County County `gorm:"foreignKey:CountyID" json:"-"`
	Wards  []Ward `gorm:"foreignKey:ConstituencyID;constraint:OnDelete:CASCADE" json:"wards,omitempty"`
}

func (Constituency) TableName() string {
	return "civics.constituencies"
}

type Ward struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	ConstituencyID uuid.UUID `gorm:"type:uuid;not null" json:"constituency_id"`
	Code           string    `gorm:"uniqueIndex;not null" json:"code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Constituency Constituency `gorm:"foreignKey:ConstituencyID" json:"-"`
}

func (Ward) TableName() string {
	return "civics.wards"
}

// Position is a named office. Kind holds the canonical role key derived
// once at data-load time (see ClassifyPositionName); empty means the name
// didn't map to any role and the position never shows up in leaders output.
type Position struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Level     string    `gorm:"not null" json:"level"`
	Kind      string    `gorm:"index" json:"kind,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Position) TableName() string {
	return "civics.positions"
}

// Party abbreviations are normalized at import time from the raw
// comma/brace-delimited registry string into an ordered list; the first
// entry is the display abbreviation.
type Party struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name          string         `gorm:"uniqueIndex;not null" json:"name"`
	Abbreviations pq.StringArray `gorm:"type:text[]" json:"abbreviations,omitempty"`
	Colors        string         `json:"colors,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Party) TableName() string {
	return "civics.parties"
}

type Official struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Gender    string    `gorm:"not null" json:"gender"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Terms []Term `gorm:"foreignKey:OfficialID;constraint:OnDelete:CASCADE" json:"terms,omitempty"`
}

func (Official) TableName() string {
	return "civics.officials"
}

// Term binds an official to a position (and optionally a party) over a
// year span. end_year NULL means currently serving. Region scope columns
// must be consistent with the position level: county terms never carry a
// constituency_id (enforced at import, and by a CHECK added in Init).
type Term struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OfficialID uuid.UUID  `gorm:"type:uuid;not null;index" json:"official_id"`
	PositionID uuid.UUID  `gorm:"type:uuid;not null" json:"position_id"`
	PartyID    *uuid.UUID `gorm:"type:uuid" json:"party_id,omitempty"`

	StartYear int  `gorm:"not null;index:ix_terms_years" json:"start_year"`
	EndYear   *int `gorm:"index:ix_terms_years" json:"end_year,omitempty"`

	CountyID       *uuid.UUID `gorm:"type:uuid;index" json:"county_id,omitempty"`
	ConstituencyID *uuid.UUID `gorm:"type:uuid;index" json:"constituency_id,omitempty"`
	WardID         *uuid.UUID `gorm:"type:uuid;index" json:"ward_id,omitempty"`

	NominationType *string `json:"nomination_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Official     Official      `gorm:"foreignKey:OfficialID" json:"-"`
	Position     Position      `gorm:"foreignKey:PositionID" json:"-"`
	Party        *Party        `gorm:"foreignKey:PartyID" json:"-"`
	County       *County       `gorm:"foreignKey:CountyID" json:"-"`
	Constituency *Constituency `gorm:"foreignKey:ConstituencyID" json:"-"`
}

func (Term) TableName() string {
	return "civics.terms"
}

// NominationTypes are the accepted non-elected pathways. NULL means the
// official was elected directly.
var NominationTypes = map[string]struct{}{
	"Gender balance":     {},
	"Marginalized group": {},
	"Youth":              {},
	"Nominated":          {},
}

// ValidNominationType reports whether v is an accepted nomination type.
func ValidNominationType(v string) bool {
	_, ok := NominationTypes[v]
	return ok
}

// ValidTermYears checks the year invariants: start in (1900, 2100],
// end either unset or no earlier than start.
func ValidTermYears(start int, end *int) bool {
	if start <= 1900 || start > 2100 {
		return false
	}
	if end != nil && (*end < start || *end > 2100) {
		return false
	}
	return true
}
