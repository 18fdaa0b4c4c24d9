package civics

import (
	"log"

	"github.com/SerikaliMap/serikali-backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "civics"); err != nil {
		log.Fatal("Failed to ensure schema civics: ", err)
	}

	if err := db.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp extension: ", err)
	}
	if err := db.DB.Exec(`CREATE EXTENSION IF NOT EXISTS postgis`).Error; err != nil {
		log.Fatal("Failed to enable postgis extension: ", err)
	}

	if err := db.DB.AutoMigrate(
		&County{},
		&Constituency{},
		&Ward{},
		&Position{},
		&Party{},
		&Official{},
		&Term{},
	); err != nil {
		log.Fatal("Failed to auto-migrate civics tables: ", err)
	}

	// Geometry columns are managed outside AutoMigrate; all reads and
	// writes go through raw SQL (ST_Contains, ST_AsSVG, ST_GeomFromGeoJSON).
	for _, stmt := range []string{
		`ALTER TABLE civics.counties ADD COLUMN IF NOT EXISTS geom geometry(MultiPolygon,4326)`,
		`ALTER TABLE civics.constituencies ADD COLUMN IF NOT EXISTS geom geometry(MultiPolygon,4326)`,
		`ALTER TABLE civics.wards ADD COLUMN IF NOT EXISTS geom geometry(MultiPolygon,4326)`,
		`CREATE INDEX IF NOT EXISTS ix_counties_geom ON civics.counties USING GIST (geom)`,
		`CREATE INDEX IF NOT EXISTS ix_constituencies_geom ON civics.constituencies USING GIST (geom)`,
		`CREATE INDEX IF NOT EXISTS ix_wards_geom ON civics.wards USING GIST (geom)`,
	} {
		if err := db.DB.Exec(stmt).Error; err != nil {
			log.Fatal("Failed to set up geometry columns: ", err)
		}
	}

	for _, stmt := range []string{
		`ALTER TABLE civics.positions DROP CONSTRAINT IF EXISTS ck_positions_level_valid`,
		`ALTER TABLE civics.positions ADD CONSTRAINT ck_positions_level_valid
		 CHECK (level IN ('national','county','constituency','ward'))`,

		`ALTER TABLE civics.officials DROP CONSTRAINT IF EXISTS ck_officials_gender_valid`,
		`ALTER TABLE civics.officials ADD CONSTRAINT ck_officials_gender_valid
		 CHECK (gender IN ('male','female','other'))`,

		`ALTER TABLE civics.terms DROP CONSTRAINT IF EXISTS ck_terms_years_valid`,
		`ALTER TABLE civics.terms ADD CONSTRAINT ck_terms_years_valid
		 CHECK (start_year > 1900 AND start_year <= 2100
		        AND (end_year IS NULL OR end_year >= start_year))`,

		`ALTER TABLE civics.terms DROP CONSTRAINT IF EXISTS ck_terms_nomination_valid`,
		`ALTER TABLE civics.terms ADD CONSTRAINT ck_terms_nomination_valid
		 CHECK (nomination_type IS NULL OR nomination_type IN
		        ('Gender balance','Marginalized group','Youth','Nominated'))`,
	} {
		if err := db.DB.Exec(stmt).Error; err != nil {
			log.Fatal("Failed to create civics check constraints: ", err)
		}
	}

	// Duplicate open terms for the same office and region are a data
	// error, not something resolution should paper over. Make them fail
	// at write time.
	if err := db.DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_terms_open_per_office
		ON civics.terms (
			position_id,
			COALESCE(county_id, '00000000-0000-0000-0000-000000000000'::uuid),
			COALESCE(constituency_id, '00000000-0000-0000-0000-000000000000'::uuid),
			COALESCE(ward_id, '00000000-0000-0000-0000-000000000000'::uuid)
		)
		WHERE end_year IS NULL;
	`).Error; err != nil {
		log.Fatal("Failed to create uq_terms_open_per_office: ", err)
	}

	log.Println("Civics module initialized")
}
