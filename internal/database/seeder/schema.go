package seeder

import (
	"context"

	"internmatch/internal/database"
)

// SchemaSeeder creates the tables when they do not exist yet.
type SchemaSeeder struct{}

func (SchemaSeeder) Name() string { return "schema" }

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS educations (
		id BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS sectors (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		id BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL UNIQUE,
		state VARCHAR(100)
	)`,
	`CREATE TABLE IF NOT EXISTS education_sectors (
		education_id BIGINT NOT NULL REFERENCES educations(id),
		sector_id BIGINT NOT NULL REFERENCES sectors(id),
		PRIMARY KEY (education_id, sector_id)
	)`,
	`CREATE TABLE IF NOT EXISTS sector_skills (
		sector_id BIGINT NOT NULL REFERENCES sectors(id),
		skill_id BIGINT NOT NULL REFERENCES skills(id),
		PRIMARY KEY (sector_id, skill_id)
	)`,
	`CREATE TABLE IF NOT EXISTS internships (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		company_name VARCHAR(200) NOT NULL DEFAULT '',
		skills_id BIGINT REFERENCES skills(id),
		edu_id BIGINT REFERENCES educations(id),
		sector_id BIGINT REFERENCES sectors(id),
		location_id BIGINT REFERENCES locations(id),
		duration VARCHAR(50),
		no_of_post INTEGER DEFAULT 1,
		details TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_internships_title ON internships (title)`,
	`CREATE INDEX IF NOT EXISTS idx_internships_sector ON internships (sector_id)`,
	`CREATE INDEX IF NOT EXISTS idx_internships_location ON internships (location_id)`,
}

func (SchemaSeeder) Run(ctx context.Context, db database.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
