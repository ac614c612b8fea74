package seeder

import (
	"context"
	"fmt"

	"internmatch/internal/database"
)

// ReferenceSeeder fills the lookup vocabularies and their
// associations. Inserts are idempotent on the unique text columns.
type ReferenceSeeder struct{}

func (ReferenceSeeder) Name() string { return "reference" }

var seedEducations = []string{
	"Computer Science Engineering",
	"Information Technology",
	"Electronics and Communication",
	"Mechanical Engineering",
	"Business Administration",
}

var seedSectors = []struct {
	Name        string
	Description string
}{
	{Name: "Technology", Description: "Software and IT services"},
	{Name: "Analytics", Description: "Data and business analytics"},
	{Name: "Marketing", Description: "Digital and brand marketing"},
	{Name: "Finance", Description: "Financial services and fintech"},
	{Name: "Manufacturing", Description: "Production and engineering"},
}

var seedSkills = []string{
	"Python Programming",
	"Web Development",
	"Data Analysis",
	"Machine Learning",
	"Digital Marketing",
	"Project Management",
	"SQL",
	"Content Writing",
}

var seedLocations = []struct {
	Description string
	State       string
}{
	{Description: "Delhi", State: "Delhi"},
	{Description: "Mumbai", State: "Maharashtra"},
	{Description: "Bangalore", State: "Karnataka"},
	{Description: "Chennai", State: "Tamil Nadu"},
	{Description: "Hyderabad", State: "Telangana"},
	{Description: "Remote", State: ""},
}

// education -> sectors a graduate of that stream typically targets.
var seedEducationSectors = map[string][]string{
	"Computer Science Engineering":  {"Technology", "Analytics"},
	"Information Technology":        {"Technology", "Analytics"},
	"Electronics and Communication": {"Technology", "Manufacturing"},
	"Mechanical Engineering":        {"Manufacturing"},
	"Business Administration":       {"Marketing", "Finance"},
}

var seedSectorSkills = map[string][]string{
	"Technology":    {"Python Programming", "Web Development", "SQL"},
	"Analytics":     {"Data Analysis", "Machine Learning", "SQL", "Python Programming"},
	"Marketing":     {"Digital Marketing", "Content Writing"},
	"Finance":       {"Data Analysis", "Project Management"},
	"Manufacturing": {"Project Management"},
}

func (ReferenceSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, desc := range seedEducations {
		if _, err := tx.Exec(ctx,
			`INSERT INTO educations (description) VALUES ($1) ON CONFLICT (description) DO NOTHING`,
			desc,
		); err != nil {
			return err
		}
	}

	for _, s := range seedSectors {
		if _, err := tx.Exec(ctx,
			`INSERT INTO sectors (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			s.Name, s.Description,
		); err != nil {
			return err
		}
	}

	for _, desc := range seedSkills {
		if _, err := tx.Exec(ctx,
			`INSERT INTO skills (description) VALUES ($1) ON CONFLICT (description) DO NOTHING`,
			desc,
		); err != nil {
			return err
		}
	}

	for _, l := range seedLocations {
		if _, err := tx.Exec(ctx,
			`INSERT INTO locations (description, state) VALUES ($1, $2) ON CONFLICT (description) DO NOTHING`,
			l.Description, l.State,
		); err != nil {
			return err
		}
	}

	for edu, sectors := range seedEducationSectors {
		for _, sector := range sectors {
			if _, err := tx.Exec(ctx, `
INSERT INTO education_sectors (education_id, sector_id)
SELECT e.id, s.id FROM educations e, sectors s
WHERE e.description = $1 AND s.name = $2
ON CONFLICT DO NOTHING`, edu, sector); err != nil {
				return err
			}
		}
	}

	for sector, skills := range seedSectorSkills {
		for _, skill := range skills {
			if _, err := tx.Exec(ctx, `
INSERT INTO sector_skills (sector_id, skill_id)
SELECT s.id, sk.id FROM sectors s, skills sk
WHERE s.name = $1 AND sk.description = $2
ON CONFLICT DO NOTHING`, sector, skill); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
