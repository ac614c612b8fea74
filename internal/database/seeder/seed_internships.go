package seeder

import (
	"context"
	"fmt"

	"internmatch/internal/database"
)

// InternshipSeeder inserts the sample postings. Idempotent on title
// plus company so a rerun never duplicates them.
type InternshipSeeder struct{}

func (InternshipSeeder) Name() string { return "internships" }

type internshipSeed struct {
	Title       string
	Description string
	Company     string
	Skill       string
	Education   string
	Sector      string
	Location    string
	Duration    string
	Posts       int
	Details     string
}

var seedInternships = []internshipSeed{
	{
		Title:       "Python Developer Intern",
		Description: "Work on backend development using Python and FastAPI",
		Company:     "TechNova Labs",
		Skill:       "Python Programming",
		Education:   "Computer Science Engineering",
		Sector:      "Technology",
		Location:    "Delhi",
		Duration:    "3 months",
		Posts:       5,
		Details:     "Great opportunity to learn backend development skills:2,7",
	},
	{
		Title:       "Data Analyst Intern",
		Description: "Analyze data and create insights using Python and SQL",
		Company:     "Insightly Analytics",
		Skill:       "Data Analysis",
		Education:   "Computer Science Engineering",
		Sector:      "Analytics",
		Location:    "Bangalore",
		Duration:    "6 months",
		Posts:       3,
		Details:     "Work with real-world datasets skills:7",
	},
	{
		Title:       "Web Development Intern",
		Description: "Frontend and backend web development",
		Company:     "PixelForge Studio",
		Skill:       "Web Development",
		Education:   "Information Technology",
		Sector:      "Technology",
		Location:    "Mumbai",
		Duration:    "4 months",
		Posts:       4,
		Details:     "Build modern web applications",
	},
	{
		Title:       "Machine Learning Intern",
		Description: "Build and evaluate predictive models on production data",
		Company:     "Insightly Analytics",
		Skill:       "Machine Learning",
		Education:   "Computer Science Engineering",
		Sector:      "Analytics",
		Location:    "Remote",
		Duration:    "6 months",
		Posts:       2,
		Details:     "Mentored research track skills:1,3",
	},
	{
		Title:       "Digital Marketing Intern",
		Description: "Plan social media campaigns and content strategy",
		Company:     "BrandCraft Media",
		Skill:       "Digital Marketing",
		Education:   "Business Administration",
		Sector:      "Marketing",
		Location:    "Mumbai",
		Duration:    "3 months",
		Posts:       6,
		Details:     "Hands-on campaign ownership skills:8",
	},
	{
		Title:       "Operations Intern",
		Description: "Support production planning and process improvement",
		Company:     "ForgeWorks Industries",
		Skill:       "Project Management",
		Education:   "Mechanical Engineering",
		Sector:      "Manufacturing",
		Location:    "Chennai",
		Duration:    "4 months",
		Posts:       2,
		Details:     "Shop-floor exposure",
	},
}

func (InternshipSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range seedInternships {
		if _, err := tx.Exec(ctx, `
INSERT INTO internships (title, description, company_name, skills_id, edu_id, sector_id, location_id, duration, no_of_post, details)
SELECT $1, $2, $3, sk.id, e.id, s.id, l.id, $8, $9, $10
FROM skills sk, educations e, sectors s, locations l
WHERE sk.description = $4 AND e.description = $5 AND s.name = $6 AND l.description = $7
  AND NOT EXISTS (
	SELECT 1 FROM internships i WHERE i.title = $1 AND i.company_name = $3
  )`,
			it.Title, it.Description, it.Company,
			it.Skill, it.Education, it.Sector, it.Location,
			it.Duration, it.Posts, it.Details,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
