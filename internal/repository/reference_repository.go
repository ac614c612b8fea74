package repository

import (
	"context"

	"internmatch/internal/database"
	"internmatch/internal/domain/posting"
)

// ReferenceRepository serves the lookup vocabularies behind the
// registration form: educations, sectors, locations, skills, and the
// education-scoped associations.
type ReferenceRepository interface {
	ListEducations(ctx context.Context) ([]posting.Education, error)
	ListSectors(ctx context.Context) ([]posting.Sector, error)
	ListLocations(ctx context.Context) ([]posting.Location, error)
	ListSkills(ctx context.Context) ([]posting.Skill, error)

	SectorsByEducation(ctx context.Context, educationID int64) ([]posting.Sector, error)
	SkillsByEducation(ctx context.Context, educationID int64) ([]posting.Skill, error)
}

type PostgresReferenceRepository struct {
	db database.DB
}

func NewPostgresReferenceRepository(db database.DB) *PostgresReferenceRepository {
	return &PostgresReferenceRepository{db: db}
}

func (r *PostgresReferenceRepository) ListEducations(ctx context.Context) ([]posting.Education, error) {
	rows, err := r.db.Query(ctx, `SELECT id, description FROM educations ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posting.Education, 0)
	for rows.Next() {
		var e posting.Education
		if err := rows.Scan(&e.ID, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresReferenceRepository) ListSectors(ctx context.Context) ([]posting.Sector, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, COALESCE(description, '') FROM sectors ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posting.Sector, 0)
	for rows.Next() {
		var s posting.Sector
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresReferenceRepository) ListLocations(ctx context.Context) ([]posting.Location, error) {
	rows, err := r.db.Query(ctx, `SELECT id, description, COALESCE(state, '') FROM locations ORDER BY description ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posting.Location, 0)
	for rows.Next() {
		var l posting.Location
		if err := rows.Scan(&l.ID, &l.Description, &l.State); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresReferenceRepository) ListSkills(ctx context.Context) ([]posting.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, description FROM skills ORDER BY description ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSkills(rows)
}

func (r *PostgresReferenceRepository) SectorsByEducation(ctx context.Context, educationID int64) ([]posting.Sector, error) {
	rows, err := r.db.Query(ctx, `
SELECT s.id, s.name, COALESCE(s.description, '')
FROM sectors s
JOIN education_sectors es ON es.sector_id = s.id
WHERE es.education_id = $1
ORDER BY s.name ASC`, educationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posting.Sector, 0)
	for rows.Next() {
		var s posting.Sector
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresReferenceRepository) SkillsByEducation(ctx context.Context, educationID int64) ([]posting.Skill, error) {
	rows, err := r.db.Query(ctx, `
SELECT DISTINCT sk.id, sk.description
FROM skills sk
JOIN sector_skills ss ON ss.skill_id = sk.id
JOIN education_sectors es ON es.sector_id = ss.sector_id
WHERE es.education_id = $1
ORDER BY sk.description ASC`, educationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSkills(rows)
}

func scanSkills(rows database.Rows) ([]posting.Skill, error) {
	out := make([]posting.Skill, 0)
	for rows.Next() {
		var s posting.Skill
		if err := rows.Scan(&s.ID, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
