package repository

import (
	"context"
	"strconv"
	"strings"

	"internmatch/internal/database"
	"internmatch/internal/domain/posting"
)

// PostingListFilter narrows the browsing queries. Zero values mean
// "no constraint".
type PostingListFilter struct {
	Title    string
	Sector   string
	Location string
	Limit    int
	Offset   int
}

type PostingRepository interface {
	// ListPostings returns postings whose sector and location contain
	// the given filters, in ascending id order, capped at limit. Empty
	// filters match everything.
	ListPostings(ctx context.Context, sectorFilter, locationFilter string, limit int) ([]posting.Posting, error)

	// ListAll returns the full posting corpus for model training.
	ListAll(ctx context.Context) ([]posting.Posting, error)

	List(ctx context.Context, f PostingListFilter) ([]posting.Posting, error)
	GetByID(ctx context.Context, id int64) (posting.Posting, bool, error)
	Count(ctx context.Context) (int64, error)
}

const postingSelect = `
SELECT i.id, i.title, i.description, i.company_name,
       COALESCE(s.name, ''), COALESCE(l.description, ''),
       COALESCE(e.description, ''), COALESCE(sk.description, ''),
       COALESCE(i.duration, ''), COALESCE(i.details, ''),
       COALESCE(i.no_of_post, 1)
FROM internships i
LEFT JOIN sectors s ON s.id = i.sector_id
LEFT JOIN locations l ON l.id = i.location_id
LEFT JOIN educations e ON e.id = i.edu_id
LEFT JOIN skills sk ON sk.id = i.skills_id`

type PostgresPostingRepository struct {
	db database.DB
}

func NewPostgresPostingRepository(db database.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

func (r *PostgresPostingRepository) ListPostings(ctx context.Context, sectorFilter, locationFilter string, limit int) ([]posting.Posting, error) {
	query := postingSelect
	args := make([]any, 0, 3)
	conds := make([]string, 0, 2)

	if s := strings.TrimSpace(sectorFilter); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, "s.name ILIKE $"+itoa(len(args)))
	}
	if l := strings.TrimSpace(locationFilter); l != "" {
		args = append(args, "%"+l+"%")
		conds = append(conds, "l.description ILIKE $"+itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY i.id ASC"
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $" + itoa(len(args))
	}

	return r.queryPostings(ctx, query, args...)
}

func (r *PostgresPostingRepository) ListAll(ctx context.Context) ([]posting.Posting, error) {
	return r.queryPostings(ctx, postingSelect+" ORDER BY i.id ASC")
}

func (r *PostgresPostingRepository) List(ctx context.Context, f PostingListFilter) ([]posting.Posting, error) {
	query := postingSelect
	args := make([]any, 0, 5)
	conds := make([]string, 0, 3)

	if t := strings.TrimSpace(f.Title); t != "" {
		args = append(args, "%"+t+"%")
		conds = append(conds, "(i.title ILIKE $"+itoa(len(args))+" OR i.company_name ILIKE $"+itoa(len(args))+")")
	}
	if s := strings.TrimSpace(f.Sector); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, "s.name ILIKE $"+itoa(len(args)))
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		args = append(args, "%"+l+"%")
		conds = append(conds, "l.description ILIKE $"+itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY i.id ASC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += " LIMIT $" + itoa(len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += " OFFSET $" + itoa(len(args))
	}

	return r.queryPostings(ctx, query, args...)
}

func (r *PostgresPostingRepository) GetByID(ctx context.Context, id int64) (posting.Posting, bool, error) {
	rows, err := r.queryPostings(ctx, postingSelect+" WHERE i.id = $1", id)
	if err != nil {
		return posting.Posting{}, false, err
	}
	if len(rows) == 0 {
		return posting.Posting{}, false, nil
	}
	return rows[0], true, nil
}

func (r *PostgresPostingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM internships`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresPostingRepository) queryPostings(ctx context.Context, query string, args ...any) ([]posting.Posting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posting.Posting, 0)
	for rows.Next() {
		var p posting.Posting
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.CompanyName,
			&p.Sector, &p.Location, &p.Education, &p.SkillText,
			&p.Duration, &p.Details, &p.Posts,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
