package seeder

import (
	"context"
	"fmt"

	"internmatch/internal/database"
)

// Runner executes seeders in declaration order; reference vocabularies
// must land before the internships that reference them.
type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

// Default is the full seeding pipeline: schema, vocabularies, then
// sample internships.
func Default() Runner {
	return Runner{Seeders: []Seeder{
		SchemaSeeder{},
		ReferenceSeeder{},
		InternshipSeeder{},
	}}
}
