package repository

import (
	"context"
	"sync"

	"internmatch/internal/domain/posting"
)

// SkillDirectory is an in-memory id-to-description lookup over the
// skills vocabulary. The table is small and effectively static, so it
// is loaded once and refreshed explicitly after reseeding.
type SkillDirectory struct {
	refs ReferenceRepository

	mu     sync.RWMutex
	byID   map[int64]string
	loaded bool
}

var _ posting.SkillLookup = (*SkillDirectory)(nil)

func NewSkillDirectory(refs ReferenceRepository) *SkillDirectory {
	return &SkillDirectory{refs: refs, byID: make(map[int64]string)}
}

// Refresh reloads the vocabulary from storage.
func (d *SkillDirectory) Refresh(ctx context.Context) error {
	skills, err := d.refs.ListSkills(ctx)
	if err != nil {
		return err
	}

	byID := make(map[int64]string, len(skills))
	for _, s := range skills {
		byID[s.ID] = s.Description
	}

	d.mu.Lock()
	d.byID = byID
	d.loaded = true
	d.mu.Unlock()
	return nil
}

// SkillDescription implements posting.SkillLookup.
func (d *SkillDirectory) SkillDescription(id int64) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.byID[id]
	return v, ok
}

func (d *SkillDirectory) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}
