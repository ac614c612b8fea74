package repository

import (
	"context"
	"errors"
	"testing"

	"internmatch/internal/domain/posting"
)

type stubReferenceRepo struct {
	skills []posting.Skill
	err    error
}

func (s *stubReferenceRepo) ListEducations(context.Context) ([]posting.Education, error) {
	return nil, nil
}
func (s *stubReferenceRepo) ListSectors(context.Context) ([]posting.Sector, error) {
	return nil, nil
}
func (s *stubReferenceRepo) ListLocations(context.Context) ([]posting.Location, error) {
	return nil, nil
}
func (s *stubReferenceRepo) ListSkills(context.Context) ([]posting.Skill, error) {
	return s.skills, s.err
}
func (s *stubReferenceRepo) SectorsByEducation(context.Context, int64) ([]posting.Sector, error) {
	return nil, nil
}
func (s *stubReferenceRepo) SkillsByEducation(context.Context, int64) ([]posting.Skill, error) {
	return nil, nil
}

func TestSkillDirectory_RefreshAndLookup(t *testing.T) {
	repo := &stubReferenceRepo{skills: []posting.Skill{
		{ID: 1, Description: "Python Programming"},
		{ID: 7, Description: "SQL"},
	}}
	dir := NewSkillDirectory(repo)

	if dir.Loaded() {
		t.Fatalf("directory must start unloaded")
	}
	if err := dir.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !dir.Loaded() {
		t.Fatalf("expected loaded after refresh")
	}

	var lookup posting.SkillLookup = dir
	if v, ok := lookup.SkillDescription(7); !ok || v != "SQL" {
		t.Fatalf("unexpected lookup result: %q %v", v, ok)
	}
	if _, ok := lookup.SkillDescription(99); ok {
		t.Fatalf("unknown id must miss")
	}
}

func TestSkillDirectory_RefreshErrorKeepsOldState(t *testing.T) {
	repo := &stubReferenceRepo{skills: []posting.Skill{{ID: 1, Description: "Python Programming"}}}
	dir := NewSkillDirectory(repo)
	if err := dir.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	repo.err = errors.New("connection refused")
	if err := dir.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh error")
	}
	if v, ok := dir.SkillDescription(1); !ok || v != "Python Programming" {
		t.Fatalf("failed refresh must not drop the loaded vocabulary")
	}
}
