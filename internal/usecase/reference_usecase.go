package usecase

import (
	"context"

	"internmatch/internal/domain/posting"
	"internmatch/internal/repository"

	"go.uber.org/zap"
)

type EducationItem struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type SectorItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type LocationItem struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	State       string `json:"state,omitempty"`
}

type SkillItem struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type ReferenceUsecase interface {
	ListEducations(ctx context.Context) ([]EducationItem, error)
	ListSectors(ctx context.Context) ([]SectorItem, error)
	ListLocations(ctx context.Context) ([]LocationItem, error)
	ListSkills(ctx context.Context) ([]SkillItem, error)

	SectorsByEducation(ctx context.Context, educationID int64) ([]SectorItem, error)
	SkillsByEducation(ctx context.Context, educationID int64) ([]SkillItem, error)
}

// Reference serves the registration-form vocabularies, caching each
// payload since the underlying tables only change on reseed.
type Reference struct {
	refs   repository.ReferenceRepository
	cache  JSONCache
	logger *zap.Logger
}

func NewReferenceUsecase(refs repository.ReferenceRepository, cache JSONCache, logger *zap.Logger) *Reference {
	return &Reference{refs: refs, cache: cache, logger: logger}
}

func (u *Reference) ListEducations(ctx context.Context) ([]EducationItem, error) {
	key := ReferenceCacheKey("educations")
	var cached []EducationItem
	if u.cacheHit(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := u.refs.ListEducations(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]EducationItem, 0, len(rows))
	for _, e := range rows {
		out = append(out, EducationItem{ID: e.ID, Description: e.Description})
	}
	u.cacheSet(ctx, key, out)
	return out, nil
}

func (u *Reference) ListSectors(ctx context.Context) ([]SectorItem, error) {
	key := ReferenceCacheKey("sectors")
	var cached []SectorItem
	if u.cacheHit(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := u.refs.ListSectors(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := toSectorItems(rows)
	u.cacheSet(ctx, key, out)
	return out, nil
}

func (u *Reference) ListLocations(ctx context.Context) ([]LocationItem, error) {
	key := ReferenceCacheKey("locations")
	var cached []LocationItem
	if u.cacheHit(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := u.refs.ListLocations(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]LocationItem, 0, len(rows))
	for _, l := range rows {
		out = append(out, LocationItem{ID: l.ID, Description: l.Description, State: l.State})
	}
	u.cacheSet(ctx, key, out)
	return out, nil
}

func (u *Reference) ListSkills(ctx context.Context) ([]SkillItem, error) {
	key := ReferenceCacheKey("skills")
	var cached []SkillItem
	if u.cacheHit(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := u.refs.ListSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := toSkillItems(rows)
	u.cacheSet(ctx, key, out)
	return out, nil
}

func (u *Reference) SectorsByEducation(ctx context.Context, educationID int64) ([]SectorItem, error) {
	if educationID <= 0 {
		return nil, ErrInvalidInput
	}

	key := ReferenceByEducationCacheKey("sectors", educationID)
	var cached []SectorItem
	if u.cacheHit(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := u.refs.SectorsByEducation(ctx, educationID)
	if err != nil {
		return nil, ErrInternal
	}
	out := toSectorItems(rows)
	u.cacheSet(ctx, key, out)
	return out, nil
}

func (u *Reference) SkillsByEducation(ctx context.Context, educationID int64) ([]SkillItem, error) {
	if educationID <= 0 {
		return nil, ErrInvalidInput
	}

	key := ReferenceByEducationCacheKey("skills", educationID)
	var cached []SkillItem
	if u.cacheHit(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := u.refs.SkillsByEducation(ctx, educationID)
	if err != nil {
		return nil, ErrInternal
	}
	out := toSkillItems(rows)
	u.cacheSet(ctx, key, out)
	return out, nil
}

func (u *Reference) cacheHit(ctx context.Context, key string, out any) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.GetJSON(ctx, key, out)
	return err == nil && hit
}

func (u *Reference) cacheSet(ctx context.Context, key string, value any) {
	if u.cache == nil {
		return
	}
	_ = u.cache.SetJSON(ctx, key, value, 0)
}

func toSectorItems(rows []posting.Sector) []SectorItem {
	out := make([]SectorItem, 0, len(rows))
	for _, s := range rows {
		out = append(out, SectorItem{ID: s.ID, Name: s.Name, Description: s.Description})
	}
	return out
}

func toSkillItems(rows []posting.Skill) []SkillItem {
	out := make([]SkillItem, 0, len(rows))
	for _, s := range rows {
		out = append(out, SkillItem{ID: s.ID, Description: s.Description})
	}
	return out
}
