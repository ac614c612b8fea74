package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"internmatch/internal/domain/posting"
	"internmatch/internal/repository"

	"go.uber.org/zap"
)

type mockPostingRepo struct {
	items []posting.Posting
	err   error
	calls int
}

func (m *mockPostingRepo) ListPostings(context.Context, string, string, int) ([]posting.Posting, error) {
	return m.items, m.err
}
func (m *mockPostingRepo) ListAll(context.Context) ([]posting.Posting, error) {
	return m.items, m.err
}
func (m *mockPostingRepo) List(context.Context, repository.PostingListFilter) ([]posting.Posting, error) {
	m.calls++
	return m.items, m.err
}
func (m *mockPostingRepo) GetByID(_ context.Context, id int64) (posting.Posting, bool, error) {
	if m.err != nil {
		return posting.Posting{}, false, m.err
	}
	for _, p := range m.items {
		if p.ID == id {
			return p, true, nil
		}
	}
	return posting.Posting{}, false, nil
}
func (m *mockPostingRepo) Count(context.Context) (int64, error) {
	return int64(len(m.items)), m.err
}

type mockSkillLookup map[int64]string

func (m mockSkillLookup) SkillDescription(id int64) (string, bool) {
	v, ok := m[id]
	return v, ok
}

type fakeJSONCache struct {
	entries       map[string]any
	locks         map[string]bool
	invalidations int
}

func newFakeJSONCache() *fakeJSONCache {
	return &fakeJSONCache{entries: make(map[string]any), locks: make(map[string]bool)}
}

func (f *fakeJSONCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	switch dst := out.(type) {
	case *[]PostingListItem:
		*dst = v.([]PostingListItem)
	case *[]EducationItem:
		*dst = v.([]EducationItem)
	case *[]SkillItem:
		*dst = v.([]SkillItem)
	default:
		return false, nil
	}
	return true, nil
}

func (f *fakeJSONCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeJSONCache) Delete(_ context.Context, key string) error {
	delete(f.entries, key)
	delete(f.locks, key)
	return nil
}

func (f *fakeJSONCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	if f.locks[key] {
		return false, nil
	}
	f.locks[key] = true
	return true, nil
}

func (f *fakeJSONCache) InvalidatePostings(context.Context) error {
	f.invalidations++
	for k := range f.entries {
		if strings.HasPrefix(k, "postings:") || strings.HasPrefix(k, "reference:") {
			delete(f.entries, k)
		}
	}
	return nil
}

func samplePostings() []posting.Posting {
	return []posting.Posting{
		{
			ID:          1,
			Title:       "Python Developer Intern",
			CompanyName: "TechNova Labs",
			Sector:      "Technology",
			Location:    "Delhi",
			Education:   "Computer Science Engineering",
			SkillText:   "Python Programming",
			Duration:    "3 months",
			Description: "Backend work",
			Posts:       5,
		},
		{
			ID:          2,
			Title:       "Data Analyst Intern",
			CompanyName: "Insightly Analytics",
			Sector:      "Analytics",
			Location:    "Bangalore",
			SkillText:   "Data Analysis",
			Details:     "skills:7",
		},
	}
}

func TestPostingList_InvalidPagination(t *testing.T) {
	uc := NewPostingListUsecase(&mockPostingRepo{}, mockSkillLookup{}, nil, zap.NewNop())

	if _, err := uc.ListPostings(context.Background(), PostingListParams{Limit: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative limit, got %v", err)
	}
	if _, err := uc.ListPostings(context.Background(), PostingListParams{Offset: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative offset, got %v", err)
	}
}

func TestPostingList_ResolvesAuxiliarySkills(t *testing.T) {
	repo := &mockPostingRepo{items: samplePostings()}
	lookup := mockSkillLookup{7: "SQL"}
	uc := NewPostingListUsecase(repo, lookup, nil, zap.NewNop())

	items, err := uc.ListPostings(context.Background(), PostingListParams{Limit: 20})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1].Skills != "Data Analysis, SQL" {
		t.Fatalf("expected auxiliary skill appended, got %q", items[1].Skills)
	}
}

func TestPostingList_SecondCallServedFromCache(t *testing.T) {
	repo := &mockPostingRepo{items: samplePostings()}
	cache := newFakeJSONCache()
	uc := NewPostingListUsecase(repo, mockSkillLookup{}, cache, zap.NewNop())

	params := PostingListParams{Sector: "Technology", Limit: 20}
	if _, err := uc.ListPostings(context.Background(), params); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := uc.ListPostings(context.Background(), params); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected repository hit once, got %d", repo.calls)
	}
}

func TestPostingList_RepositoryErrorMapsToInternal(t *testing.T) {
	repo := &mockPostingRepo{err: errors.New("connection refused")}
	uc := NewPostingListUsecase(repo, mockSkillLookup{}, nil, zap.NewNop())

	if _, err := uc.ListPostings(context.Background(), PostingListParams{Limit: 20}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestGetPosting_NotFound(t *testing.T) {
	uc := NewPostingListUsecase(&mockPostingRepo{items: samplePostings()}, mockSkillLookup{}, nil, zap.NewNop())

	if _, err := uc.GetPosting(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.GetPosting(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero id, got %v", err)
	}

	item, err := uc.GetPosting(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if item.Title != "Python Developer Intern" {
		t.Fatalf("unexpected item: %+v", item)
	}
}
