package usecase

import (
	"context"
	"strings"
	"time"

	"internmatch/internal/domain/posting"
	"internmatch/internal/repository"

	"go.uber.org/zap"
)

type PostingListParams struct {
	Title    string
	Sector   string
	Location string
	Limit    int
	Offset   int
}

type PostingListItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	Location    string `json:"location"`
	Education   string `json:"education"`
	Skills      string `json:"skills"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Posts       int    `json:"no_of_post"`
}

type PostingListUsecase interface {
	ListPostings(ctx context.Context, params PostingListParams) ([]PostingListItem, error)
	GetPosting(ctx context.Context, id int64) (PostingListItem, error)
}

type PostingList struct {
	postings repository.PostingRepository
	skills   posting.SkillLookup
	cache    JSONCache
	logger   *zap.Logger
}

func NewPostingListUsecase(postings repository.PostingRepository, skills posting.SkillLookup, cache JSONCache, logger *zap.Logger) *PostingList {
	return &PostingList{postings: postings, skills: skills, cache: cache, logger: logger}
}

func (u *PostingList) ListPostings(ctx context.Context, params PostingListParams) ([]PostingListItem, error) {
	limit := params.Limit
	if limit == 0 {
		limit = 20
	}
	if limit < 0 || limit > 100 {
		return nil, ErrInvalidInput
	}
	if params.Offset < 0 {
		return nil, ErrInvalidInput
	}
	params.Limit = limit

	hasFilter := strings.TrimSpace(params.Title) != "" ||
		strings.TrimSpace(params.Sector) != "" ||
		strings.TrimSpace(params.Location) != ""

	cacheKey := PostingsSearchCacheKey(params)
	lockKey := PostingsSearchLockKey(cacheKey)

	if u.cache != nil {
		var cached []PostingListItem
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Debug("posting list cache hit", zap.String("key", cacheKey))
			}
			return cached, nil
		}
	}

	lockAcquired := false
	if hasFilter && u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		if err == nil && ok {
			lockAcquired = true
		} else if err == nil && !ok {
			// Another instance is filling this key; give it a moment,
			// then fall through to the database on a miss.
			time.Sleep(300 * time.Millisecond)
			var cached []PostingListItem
			hit, err2 := u.cache.GetJSON(ctx, cacheKey, &cached)
			if err2 == nil && hit {
				return cached, nil
			}
		}
	}

	rows, err := u.postings.List(ctx, repository.PostingListFilter{
		Title:    params.Title,
		Sector:   params.Sector,
		Location: params.Location,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]PostingListItem, 0, len(rows))
	for _, p := range rows {
		out = append(out, u.toItem(p))
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, out, 0)
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}
	return out, nil
}

func (u *PostingList) GetPosting(ctx context.Context, id int64) (PostingListItem, error) {
	if id <= 0 {
		return PostingListItem{}, ErrInvalidInput
	}

	p, found, err := u.postings.GetByID(ctx, id)
	if err != nil {
		return PostingListItem{}, ErrInternal
	}
	if !found {
		return PostingListItem{}, ErrNotFound
	}
	return u.toItem(p), nil
}

func (u *PostingList) toItem(p posting.Posting) PostingListItem {
	skillsText, err := posting.ResolveSkills(p, u.skills)
	if err != nil && u.logger != nil {
		u.logger.Debug("auxiliary skill parse failed, using primary skill",
			zap.Int64("posting_id", p.ID),
			zap.Error(err),
		)
	}

	return PostingListItem{
		ID:          p.ID,
		Title:       p.Title,
		CompanyName: p.CompanyName,
		Sector:      p.Sector,
		Location:    p.Location,
		Education:   p.Education,
		Skills:      skillsText,
		Duration:    p.Duration,
		Description: p.Description,
		Posts:       p.Posts,
	}
}
