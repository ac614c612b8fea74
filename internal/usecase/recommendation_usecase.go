package usecase

import (
	"context"
	"errors"
	"strings"

	"internmatch/internal/recommend"

	"go.uber.org/zap"
)

type RecommendationParams struct {
	Education   string
	Skills      []string
	Sector      string
	Location    string
	Description string
	UseML       bool
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, params RecommendationParams) ([]recommend.Recommendation, error)
}

type recommendationEngine interface {
	Recommend(ctx context.Context, p recommend.Profile) ([]recommend.Recommendation, error)
}

type Recommendations struct {
	engine recommendationEngine
	logger *zap.Logger
}

func NewRecommendationUsecase(engine recommendationEngine, logger *zap.Logger) *Recommendations {
	return &Recommendations{engine: engine, logger: logger}
}

func (u *Recommendations) GetRecommendations(ctx context.Context, params RecommendationParams) ([]recommend.Recommendation, error) {
	skills := make([]string, 0, len(params.Skills))
	for _, s := range params.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}

	// A profile with nothing to match on cannot be scored.
	if len(skills) == 0 &&
		strings.TrimSpace(params.Education) == "" &&
		strings.TrimSpace(params.Sector) == "" &&
		strings.TrimSpace(params.Description) == "" {
		return nil, ErrInvalidInput
	}

	profile := recommend.Profile{
		Education:   strings.TrimSpace(params.Education),
		Skills:      skills,
		Sector:      strings.TrimSpace(params.Sector),
		Location:    strings.TrimSpace(params.Location),
		Description: strings.TrimSpace(params.Description),
		UseML:       params.UseML,
	}

	out, err := u.engine.Recommend(ctx, profile)
	if err != nil {
		if errors.Is(err, recommend.ErrNoRecommendations) {
			return nil, ErrNoRecommendations
		}
		if u.logger != nil {
			u.logger.Error("recommendation pipeline failed", zap.Error(err))
		}
		return nil, ErrInternal
	}
	return out, nil
}
