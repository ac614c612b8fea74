package handler

import (
	"errors"

	"internmatch/internal/delivery/http/dto"
	"internmatch/internal/delivery/http/middleware"
	"internmatch/internal/pkg/response"
	"internmatch/internal/recommend"
	"internmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/recommendations", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	items, err := h.uc.GetRecommendations(c.Context(), usecase.RecommendationParams{
		Education:   req.Education,
		Skills:      req.Skills,
		Sector:      req.Sector,
		Location:    req.Location,
		Description: req.Description,
		UseML:       req.MLEnabled(),
	})
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	out := make([]dto.RecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toRecommendationResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func toRecommendationResponse(it recommend.Recommendation) dto.RecommendationResponse {
	return dto.RecommendationResponse{
		ID:          it.PostingID,
		Title:       it.Title,
		CompanyName: it.CompanyName,
		Sector:      it.Sector,
		Location:    it.Location,
		Skills:      it.Skills,
		Duration:    it.Duration,
		Description: it.Description,
		MatchScore:  it.MatchScore,
		ScoringDetails: dto.ScoringDetailsResponse{
			MLUsed:     it.ScoringDetails.MLUsed,
			Method:     it.ScoringDetails.Method,
			RuleScore:  it.ScoringDetails.RuleScore,
			MLScore:    it.ScoringDetails.MLScore,
			ModelReady: it.ScoringDetails.ModelReady,
		},
	}
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Profile has nothing to match on", nil, err)
	case errors.Is(err, usecase.ErrNoRecommendations):
		return middleware.NewAppError(fiber.StatusNotFound, "No matching internships found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
