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

type ModelHandler struct {
	uc usecase.TrainingUsecase
}

func NewModelHandler(uc usecase.TrainingUsecase) *ModelHandler {
	return &ModelHandler{uc: uc}
}

func (h *ModelHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/model")
	grp.Post("/train", h.Train)
	grp.Get("/status", h.Status)
}

func (h *ModelHandler) Train(c fiber.Ctx) error {
	force := c.Query("force") == "true"

	result, err := h.uc.Train(c.Context(), force)
	if err != nil {
		return mapTrainingUsecaseError(err)
	}

	out := dto.TrainResponse{
		Retrained: result.Retrained,
		Status:    toModelStatusResponse(result.Status),
		Metrics:   toModelMetricsResponse(result.Metrics),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ModelHandler) Status(c fiber.Ctx) error {
	st, err := h.uc.Status(c.Context())
	if err != nil {
		return mapTrainingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toModelStatusResponse(st))
}

func toModelStatusResponse(st recommend.ModelStatus) dto.ModelStatusResponse {
	return dto.ModelStatusResponse{
		Ready:               st.Ready,
		Version:             st.Version,
		RunID:               st.RunID,
		TrainingSize:        st.TrainingSize,
		TrainedAt:           st.TrainedAt,
		Metrics:             toModelMetricsResponse(st.Metrics),
		SimilarityCacheSize: st.SimilarityCacheSize,
		ArtifactExists:      st.ArtifactExists,
	}
}

func toModelMetricsResponse(m recommend.ModelMetrics) dto.ModelMetricsResponse {
	return dto.ModelMetricsResponse{
		VocabularySize: m.VocabularySize,
		MatrixRows:     m.MatrixRows,
		MatrixCols:     m.MatrixCols,
		Sparsity:       m.Sparsity,
		TrainingMillis: m.TrainingMillis,
	}
}

func mapTrainingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrTrainingInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Training already in progress", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "No postings to train on", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
