package handler

import (
	"errors"
	"strconv"

	"internmatch/internal/delivery/http/middleware"
	"internmatch/internal/pkg/response"
	"internmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// ReferenceHandler exposes the registration-form vocabularies.
type ReferenceHandler struct {
	uc usecase.ReferenceUsecase
}

func NewReferenceHandler(uc usecase.ReferenceUsecase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

func (h *ReferenceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/education", h.ListEducations)
	r.Get("/location", h.ListLocations)
	r.Get("/sectors", h.ListSectors)
	r.Get("/skills", h.ListSkills)
	r.Get("/skills/by-education/:id", h.SkillsByEducation)
	r.Get("/sectors/by-education/:id", h.SectorsByEducation)
}

func (h *ReferenceHandler) ListEducations(c fiber.Ctx) error {
	items, err := h.uc.ListEducations(c.Context())
	if err != nil {
		return mapReferenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ReferenceHandler) ListLocations(c fiber.Ctx) error {
	items, err := h.uc.ListLocations(c.Context())
	if err != nil {
		return mapReferenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ReferenceHandler) ListSectors(c fiber.Ctx) error {
	items, err := h.uc.ListSectors(c.Context())
	if err != nil {
		return mapReferenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ReferenceHandler) ListSkills(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapReferenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ReferenceHandler) SkillsByEducation(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid education id", nil, err)
	}

	items, err := h.uc.SkillsByEducation(c.Context(), id)
	if err != nil {
		return mapReferenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ReferenceHandler) SectorsByEducation(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid education id", nil, err)
	}

	items, err := h.uc.SectorsByEducation(c.Context(), id)
	if err != nil {
		return mapReferenceUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func mapReferenceUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid education id", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
