package handler

import (
	"errors"
	"strconv"

	"internmatch/internal/delivery/http/middleware"
	"internmatch/internal/pkg/response"
	"internmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type InternshipHandler struct {
	uc usecase.PostingListUsecase
}

func NewInternshipHandler(uc usecase.PostingListUsecase) *InternshipHandler {
	return &InternshipHandler{uc: uc}
}

func (h *InternshipHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/internships")
	grp.Get("/", h.List)
	grp.Get("/search", h.Search)
	grp.Get("/:id", h.GetByID)
}

func (h *InternshipHandler) List(c fiber.Ctx) error {
	params := usecase.PostingListParams{
		Sector:   c.Query("sector"),
		Location: c.Query("location"),
		Limit:    parseQueryInt(c, "limit", 20),
		Offset:   parseQueryInt(c, "offset", 0),
	}

	items, err := h.uc.ListPostings(c.Context(), params)
	if err != nil {
		return mapPostingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *InternshipHandler) Search(c fiber.Ctx) error {
	params := usecase.PostingListParams{
		Title:    c.Query("q"),
		Sector:   c.Query("sector"),
		Location: c.Query("location"),
		Limit:    parseQueryInt(c, "limit", 20),
		Offset:   parseQueryInt(c, "offset", 0),
	}

	items, err := h.uc.ListPostings(c.Context(), params)
	if err != nil {
		return mapPostingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *InternshipHandler) GetByID(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid internship id", nil, err)
	}

	item, err := h.uc.GetPosting(c.Context(), id)
	if err != nil {
		return mapPostingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func mapPostingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid pagination parameters", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Internship not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
