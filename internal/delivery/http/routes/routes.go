package routes

import (
	"internmatch/internal/delivery/http/handler"
	"internmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health         *handler.HealthHandler
	recommendation *handler.RecommendationHandler
	internship     *handler.InternshipHandler
	reference      *handler.ReferenceHandler
	model          *handler.ModelHandler
	events         *ws.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	recommendation *handler.RecommendationHandler,
	internship *handler.InternshipHandler,
	reference *handler.ReferenceHandler,
	model *handler.ModelHandler,
	events *ws.Handler,
) *Registry {
	return &Registry{
		health:         health,
		recommendation: recommendation,
		internship:     internship,
		reference:      reference,
		model:          model,
		events:         events,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	r.recommendation.RegisterRoutes(api)
	r.internship.RegisterRoutes(api)
	r.reference.RegisterRoutes(api)
	r.model.RegisterRoutes(api)

	if r.events != nil {
		app.Get("/ws/events", r.events.HandleEventsWS)
	}
}
