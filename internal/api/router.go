package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/blaisecz/flare-tracker/docs"
	"github.com/blaisecz/flare-tracker/internal/api/handler"
	"github.com/blaisecz/flare-tracker/internal/api/middleware"
	"github.com/blaisecz/flare-tracker/internal/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler      *handler.UserHandler
	entryHandler     *handler.EntryHandler
	analyticsHandler *handler.AnalyticsHandler
	insightsHandler  *handler.InsightsHandler
	log              *logger.Logger
}

func NewRouter(
	userHandler *handler.UserHandler,
	entryHandler *handler.EntryHandler,
	analyticsHandler *handler.AnalyticsHandler,
	insightsHandler *handler.InsightsHandler,
	log *logger.Logger,
) *Router {
	if log == nil {
		log = logger.NewNop()
	}
	return &Router{
		userHandler:      userHandler,
		entryHandler:     entryHandler,
		analyticsHandler: analyticsHandler,
		insightsHandler:  insightsHandler,
		log:              log,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(rt.log))
	r.Use(middleware.Logger(rt.log))
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)

			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", rt.userHandler.GetByID)
				r.Put("/modules", rt.userHandler.UpdateModules)

				// Day entries, one per calendar day
				r.Route("/entries", func(r chi.Router) {
					r.Get("/", rt.entryHandler.List)
					r.Put("/{date}", rt.entryHandler.Upsert)
					r.Get("/{date}", rt.entryHandler.Get)
					r.Delete("/{date}", rt.entryHandler.Delete)
				})

				r.Route("/analytics", func(r chi.Router) {
					r.Get("/statistics", rt.analyticsHandler.GetStatistics)
					r.Get("/triggers", rt.analyticsHandler.GetTriggers)
					r.Get("/food-patterns", rt.analyticsHandler.GetFoodPatterns)
					r.Get("/fungal", rt.analyticsHandler.GetFungal)
					r.Get("/stress", rt.analyticsHandler.GetStress)
					r.Get("/sleep", rt.analyticsHandler.GetSleep)
					r.Get("/weather", rt.analyticsHandler.GetWeather)
					r.Get("/nickel", rt.analyticsHandler.GetNickel)
					r.Get("/foods", rt.analyticsHandler.GetFoods)
					r.Get("/compare", rt.analyticsHandler.GetCompare)
				})

				r.Get("/insights", rt.insightsHandler.GetInsights)
				r.Post("/insights/feedback", rt.insightsHandler.PostFeedback)
			})
		})
	})

	return r
}
