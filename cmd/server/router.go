package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DesdeChaves/valcoin-memoria/internal/api"
	apiMiddleware "github.com/DesdeChaves/valcoin-memoria/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.config.Auth.JWTSecret)

	r.Route("/api/memoria", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/queue", reviewHandler.GetDailyQueue)
			r.Post("/units/{id}/review", reviewHandler.SubmitReview)
			r.Get("/reviews", reviewHandler.ListReviewHistory)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
