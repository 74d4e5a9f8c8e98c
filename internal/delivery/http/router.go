package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"evently/internal/delivery/http/controllers"
	"evently/internal/delivery/http/middleware"
	"evently/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	categoryController *controllers.CategoryController,
	userController *controllers.UserController,
	orderController *controllers.OrderController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("GET /events", eventController.List)
	mux.HandleFunc("GET /events/{eventID}", eventController.Get)
	mux.HandleFunc("GET /events/{eventID}/related", eventController.ListRelated)
	mux.HandleFunc("POST /events", auth(eventController.Create))
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.Update))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.Delete))

	// Categories
	mux.HandleFunc("GET /categories", categoryController.List)
	mux.HandleFunc("POST /categories", auth(categoryController.Create))

	// Users
	mux.HandleFunc("POST /users", userController.Create)
	mux.HandleFunc("GET /users/{userID}", userController.Get)
	mux.HandleFunc("GET /users/{userID}/events", userController.ListEvents)
	mux.HandleFunc("PATCH /users/me", auth(userController.Update))
	mux.HandleFunc("DELETE /users/me", auth(userController.Delete))

	// Orders
	mux.HandleFunc("POST /orders", auth(orderController.Create))
	mux.HandleFunc("GET /events/{eventID}/orders", auth(orderController.ListByEvent))

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
