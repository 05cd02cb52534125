package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"standup-tracker/internal/domain/service"
)

// NewRouter wires the REST API routes and middleware.
func NewRouter(
	authSvc service.AuthService,
	standupSvc service.StandupService,
	planningSvc service.PlanningService,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggingMiddleware(logger))
	r.Use(RecoveryMiddleware(logger))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	})

	authHandlers := NewAuthHandlers(authSvc)
	userHandlers := NewUserHandlers(authSvc)
	standupHandlers := NewStandupHandlers(standupSvc)
	milestoneHandlers := NewMilestoneHandlers(planningSvc)
	sprintHandlers := NewSprintHandlers(planningSvc)
	taskHandlers := NewTaskHandlers(planningSvc)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/callback", authHandlers.Callback)
		r.Post("/auth/logout", authHandlers.Logout)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(authSvc))

			r.Get("/users/me", userHandlers.Me)
			r.Put("/users/me", userHandlers.UpdateMe)

			r.Route("/standups", func(r chi.Router) {
				r.Get("/", standupHandlers.List)
				r.Post("/", standupHandlers.Create)
				r.Get("/{id}", standupHandlers.Get)
				r.Put("/{id}", standupHandlers.Update)
				r.Delete("/{id}", standupHandlers.Delete)
			})

			r.Route("/milestones", func(r chi.Router) {
				r.Get("/", milestoneHandlers.List)
				r.Post("/", milestoneHandlers.Create)
				r.Get("/{id}", milestoneHandlers.Get)
				r.Put("/{id}", milestoneHandlers.Update)
				r.Delete("/{id}", milestoneHandlers.Delete)
			})

			r.Route("/sprints", func(r chi.Router) {
				r.Get("/", sprintHandlers.List)
				r.Post("/", sprintHandlers.Create)
				r.Get("/{id}", sprintHandlers.Get)
				r.Put("/{id}", sprintHandlers.Update)
				r.Delete("/{id}", sprintHandlers.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandlers.List)
				r.Post("/", taskHandlers.Create)
				r.Get("/{id}", taskHandlers.Get)
				r.Put("/{id}", taskHandlers.Update)
				r.Delete("/{id}", taskHandlers.Delete)
			})
		})
	})

	return r
}
