package routes

import (
	"github.com/campusportal/backend/internal/auth"
	"github.com/campusportal/backend/internal/handlers"
	"github.com/campusportal/backend/internal/middleware"
	"github.com/campusportal/backend/internal/models"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes under /api
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	contactHandler *handlers.ContactHandler,
	tokenManager *auth.TokenManager,
) {
	authRateLimit := middleware.DefaultAuthRateLimit()
	contactRateLimit := middleware.DefaultContactRateLimit()

	router.Route("/api", func(r chi.Router) {
		// Public routes - no authentication required
		r.With(middleware.RateLimitByIP(authRateLimit)).Post("/auth/register", authHandler.Register)
		r.With(middleware.RateLimitByIP(authRateLimit)).Post("/auth/login", authHandler.Login)
		r.Get("/auth/verify", authHandler.Verify)

		r.With(middleware.RateLimitByIP(contactRateLimit)).Post("/contact/submit", contactHandler.Submit)

		// Protected routes - authentication required
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokenManager))

			// Any authenticated user manages their own profile
			r.Get("/users/profile", userHandler.GetProfile)
			r.Put("/users/profile", userHandler.UpdateProfile)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(models.RoleAdmin))

				r.Get("/users/all", userHandler.ListUsers)
				r.Put("/users/{id}", userHandler.UpdateUser)
				r.Delete("/users/{id}", userHandler.DeleteUser)

				r.Get("/contact/all", contactHandler.ListAll)
				r.Get("/contact/status/{status}", contactHandler.ListByStatus)
				r.Patch("/contact/{id}/status", contactHandler.UpdateStatus)
				r.Delete("/contact/{id}", contactHandler.Delete)
			})
		})
	})
}
