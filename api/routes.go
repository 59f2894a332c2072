package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public API and the admin-only routes under /api
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public routes
		r.Group(func(r chi.Router) {
			r.Get("/health", handlers.healthHandler.getHealth())
			r.Post("/auth/login", handlers.authHandler.login())

			r.Post("/contact", handlers.contactHandler.submitContact())

			r.Get("/projects", handlers.projectHandler.getProjects())
			r.Get("/projects/{id}", handlers.projectHandler.getProject())

			r.Get("/skills", handlers.skillCategoryHandler.getSkillCategories())
			r.Get("/skills/categories", handlers.skillCategoryHandler.getCategorySummaries())
			r.Get("/skills/categories/{id}", handlers.skillCategoryHandler.getCategory())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/auth/session", handlers.authHandler.getSession())

			r.Get("/contact", handlers.contactHandler.getContacts())

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{id}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{id}", handlers.projectHandler.deleteProject())

			r.Post("/skills", handlers.skillCategoryHandler.createSkillCategory())
			r.Post("/skills/categories", handlers.skillCategoryHandler.createCategory())
			r.Put("/skills/categories/{id}", handlers.skillCategoryHandler.updateCategory())
			r.Delete("/skills/categories/{id}", handlers.skillCategoryHandler.deleteCategory())
		})
	})
}
