package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/discuss-api/internal/api"
	apiMiddleware "github.com/phrazzld/discuss-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(app.sessions.LoadAndSave)

	apiCfg := app.config.API
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.sessions)
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.sessions, apiCfg, app.logger)

	r.Route(apiCfg.BasePath, func(r chi.Router) {
		// Authentication endpoints (public)
		api.MountAuth(r, authHandler)

		// Resources: reads are public, writes authenticate
		api.MountResources(r, authMiddleware.Authenticate,
			api.NewCategoryResource(app.categoryStore, app.categoryService, apiCfg, app.logger),
			api.NewTopicResource(app.topicStore, app.topicService, apiCfg, app.logger),
			api.NewPostResource(app.postStore, app.postService, apiCfg, app.logger),
		)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
