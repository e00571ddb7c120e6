package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/phrazzld/discuss-api/internal/config"
	"github.com/phrazzld/discuss-api/internal/platform/markdown"
	"github.com/phrazzld/discuss-api/internal/platform/postgres"
	"github.com/phrazzld/discuss-api/internal/service"
	"github.com/phrazzld/discuss-api/internal/service/auth"
	"github.com/phrazzld/discuss-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger   *slog.Logger
	db       *sql.DB
	sessions *scs.SessionManager

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	categoryStore store.CategoryStore
	topicStore    store.TopicStore
	postStore     store.PostStore

	// Service interfaces
	jwtService      auth.JWTService
	userService     service.UserService
	categoryService service.CategoryService
	topicService    service.TopicService
	postService     service.PostService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		sessions: newSessionManager(cfg.Auth),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.topicStore = postgres.NewPostgresTopicStore(db, logger)
	app.postStore = postgres.NewPostgresPostStore(db, logger)

	// Initialize services
	passwords := auth.NewBcryptVerifier(cfg.Auth.BcryptCost)
	if app.userService, err = service.NewUserService(app.userStore, passwords, passwords, logger); err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	if app.categoryService, err = service.NewCategoryService(app.categoryStore, logger); err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}
	if app.topicService, err = service.NewTopicService(app.categoryStore, app.topicStore, logger); err != nil {
		return nil, fmt.Errorf("failed to create topic service: %w", err)
	}
	app.postService, err = service.NewPostService(
		store.NewSQLTransactor(db),
		app.topicStore,
		app.postStore,
		markdown.New(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// newSessionManager configures cookie sessions backed by scs's in-memory store.
func newSessionManager(cfg config.AuthConfig) *scs.SessionManager {
	sessions := scs.New()
	sessions.Lifetime = time.Duration(cfg.SessionLifetimeMinutes) * time.Minute
	sessions.Cookie.Name = "discuss_session"
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	return sessions
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
