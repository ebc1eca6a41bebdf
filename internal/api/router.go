package api

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/content-creator-be/internal/api/handlers"
	"github.com/isdelr/content-creator-be/internal/auth"
	"github.com/isdelr/content-creator-be/internal/rbac"
	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/isdelr/content-creator-be/internal/websocket"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Hub        *websocket.Hub
	Tokens     *auth.Manager
	Users      services.UserServiceProvider
	Auth       services.AuthServiceProvider
	Categories services.CategoryServiceProvider
	Themes     services.ThemeServiceProvider
	Contents   services.ContentServiceProvider
	Explorer   services.ExplorerServiceProvider
	// Ping backs the health endpoint.
	Ping        func(ctx context.Context) error
	CORSOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Auth, deps.Tokens)
	userHandler := handlers.NewUserHandler(deps.Users)
	categoryHandler := handlers.NewCategoryHandler(deps.Categories)
	themeHandler := handlers.NewThemeHandler(deps.Themes)
	contentHandler := handlers.NewContentHandler(deps.Contents, deps.Explorer)
	explorerHandler := handlers.NewExplorerHandler(deps.Explorer)
	healthHandler := handlers.NewHealthHandler(deps.Ping)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	requireToken := auth.TokenGuard(deps.Tokens, deps.Users)
	adminOnly := auth.RequireRole(rbac.AdminOnly)

	r.Get("/health", healthHandler.Check)
	r.Get("/ws", wsHandler.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.With(requireToken).Get("/verify", authHandler.Verify)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireToken)
			r.Get("/me", userHandler.GetMe)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", userHandler.GetAll)
				r.Get("/{id}", userHandler.Get)
				r.Put("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Delete)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.GetAll)
			r.Get("/{id}", categoryHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireToken, adminOnly)
				r.Post("/", categoryHandler.Create)
				r.Put("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})
		})

		r.Route("/themes", func(r chi.Router) {
			r.Use(requireToken, adminOnly)
			r.Get("/", themeHandler.GetAll)
			r.Post("/", themeHandler.Create)
			r.Get("/{id}", themeHandler.Get)
			r.Put("/{id}", themeHandler.Update)
			r.Delete("/{id}", themeHandler.Delete)
		})

		r.Route("/contents", func(r chi.Router) {
			r.Get("/", contentHandler.GetAll)
			r.Get("/{id}", contentHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireToken)
				r.Post("/", contentHandler.Create)
				r.Put("/{id}", contentHandler.Update)
				r.Delete("/{id}", contentHandler.Delete)
			})
		})

		r.Get("/explorer", explorerHandler.GetAll)
	})

	return r
}
