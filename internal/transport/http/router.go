package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"trackmygoal/internal/handler"
	"trackmygoal/internal/httputil"
	authmw "trackmygoal/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	FriendHandler       *handler.FriendHandler
	GoalHandler         *handler.GoalHandler
	NotificationHandler *handler.NotificationHandler
	JWTSecret           string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	r.Get("/users/{id}", cfg.UserHandler.GetUser)

	// Friend routes take the acting user from the path or body
	r.Route("/friends", func(r chi.Router) {
		r.Post("/send", cfg.FriendHandler.Send)
		r.Put("/accept/{requestId}", cfg.FriendHandler.Accept)
		r.Put("/decline/{requestId}", cfg.FriendHandler.Decline)
		r.Get("/requests/{userId}", cfg.FriendHandler.ListRequests)
		r.Get("/{userId}", cfg.FriendHandler.List)
		r.Delete("/{userId}/{friendId}", cfg.FriendHandler.Delete)
	})

	r.Route("/goals", func(r chi.Router) {
		r.With(authmw.OptionalAuthMiddleware(cfg.JWTSecret)).Get("/friends/{friendId}", cfg.GoalHandler.FriendGoals)
		r.Get("/feed/{userId}", cfg.GoalHandler.Feed)

		r.Group(func(r chi.Router) {
			r.Use(authmw.AuthMiddleware(cfg.JWTSecret))
			r.Get("/", cfg.GoalHandler.List)
			r.Post("/", cfg.GoalHandler.Create)
			r.Put("/{goalId}", cfg.GoalHandler.Update)
			r.Delete("/{goalId}", cfg.GoalHandler.Delete)
		})
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Get("/me", cfg.AuthHandler.Me)
		r.Put("/me", cfg.AuthHandler.UpdateMe)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", cfg.NotificationHandler.List)
			r.Patch("/read", cfg.NotificationHandler.MarkRead)
			r.Patch("/read-all", cfg.NotificationHandler.MarkAllRead)
			r.Get("/unread-count", cfg.NotificationHandler.UnreadCount)
		})
	})

	return r
}
