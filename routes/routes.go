package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/clubdesk/bracket-engine/handlers"
	"github.com/clubdesk/bracket-engine/middleware"
)

// Config carries everything the router needs beyond the handlers themselves.
type Config struct {
	Authenticator  *middleware.Authenticator
	ServiceKeyHash string
	AllowedOrigins []string
}

// SetupRoutes mounts the public read endpoints, the protected mutation
// endpoints and the websocket feed. Mutations accept either an organizer/admin
// user token or, on the service group, the machine service key.
func SetupRoutes(
	router *chi.Mux,
	cfg Config,
	bracketHandler *handlers.BracketHandler,
	resultHandler *handlers.ResultHandler,
	standingHandler *handlers.StandingHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Service-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Route("/events/{eventID}", func(r chi.Router) {
		r.Get("/bracket", bracketHandler.GetBracketHandler)
		r.Get("/standings", standingHandler.ListStandingsHandler)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticator.Authenticate)
			r.Use(middleware.RequireRole("organizer", "admin"))

			r.Post("/bracket", bracketHandler.GenerateBracketHandler)
			r.Post("/matches/{bracketUID}/result", resultHandler.RecordResultHandler)
		})
	})

	// Machine-to-machine mirror of the mutation endpoints, guarded by the
	// shared service key instead of a user token.
	router.Route("/internal/events/{eventID}", func(r chi.Router) {
		r.Use(middleware.RequireServiceKey(cfg.ServiceKeyHash))

		r.Post("/bracket", bracketHandler.GenerateBracketHandler)
		r.Post("/matches/{bracketUID}/result", resultHandler.RecordResultHandler)
	})

	router.Post("/leaderboards/heats", standingHandler.HeatLeaderboardHandler)

	router.Get("/ws/events/{eventID}", webSocketHandler.ServeWs)
}
