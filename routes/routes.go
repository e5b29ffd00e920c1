package routes

import (
	"net/http"

	_ "github.com/Dosada05/league-tracker/docs" // registers the swagger spec
	"github.com/Dosada05/league-tracker/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router chi.Router,
	leagueHandler *handlers.LeagueHandler,
	webSocketHandler *handlers.WebSocketHandler,
	allowedOrigins []string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", leagueHandler.Health)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if webSocketHandler != nil {
		router.Get("/ws", webSocketHandler.ServeWs)
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/league", leagueHandler.GetLeague)
		r.Delete("/league", leagueHandler.ResetLeague)

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", leagueHandler.AddTeam)
			r.Post("/proposals", leagueHandler.ProposeTeam)
			r.Delete("/{teamName}", leagueHandler.RemoveTeam)
		})

		r.Post("/schedule", leagueHandler.GenerateSchedule)

		r.Route("/matches/{matchID}/result", func(r chi.Router) {
			r.Put("/", leagueHandler.RecordResult)
			r.Delete("/", leagueHandler.ClearResult)
		})

		r.Get("/standings", leagueHandler.GetStandings)
	})
}
