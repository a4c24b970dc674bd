package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/cluequiz/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("ClueQuiz API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, deps.Checks).Routes())

	r.Get("/api/categories", handleCategories(deps.Content))

	// {table} is resolved by tableMiddleware.
	r.Route("/api/tables/{table}", func(r chi.Router) {
		r.With(tableMiddleware(deps.Tables.Open, logger)).Post("/game", handleStartGame(logger))

		r.Group(func(r chi.Router) {
			r.Use(tableMiddleware(deps.Tables.Get, logger))

			r.Get("/state", handleGameState())
			r.Get("/events", handleEvents(deps.Broker))
			r.Get("/ws", handleWS(logger, deps.Broker))
			r.Get("/qr.png", handleQR(deps.PublicURL))

			r.Delete("/game", handleResetGame(logger))
			r.Post("/game/end", handleEndGame(logger))

			r.Post("/category", handleSelectCategory(logger))
			r.Delete("/categories/{category}/used", handleClearUsedItems(logger))

			r.Post("/round/clues/{index}", handleRevealClue(logger))
			r.Post("/round/answer", handleRevealAnswer(logger))
			r.Post("/round/guess", handleGuess(logger))
			r.Post("/round/credit", handleCredit(logger))
			r.Post("/round/back", handleBackToCategories(logger))

			r.Post("/teams", handleAddTeam(logger))
			r.Delete("/teams/{teamID}", handleRemoveTeam(logger))
			r.Post("/teams/{teamID}/active", handleSetActiveTeam(logger))
			r.Post("/teams/{teamID}/score", handleAdjustScore(logger))
		})
	})

	if deps.UI != nil {
		r.NotFound(handleSPA(deps.UI))
	}
}
