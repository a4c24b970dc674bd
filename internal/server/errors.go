package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/cluequiz/internal/cluequiz"
	"github.com/playperu/cluequiz/internal/game"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps controller errors to HTTP status codes. Guard
// violations are conflicts with the current state; the session is left as
// it was.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, cluequiz.ErrInvalidSetup),
		errors.Is(err, cluequiz.ErrInvalidTeam),
		errors.Is(err, cluequiz.ErrClueOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, cluequiz.ErrTeamNotFound),
		errors.Is(err, game.ErrCategoryDisabled):
		return http.StatusNotFound
	case errors.Is(err, cluequiz.ErrGameNotActive),
		errors.Is(err, cluequiz.ErrGameOver),
		errors.Is(err, cluequiz.ErrNoRound),
		errors.Is(err, cluequiz.ErrRoundActive),
		errors.Is(err, cluequiz.ErrRosterFull),
		errors.Is(err, game.ErrCategoryExhausted),
		errors.Is(err, game.ErrFetchInProgress),
		errors.Is(err, game.ErrStaleFetch):
		return http.StatusConflict
	case errors.Is(err, game.ErrProvider):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeGameError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := errorStatus(err)
	switch status {
	case http.StatusInternalServerError:
		logger.Error("game operation failed", "error", err)
		writeError(w, status, "internal error")
	case http.StatusBadGateway:
		writeError(w, status, "could not fetch an item, try again")
	default:
		writeError(w, status, err.Error())
	}
}
