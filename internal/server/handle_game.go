package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/cluequiz/internal/cluequiz"
	"github.com/playperu/cluequiz/internal/game"
)

type TeamInput struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type StartGameRequest struct {
	Teams         []TeamInput         `json:"teams"`
	WinningPoints int                 `json:"winningPoints,omitempty"`
	Categories    []cluequiz.Category `json:"categories"`
	HideHints     bool                `json:"hideHints,omitempty"`
}

type SelectCategoryRequest struct {
	Category cluequiz.Category `json:"category"`
}

type GuessRequest struct {
	TeamID string `json:"teamId"`
	Guess  string `json:"guess"`
}

type GuessResponse struct {
	Correct bool      `json:"correct"`
	State   StateView `json:"state"`
}

// CreditRequest names the team that guessed right. An empty TeamID closes
// the round without points.
type CreditRequest struct {
	TeamID string `json:"teamId"`
}

type CreditResponse struct {
	Points int       `json:"points"`
	Answer string    `json:"answer"`
	State  StateView `json:"state"`
}

func handleGameState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newStateView(tableFrom(r).State()))
	}
}

func handleStartGame(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartGameRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.WinningPoints == 0 {
			req.WinningPoints = cluequiz.DefaultWinningPoints
		}

		setup := game.Setup{
			WinningPoints: req.WinningPoints,
			Categories:    req.Categories,
			HideHints:     req.HideHints,
		}
		for _, t := range req.Teams {
			setup.Teams = append(setup.Teams, cluequiz.Team{ID: t.ID, Name: t.Name})
		}

		ctl := tableFrom(r)
		if err := ctl.Initialize(r.Context(), setup); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, newStateView(ctl.State()))
	}
}

func handleResetGame(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := tableFrom(r)
		if err := ctl.Reset(r.Context()); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(ctl.State()))
	}
}

func handleEndGame(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := tableFrom(r)
		if err := ctl.EndGame(r.Context()); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(ctl.State()))
	}
}

func handleSelectCategory(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectCategoryRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Category = cluequiz.Category(strings.TrimSpace(string(req.Category)))
		if req.Category == "" {
			writeError(w, http.StatusBadRequest, "category is required")
			return
		}

		ctl := tableFrom(r)
		if _, err := ctl.SelectCategory(r.Context(), req.Category); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(ctl.State()))
	}
}

func handleRevealClue(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		i, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "clue index must be a number")
			return
		}

		ctl := tableFrom(r)
		if err := ctl.RevealDetail(r.Context(), i); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(ctl.State()))
	}
}

func handleRevealAnswer(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := tableFrom(r)
		if err := ctl.RevealAnswer(r.Context()); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(ctl.State()))
	}
}

func handleGuess(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GuessRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Guess) == "" {
			writeError(w, http.StatusBadRequest, "guess is required")
			return
		}

		ctl := tableFrom(r)
		correct, err := ctl.SubmitGuess(r.Context(), req.TeamID, req.Guess)
		if err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, GuessResponse{Correct: correct, State: newStateView(ctl.State())})
	}
}

func handleCredit(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreditRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctl := tableFrom(r)
		points, answer, err := ctl.CreditTeam(r.Context(), req.TeamID)
		if err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, CreditResponse{Points: points, Answer: answer, State: newStateView(ctl.State())})
	}
}

func handleBackToCategories(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := tableFrom(r)
		if err := ctl.BackToCategories(r.Context()); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(ctl.State()))
	}
}

func handleClearUsedItems(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := tableFrom(r)
		c := cluequiz.Category(chi.URLParam(r, "category"))
		if err := ctl.ClearCategoryUsedItems(r.Context(), c); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(ctl.State()))
	}
}
