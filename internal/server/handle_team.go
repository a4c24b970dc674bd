package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/cluequiz/internal/cluequiz"
)

type AddTeamRequest struct {
	Name string `json:"name"`
}

type AddTeamResponse struct {
	Team  cluequiz.Team `json:"team"`
	State StateView     `json:"state"`
}

type AdjustScoreRequest struct {
	Delta int `json:"delta"`
}

func handleAddTeam(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddTeamRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctl := tableFrom(r)
		team, err := ctl.AddTeam(r.Context(), req.Name)
		if err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, AddTeamResponse{Team: team, State: newStateView(ctl.State())})
	}
}

func handleRemoveTeam(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := tableFrom(r)
		if err := ctl.RemoveTeam(r.Context(), chi.URLParam(r, "teamID")); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(ctl.State()))
	}
}

func handleSetActiveTeam(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := tableFrom(r)
		if err := ctl.SetActiveTeam(r.Context(), chi.URLParam(r, "teamID")); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(ctl.State()))
	}
}

func handleAdjustScore(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdjustScoreRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Delta == 0 {
			writeError(w, http.StatusBadRequest, "delta must not be zero")
			return
		}

		ctl := tableFrom(r)
		if err := ctl.AdjustScore(r.Context(), chi.URLParam(r, "teamID"), req.Delta); err != nil {
			writeGameError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(ctl.State()))
	}
}
