package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/cluequiz/internal/game"
)

type ctxKey int

const ctxKeyTable ctxKey = iota

// tableMiddleware resolves {table} with lookup, normally Tables.Get, or
// Tables.Open for routes that start a game.
func tableMiddleware(lookup func(context.Context, string) (*game.Controller, error), logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctl, err := lookup(r.Context(), chi.URLParam(r, "table"))
			if errors.Is(err, ErrInvalidTable) {
				writeError(w, http.StatusNotFound, "table not found")
				return
			}
			if err != nil {
				logger.Error("opening table", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyTable, ctl)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tableFrom(r *http.Request) *game.Controller {
	return r.Context().Value(ctxKeyTable).(*game.Controller)
}
