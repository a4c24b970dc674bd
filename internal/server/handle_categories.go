package server

import (
	"net/http"

	"github.com/playperu/cluequiz/internal/content"
)

func handleCategories(registry *content.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, content.Catalog(registry))
	}
}
