package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// handleQR renders a PNG QR code pointing at the table's page so players can
// follow the game on their phones. publicURL wins over the request host.
func handleQR(publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		png, err := qrcode.Encode(tableURL(r, publicURL), qrcode.Medium, qrSize)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "qr generation failed")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(png)
	}
}

func tableURL(r *http.Request, publicURL string) string {
	base := strings.TrimSuffix(publicURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}
	return base + "/tables/" + url.PathEscape(chi.URLParam(r, "table"))
}
