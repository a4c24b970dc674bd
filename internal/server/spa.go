package server

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// handleSPA serves the table UI from fsys. Paths that don't name a file
// (like /tables/{slug}, the page QR codes link to) get index.html so the
// client router can take over.
func handleSPA(fsys fs.FS) http.HandlerFunc {
	fileServer := http.FileServerFS(fsys)

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if info, err := fs.Stat(fsys, name); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFileFS(w, r, fsys, "index.html")
	}
}
