package web

import (
	"errors"
	"net/http"
	"strings"

	"attendci/internal/adapters/uploads"
)

// handleUploads handles GET /uploads/{file}. Only files inside the uploads
// directory are served; the content type comes from the extension.
func handleUploads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/uploads/")
	if name == "" {
		fail(w, http.StatusNotFound, "file not found")
		return
	}

	data, contentType, err := artifacts.Read(name)
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrOutsideDir):
			fail(w, http.StatusForbidden, "access denied")
		case errors.Is(err, uploads.ErrUnsupported):
			fail(w, http.StatusUnsupportedMediaType, "unsupported file type")
		case errors.Is(err, uploads.ErrNotFound):
			fail(w, http.StatusNotFound, "file not found")
		default:
			internalError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleHealth handles GET /health. A cheap query proves the database is
// reachable, not just that the process is up.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := stores.AccountStore.Count(r.Context()); err != nil {
		internalError(w, err)
		return
	}
	ok(w, "ok", nil)
}
