package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// contentTypes maps file extensions to the Content-Type the site serves
// them with. Unknown extensions fall back to an untyped binary stream.
var contentTypes = map[string]string{
	".html": "text/html",
	".js":   "text/javascript",
	".css":  "text/css",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

const (
	notFoundPage    = "<h1>404 - Not Found</h1>"
	serverErrorPage = "<h1>500 - Internal Server Error</h1>"
)

// StaticHandler serves the site's files for any GET request the API does
// not claim. GET / serves the admin page.
type StaticHandler struct {
	root   string
	index  string
	logger zerolog.Logger
}

// NewStaticHandler creates a StaticHandler rooted at root.
func NewStaticHandler(root, index string, logger zerolog.Logger) *StaticHandler {
	return &StaticHandler{
		root:   root,
		index:  index,
		logger: logger.With().Str("handler", "static").Logger(),
	}
}

// ServeHTTP implements http.Handler.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeHTML(w, http.StatusNotFound, notFoundPage)
		return
	}

	rel := h.index
	if r.URL.Path != "/" {
		// Clean the path and keep it inside the site root.
		rel = filepath.FromSlash(strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+r.URL.Path)), "/"))
	}

	content, err := os.ReadFile(filepath.Join(h.root, rel))
	if err != nil {
		if os.IsNotExist(err) {
			writeHTML(w, http.StatusNotFound, notFoundPage)
			return
		}
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to read static file")
		writeHTML(w, http.StatusInternalServerError, serverErrorPage)
		return
	}

	contentType, ok := contentTypes[strings.ToLower(filepath.Ext(rel))]
	if !ok {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// writeHTML writes an HTML error page.
func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
