package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/bimax-pro/bimax-admin/internal/domain"
	"github.com/bimax-pro/bimax-admin/internal/metrics"
)

// RouterConfig contains the dependencies of the router.
type RouterConfig struct {
	API            *APIHandler
	Static         *StaticHandler
	AuthMiddleware func(http.Handler) http.Handler
	Metrics        *metrics.Metrics
	MetricsPath    string
	Logger         zerolog.Logger
}

// NewRouter assembles the full HTTP handler: CORS on everything, the JSON
// API under /api (token-gated except login), the metrics endpoint, and the
// static-file fallback for any other GET.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(corsMiddleware)

	r.Post("/api/login", cfg.API.HandleLogin)

	// Every other API route sits behind the token gate.
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthMiddleware)

		r.Get("/api/catalog", cfg.API.HandleGetCatalog)
		r.Post("/api/catalog", cfg.API.HandleSaveCatalog)

		r.Get("/api/brand-images", cfg.API.HandleList(domain.CategoryBrandImage, "images"))
		r.Post("/api/upload-brand-image", cfg.API.HandleUpload(domain.CategoryBrandImage, "imageUrl"))
		r.Delete("/api/delete-brand-image", cfg.API.HandleDelete(domain.CategoryBrandImage, "image"))

		r.Get("/api/product-images", cfg.API.HandleList(domain.CategoryProductImage, "images"))
		r.Post("/api/upload-product-image", cfg.API.HandleUpload(domain.CategoryProductImage, "imageUrl"))
		r.Delete("/api/delete-product-image", cfg.API.HandleDelete(domain.CategoryProductImage, "image"))

		r.Get("/api/documents", cfg.API.HandleList(domain.CategoryDocument, "documents"))
		r.Post("/api/upload-document", cfg.API.HandleUpload(domain.CategoryDocument, "documentUrl"))
		r.Delete("/api/delete-document", cfg.API.HandleDelete(domain.CategoryDocument, "document"))

		r.Get("/api/posters", cfg.API.HandleList(domain.CategoryPoster, "posters"))
		r.Post("/api/upload-poster", cfg.API.HandleUpload(domain.CategoryPoster, "posterUrl"))
		r.Delete("/api/delete-poster", cfg.API.HandleDelete(domain.CategoryPoster, "poster"))
	})

	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		r.Method(http.MethodGet, cfg.MetricsPath, cfg.Metrics.Handler())
	}

	// Anything the API does not claim falls through to the site itself.
	// The static handler answers non-GET methods with the 404 page, which
	// matches what the site has always done.
	r.NotFound(cfg.Static.ServeHTTP)
	r.MethodNotAllowed(cfg.Static.ServeHTTP)

	return r
}

// corsMiddleware attaches the CORS headers the admin frontend relies on
// and short-circuits preflight requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("component", "http").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote", r.RemoteAddr).
				Msg("request")
		})
	}
}
