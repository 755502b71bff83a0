package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bimax-pro/bimax-admin/internal/domain"
	"github.com/bimax-pro/bimax-admin/internal/metrics"
	"github.com/bimax-pro/bimax-admin/internal/service"
)

// APIHandler serves the JSON admin API.
type APIHandler struct {
	sessions *service.SessionService
	catalog  *service.CatalogService
	uploads  *service.UploadService
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// APIConfig contains the dependencies of the API handler.
type APIConfig struct {
	SessionService *service.SessionService
	CatalogService *service.CatalogService
	UploadService  *service.UploadService
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(cfg APIConfig) *APIHandler {
	return &APIHandler{
		sessions: cfg.SessionService,
		catalog:  cfg.CatalogService,
		uploads:  cfg.UploadService,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger.With().Str("handler", "api").Logger(),
	}
}

// =============================================================================
// Session
// =============================================================================

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin exchanges a username/password pair for an access token.
func (h *APIHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request")
		return
	}

	output, err := h.sessions.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeFailure(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"token": output.Token,
		"user":  output.User,
	})
}

// =============================================================================
// Catalog
// =============================================================================

// HandleGetCatalog returns the full catalog document.
func (h *APIHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	doc := h.catalog.Load(r.Context())
	writeSuccess(w, map[string]interface{}{"data": doc})
}

type saveCatalogRequest struct {
	CatalogData json.RawMessage `json:"catalogData"`
}

// HandleSaveCatalog replaces the stored catalog document.
func (h *APIHandler) HandleSaveCatalog(w http.ResponseWriter, r *http.Request) {
	var req saveCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.CatalogData) == 0 {
		writeFailure(w, http.StatusBadRequest, "Invalid catalog data")
		return
	}

	if err := h.catalog.Save(r.Context(), req.CatalogData); err != nil {
		if errors.Is(err, domain.ErrMalformedRequest) {
			writeFailure(w, http.StatusBadRequest, "Invalid catalog data")
			return
		}
		writeFailure(w, http.StatusInternalServerError, "Failed to save catalog data")
		return
	}

	writeSuccess(w, nil)
}

// =============================================================================
// Uploads
// =============================================================================

// HandleList returns the asset URLs of a category under the given JSON key.
func (h *APIHandler) HandleList(category domain.Category, key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urls, err := h.uploads.List(r.Context(), category)
		if err != nil {
			h.logger.Error().Err(err).Str("category", string(category)).Msg("failed to list assets")
			writeError(w, err)
			return
		}
		writeSuccess(w, map[string]interface{}{key: urls})
	}
}

// HandleUpload stores one multipart file into a category and returns its
// public URL under the given JSON key.
func (h *APIHandler) HandleUpload(category domain.Category, key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename, content, err := readFilePart(r)
		if err != nil {
			writeError(w, err)
			return
		}

		output, err := h.uploads.Upload(r.Context(), service.UploadInput{
			Category: category,
			Filename: filename,
			Content:  content,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		if h.metrics != nil {
			h.metrics.ObserveUpload(string(category), len(content))
		}
		writeSuccess(w, map[string]interface{}{key: output.Asset.URL})
	}
}

// HandleDelete removes the asset named by the given query parameter.
func (h *APIHandler) HandleDelete(category domain.Category, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Query().Get(param)
		if target == "" {
			writeFailure(w, http.StatusBadRequest, param+" parameter required")
			return
		}

		err := h.uploads.Delete(r.Context(), service.DeleteInput{
			Category: category,
			URL:      target,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, nil)
	}
}

// readFilePart extracts the first file part from a multipart body.
// The part is read fully into memory; the site deals in small images and
// PDFs, not large archives.
func readFilePart(r *http.Request) (string, []byte, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return "", nil, domain.ErrMalformedRequest
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return "", nil, domain.ErrNoFileData
		}
		if err != nil {
			return "", nil, domain.ErrMalformedRequest
		}
		if part.FileName() == "" {
			continue
		}

		content, err := readPart(part)
		if err != nil {
			return "", nil, domain.ErrMalformedRequest
		}
		return part.FileName(), content, nil
	}
}

func readPart(part *multipart.Part) ([]byte, error) {
	defer part.Close()
	return io.ReadAll(part)
}
