// Package handler provides the HTTP surface of the Bimax Pro admin backend:
// the JSON API under /api, the Prometheus endpoint and the static-file
// fallback that serves the site itself.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bimax-pro/bimax-admin/internal/domain"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeSuccess writes a {success:true, ...} envelope with extra fields.
func writeSuccess(w http.ResponseWriter, extra map[string]interface{}) {
	payload := map[string]interface{}{"success": true}
	for k, v := range extra {
		payload[k] = v
	}
	writeJSON(w, http.StatusOK, payload)
}

// writeFailure writes a {success:false, message} envelope.
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// writeError maps a domain error onto the HTTP error taxonomy.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrInvalidToken):
		writeFailure(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrMalformedRequest),
		errors.Is(err, domain.ErrNoFileData),
		errors.Is(err, domain.ErrInvalidFileType),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrInvalidAssetPath):
		writeFailure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAssetNotFound):
		writeFailure(w, http.StatusNotFound, err.Error())
	default:
		writeFailure(w, http.StatusInternalServerError, "internal server error")
	}
}
