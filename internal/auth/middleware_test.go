package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	valid, err := issuer.Issue("1", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expired, err := NewTokenIssuer("test-secret", -time.Minute).Issue("1", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"missing header", "", http.StatusUnauthorized, "Access token required"},
		{"wrong scheme", "Basic YWRtaW46YWRtaW4=", http.StatusUnauthorized, "Access token required"},
		{"bare token", valid, http.StatusUnauthorized, "Access token required"},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized, "Invalid or expired token"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "Invalid or expired token"},
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCtx *AuthContext
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCtx = GetAuthContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Middleware(issuer, zerolog.Nop())(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			if tt.wantStatus == http.StatusOK {
				if gotCtx == nil {
					t.Fatal("expected auth context in request")
				}
				if gotCtx.UserID != "1" || gotCtx.Role != "admin" {
					t.Errorf("unexpected auth context: %+v", gotCtx)
				}
				return
			}

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON error body: %v", err)
			}
			if body.Success {
				t.Error("expected success=false")
			}
			if body.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, body.Message)
			}
		})
	}
}
