package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mheijden/portfolio-tracker/internal/auth"
)

func TestRequireAuth(t *testing.T) {
	tokens, err := auth.NewTokenService("")
	if err != nil {
		t.Fatalf("Failed to create token service: %v", err)
	}

	var captured auth.Principal
	var capturedOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, capturedOK = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := RequireAuth(tokens)(next)

	t.Run("passes the principal through on a valid token", func(t *testing.T) {
		token, err := tokens.Issue("user-42")
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !capturedOK {
			t.Fatal("Expected principal in handler context")
		}
		if captured.UserID != "user-42" {
			t.Errorf("Expected principal user-42, got %s", captured.UserID)
		}
	})

	t.Run("rejects a missing Authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects a non-bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})
}
