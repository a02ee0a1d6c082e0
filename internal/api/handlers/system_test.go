package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mheijden/portfolio-tracker/internal/model"
	"github.com/mheijden/portfolio-tracker/internal/service"
	"github.com/mheijden/portfolio-tracker/internal/testutil"
	"github.com/mheijden/portfolio-tracker/internal/version"
)

func TestSystemHandler_Health(t *testing.T) {
	t.Run("returns ok when database is reachable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response map[string]string
		testutil.DecodeJSON(t, w, &response)

		if response["status"] != "ok" {
			t.Errorf("Expected status ok, got %s", response["status"])
		}
	})

	t.Run("returns 503 when database is unreachable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(service.NewSystemService(db))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSystemHandler_Version(t *testing.T) {
	t.Run("reports application and schema versions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		w := httptest.NewRecorder()

		handler.Version(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.VersionInfo
		testutil.DecodeJSON(t, w, &response)

		if response.AppVersion != version.Version {
			t.Errorf("Expected app version %s, got %s", version.Version, response.AppVersion)
		}
		if response.DbVersion == "unknown" || response.DbVersion == "" {
			t.Errorf("Expected a resolved schema version, got %q", response.DbVersion)
		}
	})
}
