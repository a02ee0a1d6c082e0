package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mheijden/portfolio-tracker/internal/model"
	"github.com/mheijden/portfolio-tracker/internal/testutil"
)

func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("creates portfolio successfully", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		body := `{"name": "Pension", "description": "Long-horizon holdings"}`
		req := testutil.NewRequestWithBody(http.MethodPost, "/api/portfolio", body)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, asPrincipal(req, f.owner))

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Portfolio
		testutil.DecodeJSON(t, w, &response)

		if response.ID == "" {
			t.Error("Expected portfolio ID to be set")
		}
		if response.Name != "Pension" {
			t.Errorf("Expected name Pension, got %s", response.Name)
		}
		if response.UserID != f.owner.UserID {
			t.Errorf("Expected owner %s, got %s", f.owner.UserID, response.UserID)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		req := testutil.NewRequestWithBody(http.MethodPost, "/api/portfolio", `{"description": "no name"}`)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, asPrincipal(req, f.owner))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_Portfolios(t *testing.T) {
	t.Run("lists only the caller's portfolios", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		testutil.NewPortfolio().WithUserID(f.intruder.UserID).Build(t, f.db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Portfolios(w, asPrincipal(req, f.owner))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Portfolio
		testutil.DecodeJSON(t, w, &response)

		if len(response) != 1 {
			t.Fatalf("Expected 1 portfolio, got %d", len(response))
		}
		if response[0].ID != f.portfolio.ID {
			t.Errorf("Expected portfolio %s, got %s", f.portfolio.ID, response[0].ID)
		}
	})
}

func TestPortfolioHandler_GetPortfolio(t *testing.T) {
	t.Run("returns 403 for a portfolio owned by someone else", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/"+f.portfolio.ID,
			map[string]string{"uuid": f.portfolio.ID},
		)
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, asPrincipal(req, f.intruder))

		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 when portfolio not found", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		nonExistentID := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/"+nonExistentID,
			map[string]string{"uuid": nonExistentID},
		)
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, asPrincipal(req, f.owner))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_PortfolioSummary(t *testing.T) {
	summaryRequest := func(portfolioID, query string) *http.Request {
		return testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/"+portfolioID+"/summary"+query,
			map[string]string{"uuid": portfolioID},
		)
	}

	t.Run("folds the ledger into per-asset positions", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		asset := testutil.NewAsset("VWRL").Build(t, f.db)
		testutil.NewTransaction(f.portfolio.ID, asset.ID, 1).
			WithQuantity("10").WithPrice("10").Build(t, f.db)
		testutil.NewTransaction(f.portfolio.ID, asset.ID, 2).
			WithQuantity("10").WithPrice("20").Build(t, f.db)
		testutil.NewTransaction(f.portfolio.ID, asset.ID, 3).
			Sell().WithQuantity("5").WithPrice("30").Build(t, f.db)

		w := httptest.NewRecorder()
		handler.PortfolioSummary(w, asPrincipal(summaryRequest(f.portfolio.ID, ""), f.owner))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.PortfolioSummary
		testutil.DecodeJSON(t, w, &response)

		if response.LedgerVersion != 3 {
			t.Errorf("Expected ledger version 3, got %d", response.LedgerVersion)
		}
		position, ok := response.Positions["VWRL"]
		if !ok {
			t.Fatalf("Expected a VWRL position, got %v", response.Positions)
		}
		if position.Quantity.String() != "15" {
			t.Errorf("Expected quantity 15, got %s", position.Quantity)
		}
		if position.TotalInvested.String() != "225" {
			t.Errorf("Expected total invested 225, got %s", position.TotalInvested)
		}
		if position.AverageCost.String() != "15" {
			t.Errorf("Expected average cost 15, got %s", position.AverageCost)
		}
	})

	t.Run("computes an as_of summary over a ledger prefix", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		asset := testutil.NewAsset("VWRL").Build(t, f.db)
		testutil.NewTransaction(f.portfolio.ID, asset.ID, 1).
			WithQuantity("10").WithPrice("10").Build(t, f.db)
		testutil.NewTransaction(f.portfolio.ID, asset.ID, 2).
			Sell().WithQuantity("10").WithPrice("20").Build(t, f.db)

		w := httptest.NewRecorder()
		handler.PortfolioSummary(w, asPrincipal(summaryRequest(f.portfolio.ID, "?as_of=1"), f.owner))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.PortfolioSummary
		testutil.DecodeJSON(t, w, &response)

		if response.LedgerVersion != 1 {
			t.Errorf("Expected ledger version 1, got %d", response.LedgerVersion)
		}
		if got := response.Positions["VWRL"].Quantity.String(); got != "10" {
			t.Errorf("Expected quantity 10 at version 1, got %s", got)
		}
	})

	t.Run("returns 400 on a non-positive as_of", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		w := httptest.NewRecorder()
		handler.PortfolioSummary(w, asPrincipal(summaryRequest(f.portfolio.ID, "?as_of=0"), f.owner))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 409 when the ledger contains an oversell", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		asset := testutil.NewAsset("VWRL").Build(t, f.db)
		testutil.NewTransaction(f.portfolio.ID, asset.ID, 1).
			WithQuantity("10").WithPrice("10").Build(t, f.db)
		testutil.NewTransaction(f.portfolio.ID, asset.ID, 2).
			Sell().WithQuantity("15").WithPrice("10").Build(t, f.db)

		w := httptest.NewRecorder()
		handler.PortfolioSummary(w, asPrincipal(summaryRequest(f.portfolio.ID, ""), f.owner))

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns an empty summary for an empty ledger", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		w := httptest.NewRecorder()
		handler.PortfolioSummary(w, asPrincipal(summaryRequest(f.portfolio.ID, ""), f.owner))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.PortfolioSummary
		testutil.DecodeJSON(t, w, &response)

		if response.LedgerVersion != 0 {
			t.Errorf("Expected ledger version 0, got %d", response.LedgerVersion)
		}
		if len(response.Positions) != 0 {
			t.Errorf("Expected no positions, got %d", len(response.Positions))
		}
	})
}

func TestPortfolioHandler_PortfolioHistory(t *testing.T) {
	t.Run("returns empty array when no snapshots exist", func(t *testing.T) {
		f := setupFixture(t)
		handler := NewPortfolioHandler(f.service)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/portfolio/"+f.portfolio.ID+"/history",
			map[string]string{"uuid": f.portfolio.ID},
		)
		w := httptest.NewRecorder()

		handler.PortfolioHistory(w, asPrincipal(req, f.owner))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.SummarySnapshot
		testutil.DecodeJSON(t, w, &response)

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}
	})
}
