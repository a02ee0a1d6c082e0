package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mheijden/portfolio-tracker/internal/api/request"
	"github.com/mheijden/portfolio-tracker/internal/api/response"
	"github.com/mheijden/portfolio-tracker/internal/service"
	"github.com/mheijden/portfolio-tracker/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios handles GET requests to list the caller's portfolios.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of Portfolio
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	portfolios, err := h.portfolioService.GetPortfolios(r.Context(), p)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// CreatePortfolio handles POST requests to create a portfolio owned by the caller.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest (name, description)
// Response: 201 Created with the new Portfolio
// Error: 400 Bad Request if validation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), p, req.Name, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// GetPortfolio handles GET requests for a single portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with Portfolio
// Error: 403 Forbidden if the caller does not own the portfolio
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	portfolioID := chi.URLParam(r, "uuid")

	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), p, portfolioID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// PortfolioSummary handles GET requests for a portfolio's per-asset summary.
// With an as_of query parameter the summary is computed over the ledger
// prefix with sequence <= as_of instead of the full ledger.
//
// Endpoint: GET /api/portfolio/{uuid}/summary[?as_of=N]
// Response: 200 OK with PortfolioSummary
// Error: 400 Bad Request if as_of is not a positive integer
// Error: 409 Conflict if the ledger contains an oversell
func (h *PortfolioHandler) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	portfolioID := chi.URLParam(r, "uuid")

	if asOfParam := r.URL.Query().Get("as_of"); asOfParam != "" {
		asOf, err := strconv.ParseInt(asOfParam, 10, 64)
		if err != nil || asOf < 1 {
			response.RespondError(w, http.StatusBadRequest, "as_of must be a positive integer", "")
			return
		}

		summary, err := h.portfolioService.GetSummaryAsOf(r.Context(), p, portfolioID, asOf)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		response.RespondJSON(w, http.StatusOK, summary)
		return
	}

	summary, err := h.portfolioService.GetSummary(r.Context(), p, portfolioID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// PortfolioHistory handles GET requests for a portfolio's materialized
// summary snapshots, oldest first, for charting.
//
// Endpoint: GET /api/portfolio/{uuid}/history
// Response: 200 OK with array of SummarySnapshot
func (h *PortfolioHandler) PortfolioHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	portfolioID := chi.URLParam(r, "uuid")

	snapshots, err := h.portfolioService.GetHistory(r.Context(), p, portfolioID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}
