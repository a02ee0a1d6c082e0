package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mheijden/portfolio-tracker/internal/api/request"
	"github.com/mheijden/portfolio-tracker/internal/api/response"
	"github.com/mheijden/portfolio-tracker/internal/model"
	"github.com/mheijden/portfolio-tracker/internal/service"
	"github.com/mheijden/portfolio-tracker/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolio service. There are no update or delete
// endpoints: the ledger is append-only.
type TransactionHandler struct {
	portfolioService *service.PortfolioService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(portfolioService *service.PortfolioService) *TransactionHandler {
	return &TransactionHandler{
		portfolioService: portfolioService,
	}
}

// CreateTransaction handles POST requests to append a transaction to a
// portfolio's ledger.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (portfolio_id, asset_ticker, type, quantity, price)
// Response: 201 Created with the appended Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 403 Forbidden if the caller does not own the portfolio
// Error: 404 Not Found if the portfolio does not exist
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.portfolioService.RecordTransaction(r.Context(), p, model.TransactionInput{
		PortfolioID: req.PortfolioID,
		Ticker:      req.AssetTicker,
		Type:        model.TransactionType(req.Type),
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// TransactionsPerPortfolio handles GET requests to list a portfolio's full
// ledger in append order.
//
// Endpoint: GET /api/transaction/portfolio/{uuid}
// Response: 200 OK with array of Transaction
// Error: 403 Forbidden if the caller does not own the portfolio
// Error: 404 Not Found if the portfolio does not exist
func (h *TransactionHandler) TransactionsPerPortfolio(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	portfolioID := chi.URLParam(r, "uuid")

	transactions, err := h.portfolioService.GetTransactions(r.Context(), p, portfolioID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with Transaction
// Error: 403 Forbidden if the caller does not own the owning portfolio
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.portfolioService.GetTransaction(r.Context(), p, transactionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}
