package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mheijden/portfolio-tracker/internal/api/middleware"
	"github.com/mheijden/portfolio-tracker/internal/api/response"
	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/auth"
	"github.com/mheijden/portfolio-tracker/internal/validation"
)

// parseJSON decodes the request body into T, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var payload T

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return payload, fmt.Errorf("invalid JSON body: %w", err)
	}
	return payload, nil
}

// principal extracts the authenticated principal placed in the context by the
// auth middleware. A missing principal means the route was wired without the
// middleware, which is a server bug, not a client error.
func principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusInternalServerError, "no authenticated principal on request", "")
	}
	return p, ok
}

// respondServiceError maps service-layer errors onto HTTP status codes.
// OversellError gets 409: the ledger contents conflict with the requested
// read and will keep doing so until a correcting transaction is appended.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	var oversellErr *apperrors.OversellError

	switch {
	case errors.As(err, &validationErr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	case errors.As(err, &oversellErr):
		response.RespondError(w, http.StatusConflict, "oversell detected", err.Error())
	case errors.Is(err, apperrors.ErrPortfolioNotFound),
		errors.Is(err, apperrors.ErrAssetNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, apperrors.ErrForbidden):
		response.RespondError(w, http.StatusForbidden, err.Error(), "")
	case errors.Is(err, apperrors.ErrInvalidToken):
		response.RespondError(w, http.StatusUnauthorized, err.Error(), "")
	default:
		response.RespondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
