package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mheijden/portfolio-tracker/internal/api/response"
	"github.com/mheijden/portfolio-tracker/internal/service"
)

// AssetHandler handles HTTP requests for asset and quote endpoints.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler with the provided service dependency.
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Assets handles GET requests to list all known assets.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of Asset
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetService.GetAssets(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// Quote handles GET requests for the latest stored quote of a ticker.
// When no quote has been stored a placeholder quote is returned so
// clients always get a priced response for known assets.
//
// Endpoint: GET /api/quote/{ticker}
// Response: 200 OK with Quote
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	quote, err := h.assetService.GetQuote(r.Context(), ticker)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}
