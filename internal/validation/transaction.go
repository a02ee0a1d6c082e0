package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mheijden/portfolio-tracker/internal/api/request"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	"buy": true, "sell": true,
}

// tickerPattern matches case-normalized tickers: letters, digits, dots and
// dashes, at most 12 characters.
var tickerPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,12}$`)

// NormalizeTicker trims surrounding whitespace and upper-cases a ticker.
// All ticker comparisons in the system happen on the normalized form.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - portfolio_id: Must be a valid UUID
//   - asset_ticker: Must normalize to 1-12 characters of [A-Z0-9.-]
//   - type: Must be one of: buy, sell
//   - quantity: Must be positive
//   - price: Must be positive
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PortfolioID); err != nil {
		errors["portfolioId"] = err.Error()
	}

	ticker := NormalizeTicker(req.AssetTicker)
	if ticker == "" {
		errors["assetTicker"] = "asset ticker is required"
	} else if !tickerPattern.MatchString(ticker) {
		errors["assetTicker"] = fmt.Sprintf("malformed ticker: %s", req.AssetTicker)
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["transactionType"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["transactionType"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if !req.Quantity.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}

	if !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
