package validation

import (
	"strings"

	"github.com/mheijden/portfolio-tracker/internal/api/request"
)

// ValidateCreatePortfolio validates a portfolio creation request.
// The name is required and limited to 100 characters; the description is
// optional.
func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errors["name"] = "name is required"
	} else if len(name) > 100 {
		errors["name"] = "name must be at most 100 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
