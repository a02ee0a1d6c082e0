package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// NewCORS builds the CORS policy for the browser frontend. The API is
// read-and-append only, so GET, POST and the preflight OPTIONS cover every
// route; Authorization is allowed so the bearer token survives cross-origin
// requests. Auth is header-based, not cookie-based, so credentialed
// requests are not enabled.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	})
}
