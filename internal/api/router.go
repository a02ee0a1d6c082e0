package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mheijden/portfolio-tracker/internal/api/handlers"
	custommiddleware "github.com/mheijden/portfolio-tracker/internal/api/middleware"
	"github.com/mheijden/portfolio-tracker/internal/auth"
	"github.com/mheijden/portfolio-tracker/internal/config"
	"github.com/mheijden/portfolio-tracker/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System    *service.SystemService
	Portfolio *service.PortfolioService
	User      *service.UserService
	Asset     *service.AssetService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, tokens *auth.TokenService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Public auth endpoints
		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svc.User)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Everything below requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireAuth(tokens))

			r.Route("/portfolio", func(r chi.Router) {
				portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
				r.Get("/", portfolioHandler.Portfolios)
				r.Post("/", portfolioHandler.CreatePortfolio)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", portfolioHandler.GetPortfolio)
					r.Get("/summary", portfolioHandler.PortfolioSummary)
					r.Get("/history", portfolioHandler.PortfolioHistory)
				})
			})

			r.Route("/transaction", func(r chi.Router) {
				transactionHandler := handlers.NewTransactionHandler(svc.Portfolio)
				r.Post("/", transactionHandler.CreateTransaction)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", transactionHandler.GetTransaction)
				})
				r.Route("/portfolio/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", transactionHandler.TransactionsPerPortfolio)
				})
			})

			assetHandler := handlers.NewAssetHandler(svc.Asset)
			r.Get("/asset", assetHandler.Assets)
			r.Get("/quote/{ticker}", assetHandler.Quote)
		})
	})

	return r
}
