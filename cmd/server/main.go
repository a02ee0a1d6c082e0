package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mheijden/portfolio-tracker/internal/api"
	"github.com/mheijden/portfolio-tracker/internal/auth"
	"github.com/mheijden/portfolio-tracker/internal/cache"
	"github.com/mheijden/portfolio-tracker/internal/config"
	"github.com/mheijden/portfolio-tracker/internal/database"
	"github.com/mheijden/portfolio-tracker/internal/ledger"
	"github.com/mheijden/portfolio-tracker/internal/repository"
	"github.com/mheijden/portfolio-tracker/internal/scheduler"
	"github.com/mheijden/portfolio-tracker/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	userRepo := repository.NewUserRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Auth token service
	tokens, err := auth.NewTokenService(cfg.Auth.Key)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	// Core engine: append-only ledger with a version-keyed summary cache
	txLedger := ledger.New(transactionRepo, portfolioRepo, assetRepo)
	summaryCache := cache.NewSummaryCache()
	authorizer := auth.NewOwnerAuthorizer(portfolioRepo)

	// Create services
	systemService := service.NewSystemService(db)
	userService := service.NewUserService(userRepo, tokens)
	assetService := service.NewAssetService(assetRepo, quoteRepo)
	portfolioService := service.NewPortfolioService(
		portfolioRepo,
		snapshotRepo,
		txLedger,
		summaryCache,
		authorizer,
	)
	snapshotService := service.NewSnapshotService(
		portfolioRepo,
		snapshotRepo,
		txLedger,
	)

	// Periodic summary snapshots
	snapshots, err := scheduler.New(cfg.Snapshot.CronSpec, snapshotService)
	if err != nil {
		log.Fatalf("Failed to initialize snapshot scheduler: %v", err)
	}
	snapshots.Start()
	defer snapshots.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Portfolio: portfolioService,
		User:      userService,
		Asset:     assetService,
	}, tokens, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
