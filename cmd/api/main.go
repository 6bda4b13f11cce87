package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"toy-marketplace-api/internal/config"
	"toy-marketplace-api/internal/handler"
	"toy-marketplace-api/internal/repository"
	"toy-marketplace-api/internal/router"
	"toy-marketplace-api/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting toy marketplace API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize listing repository based on config. A failed startup
	// connectivity check exits non-zero instead of running with a broken
	// store connection.
	var listingRepo repository.ListingRepository
	switch cfg.Store.Type {
	case "sqlite":
		sqliteRepo, err := repository.NewSQLiteListingRepository(cfg.Store.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		listingRepo = sqliteRepo
		log.Println("SQLite listing repository initialized")
	case "memory":
		listingRepo = repository.NewMemoryListingRepository()
		log.Println("In-memory listing repository initialized")
	default: // mongodb
		mongoRepo, err := repository.NewMongoDBListingRepository(repository.MongoOptions{
			URI:        cfg.Store.MongoURI,
			Username:   cfg.Store.User,
			Password:   cfg.Store.Password,
			Database:   cfg.Store.MongoDatabase,
			Collection: cfg.Store.MongoCollection,
		})
		if err != nil {
			log.Fatalf("Failed to initialize MongoDB: %v", err)
		}
		listingRepo = mongoRepo
		log.Println("MongoDB listing repository initialized")
	}
	defer listingRepo.Close()

	// Initialize services
	listingService := service.NewListingService(listingRepo, cfg.Store.Timeout)

	// Initialize handlers
	listingHandler := handler.NewListingHandler(listingService)
	healthHandler := handler.NewHealthHandler(listingService, cfg.Store.Type, cfg.App.Version)

	// Create router
	r := router.New(router.Config{
		HealthHandler:  healthHandler,
		ListingHandler: listingHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
