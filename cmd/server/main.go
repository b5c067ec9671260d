package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/cplatt-iso/axiom-admin/internal/adapters"
	"github.com/cplatt-iso/axiom-admin/internal/cache"
	"github.com/cplatt-iso/axiom-admin/internal/config"
	"github.com/cplatt-iso/axiom-admin/internal/database"
	"github.com/cplatt-iso/axiom-admin/internal/handlers"
	"github.com/cplatt-iso/axiom-admin/internal/middleware"
	"github.com/cplatt-iso/axiom-admin/internal/repository"
	"github.com/cplatt-iso/axiom-admin/internal/services"
	"github.com/cplatt-iso/axiom-admin/pkg/logger"
)

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Axiom Admin")

	// Connect to database
	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}

	if err := database.Connect(dbConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Initialize cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis cache initialized")
	} else {
		cacheImpl = cache.NewMemoryCache()
		log.Info().Msg("Memory cache initialized")
	}

	// Initialize repositories
	rulesetRepo := repository.NewRulesetRepository()
	ruleRepo := repository.NewRuleRepository()
	sourceRepo := repository.NewSourceRepository()
	destRepo := repository.NewDestinationRepository()
	retentionRepo := repository.NewRetentionRepository()
	auditRepo := repository.NewAuditRepository()

	// Initialize adapter factory
	adapterFactory := adapters.NewAdapterFactory()
	defer adapterFactory.CloseAll()

	// Initialize services
	ruleService := services.NewRuleService(rulesetRepo, ruleRepo, auditRepo)
	sourceService := services.NewSourceService(sourceRepo, auditRepo, adapterFactory, cacheImpl)
	destService := services.NewDestinationService(destRepo, auditRepo)
	retentionService := services.NewRetentionService(retentionRepo, destRepo, auditRepo)
	browserService := services.NewBrowserService(sourceRepo, adapterFactory, cacheImpl)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(version)
	ruleHandler := handlers.NewRuleHandler(ruleService)
	sourceHandler := handlers.NewSourceHandler(sourceService)
	destHandler := handlers.NewDestinationHandler(destService)
	retentionHandler := handlers.NewRetentionHandler(retentionService)
	browserHandler := handlers.NewBrowserHandler(browserService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// CORS for the console origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Admin API
	r.Route("/api/v1", func(r chi.Router) {
		// Rulesets and rules
		r.Post("/rulesets", ruleHandler.CreateRuleset)
		r.Get("/rulesets", ruleHandler.ListRulesets)
		r.Get("/rulesets/{id}", ruleHandler.GetRuleset)
		r.Put("/rulesets/{id}", ruleHandler.UpdateRuleset)
		r.Delete("/rulesets/{id}", ruleHandler.DeleteRuleset)
		r.Post("/rulesets/{rulesetID}/rules", ruleHandler.CreateRule)
		r.Get("/rulesets/{rulesetID}/rules", ruleHandler.ListRules)
		r.Get("/rules/{id}", ruleHandler.GetRule)
		r.Put("/rules/{id}", ruleHandler.UpdateRule)
		r.Delete("/rules/{id}", ruleHandler.DeleteRule)

		// Data sources
		r.Post("/sources", sourceHandler.Create)
		r.Get("/sources", sourceHandler.List)
		r.Post("/sources/test", sourceHandler.Test)
		r.Get("/sources/{id}", sourceHandler.Get)
		r.Put("/sources/{id}", sourceHandler.Update)
		r.Delete("/sources/{id}", sourceHandler.Delete)
		r.Post("/sources/{id}/test", sourceHandler.TestSaved)

		// Storage destinations
		r.Post("/destinations", destHandler.Create)
		r.Get("/destinations", destHandler.List)
		r.Get("/destinations/{id}", destHandler.Get)
		r.Put("/destinations/{id}", destHandler.Update)
		r.Delete("/destinations/{id}", destHandler.Delete)

		// Retention
		r.Post("/retention/policies", retentionHandler.CreatePolicy)
		r.Get("/retention/policies", retentionHandler.ListPolicies)
		r.Get("/retention/policies/{id}", retentionHandler.GetPolicy)
		r.Put("/retention/policies/{id}", retentionHandler.UpdatePolicy)
		r.Delete("/retention/policies/{id}", retentionHandler.DeletePolicy)
		r.Post("/retention/archival-rules", retentionHandler.CreateArchivalRule)
		r.Get("/retention/archival-rules", retentionHandler.ListArchivalRules)
		r.Get("/retention/archival-rules/{id}", retentionHandler.GetArchivalRule)
		r.Put("/retention/archival-rules/{id}", retentionHandler.UpdateArchivalRule)
		r.Delete("/retention/archival-rules/{id}", retentionHandler.DeleteArchivalRule)

		// Data browser
		r.Get("/browser/sources/{sourceID}/studies", browserHandler.FindStudies)
		r.Get("/browser/sources/{sourceID}/studies/{studyUID}/series", browserHandler.FindSeries)
		r.Get("/browser/sources/{sourceID}/studies/{studyUID}/series/{seriesUID}/instances", browserHandler.FindInstances)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
