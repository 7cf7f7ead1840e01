// Package main provides the entry point for the LinkHub profile pages service.
//
//	@title			LinkHub API
//	@version		1.0.0
//	@description	Link-in-bio profile pages with plan-based limits and engagement analytics.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Authorization header. Format: "Bearer {token}"
package main

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/config"
	"LinkHub-Backend/internal/database"
	httpHandler "LinkHub-Backend/internal/handler/http"
	"LinkHub-Backend/internal/identity"
	"LinkHub-Backend/internal/repository/postgres"
	"LinkHub-Backend/internal/service"
	"LinkHub-Backend/pkg/logger"
	"LinkHub-Backend/pkg/useragent"
	"context"
	lg "log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting LinkHub service", zap.String("env", cfg.Env), zap.String("version", version))

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required to validate session tokens")
	}

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations if enabled
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	// Seed demo profile if enabled
	if cfg.Database.SeedData {
		log.Info("seeding database with demo profile (seed_data: true)")
		if err := database.SeedData(db, log); err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
	}

	// Initialize User-Agent parser
	uaParser, err := useragent.NewParser(cfg.Tracking.UserAgentRegexes, log)
	if err != nil {
		log.Fatal("failed to initialize User-Agent parser", zap.Error(err))
	}

	// Initialize storage and services
	storage := postgres.New(db, log)
	hasher := identity.NewHasher(cfg.Tracking.IPHashSecret)
	ordering := service.NewOrderingService(storage, log)

	jwtService := auth.NewJWTService(&auth.JWTConfig{
		SecretKey:           []byte(cfg.Auth.JWTSecret),
		AccessTokenDuration: cfg.Auth.AccessTokenTTL,
		Issuer:              cfg.Auth.Issuer,
	})

	server := httpHandler.NewServer(cfg, httpHandler.Deps{
		Storage:    storage,
		Profiles:   service.NewProfileService(storage, log),
		Links:      service.NewLinkService(storage, ordering, log),
		Socials:    service.NewSocialService(storage, ordering, log),
		Engagement: service.NewEngagementService(storage, hasher, uaParser, log),
		Analytics:  service.NewAnalyticsService(storage, log),
		JWT:        jwtService,
		Version:    version,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error("HTTP server failed", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down LinkHub service...")
	}

	// Gracefully stop HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}
}
