package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/applymate/applymate-api/internal/config"
	"github.com/applymate/applymate-api/internal/database"
	"github.com/applymate/applymate-api/internal/handlers"
	"github.com/applymate/applymate-api/internal/identity"
	"github.com/applymate/applymate-api/internal/logger"
	"github.com/applymate/applymate-api/internal/middleware"
	"github.com/applymate/applymate-api/internal/provider"
	"github.com/applymate/applymate-api/internal/services"
	"github.com/applymate/applymate-api/internal/storage"
)

func main() {
	// 1. Configuration & Logging
	cfg := config.MustLoad()
	log := logger.New(cfg.AppEnv)

	// 2. External Stores
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	idClient := identity.NewClient(cfg.IdentityURL, cfg.IdentityServiceKey, cfg.IdentityTimeout)

	blob, err := storage.NewMinioStore(cfg.BlobEndpoint, cfg.BlobAccessKey, cfg.BlobSecretKey, cfg.BlobBucket, cfg.BlobUseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to blob store")
	}

	// 3. Core Services (explicit dependency injection, no ambient clients)
	creds := database.NewCredentialRepository(db)
	profiles := database.NewProfileRepository(db)

	vault := services.NewTokenVault(creds, provider.NewGoogleVerifier(), log)
	broker := services.NewResourceAccessBroker(blob, log)
	eraser := services.NewAccountErasureCoordinator(profiles, blob, idClient, log)
	apps := services.NewApplicationService(db)

	// 4. Handlers
	accountHandler := handlers.NewAccountHandler(vault, broker, eraser, apps, idClient, log)

	// 5. Router & CORS. Preflight is answered unconditionally; the browser
	// clients send these four headers.
	r := gin.Default()
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"}
	r.Use(cors.New(corsCfg))

	// 6. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(idClient))
		{
			authed.POST("/account/link-provider", accountHandler.LinkProvider)
			authed.POST("/account/resume/signed-url", accountHandler.IssueSignedURL)
			authed.POST("/account/delete", accountHandler.DeleteAccount)
			authed.POST("/account/delete-by-email", accountHandler.DeleteAccountByEmail)
			authed.GET("/applications", accountHandler.ListApplications)
		}
	}

	log.Info().Str("port", cfg.HTTPPort).Msg("server starting")
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
