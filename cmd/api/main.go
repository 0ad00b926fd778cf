package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/bellabath/storefront-api/internal/auth"
	"github.com/bellabath/storefront-api/internal/cache"
	"github.com/bellabath/storefront-api/internal/catalog"
	"github.com/bellabath/storefront-api/internal/config"
	"github.com/bellabath/storefront-api/internal/handlers"
	"github.com/bellabath/storefront-api/internal/odoo"
	"github.com/bellabath/storefront-api/internal/otp"
	"github.com/bellabath/storefront-api/internal/routes"
	"github.com/bellabath/storefront-api/internal/siteconfig"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, relying on system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := os.MkdirAll(cfg.ImagesDir, 0755); err != nil {
		log.WithError(err).Fatal("Failed to create images directory")
	}

	client := odoo.NewClient(cfg.OdooURL, cfg.OdooDatabase, cfg.OdooAPIKey, log)

	app := &handlers.Handlers{
		Cfg:        cfg,
		Odoo:       client,
		Cache:      cache.NewStore(),
		OTP:        otp.NewStore(),
		SiteConfig: siteconfig.NewStore(cfg.SiteConfigPath),
		Tokens:     auth.NewTokenIssuer(cfg.VerifySecret),
		Transform:  catalog.Transformer{BaseURL: client.BaseURL()},
		Aggregator: &catalog.Aggregator{RPC: client},
		Log:        log,
	}

	router := routes.SetupRouter(app)

	log.WithField("port", cfg.Port).Info("Starting storefront API server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Server exited")
	}
}
