package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"catalog-importer/internal/clients"
	"catalog-importer/internal/clients/shopify"
	"catalog-importer/internal/config"
	"catalog-importer/internal/importer"
	"catalog-importer/internal/services"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "process files and report without calling the catalog API")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if cfg.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else if cfg.Environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Info("Starting catalog import")

	if !*dryRun {
		if err := cfg.Validate(); err != nil {
			logger.WithError(err).Fatal("Configuration error")
		}
	}

	// File list: positional arguments, falling back to CHANGED_FILES
	files := flag.Args()
	if len(files) == 0 {
		files = config.ParseFileList(os.Getenv("CHANGED_FILES"))
	}
	if len(files) == 0 {
		logger.Error("No files specified for processing")
		logger.Info("Pass file paths as arguments or set CHANGED_FILES")
		os.Exit(1)
	}

	validFiles := make([]string, 0, len(files))
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil || info.IsDir() {
			logger.WithField("file", f).Warn("File not found, skipping")
			continue
		}
		validFiles = append(validFiles, f)
	}
	if len(validFiles) == 0 {
		logger.Error("No valid files found")
		os.Exit(1)
	}
	logger.WithField("count", len(validFiles)).Info("Processing catalog files")

	var client clients.CatalogClient
	if !*dryRun {
		shopifyClient := shopify.NewClient(shopify.Options{
			ShopDomain:  cfg.ShopDomain,
			AccessToken: cfg.AccessToken,
			APIVersion:  cfg.APIVersion,
			MaxRetries:  cfg.MaxRetries,
			RateLimit:   cfg.RateLimit,
		})

		ctx := context.Background()
		if err := shopifyClient.TestConnection(ctx); err != nil {
			logger.WithError(err).Fatal("Failed to connect to catalog API")
		}
		logger.WithField("shop", cfg.ShopDomain).Info("Connected to catalog API")
		client = shopifyClient
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := importer.NewPipeline(importer.Defaults{
		Weight:          cfg.DefaultWeight,
		WeightUnit:      cfg.DefaultWeightUnit,
		InventoryPolicy: cfg.DefaultInventoryPolicy,
		Quantity:        cfg.DefaultQuantity,
		Status:          cfg.DefaultStatus,
	}, logger)

	service := services.NewImportService(pipeline, client, cfg, logger, *dryRun)
	result := service.Run(ctx, validFiles)

	if result.FailedCount > 0 {
		logger.WithField("failed", result.FailedCount).Warn("Some products failed to import")
		os.Exit(1)
	}

	logger.Info("Import completed successfully")
}
