package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catalog-importer/internal/clients"
	"catalog-importer/internal/config"
	"catalog-importer/internal/importer"
	"catalog-importer/internal/models"
)

// ImportService walks catalog files through the pipeline and upserts each
// normalized product into the remote catalog: create when no product with
// the same title exists, update otherwise. Products are always saved as
// drafts.
type ImportService struct {
	pipeline *importer.Pipeline
	client   clients.CatalogClient
	cfg      *config.Config
	logger   *logrus.Entry
	dryRun   bool
}

// NewImportService creates a new import service. A nil client is only valid
// together with dryRun.
func NewImportService(pipeline *importer.Pipeline, client clients.CatalogClient, cfg *config.Config, logger *logrus.Logger, dryRun bool) *ImportService {
	return &ImportService{
		pipeline: pipeline,
		client:   client,
		cfg:      cfg,
		logger:   logrus.NewEntry(logger).WithField("component", "import_service"),
		dryRun:   dryRun,
	}
}

// Run processes each file in order and returns the end-of-run report. No
// per-file failure aborts the run.
func (s *ImportService) Run(ctx context.Context, files []string) *models.RunResult {
	started := time.Now()
	result := &models.RunResult{
		RunID:       uuid.NewString(),
		FileResults: make([]models.FileImportResult, 0, len(files)),
	}
	log := s.logger.WithField("run_id", result.RunID)

	for _, path := range files {
		if ctx.Err() != nil {
			log.Warn("Run cancelled, stopping before remaining files")
			break
		}

		fileResult, err := s.pipeline.Process(path)
		if err != nil {
			s.logFileFailure(log, path, err)
			result.FilesSkipped++
			continue
		}

		log.WithFields(logrus.Fields{
			"file":     fileResult.Filename,
			"products": len(fileResult.Products),
			"rows":     fileResult.TotalRows,
		}).Info("Processed catalog file")

		fileImport := s.importFile(ctx, fileResult)
		result.FileResults = append(result.FileResults, fileImport)
		result.FilesProcessed++
		result.TotalProducts += fileImport.TotalProducts
		result.CreatedCount += fileImport.CreatedCount
		result.UpdatedCount += fileImport.UpdatedCount
		result.SkippedCount += fileImport.SkippedCount
		result.FailedCount += fileImport.FailedCount
	}

	result.ProcessingMs = time.Since(started).Milliseconds()
	s.logSummary(log, result)
	return result
}

// importFile upserts every product of one FileResult
func (s *ImportService) importFile(ctx context.Context, fileResult *models.FileResult) models.FileImportResult {
	out := models.FileImportResult{
		Filename:      fileResult.Filename,
		TotalProducts: len(fileResult.Products),
		Products:      make([]models.ProductImportResult, 0, len(fileResult.Products)),
	}

	for i := range fileResult.Products {
		product := &fileResult.Products[i]
		itemResult := s.saveProduct(ctx, product, fileResult.Filename)
		out.Products = append(out.Products, itemResult)

		switch itemResult.Action {
		case models.ImportActionCreated:
			out.CreatedCount++
		case models.ImportActionUpdated:
			out.UpdatedCount++
		case models.ImportActionSkipped:
			out.SkippedCount++
		case models.ImportActionFailed:
			out.FailedCount++
		}

		// Pace calls to the remote API between products
		if !s.dryRun && s.cfg.DefaultDelay > 0 && i < len(fileResult.Products)-1 {
			select {
			case <-ctx.Done():
				return out
			case <-time.After(s.cfg.DefaultDelay):
			}
		}
	}

	return out
}

// saveProduct performs the create-or-update for a single product
func (s *ImportService) saveProduct(ctx context.Context, product *models.ProductRecord, filename string) models.ProductImportResult {
	itemResult := models.ProductImportResult{
		Title: product.Title,
		SKUs:  variantSKUs(product),
		File:  filename,
	}
	log := s.logger.WithFields(logrus.Fields{
		"file":    filename,
		"product": product.Title,
	})

	if s.dryRun {
		itemResult.Action = models.ImportActionSkipped
		log.WithField("variants", len(product.Variants)).Info("Dry run, product not sent to catalog")
		return itemResult
	}

	existing, err := s.client.FindProductByTitle(ctx, product.Title)
	if err != nil {
		// Lookup failures fall through to a create attempt, matching the
		// catalog's create-or-update contract as closely as possible.
		log.WithError(err).Warn("Product lookup failed, attempting create")
		existing = nil
	}

	var remote *clients.RemoteProduct
	if existing != nil {
		remote, err = s.client.UpdateProduct(ctx, existing.ID, product)
		itemResult.Action = models.ImportActionUpdated
	} else {
		remote, err = s.client.CreateProduct(ctx, product)
		itemResult.Action = models.ImportActionCreated
	}

	if err != nil {
		itemResult.Action = models.ImportActionFailed
		itemResult.Error = err.Error()
		log.WithError(err).Error("Failed to save product")
		return itemResult
	}

	if remote != nil {
		itemResult.Remote = remoteID(remote)
	}
	log.WithFields(logrus.Fields{
		"action":    itemResult.Action,
		"remote_id": itemResult.Remote,
		"variants":  len(product.Variants),
	}).Info("Saved product")
	return itemResult
}

// logFileFailure classifies per-file pipeline failures for the run log
func (s *ImportService) logFileFailure(log *logrus.Entry, path string, err error) {
	var emptyErr *importer.EmptyAfterFilteringError
	var missingErr *importer.MissingRequiredColumnError
	var readErr *importer.FileReadError

	entry := log.WithField("file", path)
	switch {
	case errors.As(err, &emptyErr):
		entry.WithField("code", importer.CodeEmptyAfterFiltering).Warn("No valid products after filtering")
	case errors.As(err, &missingErr):
		entry.WithField("code", importer.CodeMissingRequiredColumn).WithError(err).Error("Skipping file")
	case errors.As(err, &readErr):
		entry.WithField("code", importer.CodeFileReadError).WithError(err).Error("Skipping file")
	default:
		entry.WithError(err).Error("Skipping file")
	}
}

func (s *ImportService) logSummary(log *logrus.Entry, result *models.RunResult) {
	log.WithFields(logrus.Fields{
		"files_processed": result.FilesProcessed,
		"files_skipped":   result.FilesSkipped,
		"total_products":  result.TotalProducts,
		"created":         result.CreatedCount,
		"updated":         result.UpdatedCount,
		"skipped":         result.SkippedCount,
		"failed":          result.FailedCount,
		"processing_ms":   result.ProcessingMs,
	}).Info("Import run complete")

	for _, fileResult := range result.FileResults {
		log.WithFields(logrus.Fields{
			"file":    fileResult.Filename,
			"created": fileResult.CreatedCount,
			"updated": fileResult.UpdatedCount,
			"skipped": fileResult.SkippedCount,
			"failed":  fileResult.FailedCount,
		}).Info("File summary")
	}
}

func variantSKUs(product *models.ProductRecord) []string {
	skus := make([]string, 0, len(product.Variants))
	for _, v := range product.Variants {
		skus = append(skus, v.SKU)
	}
	return skus
}

func remoteID(remote *clients.RemoteProduct) string {
	if remote.ID == 0 {
		return ""
	}
	return strconv.FormatInt(remote.ID, 10)
}
