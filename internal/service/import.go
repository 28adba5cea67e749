package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"chatops.app/courier/common/logger"
	"chatops.app/courier/internal/importer"
	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/store"
)

// ImportService runs the import pipeline: extract → dedupe → merge → save.
// The pipeline has no partial-commit rollback; if the save fails after a
// successful parse, Retry re-saves the already-merged set without parsing
// again.
type ImportService interface {
	Import(ctx context.Context, doc string, format importer.Format) (ImportResult, error)
	Retry(ctx context.Context, result ImportResult) (ImportResult, error)
}

type ImportResult struct {
	ImportID string
	Added    int
	Skipped  int
	Total    int

	// merged holds the full directory to persist, kept so a failed save can
	// be retried without re-running the parse.
	merged model.Directory
	saved  bool
}

func (r ImportResult) Saved() bool {
	return r.saved
}

type importService struct {
	directory store.DirectoryStore
}

func NewImportService(directory store.DirectoryStore) ImportService {
	return &importService{directory: directory}
}

func (s *importService) Import(ctx context.Context, doc string, format importer.Format) (ImportResult, error) {
	importID := uuid.NewString()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ImportID:  logger.Ptr(importID),
		Format:    logger.Ptr(string(format)),
		Component: "courier.import",
	})

	candidates, err := importer.Extract(doc, format)
	if err != nil {
		slog.WarnContext(ctx, "import document rejected", "error", err)
		return ImportResult{}, err
	}

	batch := importer.Dedupe(importer.Contacts(candidates))
	existing, err := s.directory.Load(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("loading directory for import: %w", err)
	}

	merged, added := importer.MergeIntoDirectory(existing, batch)
	result := ImportResult{
		ImportID: importID,
		Added:    added,
		Skipped:  len(candidates) - added,
		Total:    len(merged),
		merged:   merged,
	}

	if err := s.directory.Save(ctx, merged); err != nil {
		// Parse and merge succeeded; hand the merged set back so the caller
		// can retry the save alone.
		slog.ErrorContext(ctx, "import save failed", "error", err, "added", added)
		return result, fmt.Errorf("saving imported directory: %w", err)
	}
	result.saved = true

	slog.InfoContext(ctx, "directory import complete",
		"candidates", len(candidates),
		"added", added,
		"total", len(merged))
	return result, nil
}

func (s *importService) Retry(ctx context.Context, result ImportResult) (ImportResult, error) {
	if result.saved || result.merged == nil {
		return result, nil
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ImportID:  logger.Ptr(result.ImportID),
		Component: "courier.import",
	})

	if err := s.directory.Save(ctx, result.merged); err != nil {
		return result, fmt.Errorf("retrying import save: %w", err)
	}
	result.saved = true
	slog.InfoContext(ctx, "import save retried successfully", "total", result.Total)
	return result, nil
}
