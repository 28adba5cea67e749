package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatops.app/courier/internal/http/dto"
	"chatops.app/courier/internal/importer"
	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/service"
	"chatops.app/courier/internal/store"
)

// DirectoryView is the poller-backed read view; the handler falls back to a
// direct store load until the first poll succeeds.
type DirectoryView interface {
	Snapshot() (model.Directory, bool)
}

type DirectoryHandler struct {
	imports   service.ImportService
	directory store.DirectoryStore
	view      DirectoryView
}

func NewDirectoryHandler(imports service.ImportService, directory store.DirectoryStore, view DirectoryView) *DirectoryHandler {
	return &DirectoryHandler{imports: imports, directory: directory, view: view}
}

func (h *DirectoryHandler) Import(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid import request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format, err := importer.ParseFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.imports.Import(ctx, req.Document, format)
	if err != nil {
		var parseErr *importer.ParseError
		switch {
		case errors.As(err, &parseErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": parseErr.Error()})
		case errors.Is(err, store.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contact store unreachable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ImportResponse{
		ImportID: result.ImportID,
		Added:    result.Added,
		Skipped:  result.Skipped,
		Total:    result.Total,
	})
}

func (h *DirectoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if h.view != nil {
		if dir, ok := h.view.Snapshot(); ok {
			c.JSON(http.StatusOK, dto.ToDirectoryResponse(dir))
			return
		}
	}

	dir, err := h.directory.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contact store unreachable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load directory"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDirectoryResponse(dir))
}

func (h *DirectoryHandler) Remove(c *gin.Context) {
	ctx := c.Request.Context()

	contactID := c.Param("id")
	if contactID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing contact id"})
		return
	}

	if err := h.directory.Remove(ctx, contactID); err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contact store unreachable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove contact"})
		return
	}

	c.Status(http.StatusNoContent)
}
