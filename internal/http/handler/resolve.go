package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatops.app/courier/internal/http/dto"
	"chatops.app/courier/internal/service"
	"chatops.app/courier/internal/store"
)

type ResolveHandler struct {
	resolve service.ResolveService // nil when no resolver is configured
}

func NewResolveHandler(resolve service.ResolveService) *ResolveHandler {
	return &ResolveHandler{resolve: resolve}
}

func (h *ResolveHandler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	if h.resolve == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "contact resolution not configured"})
		return
	}

	var req dto.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches, err := h.resolve.Resolve(ctx, req.Term)
	if err != nil {
		h.writeError(c, err, "contact resolution failed")
		return
	}

	c.JSON(http.StatusOK, dto.ToResolveResponse(matches))
}

func (h *ResolveHandler) Suggest(c *gin.Context) {
	ctx := c.Request.Context()

	if h.resolve == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "reply suggestions not configured"})
		return
	}

	var req dto.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestion, err := h.resolve.Suggest(ctx, req.Text)
	if err != nil {
		h.writeError(c, err, "reply suggestion failed")
		return
	}

	c.JSON(http.StatusOK, dto.SuggestResponse{
		Sentiment: suggestion.Sentiment,
		Replies:   suggestion.Replies,
	})
}

// writeError keeps the timeout case distinguishable from a store failure so
// the UI can explain "the assistant took too long" separately from "the
// store is down".
func (h *ResolveHandler) writeError(c *gin.Context, err error, fallback string) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, service.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "text-understanding service timed out"})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contact store unreachable"})
	default:
		slog.ErrorContext(ctx, "resolver error", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	}
}
