package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatops.app/courier/internal/http/dto"
	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/service"
	"chatops.app/courier/internal/store"
)

type ChatHandler struct {
	chat service.ChatService
}

func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	messages, err := h.chat.History(ctx, c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to read conversation")
		return
	}

	c.JSON(http.StatusOK, dto.ToConversationResponse(messages))
}

func (h *ChatHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid send request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sent, err := h.chat.Send(ctx, c.Param("id"), model.Message{
		Text:         req.Text,
		Sender:       model.Sender(req.Sender),
		OperatorName: req.OperatorName,
	})
	if err != nil {
		h.writeError(c, err, "failed to send message")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageResponse(sent))
}

func (h *ChatHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidContactID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "conversation store unreachable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
