package service

import (
	"context"
	"fmt"
	"log/slog"

	"chatops.app/courier/common/logger"
	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/phone"
	"chatops.app/courier/internal/store"
)

// ChatService is the operator-facing surface over the conversation store.
type ChatService interface {
	Send(ctx context.Context, contactID string, msg model.Message) (model.Message, error)
	History(ctx context.Context, contactID string) ([]model.Message, error)
}

type chatService struct {
	conversations store.ConversationStore
}

func NewChatService(conversations store.ConversationStore) ChatService {
	return &chatService{conversations: conversations}
}

func (s *chatService) Send(ctx context.Context, contactID string, msg model.Message) (model.Message, error) {
	if !phone.ValidChatID(contactID) {
		return model.Message{}, fmt.Errorf("%w: %q", ErrInvalidContactID, contactID)
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ContactID: logger.Ptr(contactID),
		Component: "courier.chat",
	})

	sent, err := s.conversations.Append(ctx, contactID, msg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to append message", "error", err)
		return model.Message{}, fmt.Errorf("sending message: %w", err)
	}

	slog.InfoContext(ctx, "message sent", "message_id", sent.ID, "sender", sent.Sender)
	return sent, nil
}

func (s *chatService) History(ctx context.Context, contactID string) ([]model.Message, error) {
	if !phone.ValidChatID(contactID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContactID, contactID)
	}

	messages, err := s.conversations.ReadAll(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("reading conversation: %w", err)
	}
	return messages, nil
}
