package dto

import (
	"time"

	"chatops.app/courier/internal/model"
)

type SendMessageRequest struct {
	Text         string `json:"text" binding:"required"`
	Sender       string `json:"sender" binding:"required,oneof=user bot operator"`
	OperatorName string `json:"operator_name,omitempty" binding:"omitempty,max=255"`
}

type MessageResponse struct {
	ID           string    `json:"id"`
	ContactID    string    `json:"contact_id"`
	Text         string    `json:"text"`
	Sender       string    `json:"sender"`
	OperatorName string    `json:"operator_name,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type ConversationResponse struct {
	Messages []MessageResponse `json:"messages"`
}

func ToMessageResponse(m model.Message) MessageResponse {
	return MessageResponse{
		ID:           m.ID,
		ContactID:    m.ContactID,
		Text:         m.Text,
		Sender:       string(m.Sender),
		OperatorName: m.OperatorName,
		Timestamp:    m.Timestamp,
	}
}

func ToConversationResponse(messages []model.Message) ConversationResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, ToMessageResponse(m))
	}
	return ConversationResponse{Messages: out}
}
