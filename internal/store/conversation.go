package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"chatops.app/courier/common/id"
	"chatops.app/courier/core/kv"
	"chatops.app/courier/internal/model"
)

// ConversationStore owns the per-contact message logs. Each log is a Redis
// list under one key per contact; RPUSH gives append semantics and the store
// serializes cross-process interleavings. Logs only grow: there is no delete
// or truncate operation.
type ConversationStore interface {
	Append(ctx context.Context, contactID string, msg model.Message) (model.Message, error)
	ReadAll(ctx context.Context, contactID string) ([]model.Message, error)
}

const conversationKeySuffix = "chat"

type redisConversationStore struct {
	kv  *kv.KV
	now func() time.Time
}

func NewConversationStore(handle *kv.KV) ConversationStore {
	return &redisConversationStore{kv: handle, now: time.Now}
}

func (s *redisConversationStore) key(contactID string) string {
	return s.kv.Key(conversationKeySuffix, contactID)
}

// Append adds one message to the end of the contact's log. Missing ID and
// timestamp are assigned here; the sender invariants are validated before
// anything is written. No retry on transport failure — retry policy belongs
// to the caller.
func (s *redisConversationStore) Append(ctx context.Context, contactID string, msg model.Message) (model.Message, error) {
	prepared, err := prepareMessage(contactID, msg, s.now())
	if err != nil {
		return model.Message{}, err
	}

	raw, err := json.Marshal(prepared)
	if err != nil {
		return model.Message{}, fmt.Errorf("encoding message: %w", err)
	}

	if err := s.kv.Client().RPush(ctx, s.key(contactID), raw).Err(); err != nil {
		return model.Message{}, unavailable("appending message", err)
	}

	slog.DebugContext(ctx, "message appended",
		"contact_id", contactID,
		"message_id", prepared.ID,
		"sender", prepared.Sender)
	return prepared, nil
}

// ReadAll returns the full log in append order. A contact with no messages
// yields an empty slice, not an error.
func (s *redisConversationStore) ReadAll(ctx context.Context, contactID string) ([]model.Message, error) {
	raws, err := s.kv.Client().LRange(ctx, s.key(contactID), 0, -1).Result()
	if err != nil {
		return nil, unavailable("reading conversation", err)
	}

	messages := make([]model.Message, 0, len(raws))
	for i, raw := range raws {
		var msg model.Message
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("decoding message %d: %w", i, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// prepareMessage validates the message and fills in store-assigned fields.
func prepareMessage(contactID string, msg model.Message, now time.Time) (model.Message, error) {
	if contactID == "" {
		return model.Message{}, fmt.Errorf("contact id is required")
	}
	if msg.Text == "" {
		return model.Message{}, fmt.Errorf("message text is required")
	}
	if err := msg.Validate(); err != nil {
		return model.Message{}, err
	}

	msg.ContactID = contactID
	if msg.ID == "" {
		msg.ID = id.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now.UTC()
	}
	return msg, nil
}
