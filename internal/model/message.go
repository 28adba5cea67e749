package model

import (
	"fmt"
	"time"
)

// Sender identifies who produced a conversation message.
type Sender string

const (
	SenderUser     Sender = "user"
	SenderBot      Sender = "bot"
	SenderOperator Sender = "operator"
)

func (s Sender) Valid() bool {
	switch s {
	case SenderUser, SenderBot, SenderOperator:
		return true
	}
	return false
}

// Message is one entry in a contact's append-only conversation log.
// Ordering is arrival order at the store; Timestamp is informational and is
// never used to reorder.
type Message struct {
	ID           string    `json:"id"`
	ContactID    string    `json:"contactId"`
	Text         string    `json:"text"`
	Sender       Sender    `json:"sender"`
	OperatorName string    `json:"operatorName,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Validate checks the sender invariants: a known sender value, and an
// operator name present exactly when the sender is an operator.
func (m Message) Validate() error {
	if !m.Sender.Valid() {
		return fmt.Errorf("unknown sender %q", m.Sender)
	}
	if m.Sender == SenderOperator && m.OperatorName == "" {
		return fmt.Errorf("operator messages require an operator name")
	}
	if m.Sender != SenderOperator && m.OperatorName != "" {
		return fmt.Errorf("operator name only allowed for operator messages")
	}
	return nil
}
