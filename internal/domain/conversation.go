package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultTitle is the title a conversation carries until its first message.
const DefaultTitle = "New Chat"

// TitleLimit is the maximum title length derived from a first message.
const TitleLimit = 30

// Message is a single conversation turn. Messages are created once and
// never mutated; retry may truncate them away but never edits them.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Error     bool      `json:"error,omitempty"`
}

// MessageList is a message sequence that decodes defensively: persisted
// data comes from an unversioned store, so a malformed or non-array
// messages field collapses to empty instead of failing the whole load.
type MessageList []Message

func (m *MessageList) UnmarshalJSON(data []byte) error {
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		*m = nil
		return nil
	}
	*m = msgs
	return nil
}

// Conversation is an ordered, append-only message sequence with a derived
// title. UpdatedAt is refreshed on every message append.
type Conversation struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Messages  MessageList `json:"messages"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// LastMessage returns the most recent message, or nil when there is none.
func (c *Conversation) LastMessage() *Message {
	if c == nil || len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// NewID returns a fresh unique identifier for messages and conversations.
func NewID() string {
	return uuid.NewString()
}
