// Package store persists the conversation collection to a single named
// slot. Loading tolerates absent or corrupt data by returning an empty
// collection; consistency with storage is best-effort and the in-memory
// state remains the source of truth for the session.
package store

import (
	"context"

	"chatterpal/internal/domain"
)

// Store reads and writes the full conversation collection for one slot.
// Both the JSON file store and the DynamoDB slot store implement it.
type Store interface {
	Load(ctx context.Context) ([]domain.Conversation, error)
	Save(ctx context.Context, convos []domain.Conversation) error
}
