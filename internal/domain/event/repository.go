package event

import "context"

// Repository stores retained events. Rows are append-only.
type Repository interface {
	InsertBatch(ctx context.Context, events []MatchEvent) error
	// ListByMatch returns events in feed order.
	ListByMatch(ctx context.Context, matchID string) ([]MatchEvent, error)
}
