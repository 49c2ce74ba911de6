package match

import (
	"context"
	"time"
)

// Repository describes match persistence.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	FindByFixture(ctx context.Context, clubID, opponentID string, matchDate time.Time) (Match, bool, error)
	// ListByClub returns the club's matches ordered by date ascending, then id.
	ListByClub(ctx context.Context, clubID string) ([]Match, error)
	Create(ctx context.Context, m Match) error
	// Delete removes the match and every row derived from it.
	Delete(ctx context.Context, matchID string) error
}

type LineupRepository interface {
	ExistsForMatch(ctx context.Context, matchID string) (bool, error)
	InsertMany(ctx context.Context, entries []LineupEntry) error
	ListByMatch(ctx context.Context, matchID string) ([]LineupEntry, error)
}

type GoalRepository interface {
	InsertMany(ctx context.Context, goals []Goal) error
	ListByMatch(ctx context.Context, matchID string) ([]Goal, error)
}
