package stats

import (
	"context"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
)

type MatchRepository interface {
	ExistsForMatch(ctx context.Context, matchID string) (bool, error)
	InsertMany(ctx context.Context, rows []MatchStatistics) error
	ListByMatch(ctx context.Context, matchID string) ([]MatchStatistics, error)
	// ListByClub returns one side's rows for every match of the club, ordered like match.Repository.ListByClub.
	ListByClub(ctx context.Context, clubID string, side match.Side) ([]MatchStatistics, error)
}

type PlayerRepository interface {
	ExistsForMatch(ctx context.Context, matchID string) (bool, error)
	InsertMany(ctx context.Context, rows []PlayerMatchStatistics) error
	ListByMatch(ctx context.Context, matchID string) ([]PlayerMatchStatistics, error)
	// ListByClub returns rows ordered by player id, then match date and match id.
	ListByClub(ctx context.Context, clubID string) ([]PlayerMatchStatistics, error)
}
