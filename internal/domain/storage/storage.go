package storage

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-ingest/internal/domain/club"
	"github.com/riskibarqy/match-ingest/internal/domain/event"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/player"
	"github.com/riskibarqy/match-ingest/internal/domain/season"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
)

// Repositories is the set of repositories bound to one transaction.
type Repositories struct {
	Clubs           club.Repository
	Opponents       club.OpponentRepository
	Players         player.Repository
	OpponentPlayers player.OpponentRepository
	Matches         match.Repository
	Lineups         match.LineupRepository
	Goals           match.GoalRepository
	Events          event.Repository
	MatchStats      stats.MatchRepository
	PlayerStats     stats.PlayerRepository
	Seasons         season.Repository
}

// UnitOfWork runs fn inside one transaction. Any error returned by fn, or a cancelled ctx,
// discards every write made through repos.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Backends wrap these so callers can tell constraint failures from infrastructure failures.
var (
	ErrDuplicate = errors.New("already exists")
	ErrNotFound  = errors.New("resource not found")
)
