package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

// Store runs every repository of one unit of work on a single read-committed transaction.
type Store struct {
	db *sqlx.DB
}

var _ storage.UnitOfWork = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, Repositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Repositories binds every repository to q, a transaction or the pool itself.
func Repositories(q sqlx.ExtContext) storage.Repositories {
	return storage.Repositories{
		Clubs:           &ClubRepository{q: q},
		Opponents:       &OpponentRepository{q: q},
		Players:         &PlayerRepository{q: q},
		OpponentPlayers: &OpponentPlayerRepository{q: q},
		Matches:         &MatchRepository{q: q},
		Lineups:         &LineupRepository{q: q},
		Goals:           &GoalRepository{q: q},
		Events:          &EventRepository{q: q},
		MatchStats:      &MatchStatsRepository{q: q},
		PlayerStats:     &PlayerStatsRepository{q: q},
		Seasons:         &SeasonRepository{q: q},
	}
}
