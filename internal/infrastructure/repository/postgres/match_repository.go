package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	qb "github.com/riskibarqy/match-ingest/internal/platform/querybuilder"
)

type MatchRepository struct {
	q sqlx.ExtContext
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := matchBaseSelectBuilder().Where(qb.Eq("id", matchID)).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}
	return r.getOne(ctx, query, args, "get match id="+matchID)
}

func (r *MatchRepository) FindByFixture(ctx context.Context, clubID, opponentID string, matchDate time.Time) (match.Match, bool, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(
			qb.Eq("club_id", clubID),
			qb.Eq("opponent_id", opponentID),
			qb.Expr("match_date = ?::date", matchDate.Format(time.DateOnly)),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build find match by fixture query: %w", err)
	}
	return r.getOne(ctx, query, args, "find match by fixture")
}

func (r *MatchRepository) getOne(ctx context.Context, query string, args []any, op string) (match.Match, bool, error) {
	var row matchTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByClub(ctx context.Context, clubID string) ([]match.Match, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(qb.Eq("club_id", clubID)).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches club=%s: %w", clubID, err)
	}
	return mapRows(rows, matchFromRow), nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertModel("matches", matchToRow(m), "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert match", err)
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for every derived table.
func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("matches").Where(qb.Eq("id", matchID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}
	return execOne(ctx, r.q, "delete match", query, args, "match "+matchID)
}

func matchBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(qb.Columns(matchTableModel{})...).From("matches")
}

type LineupRepository struct {
	q sqlx.ExtContext
}

func (r *LineupRepository) ExistsForMatch(ctx context.Context, matchID string) (bool, error) {
	return existsForMatch(ctx, r.q, "match_lineups", matchID)
}

func (r *LineupRepository) InsertMany(ctx context.Context, entries []match.LineupEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query, args, err := qb.InsertModels("match_lineups", mapRows(entries, lineupEntryToRow), "")
	if err != nil {
		return fmt.Errorf("build insert lineup query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert lineup snapshot", err)
	}
	return nil
}

func (r *LineupRepository) ListByMatch(ctx context.Context, matchID string) ([]match.LineupEntry, error) {
	query, args, err := qb.Select(qb.Columns(lineupEntryTableModel{})...).
		From("match_lineups").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("side DESC", "jersey_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineup query: %w", err)
	}

	var rows []lineupEntryTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineup match=%s: %w", matchID, err)
	}
	return mapRows(rows, lineupEntryFromRow), nil
}

type GoalRepository struct {
	q sqlx.ExtContext
}

func (r *GoalRepository) InsertMany(ctx context.Context, goals []match.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	query, args, err := qb.InsertModels("match_goals", mapRows(goals, goalToRow), "")
	if err != nil {
		return fmt.Errorf("build insert goals query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert goals", err)
	}
	return nil
}

func (r *GoalRepository) ListByMatch(ctx context.Context, matchID string) ([]match.Goal, error) {
	query, args, err := qb.Select(qb.Columns(goalTableModel{})...).
		From("match_goals").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("period", "minute", "second", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list goals query: %w", err)
	}

	var rows []goalTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list goals match=%s: %w", matchID, err)
	}
	return mapRows(rows, goalFromRow), nil
}

func existsForMatch(ctx context.Context, q sqlx.QueryerContext, table, matchID string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE match_id = $1)", table)
	var exists bool
	if err := sqlx.GetContext(ctx, q, &exists, query, matchID); err != nil {
		return false, fmt.Errorf("check %s for match %s: %w", table, matchID, err)
	}
	return exists, nil
}
