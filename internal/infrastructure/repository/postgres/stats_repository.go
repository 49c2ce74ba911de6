package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
	qb "github.com/riskibarqy/match-ingest/internal/platform/querybuilder"
)

type MatchStatsRepository struct {
	q sqlx.ExtContext
}

func (r *MatchStatsRepository) ExistsForMatch(ctx context.Context, matchID string) (bool, error) {
	return existsForMatch(ctx, r.q, "match_statistics", matchID)
}

func (r *MatchStatsRepository) InsertMany(ctx context.Context, rows []stats.MatchStatistics) error {
	if len(rows) == 0 {
		return nil
	}
	query, args, err := qb.InsertModels("match_statistics", mapRows(rows, matchStatisticsToRow), "")
	if err != nil {
		return fmt.Errorf("build insert match statistics query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert match statistics", err)
	}
	return nil
}

func (r *MatchStatsRepository) ListByMatch(ctx context.Context, matchID string) ([]stats.MatchStatistics, error) {
	query, args, err := qb.Select(qb.Columns(matchStatisticsTableModel{})...).
		From("match_statistics").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("side DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match statistics query: %w", err)
	}

	var rows []matchStatisticsTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match statistics match=%s: %w", matchID, err)
	}
	return mapRows(rows, matchStatisticsFromRow), nil
}

func (r *MatchStatsRepository) ListByClub(ctx context.Context, clubID string, side match.Side) ([]stats.MatchStatistics, error) {
	query, args, err := qb.Select(qualified("s", qb.Columns(matchStatisticsTableModel{}))...).
		From("match_statistics s").
		Join("JOIN matches m ON m.id = s.match_id").
		Where(
			qb.Eq("m.club_id", clubID),
			qb.Eq("s.side", string(side)),
		).
		OrderBy("m.match_date", "m.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list club match statistics query: %w", err)
	}

	var rows []matchStatisticsTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match statistics club=%s: %w", clubID, err)
	}
	return mapRows(rows, matchStatisticsFromRow), nil
}

type PlayerStatsRepository struct {
	q sqlx.ExtContext
}

func (r *PlayerStatsRepository) ExistsForMatch(ctx context.Context, matchID string) (bool, error) {
	return existsForMatch(ctx, r.q, "player_match_statistics", matchID)
}

func (r *PlayerStatsRepository) InsertMany(ctx context.Context, rows []stats.PlayerMatchStatistics) error {
	if len(rows) == 0 {
		return nil
	}
	query, args, err := qb.InsertModels("player_match_statistics", mapRows(rows, playerMatchStatisticsToRow), "")
	if err != nil {
		return fmt.Errorf("build insert player statistics query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert player statistics", err)
	}
	return nil
}

func (r *PlayerStatsRepository) ListByMatch(ctx context.Context, matchID string) ([]stats.PlayerMatchStatistics, error) {
	query, args, err := qb.Select(qb.Columns(playerMatchStatisticsTableModel{})...).
		From("player_match_statistics").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player statistics query: %w", err)
	}

	var rows []playerMatchStatisticsTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player statistics match=%s: %w", matchID, err)
	}
	return mapRows(rows, playerMatchStatisticsFromRow), nil
}

func (r *PlayerStatsRepository) ListByClub(ctx context.Context, clubID string) ([]stats.PlayerMatchStatistics, error) {
	query, args, err := qb.Select(qualified("s", qb.Columns(playerMatchStatisticsTableModel{}))...).
		From("player_match_statistics s").
		Join("JOIN matches m ON m.id = s.match_id").
		Where(qb.Eq("s.club_id", clubID)).
		OrderBy("s.player_id", "m.match_date", "m.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list club player statistics query: %w", err)
	}

	var rows []playerMatchStatisticsTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player statistics club=%s: %w", clubID, err)
	}
	return mapRows(rows, playerMatchStatisticsFromRow), nil
}

func qualified(alias string, columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		out = append(out, alias+"."+col)
	}
	return out
}
