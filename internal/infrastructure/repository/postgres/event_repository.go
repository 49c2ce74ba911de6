package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/match-ingest/internal/domain/event"
	qb "github.com/riskibarqy/match-ingest/internal/platform/querybuilder"
)

type EventRepository struct {
	q sqlx.ExtContext
}

// InsertBatch writes the batch as one multi-row insert.
func (r *EventRepository) InsertBatch(ctx context.Context, events []event.MatchEvent) error {
	if len(events) == 0 {
		return nil
	}
	query, args, err := qb.InsertModels("match_events", mapRows(events, matchEventToRow), "")
	if err != nil {
		return fmt.Errorf("build insert match events query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert match events", err)
	}
	return nil
}

func (r *EventRepository) ListByMatch(ctx context.Context, matchID string) ([]event.MatchEvent, error) {
	query, args, err := qb.Select(qb.Columns(matchEventTableModel{})...).
		From("match_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("feed_index", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match events match=%s: %w", matchID, err)
	}
	return mapRows(rows, matchEventFromRow), nil
}
