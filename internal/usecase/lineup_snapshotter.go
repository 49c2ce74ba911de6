package usecase

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/player"
	"github.com/riskibarqy/match-ingest/internal/platform/id"
)

type LineupSnapshotter struct {
	ids id.Generator
}

func NewLineupSnapshotter(ids id.Generator) *LineupSnapshotter {
	return &LineupSnapshotter{ids: ids}
}

// Snapshot freezes the 22 as-fielded rows of a match. Names, jerseys and positions come from
// the feed, not the live roster.
func (s *LineupSnapshotter) Snapshot(
	ctx context.Context,
	repo match.LineupRepository,
	matchID string,
	ours, theirs []player.LineupEntry,
	roster RosterResult,
) ([]match.LineupEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupSnapshotter.Snapshot")
	defer span.End()

	exists, err := repo.ExistsForMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("check lineup snapshot: %w", err)
	}
	if exists {
		return nil, errors.Wrapf(ErrDuplicate, "lineup snapshot for match %s", matchID)
	}
	if len(ours) != LineupSize || len(theirs) != LineupSize {
		return nil, errors.Wrapf(ErrValidation, "lineup snapshot needs %d+%d players, got %d+%d",
			LineupSize, LineupSize, len(ours), len(theirs))
	}

	rows := make([]match.LineupEntry, 0, len(ours)+len(theirs))
	for _, entry := range ours {
		p, ok := roster.Ours[entry.ExternalPlayerID]
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "roster entry for our player %d", entry.ExternalPlayerID)
		}
		row, err := s.row(matchID, match.SideOurs, entry)
		if err != nil {
			return nil, err
		}
		row.PlayerID = p.ID
		rows = append(rows, row)
	}
	for _, entry := range theirs {
		p, ok := roster.Opponents[entry.ExternalPlayerID]
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "roster entry for opponent player %d", entry.ExternalPlayerID)
		}
		row, err := s.row(matchID, match.SideOpponent, entry)
		if err != nil {
			return nil, err
		}
		row.OpponentPlayerID = p.ID
		rows = append(rows, row)
	}

	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return nil, errors.Wrap(ErrValidation, err.Error())
		}
	}
	if err := repo.InsertMany(ctx, rows); err != nil {
		return nil, fmt.Errorf("insert lineup snapshot: %w", err)
	}
	return rows, nil
}

func (s *LineupSnapshotter) row(matchID string, side match.Side, entry player.LineupEntry) (match.LineupEntry, error) {
	rowID, err := s.ids.NewID()
	if err != nil {
		return match.LineupEntry{}, fmt.Errorf("generate lineup entry id: %w", err)
	}
	return match.LineupEntry{
		ID:               rowID,
		MatchID:          matchID,
		Side:             side,
		ExternalPlayerID: entry.ExternalPlayerID,
		Name:             entry.Name,
		JerseyNumber:     entry.JerseyNumber,
		Position:         entry.Position,
	}, nil
}
