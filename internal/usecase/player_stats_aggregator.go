package usecase

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-ingest/internal/domain/event"
	"github.com/riskibarqy/match-ingest/internal/domain/feed"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
)

type PlayerStatsAggregator struct {
	outcomes *stats.Taxonomy
}

func NewPlayerStatsAggregator() *PlayerStatsAggregator {
	return &PlayerStatsAggregator{outcomes: stats.Outcomes}
}

// Aggregate writes one row per fielded player on our side.
func (a *PlayerStatsAggregator) Aggregate(
	ctx context.Context,
	events event.Repository,
	lineups match.LineupRepository,
	repo stats.PlayerRepository,
	m match.Match,
	feedEvents []feed.Event,
) ([]stats.PlayerMatchStatistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsAggregator.Aggregate")
	defer span.End()

	exists, err := repo.ExistsForMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("check player statistics: %w", err)
	}
	if exists {
		return nil, errors.Wrapf(ErrDuplicate, "player statistics for match %s", m.ID)
	}

	lineup, err := lineups.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list lineup snapshot: %w", err)
	}
	stored, err := events.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}

	rows := a.Compute(m, lineup, stored, feedEvents)
	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "no fielded players on our side for match %s", m.ID)
	}
	if err := repo.InsertMany(ctx, rows); err != nil {
		return nil, fmt.Errorf("insert player statistics: %w", err)
	}
	return rows, nil
}

// Compute derives the rows in lineup order without touching storage.
func (a *PlayerStatsAggregator) Compute(m match.Match, lineup []match.LineupEntry, stored []event.MatchEvent, feedEvents []feed.Event) []stats.PlayerMatchStatistics {
	rows := make([]stats.PlayerMatchStatistics, 0, LineupSize)
	index := make(map[int64]int, LineupSize)
	for _, entry := range lineup {
		if entry.Side != match.SideOurs {
			continue
		}
		index[entry.ExternalPlayerID] = len(rows)
		rows = append(rows, stats.PlayerMatchStatistics{
			MatchID:          m.ID,
			PlayerID:         entry.PlayerID,
			ClubID:           m.ClubID,
			ExternalPlayerID: entry.ExternalPlayerID,
		})
	}

	for _, ev := range stored {
		if ev.Side != match.SideOurs || !ev.HasActor() {
			continue
		}
		if i, ok := index[ev.ActorExternalID]; ok {
			tallyEvent(&rows[i].Counters, ev, a.outcomes)
		}
	}
	for _, ev := range feedEvents {
		if m.SideOf(ev.TeamID()) != match.SideOurs {
			continue
		}
		if i, ok := index[ev.PlayerID()]; ok {
			tallyDefensive(&rows[i].Counters, ev, a.outcomes)
		}
	}
	for passer, n := range AttributeAssists(stored) {
		if i, ok := index[passer]; ok {
			rows[i].Assists += n
		}
	}

	for i := range rows {
		rows[i].PassCompletionPct = rows[i].PassCompletion()
		rows[i].DribbleSuccessPct = rows[i].DribbleSuccess()
		rows[i].ShotAccuracyPct = rows[i].ShotAccuracy()
	}
	return rows
}

// AttributeAssists credits, for each counted goal, the last completed pass to the scorer by a
// teammate within the same possession sequence. events must be in feed order. The result is
// keyed by the passer's external id.
func AttributeAssists(events []event.MatchEvent) map[int64]int {
	out := make(map[int64]int)
	for i, goal := range events {
		if goal.Category != event.CategoryShot || goal.Outcome != stats.OutcomeGoal || goal.IsShootout() {
			continue
		}
		if !goal.HasActor() || goal.Possession == event.UnknownNumber {
			continue
		}

		for j := i - 1; j >= 0; j-- {
			prev := events[j]
			if prev.Possession != goal.Possession {
				break
			}
			if prev.Category != event.CategoryPass || prev.Outcome != stats.OutcomeComplete {
				continue
			}
			if prev.TeamExternalID != goal.TeamExternalID || prev.RecipientExternalID != goal.ActorExternalID {
				continue
			}
			if prev.HasActor() && prev.ActorExternalID != goal.ActorExternalID {
				out[prev.ActorExternalID]++
			}
			break
		}
	}
	return out
}
