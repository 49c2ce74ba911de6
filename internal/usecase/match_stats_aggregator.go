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

type MatchStatsAggregator struct {
	outcomes *stats.Taxonomy
}

func NewMatchStatsAggregator() *MatchStatsAggregator {
	return &MatchStatsAggregator{outcomes: stats.Outcomes}
}

// Aggregate writes the ours and opponent rows of a match from its stored events, plus one
// pass over the full feed for possession and defensive actions.
func (a *MatchStatsAggregator) Aggregate(
	ctx context.Context,
	events event.Repository,
	repo stats.MatchRepository,
	m match.Match,
	feedEvents []feed.Event,
) ([]stats.MatchStatistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchStatsAggregator.Aggregate")
	defer span.End()

	exists, err := repo.ExistsForMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("check match statistics: %w", err)
	}
	if exists {
		return nil, errors.Wrapf(ErrDuplicate, "match statistics for match %s", m.ID)
	}

	stored, err := events.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}

	rows := a.Compute(m, stored, feedEvents)
	if err := repo.InsertMany(ctx, rows); err != nil {
		return nil, fmt.Errorf("insert match statistics: %w", err)
	}
	return rows, nil
}

// Compute derives both rows without touching storage.
func (a *MatchStatsAggregator) Compute(m match.Match, stored []event.MatchEvent, feedEvents []feed.Event) []stats.MatchStatistics {
	ours := stats.MatchStatistics{MatchID: m.ID, Side: match.SideOurs, TeamExternalID: m.OurTeamID}
	theirs := stats.MatchStatistics{MatchID: m.ID, Side: match.SideOpponent, TeamExternalID: m.OpponentTeamID}
	bySide := map[match.Side]*stats.MatchStatistics{
		match.SideOurs:     &ours,
		match.SideOpponent: &theirs,
	}

	for _, ev := range stored {
		row, ok := bySide[m.SideOf(ev.TeamExternalID)]
		if !ok {
			continue
		}
		tallyEvent(&row.Counters, ev, a.outcomes)

		if ev.Category == event.CategoryShot && !ev.IsShootout() && a.outcomes.IsGoalkeeperSave(ev.Outcome) {
			// The defending side's keeper made the save.
			if row == &ours {
				theirs.Saves++
			} else {
				ours.Saves++
			}
		}
	}

	var oursSeconds, theirsSeconds float64
	for _, ev := range feedEvents {
		if row, ok := bySide[m.SideOf(ev.TeamID())]; ok {
			tallyDefensive(&row.Counters, ev, a.outcomes)
		}
		if ev.IsShootout() {
			continue
		}
		switch m.SideOf(ev.PossessionTeamID()) {
		case match.SideOurs:
			oursSeconds += ev.DurationSeconds()
		case match.SideOpponent:
			theirsSeconds += ev.DurationSeconds()
		}
	}

	ours.PossessionPct, theirs.PossessionPct = PossessionShares(oursSeconds, theirsSeconds)
	for _, row := range []*stats.MatchStatistics{&ours, &theirs} {
		row.PassCompletionPct = row.PassCompletion()
		row.DribbleSuccessPct = row.DribbleSuccess()
		row.ShotAccuracyPct = row.ShotAccuracy()
	}

	return []stats.MatchStatistics{ours, theirs}
}

// PossessionShares splits accounted time into two percentages that sum to exactly 100.
func PossessionShares(oursSeconds, theirsSeconds float64) (stats.Ratio, stats.Ratio) {
	ours := stats.Percent(oursSeconds, oursSeconds+theirsSeconds)
	if !ours.Applicable {
		return stats.NotApplicable(), stats.NotApplicable()
	}
	return ours, stats.Ratio{Value: stats.Round(100-ours.Value, 1), Applicable: true}
}
