package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-ingest/internal/domain/feed"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/platform/id"
)

type GoalExtractor struct {
	ids id.Generator
}

func NewGoalExtractor(ids id.Generator) *GoalExtractor {
	return &GoalExtractor{ids: ids}
}

// ExtractGoals uses the same counted-goal predicate as ComputeScore.
func ExtractGoals(events []feed.Event, teams TeamResolution) []match.Goal {
	out := make([]match.Goal, 0, 4)
	for _, ev := range events {
		if !ev.IsCountedGoal() {
			continue
		}
		scorerName := ev.PlayerName()
		if scorerName == "" {
			scorerName = match.UnknownScorer
		}
		out = append(out, match.Goal{
			Side:             teams.SideOf(ev.TeamID()),
			TeamExternalID:   ev.TeamID(),
			ScorerExternalID: idOrUnknown(ev.PlayerID()),
			ScorerName:       scorerName,
			Period:           ev.Period,
			Minute:           clockOrUnknown(ev.Minute),
			Second:           clockOrUnknown(ev.Second),
			FeedEventID:      ev.ID,
		})
	}
	return out
}

// Extract persists the match's goals. No goals is a valid result.
func (g *GoalExtractor) Extract(ctx context.Context, repo match.GoalRepository, matchID string, teams TeamResolution, events []feed.Event) ([]match.Goal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalExtractor.Extract")
	defer span.End()

	goals := ExtractGoals(events, teams)
	if len(goals) == 0 {
		return goals, nil
	}
	for i := range goals {
		goalID, err := g.ids.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate goal id: %w", err)
		}
		goals[i].ID = goalID
		goals[i].MatchID = matchID
	}
	if err := repo.InsertMany(ctx, goals); err != nil {
		return nil, fmt.Errorf("insert goals: %w", err)
	}
	return goals, nil
}
