package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-ingest/internal/domain/feed"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/platform/id"
)

type RegisterMatchInput struct {
	ClubID       string
	OpponentID   string
	MatchDate    time.Time
	Venue        match.Venue
	EnteredScore match.Score
	Teams        TeamResolution
	// Replace deletes an existing match for the same fixture, with every derived row.
	Replace bool
}

type MatchRegistrar struct {
	ids id.Generator
}

func NewMatchRegistrar(ids id.Generator) *MatchRegistrar {
	return &MatchRegistrar{ids: ids}
}

// ComputeScore tallies counted goals by the scoring event's own team. Shootout kicks never count.
func ComputeScore(events []feed.Event, venue match.Venue, ourTeamID, opponentTeamID int64) (match.Score, error) {
	var ours, theirs int
	for _, ev := range events {
		if !ev.IsCountedGoal() {
			continue
		}
		switch ev.TeamID() {
		case ourTeamID:
			ours++
		case opponentTeamID:
			theirs++
		default:
			return match.Score{}, errors.Wrapf(ErrValidation, "goal event %s belongs to team %d, not a participant", ev.ID, ev.TeamID())
		}
	}
	return match.ScoreFromSides(venue, ours, theirs), nil
}

// Register reconciles the entered score against the feed and persists the match. It returns
// whether an existing match was replaced.
func (r *MatchRegistrar) Register(ctx context.Context, repo match.Repository, in RegisterMatchInput, events []feed.Event) (match.Match, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchRegistrar.Register")
	defer span.End()

	venue := match.NormalizeVenue(string(in.Venue))
	computed, err := ComputeScore(events, venue, in.Teams.Ours.ExternalID, in.Teams.Opponent.ExternalID)
	if err != nil {
		return match.Match{}, false, err
	}
	if computed != in.EnteredScore {
		return match.Match{}, false, &ScoreMismatchError{Venue: venue, Entered: in.EnteredScore, Computed: computed}
	}

	replaced := false
	existing, ok, err := repo.FindByFixture(ctx, in.ClubID, in.OpponentID, dateOnly(in.MatchDate))
	if err != nil {
		return match.Match{}, false, fmt.Errorf("find match by fixture: %w", err)
	}
	if ok {
		if !in.Replace {
			return match.Match{}, false, errors.Wrapf(ErrDuplicate, "match %s against opponent %s on %s already ingested",
				existing.ID, in.OpponentID, in.MatchDate.Format(time.DateOnly))
		}
		if err := repo.Delete(ctx, existing.ID); err != nil {
			return match.Match{}, false, fmt.Errorf("delete replaced match id=%s: %w", existing.ID, err)
		}
		replaced = true
	}

	matchID, err := r.ids.NewID()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("generate match id: %w", err)
	}
	ours, theirs := computed.Oriented(venue)
	m := match.Match{
		ID:             matchID,
		ClubID:         in.ClubID,
		OpponentID:     in.OpponentID,
		MatchDate:      dateOnly(in.MatchDate),
		Venue:          venue,
		EnteredScore:   in.EnteredScore,
		ComputedScore:  computed,
		Result:         match.Classify(ours, theirs),
		OurTeamID:      in.Teams.Ours.ExternalID,
		OpponentTeamID: in.Teams.Opponent.ExternalID,
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, false, errors.Wrap(ErrValidation, err.Error())
	}
	if err := repo.Create(ctx, m); err != nil {
		return match.Match{}, false, fmt.Errorf("create match: %w", err)
	}

	return m, replaced, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
