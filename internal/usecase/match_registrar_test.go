package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

func resolvedTeams() TeamResolution {
	return TeamResolution{
		Strategy: StrategyByName,
		Ours:     FeedTeam{ExternalID: homeTeam.ID, Name: homeTeam.Name},
		Opponent: FeedTeam{ExternalID: awayTeam.ID, Name: awayTeam.Name},
	}
}

func TestComputeScore_ExcludesShootout(t *testing.T) {
	events := standardFeed().Events()

	home, err := ComputeScore(events, match.VenueHome, homeTeam.ID, awayTeam.ID)
	if err != nil {
		t.Fatalf("compute score: %v", err)
	}
	if home != (match.Score{Home: 2, Away: 1}) {
		t.Fatalf("expected 2-1, got %s", home)
	}

	away, err := ComputeScore(events, match.VenueAway, homeTeam.ID, awayTeam.ID)
	if err != nil {
		t.Fatalf("compute score: %v", err)
	}
	if away != (match.Score{Home: 1, Away: 2}) {
		t.Fatalf("expected 1-2 when we played away, got %s", away)
	}
}

func TestMatchRegistrar_Register(t *testing.T) {
	store := newTestStore()
	registrar := NewMatchRegistrar(&sequenceIDs{prefix: "match"})
	events := standardFeed().Events()

	input := RegisterMatchInput{
		ClubID:       testClubID,
		OpponentID:   "opp-1",
		MatchDate:    matchDay(4),
		EnteredScore: match.Score{Home: 2, Away: 1},
		Teams:        resolvedTeams(),
	}

	inTx(t, store, func(ctx context.Context, repos storage.Repositories) error {
		m, replaced, err := registrar.Register(ctx, repos.Matches, input, events)
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if replaced {
			t.Fatalf("nothing to replace on first registration")
		}
		if m.Result != match.ResultWin || m.ComputedScore != m.EnteredScore {
			t.Fatalf("unexpected match: %+v", m)
		}
		if m.Venue != match.VenueHome {
			t.Fatalf("venue should default to home, got %q", m.Venue)
		}
		return nil
	})

	inTx(t, store, func(ctx context.Context, repos storage.Repositories) error {
		_, _, err := registrar.Register(ctx, repos.Matches, input, events)
		if !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate for the same fixture, got %v", err)
		}

		replacing := input
		replacing.Replace = true
		_, replaced, err := registrar.Register(ctx, repos.Matches, replacing, events)
		if err != nil || !replaced {
			t.Fatalf("expected replacement, replaced=%v err=%v", replaced, err)
		}
		return nil
	})
}

func TestMatchRegistrar_ScoreMismatch(t *testing.T) {
	store := newTestStore()
	registrar := NewMatchRegistrar(&sequenceIDs{prefix: "match"})

	err := store.WithinTx(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		_, _, err := registrar.Register(ctx, repos.Matches, RegisterMatchInput{
			ClubID:       testClubID,
			OpponentID:   "opp-1",
			MatchDate:    matchDay(4),
			EnteredScore: match.Score{Home: 3, Away: 1},
			Teams:        resolvedTeams(),
		}, standardFeed().Events())
		return err
	})

	if !errors.Is(err, ErrConsistency) {
		t.Fatalf("expected ErrConsistency, got %v", err)
	}
	var mismatch *ScoreMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ScoreMismatchError, got %T", err)
	}
	if mismatch.Entered != (match.Score{Home: 3, Away: 1}) || mismatch.Computed != (match.Score{Home: 2, Away: 1}) {
		t.Fatalf("unexpected tallies: entered=%s computed=%s", mismatch.Entered, mismatch.Computed)
	}
	if store.Counts().Matches != 0 {
		t.Fatalf("no match may be stored on mismatch")
	}
}
