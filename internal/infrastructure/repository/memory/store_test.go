package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-ingest/internal/domain/club"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/player"
	"github.com/riskibarqy/match-ingest/internal/domain/season"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

func sampleMatch(id string, day int) match.Match {
	return match.Match{
		ID:         id,
		ClubID:     ClubIDHarbour,
		OpponentID: "opp-1",
		MatchDate:  time.Date(2026, 4, day, 0, 0, 0, 0, time.UTC),
		Venue:      match.VenueHome,
	}
}

func TestStore_CommitsOnSuccess(t *testing.T) {
	store := NewStore(SeedClubs()...)

	err := store.WithinTx(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		return repos.Matches.Create(ctx, sampleMatch("m-1", 4))
	})
	if err != nil {
		t.Fatalf("within tx: %v", err)
	}
	if got := store.Counts().Matches; got != 1 {
		t.Fatalf("expected committed match, got %d", got)
	}
}

func TestStore_RollsBackOnError(t *testing.T) {
	store := NewStore(SeedClubs()...)
	boom := errors.New("boom")

	err := store.WithinTx(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		if err := repos.Matches.Create(ctx, sampleMatch("m-1", 4)); err != nil {
			return err
		}
		if err := repos.Clubs.SetExternalTeamID(ctx, ClubIDHarbour, 100); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got := store.Counts(); got != (Counts{Clubs: 2}) {
		t.Fatalf("expected nothing committed, got %+v", got)
	}

	err = store.Read(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		c, _, err := repos.Clubs.GetByID(ctx, ClubIDHarbour)
		if c.ExternalTeamID != 0 {
			t.Fatalf("club update leaked out of a failed transaction")
		}
		return err
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
}

func TestStore_DiscardsCancelledTransaction(t *testing.T) {
	store := NewStore(SeedClubs()...)
	ctx, cancel := context.WithCancel(t.Context())

	err := store.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		if err := repos.Matches.Create(ctx, sampleMatch("m-1", 4)); err != nil {
			return err
		}
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if store.Counts().Matches != 0 {
		t.Fatalf("cancelled transaction must not commit")
	}
}

func TestStore_MatchDeleteCascades(t *testing.T) {
	store := NewStore(SeedClubs()...)

	err := store.WithinTx(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		if err := repos.Matches.Create(ctx, sampleMatch("m-1", 4)); err != nil {
			return err
		}
		if err := repos.Goals.InsertMany(ctx, []match.Goal{{ID: "g-1", MatchID: "m-1", Side: match.SideOurs}}); err != nil {
			return err
		}
		if err := repos.Matches.Create(ctx, sampleMatch("m-2", 4)); !errors.Is(err, storage.ErrDuplicate) {
			t.Fatalf("same fixture must be a duplicate, got %v", err)
		}
		return repos.Matches.Delete(ctx, "m-1")
	})
	if err != nil {
		t.Fatalf("within tx: %v", err)
	}
	if got := store.Counts(); got.Matches != 0 || got.Goals != 0 {
		t.Fatalf("delete must cascade, got %+v", got)
	}
}

func TestStore_ClaimPlayer(t *testing.T) {
	store := NewStore(club.Club{ID: ClubIDHarbour, Name: "Harbour Athletic"})
	err := store.WithinTx(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		return repos.Players.Create(ctx, player.Player{
			ID:               "p-1",
			ClubID:           ClubIDHarbour,
			ExternalPlayerID: 1001,
			Name:             "Player 1001",
			Membership:       player.Pending{JoinCode: "ABCD2345"},
		})
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	err = store.WithinTx(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		return repos.Players.UpdateSquadDetails(ctx, "p-1", 7, "Midfielder")
	})
	if err != nil {
		t.Fatalf("pending player update: %v", err)
	}

	at := time.Date(2026, 4, 5, 10, 0, 0, 0, time.UTC)
	if err := store.ClaimPlayer(t.Context(), "p-1", "account-1", at); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := store.ClaimPlayer(t.Context(), "p-1", "account-2", at); !errors.Is(err, player.ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}

	err = store.Read(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		exists, err := repos.Players.JoinCodeExists(ctx, "ABCD2345")
		if exists {
			t.Fatalf("claimed players give up their join code")
		}
		return err
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	err = store.WithinTx(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		return repos.Players.UpdateSquadDetails(ctx, "p-1", 9, "Forward")
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("claimed player update must be ErrNotFound, got %v", err)
	}
	err = store.Read(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		p, _, err := repos.Players.GetByExternalID(ctx, ClubIDHarbour, 1001)
		if p.JerseyNumber != 7 || p.Position != "Midfielder" {
			t.Fatalf("claimed player changed: %+v", p)
		}
		return err
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
}

func TestConcurrentStore_OverlappingTransactions(t *testing.T) {
	store := NewConcurrentStore(SeedClubs()...)

	// Both transactions take their snapshot before either commits.
	bothOpen := make(chan struct{})
	opened := make(chan struct{}, 2)
	store.OnSnapshot(func(context.Context) {
		opened <- struct{}{}
		<-bothOpen
	})

	run := func(matchID string, day, goalsFor int, done chan<- error) {
		done <- store.WithinTx(context.Background(), func(ctx context.Context, repos storage.Repositories) error {
			if err := repos.Matches.Create(ctx, sampleMatch(matchID, day)); err != nil {
				return err
			}
			return repos.Seasons.UpsertClubSeason(ctx, season.ClubSeason{ClubID: ClubIDHarbour, MatchesPlayed: 1, GoalsFor: goalsFor})
		})
	}
	first, second := make(chan error, 1), make(chan error, 1)
	go run("m-1", 4, 1, first)
	go run("m-2", 11, 2, second)
	<-opened
	<-opened
	close(bothOpen)
	if err := <-first; err != nil {
		t.Fatalf("first tx: %v", err)
	}
	if err := <-second; err != nil {
		t.Fatalf("second tx: %v", err)
	}

	got := store.Counts()
	if got.Matches != 2 || got.ClubSeasons != 1 {
		t.Fatalf("rows written by both transactions must be kept, got %+v", got)
	}
	err := store.Read(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		cs, _, err := repos.Seasons.GetClubSeason(ctx, ClubIDHarbour)
		if cs.MatchesPlayed != 1 {
			t.Fatalf("each transaction rewrote the rollup from its own snapshot, got %+v", cs)
		}
		return err
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
}
