package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/match-ingest/internal/domain/player"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

func lineupEntries(team []int64, jersey func(i int) int) []player.LineupEntry {
	out := make([]player.LineupEntry, 0, len(team))
	for i, id := range team {
		out = append(out, player.LineupEntry{ExternalPlayerID: id, Name: "Feed Name", JerseyNumber: jersey(i), Position: "Midfielder"})
	}
	return out
}

func TestRosterReconciler_CreatesPendingPlayersWithUniqueCodes(t *testing.T) {
	store := newTestStore()
	codes := &scriptedCodes{codes: []string{"DUPL2345", "DUPL2345"}}
	reconciler := NewRosterReconciler(&sequenceIDs{prefix: "player"}, codes)
	ours := lineupEntries(homeTeam.Players, func(i int) int { return i + 1 })
	theirs := lineupEntries(awayTeam.Players, func(i int) int { return i + 1 })

	var result RosterResult
	inTx(t, store, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		result, err = reconciler.Reconcile(ctx, repos.Players, repos.OpponentPlayers, testClubID, "opp-1", ours, theirs)
		return err
	})

	if result.Created != 11 || result.OpponentCreated != 11 || len(result.JoinCodes) != 11 {
		t.Fatalf("unexpected result: created=%d opponent=%d codes=%d", result.Created, result.OpponentCreated, len(result.JoinCodes))
	}
	seen := make(map[string]struct{})
	for _, jc := range result.JoinCodes {
		if _, dup := seen[jc.JoinCode]; dup {
			t.Fatalf("join code %s issued twice", jc.JoinCode)
		}
		seen[jc.JoinCode] = struct{}{}
	}
	for _, p := range result.Ours {
		if p.State() != player.StatePending {
			t.Fatalf("new players must be pending, got %s", p.State())
		}
	}
}

func TestRosterReconciler_ClaimedPlayerIsNeverWritten(t *testing.T) {
	store := newTestStore()
	reconciler := NewRosterReconciler(&sequenceIDs{prefix: "player"}, &scriptedCodes{})
	theirs := lineupEntries(awayTeam.Players, func(i int) int { return i + 1 })

	var first RosterResult
	inTx(t, store, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		first, err = reconciler.Reconcile(ctx, repos.Players, repos.OpponentPlayers, testClubID, "opp-1",
			lineupEntries(homeTeam.Players, func(i int) int { return i + 1 }), theirs)
		return err
	})

	claimed := first.Ours[homeTeam.Players[0]]
	pending := first.Ours[homeTeam.Players[1]]
	if err := store.ClaimPlayer(t.Context(), claimed.ID, "account-1", matchDay(1)); err != nil {
		t.Fatalf("claim player: %v", err)
	}

	renamed := lineupEntries(homeTeam.Players, func(i int) int { return i + 40 })
	renamed[1].Name = "Different Name"

	var second RosterResult
	inTx(t, store, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		second, err = reconciler.Reconcile(ctx, repos.Players, repos.OpponentPlayers, testClubID, "opp-1", renamed, theirs)
		return err
	})
	if second.Created != 0 || second.Updated != 10 || second.Untouched != 1 {
		t.Fatalf("unexpected counts: created=%d updated=%d untouched=%d", second.Created, second.Updated, second.Untouched)
	}

	read(t, store, func(ctx context.Context, repos storage.Repositories) error {
		got, ok, err := repos.Players.GetByExternalID(ctx, testClubID, claimed.ExternalPlayerID)
		if err != nil || !ok {
			t.Fatalf("claimed player missing: ok=%v err=%v", ok, err)
		}
		if got.JerseyNumber != claimed.JerseyNumber || !got.IsClaimed() {
			t.Fatalf("claimed player was modified: %+v", got)
		}

		updated, _, _ := repos.Players.GetByExternalID(ctx, testClubID, pending.ExternalPlayerID)
		if updated.JerseyNumber != 41 {
			t.Fatalf("pending jersey should follow the feed, got %d", updated.JerseyNumber)
		}
		if updated.Name != pending.Name {
			t.Fatalf("pending name must not change, got %q", updated.Name)
		}
		code, _ := updated.JoinCode()
		original, _ := pending.JoinCode()
		if code != original {
			t.Fatalf("join code must not change: %q vs %q", code, original)
		}
		return nil
	})
}
