package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/match-ingest/internal/domain/event"
	"github.com/riskibarqy/match-ingest/internal/domain/feed"
	"github.com/riskibarqy/match-ingest/internal/domain/feed/feedtest"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

func testMatch() match.Match {
	return match.Match{
		ID:             "match-1",
		ClubID:         testClubID,
		OpponentID:     "opp-1",
		MatchDate:      matchDay(4),
		Venue:          match.VenueHome,
		OurTeamID:      homeTeam.ID,
		OpponentTeamID: awayTeam.ID,
	}
}

func storedEvents(t *testing.T, feedEvents []feed.Event) []event.MatchEvent {
	t.Helper()
	out := make([]event.MatchEvent, 0, len(feedEvents))
	for i, ev := range feedEvents {
		if row, ok := ExtractEvent(ev, resolvedTeams()); ok {
			row.ID = fmt.Sprintf("row-%d", i)
			row.MatchID = "match-1"
			out = append(out, row)
		}
	}
	return out
}

func TestMatchStatsAggregator_Compute(t *testing.T) {
	feedEvents := standardFeed().Events()
	rows := NewMatchStatsAggregator().Compute(testMatch(), storedEvents(t, feedEvents), feedEvents)

	if len(rows) != 2 {
		t.Fatalf("expected exactly two rows, got %d", len(rows))
	}
	ours, theirs := rows[0], rows[1]
	if ours.Side != match.SideOurs || theirs.Side != match.SideOpponent {
		t.Fatalf("unexpected sides %s/%s", ours.Side, theirs.Side)
	}

	if ours.Goals != 2 || ours.Shots != 2 || ours.ShotsOnTarget != 2 {
		t.Fatalf("unexpected ours shooting: %+v", ours.Counters)
	}
	if ours.Passes != 1 || ours.PassesCompleted != 1 || ours.Dribbles != 1 || ours.DribblesCompleted != 1 {
		t.Fatalf("unexpected ours passing: %+v", ours.Counters)
	}
	if ours.Saves != 1 || theirs.Saves != 0 {
		t.Fatalf("save should go to the defending side: ours=%d theirs=%d", ours.Saves, theirs.Saves)
	}
	if theirs.Goals != 1 || theirs.Shots != 2 || theirs.ShotsOnTarget != 2 {
		t.Fatalf("shootout kick must not count: %+v", theirs.Counters)
	}

	if ours.PossessionPct.Value != 57.1 || theirs.PossessionPct.Value != 42.9 {
		t.Fatalf("unexpected possession %s/%s", ours.PossessionPct, theirs.PossessionPct)
	}
	if stats.Round(ours.PossessionPct.Value+theirs.PossessionPct.Value, 1) != 100 {
		t.Fatalf("possession must sum to 100")
	}
	if ours.PassCompletionPct.Value != 100 || ours.ShotAccuracyPct.Value != 100 {
		t.Fatalf("unexpected ratios pass=%s shot=%s", ours.PassCompletionPct, ours.ShotAccuracyPct)
	}
}

func TestMatchStatsAggregator_DefensiveAndPassingDetail(t *testing.T) {
	b := feedtest.New(homeTeam, awayTeam)
	b.Possession(homeTeam).
		PassWith(homeTeam, 1002, 1003, feedtest.PassSpec{Length: 32, StartX: 60, EndX: 90}).
		PassWith(homeTeam, 1003, 1004, feedtest.PassSpec{Length: 8, StartX: 90, EndX: 95, Cross: true}).
		PassWith(homeTeam, 1004, 1005, feedtest.PassSpec{Length: 40, StartX: 50, EndX: 100, Incomplete: true})
	b.Possession(awayTeam).Shot(awayTeam, 2009, "Blocked")
	b.Tackle(homeTeam, 1003, "Won").Tackle(homeTeam, 1004, "Lost In Play")
	b.Interception(homeTeam, 1005, "Success In Play").Recovery(homeTeam, 1006, false).Recovery(homeTeam, 1007, true)
	feedEvents := b.Events()

	rows := NewMatchStatsAggregator().Compute(testMatch(), storedEvents(t, feedEvents), feedEvents)
	ours, theirs := rows[0], rows[1]

	want := stats.Counters{
		Passes:           3,
		PassesCompleted:  2,
		FinalThirdPasses: 1,
		LongPasses:       2,
		Crosses:          1,
		Tackles:          1,
		Interceptions:    1,
		BallRecoveries:   1,
	}
	if ours.Counters != want {
		t.Fatalf("unexpected counters\nwant %+v\ngot  %+v", want, ours.Counters)
	}
	if ours.PassCompletionPct.Value != 66.7 {
		t.Fatalf("expected 66.7%% completion, got %s", ours.PassCompletionPct)
	}
	if ours.DribbleSuccessPct.Applicable || ours.ShotAccuracyPct.Applicable {
		t.Fatalf("ratios without attempts must be not applicable")
	}
	if theirs.Shots != 1 || theirs.ShotsOnTarget != 0 || theirs.ShotsOffTarget != 0 {
		t.Fatalf("blocked shot counts in total only: %+v", theirs.Counters)
	}
	if ours.Saves != 0 {
		t.Fatalf("blocked shot is not a save")
	}
}

func TestPossessionShares(t *testing.T) {
	tests := []struct {
		name                string
		ours, theirs        float64
		wantOurs, wantTheir float64
		applicable          bool
	}{
		{name: "even", ours: 30, theirs: 30, wantOurs: 50, wantTheir: 50, applicable: true},
		{name: "thirds", ours: 1, theirs: 2, wantOurs: 33.3, wantTheir: 66.7, applicable: true},
		{name: "no time", applicable: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ours, theirs := PossessionShares(tc.ours, tc.theirs)
			if ours.Applicable != tc.applicable || theirs.Applicable != tc.applicable {
				t.Fatalf("unexpected applicability %v/%v", ours.Applicable, theirs.Applicable)
			}
			if ours.Value != tc.wantOurs || theirs.Value != tc.wantTheir {
				t.Fatalf("expected %.1f/%.1f, got %.1f/%.1f", tc.wantOurs, tc.wantTheir, ours.Value, theirs.Value)
			}
		})
	}
}

func TestAggregators_ShareOneTaxonomy(t *testing.T) {
	if NewMatchStatsAggregator().outcomes != stats.Outcomes || NewPlayerStatsAggregator().outcomes != stats.Outcomes {
		t.Fatalf("both aggregators must classify with the shared outcome taxonomy")
	}
}

func TestMatchStatsAggregator_RejectsSecondRun(t *testing.T) {
	store := newTestStore()
	feedEvents := standardFeed().Events()
	aggregator := NewMatchStatsAggregator()

	inTx(t, store, func(ctx context.Context, repos storage.Repositories) error {
		if err := repos.Matches.Create(ctx, testMatch()); err != nil {
			return err
		}
		if err := repos.Events.InsertBatch(ctx, storedEvents(t, feedEvents)); err != nil {
			return err
		}
		_, err := aggregator.Aggregate(ctx, repos.Events, repos.MatchStats, testMatch(), feedEvents)
		return err
	})

	err := store.WithinTx(t.Context(), func(ctx context.Context, repos storage.Repositories) error {
		_, err := aggregator.Aggregate(ctx, repos.Events, repos.MatchStats, testMatch(), feedEvents)
		return err
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if store.Counts().MatchStats != 2 {
		t.Fatalf("expected the first two rows to remain, got %d", store.Counts().MatchStats)
	}
}
