package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/match-ingest/internal/domain/event"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/player"
	"github.com/riskibarqy/match-ingest/internal/domain/season"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

func TestWriteErrMapsConstraintViolations(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: storage.ErrDuplicate},
		{name: "foreign key violation", err: &pq.Error{Code: "23503"}, want: storage.ErrNotFound},
		{name: "wrapped unique violation", err: fmt.Errorf("exec: %w", &pq.Error{Code: "23505"}), want: storage.ErrDuplicate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := writeErr("insert row", tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("connection reset")
		got := writeErr("insert row", cause)
		if !errors.Is(got, cause) {
			t.Fatalf("expected cause to be wrapped, got %v", got)
		}
		if errors.Is(got, storage.ErrDuplicate) || errors.Is(got, storage.ErrNotFound) {
			t.Fatalf("unexpected sentinel mapping: %v", got)
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestPlayerRowRoundTrip(t *testing.T) {
	claimedAt := time.Date(2026, 4, 3, 9, 30, 0, 0, time.FixedZone("WIB", 7*3600))

	cases := []struct {
		name string
		in   player.Player
	}{
		{
			name: "pending",
			in: player.Player{
				ID: "player-1", ClubID: "club-1", ExternalPlayerID: 1001, Name: "Ari Lestari",
				JerseyNumber: 7, Position: "Left Wing", Membership: player.Pending{JoinCode: "ABCD2345"},
			},
		},
		{
			name: "claimed",
			in: player.Player{
				ID: "player-2", ClubID: "club-1", ExternalPlayerID: 1002, Name: "Bima Putra",
				JerseyNumber: 1, Position: "Goalkeeper", Membership: player.Claimed{AccountID: "acct-9", ClaimedAt: claimedAt},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row, err := playerToRow(tc.in)
			if err != nil {
				t.Fatalf("playerToRow: %v", err)
			}
			if row.State != string(tc.in.State()) {
				t.Fatalf("unexpected state column %q", row.State)
			}

			out, err := playerFromRow(row)
			if err != nil {
				t.Fatalf("playerFromRow: %v", err)
			}
			if out.State() != tc.in.State() || out.Name != tc.in.Name || out.JerseyNumber != tc.in.JerseyNumber {
				t.Fatalf("unexpected round trip: %+v", out)
			}
			if code, ok := tc.in.JoinCode(); ok {
				got, _ := out.JoinCode()
				if got != code {
					t.Fatalf("expected join code %q, got %q", code, got)
				}
			}
			if claimed, ok := out.Membership.(player.Claimed); ok {
				if !claimed.ClaimedAt.Equal(claimedAt) || claimed.ClaimedAt.Location() != time.UTC {
					t.Fatalf("expected claimed_at in UTC, got %v", claimed.ClaimedAt)
				}
			}
		})
	}
}

func TestPlayerRowRejectsMissingMembership(t *testing.T) {
	if _, err := playerToRow(player.Player{ID: "player-3"}); err == nil {
		t.Fatalf("expected error for player without membership")
	}
	if _, err := playerFromRow(playerTableModel{ID: "player-3", State: "retired"}); err == nil {
		t.Fatalf("expected error for unknown state")
	}
}

func TestMatchFromRowNormalizesDate(t *testing.T) {
	row := matchToRow(match.Match{
		ID:        "match-1",
		MatchDate: time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
		Venue:     match.VenueAway,
		Result:    match.ResultWin,
	})
	row.MatchDate = time.Date(2026, 4, 11, 7, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	got := matchFromRow(row)
	want := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)
	if !got.MatchDate.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.MatchDate)
	}
	if got.Venue != match.VenueAway || got.Result != match.ResultWin {
		t.Fatalf("unexpected match: %+v", got)
	}
}

func TestMatchStatisticsRowKeepsNotApplicableRatios(t *testing.T) {
	in := stats.MatchStatistics{
		MatchID:           "match-1",
		Side:              match.SideOurs,
		TeamExternalID:    100,
		Counters:          stats.Counters{Goals: 2, Shots: 5, ShotsOnTarget: 3, Passes: 40, PassesCompleted: 31},
		Saves:             4,
		PossessionPct:     stats.Percent(57, 100),
		PassCompletionPct: stats.Percent(31, 40),
		DribbleSuccessPct: stats.NotApplicable(),
		ShotAccuracyPct:   stats.Percent(3, 5),
	}

	row := matchStatisticsToRow(in)
	if row.DribbleSuccessPct != nil {
		t.Fatalf("expected NULL dribble success, got %v", *row.DribbleSuccessPct)
	}
	if row.Goals != 2 || row.PassesCompleted != 31 {
		t.Fatalf("unexpected counter columns: %+v", row.counterColumns)
	}

	out := matchStatisticsFromRow(row)
	if out != in {
		t.Fatalf("unexpected round trip:\nwant %+v\ngot  %+v", in, out)
	}
}

func TestSeasonRowsRoundTripThroughJSON(t *testing.T) {
	cs := season.ClubSeason{
		ClubID: "club-1", MatchesPlayed: 3, Wins: 2, Losses: 1, GoalsFor: 5, GoalsAgainst: 2, CleanSheets: 1, Form: "WLW",
		Averages: season.MatchAverages{Goals: 1.7, PossessionPct: stats.Percent(55, 100), DribbleSuccessPct: stats.NotApplicable()},
	}
	row, err := clubSeasonToRow(cs)
	if err != nil {
		t.Fatalf("clubSeasonToRow: %v", err)
	}
	gotClub, err := clubSeasonFromRow(row)
	if err != nil {
		t.Fatalf("clubSeasonFromRow: %v", err)
	}
	if gotClub != cs {
		t.Fatalf("unexpected club season:\nwant %+v\ngot  %+v", cs, gotClub)
	}

	ps := season.PlayerSeason{
		PlayerID: "player-1",
		ClubID:   "club-1",
		Totals: season.PlayerTotals{
			Appearances: 3,
			Assists:     1,
			Counters:    stats.Counters{Goals: 2, Shots: 6, ShotsOnTarget: 4},
		},
		Rates:      season.PlayerRates{GoalsPerMatch: 0.67, ShotAccuracyPct: stats.Percent(4, 6)},
		Attributes: season.Attributes{Attacking: 48, Technique: 10},
	}
	prow, err := playerSeasonToRow(ps)
	if err != nil {
		t.Fatalf("playerSeasonToRow: %v", err)
	}
	if prow.Goals != 2 || prow.Appearances != 3 || prow.Attacking != 48 {
		t.Fatalf("unexpected player season columns: %+v", prow)
	}
	gotPlayer, err := playerSeasonFromRow(prow)
	if err != nil {
		t.Fatalf("playerSeasonFromRow: %v", err)
	}
	if gotPlayer != ps {
		t.Fatalf("unexpected player season:\nwant %+v\ngot  %+v", ps, gotPlayer)
	}
}

func TestDecodeJSONAcceptsEmptyColumn(t *testing.T) {
	var out season.MatchAverages
	if err := decodeJSON("  ", &out); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	if out != (season.MatchAverages{}) {
		t.Fatalf("expected zero value, got %+v", out)
	}
}

func TestMatchEventRowKeepsRawRecordVerbatim(t *testing.T) {
	// Key order, duplicate keys and NUL escapes all survive; the column is json, not jsonb.
	raw := `{"type":{"name":"Pass","id":30},"id":"e-1","id":"e-1b","player":{"name":"A\u0000B"}}`
	in := event.MatchEvent{ID: "ev-1", MatchID: "m-1", FeedEventID: "e-1", Category: event.CategoryPass, Raw: json.RawMessage(raw)}

	row := matchEventToRow(in)
	if row.Raw == nil || *row.Raw != raw {
		t.Fatalf("raw column must hold the record byte for byte, got %v", row.Raw)
	}
	if got := matchEventFromRow(row); string(got.Raw) != raw {
		t.Fatalf("raw record changed on read: %s", got.Raw)
	}

	if row := matchEventToRow(event.MatchEvent{ID: "ev-2"}); row.Raw != nil {
		t.Fatalf("missing raw record must be stored as NULL")
	}
}

func TestMatchEventsMigrationStoresRawAsJSON(t *testing.T) {
	ddl, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "db", "migrations", "1776300100_create_matches.up.sql"))
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if !strings.Contains(string(ddl), "raw JSON NULL") || strings.Contains(strings.ToUpper(string(ddl)), "RAW JSONB") {
		t.Fatalf("match_events.raw must be a json column")
	}
}
