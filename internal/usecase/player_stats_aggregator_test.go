package usecase

import (
	"testing"

	"github.com/riskibarqy/match-ingest/internal/domain/event"
	"github.com/riskibarqy/match-ingest/internal/domain/feed/feedtest"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
)

func ourLineup(matchID string) []match.LineupEntry {
	out := make([]match.LineupEntry, 0, LineupSize*2)
	for i, ext := range homeTeam.Players {
		out = append(out, match.LineupEntry{MatchID: matchID, Side: match.SideOurs, PlayerID: feedtest.PlayerName(ext), ExternalPlayerID: ext, JerseyNumber: i + 1})
	}
	for i, ext := range awayTeam.Players {
		out = append(out, match.LineupEntry{MatchID: matchID, Side: match.SideOpponent, OpponentPlayerID: feedtest.PlayerName(ext), ExternalPlayerID: ext, JerseyNumber: i + 1})
	}
	return out
}

func TestPlayerStatsAggregator_Compute(t *testing.T) {
	feedEvents := standardFeed().Events()
	rows := NewPlayerStatsAggregator().Compute(testMatch(), ourLineup("match-1"), storedEvents(t, feedEvents), feedEvents)

	if len(rows) != LineupSize {
		t.Fatalf("expected %d rows, got %d", LineupSize, len(rows))
	}
	byExt := make(map[int64]stats.PlayerMatchStatistics, len(rows))
	for _, row := range rows {
		byExt[row.ExternalPlayerID] = row
	}

	if byExt[1009].Assists != 1 || byExt[1009].Passes != 1 {
		t.Fatalf("passer should have one pass and one assist: %+v", byExt[1009])
	}
	if byExt[1010].Goals != 1 || byExt[1010].Assists != 0 {
		t.Fatalf("scorer should have one goal: %+v", byExt[1010])
	}
	if byExt[1008].Goals != 1 || byExt[1007].Dribbles != 1 {
		t.Fatalf("unexpected rows 1007/1008: %+v %+v", byExt[1007], byExt[1008])
	}
	if byExt[1001].Counters != (stats.Counters{}) || byExt[1001].PassCompletionPct.Applicable {
		t.Fatalf("player without actions must have an empty row: %+v", byExt[1001])
	}

	var goals, passes int
	for _, row := range rows {
		goals += row.Goals
		passes += row.Passes
	}
	team := NewMatchStatsAggregator().Compute(testMatch(), storedEvents(t, feedEvents), feedEvents)[0]
	if goals != team.Goals || passes != team.Passes {
		t.Fatalf("player totals %d/%d diverge from team %d/%d", goals, passes, team.Goals, team.Passes)
	}
}

func TestAttributeAssists(t *testing.T) {
	tests := []struct {
		name  string
		build func() *feedtest.Builder
		want  map[int64]int
	}{
		{
			name: "last pass to scorer",
			build: func() *feedtest.Builder {
				return feedtest.Empty().Possession(homeTeam).
					Pass(homeTeam, 1002, 1003).Pass(homeTeam, 1003, 1009).Goal(homeTeam, 1009)
			},
			want: map[int64]int{1003: 1},
		},
		{
			name: "incomplete pass earns nothing",
			build: func() *feedtest.Builder {
				return feedtest.Empty().Possession(homeTeam).
					PassWith(homeTeam, 1003, 1009, feedtest.PassSpec{Length: 10, StartX: 50, EndX: 60, Incomplete: true}).
					Goal(homeTeam, 1009)
			},
			want: map[int64]int{},
		},
		{
			name: "pass in an earlier possession",
			build: func() *feedtest.Builder {
				return feedtest.Empty().Possession(homeTeam).Pass(homeTeam, 1003, 1009).
					Possession(homeTeam).Goal(homeTeam, 1009)
			},
			want: map[int64]int{},
		},
		{
			name: "opponent pass is ignored",
			build: func() *feedtest.Builder {
				return feedtest.Empty().Possession(homeTeam).
					Pass(awayTeam, 2003, 1009).Goal(homeTeam, 1009)
			},
			want: map[int64]int{},
		},
		{
			name: "shootout goal",
			build: func() *feedtest.Builder {
				return feedtest.Empty().Period(5).Possession(homeTeam).
					Pass(homeTeam, 1003, 1009).Goal(homeTeam, 1009)
			},
			want: map[int64]int{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AttributeAssists(storedEvents(t, tc.build().Events()))
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for passer, n := range tc.want {
				if got[passer] != n {
					t.Fatalf("expected %d assists for %d, got %d", n, passer, got[passer])
				}
			}
		})
	}
}

func TestAttributeAssists_RequiresKnownPossession(t *testing.T) {
	events := storedEvents(t, feedtest.Empty().Possession(homeTeam).Pass(homeTeam, 1003, 1009).Goal(homeTeam, 1009).Events())
	for i := range events {
		events[i].Possession = event.UnknownNumber
	}
	if got := AttributeAssists(events); len(got) != 0 {
		t.Fatalf("no assist without possession sequence, got %v", got)
	}
}
