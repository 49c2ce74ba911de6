package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

type matchStatsRepository struct{ st *state }

func (r matchStatsRepository) ExistsForMatch(_ context.Context, matchID string) (bool, error) {
	return len(r.st.matchStats[matchID]) > 0, nil
}

func (r matchStatsRepository) InsertMany(_ context.Context, rows []stats.MatchStatistics) error {
	for _, row := range rows {
		if _, ok := r.st.matches[row.MatchID]; !ok {
			return fmt.Errorf("%w: match %s", storage.ErrNotFound, row.MatchID)
		}
		for _, existing := range r.st.matchStats[row.MatchID] {
			if existing.Side == row.Side {
				return fmt.Errorf("%w: match statistics match=%s side=%s", storage.ErrDuplicate, row.MatchID, row.Side)
			}
		}
		r.st.matchStats[row.MatchID] = appendRows(r.st.matchStats[row.MatchID], []stats.MatchStatistics{row})
	}
	return nil
}

func (r matchStatsRepository) ListByMatch(_ context.Context, matchID string) ([]stats.MatchStatistics, error) {
	return append([]stats.MatchStatistics(nil), r.st.matchStats[matchID]...), nil
}

func (r matchStatsRepository) ListByClub(_ context.Context, clubID string, side match.Side) ([]stats.MatchStatistics, error) {
	matches := clubMatches(r.st, clubID)
	out := make([]stats.MatchStatistics, 0, len(matches))
	for _, m := range matches {
		for _, row := range r.st.matchStats[m.ID] {
			if row.Side == side {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

type playerStatsRepository struct{ st *state }

func (r playerStatsRepository) ExistsForMatch(_ context.Context, matchID string) (bool, error) {
	return len(r.st.playerStats[matchID]) > 0, nil
}

func (r playerStatsRepository) InsertMany(_ context.Context, rows []stats.PlayerMatchStatistics) error {
	for _, row := range rows {
		if _, ok := r.st.matches[row.MatchID]; !ok {
			return fmt.Errorf("%w: match %s", storage.ErrNotFound, row.MatchID)
		}
		if _, ok := r.st.players[row.PlayerID]; !ok {
			return fmt.Errorf("%w: player %s", storage.ErrNotFound, row.PlayerID)
		}
		r.st.playerStats[row.MatchID] = appendRows(r.st.playerStats[row.MatchID], []stats.PlayerMatchStatistics{row})
	}
	return nil
}

func (r playerStatsRepository) ListByMatch(_ context.Context, matchID string) ([]stats.PlayerMatchStatistics, error) {
	return append([]stats.PlayerMatchStatistics(nil), r.st.playerStats[matchID]...), nil
}

func (r playerStatsRepository) ListByClub(_ context.Context, clubID string) ([]stats.PlayerMatchStatistics, error) {
	matches := clubMatches(r.st, clubID)
	position := make(map[string]int, len(matches))
	for i, m := range matches {
		position[m.ID] = i
	}

	out := make([]stats.PlayerMatchStatistics, 0)
	for _, m := range matches {
		out = append(out, r.st.playerStats[m.ID]...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return position[out[i].MatchID] < position[out[j].MatchID]
	})
	return out, nil
}

func clubMatches(st *state, clubID string) []match.Match {
	out := make([]match.Match, 0)
	for _, m := range st.matches {
		if m.ClubID == clubID {
			out = append(out, m)
		}
	}
	sortMatches(out)
	return out
}
