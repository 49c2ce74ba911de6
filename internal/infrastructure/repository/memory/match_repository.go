package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

type matchRepository struct{ st *state }

func (r matchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	m, ok := r.st.matches[matchID]
	return m, ok, nil
}

func (r matchRepository) FindByFixture(_ context.Context, clubID, opponentID string, matchDate time.Time) (match.Match, bool, error) {
	for _, m := range r.st.matches {
		if m.ClubID == clubID && m.OpponentID == opponentID && sameDay(m.MatchDate, matchDate) {
			return m, true, nil
		}
	}
	return match.Match{}, false, nil
}

func (r matchRepository) ListByClub(_ context.Context, clubID string) ([]match.Match, error) {
	out := make([]match.Match, 0)
	for _, m := range r.st.matches {
		if m.ClubID == clubID {
			out = append(out, m)
		}
	}
	sortMatches(out)
	return out, nil
}

func (r matchRepository) Create(ctx context.Context, m match.Match) error {
	if _, ok := r.st.matches[m.ID]; ok {
		return fmt.Errorf("%w: match %s", storage.ErrDuplicate, m.ID)
	}
	if _, ok, _ := r.FindByFixture(ctx, m.ClubID, m.OpponentID, m.MatchDate); ok {
		return fmt.Errorf("%w: match fixture club=%s opponent=%s", storage.ErrDuplicate, m.ClubID, m.OpponentID)
	}
	r.st.matches[m.ID] = m
	return nil
}

// Delete cascades to every row derived from the match.
func (r matchRepository) Delete(_ context.Context, matchID string) error {
	if _, ok := r.st.matches[matchID]; !ok {
		return fmt.Errorf("%w: match %s", storage.ErrNotFound, matchID)
	}
	delete(r.st.matches, matchID)
	delete(r.st.lineups, matchID)
	delete(r.st.goals, matchID)
	delete(r.st.events, matchID)
	delete(r.st.matchStats, matchID)
	delete(r.st.playerStats, matchID)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sortMatches(items []match.Match) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].MatchDate.Equal(items[j].MatchDate) {
			return items[i].MatchDate.Before(items[j].MatchDate)
		}
		return items[i].ID < items[j].ID
	})
}

type lineupRepository struct{ st *state }

func (r lineupRepository) ExistsForMatch(_ context.Context, matchID string) (bool, error) {
	return len(r.st.lineups[matchID]) > 0, nil
}

func (r lineupRepository) InsertMany(_ context.Context, entries []match.LineupEntry) error {
	for _, e := range entries {
		if _, ok := r.st.matches[e.MatchID]; !ok {
			return fmt.Errorf("%w: match %s", storage.ErrNotFound, e.MatchID)
		}
		r.st.lineups[e.MatchID] = appendRows(r.st.lineups[e.MatchID], []match.LineupEntry{e})
	}
	return nil
}

func (r lineupRepository) ListByMatch(_ context.Context, matchID string) ([]match.LineupEntry, error) {
	return append([]match.LineupEntry(nil), r.st.lineups[matchID]...), nil
}

type goalRepository struct{ st *state }

func (r goalRepository) InsertMany(_ context.Context, goals []match.Goal) error {
	for _, g := range goals {
		if _, ok := r.st.matches[g.MatchID]; !ok {
			return fmt.Errorf("%w: match %s", storage.ErrNotFound, g.MatchID)
		}
		r.st.goals[g.MatchID] = appendRows(r.st.goals[g.MatchID], []match.Goal{g})
	}
	return nil
}

func (r goalRepository) ListByMatch(_ context.Context, matchID string) ([]match.Goal, error) {
	return append([]match.Goal(nil), r.st.goals[matchID]...), nil
}
