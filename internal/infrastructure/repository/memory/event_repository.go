package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/match-ingest/internal/domain/event"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

type eventRepository struct{ st *state }

func (r eventRepository) InsertBatch(_ context.Context, events []event.MatchEvent) error {
	for _, ev := range events {
		if _, ok := r.st.matches[ev.MatchID]; !ok {
			return fmt.Errorf("%w: match %s", storage.ErrNotFound, ev.MatchID)
		}
		r.st.events[ev.MatchID] = appendRows(r.st.events[ev.MatchID], []event.MatchEvent{ev})
	}
	return nil
}

func (r eventRepository) ListByMatch(_ context.Context, matchID string) ([]event.MatchEvent, error) {
	out := append([]event.MatchEvent(nil), r.st.events[matchID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].FeedIndex < out[j].FeedIndex })
	return out, nil
}
