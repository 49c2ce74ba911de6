package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-ingest/internal/domain/event"
	"github.com/riskibarqy/match-ingest/internal/domain/feed"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
	"github.com/riskibarqy/match-ingest/internal/platform/id"
)

const DefaultEventBatchSize = 500

var retainedCategories = map[string]event.Category{
	feed.TypePass:    event.CategoryPass,
	feed.TypeShot:    event.CategoryShot,
	feed.TypeDribble: event.CategoryDribble,
}

type EventStore struct {
	ids       id.Generator
	batchSize int
}

func NewEventStore(ids id.Generator, batchSize int) *EventStore {
	if batchSize <= 0 {
		batchSize = DefaultEventBatchSize
	}
	return &EventStore{ids: ids, batchSize: batchSize}
}

// Store keeps pass, shot and dribble events and writes them in batches. A feed with none of
// them is rejected.
func (s *EventStore) Store(ctx context.Context, repo event.Repository, matchID string, teams TeamResolution, events []feed.Event) ([]event.MatchEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventStore.Store")
	defer span.End()

	retained := make([]event.MatchEvent, 0, len(events)/2)
	for _, ev := range events {
		row, ok := ExtractEvent(ev, teams)
		if !ok {
			continue
		}
		rowID, err := s.ids.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate match event id: %w", err)
		}
		row.ID = rowID
		row.MatchID = matchID
		retained = append(retained, row)
	}
	if len(retained) == 0 {
		return nil, errors.Wrapf(ErrValidation, "none of %d feed events is a pass, shot or dribble", len(events))
	}

	for start := 0; start < len(retained); start += s.batchSize {
		end := min(start+s.batchSize, len(retained))
		if err := repo.InsertBatch(ctx, retained[start:end]); err != nil {
			return nil, fmt.Errorf("insert match events batch [%d:%d]: %w", start, end, err)
		}
	}

	return retained, nil
}

// ExtractEvent projects a feed record onto the stored shape. Absent fields become sentinels.
func ExtractEvent(ev feed.Event, teams TeamResolution) (event.MatchEvent, bool) {
	category, ok := retainedCategories[ev.TypeName()]
	if !ok {
		return event.MatchEvent{}, false
	}

	row := event.MatchEvent{
		FeedEventID:         textOrUnknown(ev.ID),
		FeedIndex:           ev.Index,
		Category:            category,
		ActorExternalID:     idOrUnknown(ev.PlayerID()),
		ActorName:           textOrUnknown(ev.PlayerName()),
		TeamExternalID:      idOrUnknown(ev.TeamID()),
		TeamName:            textOrUnknown(ev.TeamName()),
		Side:                teams.SideOf(ev.TeamID()),
		Position:            textOrUnknown(ev.PositionName()),
		Period:              numberOrUnknown(ev.Period),
		Minute:              clockOrUnknown(ev.Minute),
		Second:              clockOrUnknown(ev.Second),
		Possession:          numberOrUnknown(ev.Possession),
		RecipientExternalID: event.UnknownID,
		Raw:                 ev.Raw,
	}

	if start, ok := ev.StartLocation(); ok {
		row.StartX, row.StartY = &start.X, &start.Y
	}
	if end, ok := ev.EndLocation(); ok {
		row.EndX, row.EndY = &end.X, &end.Y
	}

	switch category {
	case event.CategoryPass:
		row.Outcome = event.OutcomeComplete
		if ev.Pass != nil {
			if ev.Pass.Outcome != nil {
				row.Outcome = stats.CanonicalOutcome(ev.Pass.Outcome.Name)
			}
			if ev.Pass.Recipient != nil && ev.Pass.Recipient.ID > 0 {
				row.RecipientExternalID = ev.Pass.Recipient.ID
			}
			row.IsCross = ev.Pass.Cross
			row.PassLength = passLength(ev)
		}
	case event.CategoryShot:
		row.Outcome = stats.OutcomeUnknown
		if ev.Shot != nil && ev.Shot.Outcome != nil {
			row.Outcome = stats.CanonicalOutcome(ev.Shot.Outcome.Name)
		}
	case event.CategoryDribble:
		row.Outcome = stats.OutcomeUnknown
		if ev.Dribble != nil && ev.Dribble.Outcome != nil {
			row.Outcome = stats.CanonicalOutcome(ev.Dribble.Outcome.Name)
		}
	}

	return row, true
}

// SideOf maps an external team id onto ours or opponent.
func (r TeamResolution) SideOf(teamID int64) match.Side {
	switch {
	case teamID <= 0:
		return match.SideUnknown
	case teamID == r.Ours.ExternalID:
		return match.SideOurs
	case teamID == r.Opponent.ExternalID:
		return match.SideOpponent
	default:
		return match.SideUnknown
	}
}

func passLength(ev feed.Event) *float64 {
	if ev.Pass.Length != nil {
		v := *ev.Pass.Length
		return &v
	}
	start, okStart := ev.StartLocation()
	end, okEnd := ev.EndLocation()
	if !okStart || !okEnd {
		return nil
	}
	v := math.Hypot(end.X-start.X, end.Y-start.Y)
	return &v
}

func textOrUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return event.UnknownText
	}
	return v
}

func idOrUnknown(v int64) int64 {
	if v <= 0 {
		return event.UnknownID
	}
	return v
}

func numberOrUnknown(v int) int {
	if v <= 0 {
		return event.UnknownNumber
	}
	return v
}

func clockOrUnknown(v *int) int {
	if v == nil || *v < 0 {
		return event.UnknownNumber
	}
	return *v
}
