package postgres

import (
	"encoding/json"

	"github.com/riskibarqy/match-ingest/internal/domain/event"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
)

type matchEventTableModel struct {
	ID                  string   `db:"id"`
	MatchID             string   `db:"match_id"`
	FeedEventID         string   `db:"feed_event_id"`
	FeedIndex           int      `db:"feed_index"`
	Category            string   `db:"category"`
	ActorExternalID     int64    `db:"actor_external_id"`
	ActorName           string   `db:"actor_name"`
	TeamExternalID      int64    `db:"team_external_id"`
	TeamName            string   `db:"team_name"`
	Side                string   `db:"side"`
	Position            string   `db:"position"`
	Period              int      `db:"period"`
	Minute              int      `db:"minute"`
	Second              int      `db:"second"`
	Outcome             string   `db:"outcome"`
	Possession          int      `db:"possession"`
	RecipientExternalID int64    `db:"recipient_external_id"`
	StartX              *float64 `db:"start_x"`
	StartY              *float64 `db:"start_y"`
	EndX                *float64 `db:"end_x"`
	EndY                *float64 `db:"end_y"`
	PassLength          *float64 `db:"pass_length"`
	IsCross             bool     `db:"is_cross"`
	Raw                 *string  `db:"raw"`
}

func matchEventToRow(e event.MatchEvent) matchEventTableModel {
	row := matchEventTableModel{
		ID:                  e.ID,
		MatchID:             e.MatchID,
		FeedEventID:         e.FeedEventID,
		FeedIndex:           e.FeedIndex,
		Category:            string(e.Category),
		ActorExternalID:     e.ActorExternalID,
		ActorName:           e.ActorName,
		TeamExternalID:      e.TeamExternalID,
		TeamName:            e.TeamName,
		Side:                string(e.Side),
		Position:            e.Position,
		Period:              e.Period,
		Minute:              e.Minute,
		Second:              e.Second,
		Outcome:             e.Outcome,
		Possession:          e.Possession,
		RecipientExternalID: e.RecipientExternalID,
		StartX:              copyFloat(e.StartX),
		StartY:              copyFloat(e.StartY),
		EndX:                copyFloat(e.EndX),
		EndY:                copyFloat(e.EndY),
		PassLength:          copyFloat(e.PassLength),
		IsCross:             e.IsCross,
	}
	if len(e.Raw) > 0 {
		row.Raw = nullableString(string(e.Raw))
	}
	return row
}

func matchEventFromRow(row matchEventTableModel) event.MatchEvent {
	e := event.MatchEvent{
		ID:                  row.ID,
		MatchID:             row.MatchID,
		FeedEventID:         row.FeedEventID,
		FeedIndex:           row.FeedIndex,
		Category:            event.Category(row.Category),
		ActorExternalID:     row.ActorExternalID,
		ActorName:           row.ActorName,
		TeamExternalID:      row.TeamExternalID,
		TeamName:            row.TeamName,
		Side:                match.Side(row.Side),
		Position:            row.Position,
		Period:              row.Period,
		Minute:              row.Minute,
		Second:              row.Second,
		Outcome:             row.Outcome,
		Possession:          row.Possession,
		RecipientExternalID: row.RecipientExternalID,
		StartX:              row.StartX,
		StartY:              row.StartY,
		EndX:                row.EndX,
		EndY:                row.EndY,
		PassLength:          row.PassLength,
		IsCross:             row.IsCross,
	}
	if row.Raw != nil {
		e.Raw = json.RawMessage(*row.Raw)
	}
	return e
}
