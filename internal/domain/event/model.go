package event

import (
	"encoding/json"

	"github.com/riskibarqy/match-ingest/internal/domain/feed"
	"github.com/riskibarqy/match-ingest/internal/domain/match"
)

// Category is one of the actionable event kinds kept by the event store.
type Category string

const (
	CategoryPass    Category = "pass"
	CategoryShot    Category = "shot"
	CategoryDribble Category = "dribble"
)

// Sentinels written for absent feed fields.
const (
	UnknownText   = "unknown"
	UnknownID     = int64(-1)
	UnknownNumber = -1
)

// OutcomeComplete is the pass outcome when the feed carries no failure marker.
const OutcomeComplete = "complete"

// MatchEvent is the durable record of one retained action.
type MatchEvent struct {
	ID          string
	MatchID     string
	FeedEventID string
	FeedIndex   int
	Category    Category

	ActorExternalID int64
	ActorName       string
	TeamExternalID  int64
	TeamName        string
	Side            match.Side
	Position        string

	Period int
	Minute int
	Second int

	Outcome    string
	Possession int

	RecipientExternalID int64
	StartX              *float64
	StartY              *float64
	EndX                *float64
	EndY                *float64
	PassLength          *float64
	IsCross             bool

	Raw json.RawMessage
}

func (e MatchEvent) IsShootout() bool {
	return e.Period == feed.PeriodShootout
}

// HasActor reports whether the feed named the acting player.
func (e MatchEvent) HasActor() bool {
	return e.ActorExternalID > 0
}
