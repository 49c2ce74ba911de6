package feed

import (
	"encoding/json"
	"strings"
)

// Event type names as published by the feed provider.
const (
	TypeStartingXI   = "Starting XI"
	TypePass         = "Pass"
	TypeShot         = "Shot"
	TypeDribble      = "Dribble"
	TypeDuel         = "Duel"
	TypeInterception = "Interception"
	TypeBallRecovery = "Ball Recovery"
)

const (
	// PeriodShootout marks penalty-shootout actions; they never count toward the result.
	PeriodShootout = 5

	DuelTypeTackle  = "Tackle"
	ShotOutcomeGoal = "Goal"

	PitchLength      = 120.0
	FinalThirdStartX = 80.0
	LongPassLength   = 30.0
)

// Ref is the {id, name} pair the feed uses for every typed reference.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Event is one action record of the match feed.
type Event struct {
	ID             string        `json:"id"`
	Index          int           `json:"index"`
	Period         int           `json:"period"`
	Timestamp      string        `json:"timestamp"`
	Minute         *int          `json:"minute"`
	Second         *int          `json:"second"`
	Type           *Ref          `json:"type"`
	Possession     int           `json:"possession"`
	PossessionTeam *Ref          `json:"possession_team"`
	PlayPattern    *Ref          `json:"play_pattern"`
	Team           *Ref          `json:"team"`
	Player         *Ref          `json:"player"`
	Position       *Ref          `json:"position"`
	Location       []float64     `json:"location"`
	Duration       *float64      `json:"duration"`
	Tactics        *Tactics      `json:"tactics"`
	Pass           *Pass         `json:"pass"`
	Shot           *Shot         `json:"shot"`
	Dribble        *Dribble      `json:"dribble"`
	Duel           *Duel         `json:"duel"`
	Interception   *Interception `json:"interception"`
	BallRecovery   *BallRecovery `json:"ball_recovery"`

	// Raw is the verbatim source record.
	Raw json.RawMessage `json:"-"`
}

type Tactics struct {
	Formation int          `json:"formation"`
	Lineup    []LineupSlot `json:"lineup"`
}

type LineupSlot struct {
	Player       *Ref `json:"player"`
	Position     *Ref `json:"position"`
	JerseyNumber *int `json:"jersey_number"`
}

type Pass struct {
	Recipient   *Ref      `json:"recipient"`
	Length      *float64  `json:"length"`
	Angle       *float64  `json:"angle"`
	Height      *Ref      `json:"height"`
	EndLocation []float64 `json:"end_location"`
	Type        *Ref      `json:"type"`
	Outcome     *Ref      `json:"outcome"`
	Cross       bool      `json:"cross"`
	GoalAssist  bool      `json:"goal_assist"`
}

type Shot struct {
	Outcome     *Ref      `json:"outcome"`
	Type        *Ref      `json:"type"`
	EndLocation []float64 `json:"end_location"`
	XG          *float64  `json:"statsbomb_xg"`
}

type Dribble struct {
	Outcome *Ref `json:"outcome"`
}

type Duel struct {
	Type    *Ref `json:"type"`
	Outcome *Ref `json:"outcome"`
}

type Interception struct {
	Outcome *Ref `json:"outcome"`
}

type BallRecovery struct {
	RecoveryFailure   bool `json:"recovery_failure"`
	OffensiveRecovery bool `json:"offensive"`
}

func refName(r *Ref) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Name)
}

func refID(r *Ref) int64 {
	if r == nil {
		return 0
	}
	return r.ID
}

func (e Event) TypeName() string { return refName(e.Type) }

func (e Event) TeamID() int64 { return refID(e.Team) }

func (e Event) TeamName() string { return refName(e.Team) }

func (e Event) PlayerID() int64 { return refID(e.Player) }

func (e Event) PlayerName() string { return refName(e.Player) }

func (e Event) PositionName() string { return refName(e.Position) }

func (e Event) PossessionTeamID() int64 { return refID(e.PossessionTeam) }

func (e Event) IsShootout() bool { return e.Period == PeriodShootout }

// IsGoal reports a shot whose outcome is a goal, shootout kicks included.
func (e Event) IsGoal() bool {
	if e.TypeName() != TypeShot || e.Shot == nil {
		return false
	}
	return strings.EqualFold(refName(e.Shot.Outcome), ShotOutcomeGoal)
}

// IsCountedGoal is a goal that belongs to the match result.
func (e Event) IsCountedGoal() bool {
	return e.IsGoal() && !e.IsShootout()
}

// DurationSeconds returns the accounted duration of the event, zero when absent or negative.
func (e Event) DurationSeconds() float64 {
	if e.Duration == nil || *e.Duration < 0 {
		return 0
	}
	return *e.Duration
}

// Point is a pitch coordinate.
type Point struct {
	X float64
	Y float64
}

func pointFrom(values []float64) (Point, bool) {
	if len(values) < 2 {
		return Point{}, false
	}
	return Point{X: values[0], Y: values[1]}, true
}

func (e Event) StartLocation() (Point, bool) { return pointFrom(e.Location) }

// EndLocation returns the end coordinate of a pass or shot.
func (e Event) EndLocation() (Point, bool) {
	switch {
	case e.Pass != nil:
		return pointFrom(e.Pass.EndLocation)
	case e.Shot != nil:
		return pointFrom(e.Shot.EndLocation)
	default:
		return Point{}, false
	}
}

func (s LineupSlot) PlayerID() int64 { return refID(s.Player) }

func (s LineupSlot) PlayerName() string { return refName(s.Player) }

func (s LineupSlot) PositionName() string { return refName(s.Position) }

func (s LineupSlot) Jersey() int {
	if s.JerseyNumber == nil {
		return 0
	}
	return *s.JerseyNumber
}
