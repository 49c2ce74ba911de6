// Package feedtest builds synthetic match feeds for tests.
package feedtest

import (
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/match-ingest/internal/domain/feed"
)

type Team struct {
	ID      int64
	Name    string
	Players []int64
}

// NewTeam fields 11 players with consecutive ids starting at firstPlayerID.
func NewTeam(id int64, name string, firstPlayerID int64) Team {
	players := make([]int64, 0, 11)
	for i := int64(0); i < 11; i++ {
		players = append(players, firstPlayerID+i)
	}
	return Team{ID: id, Name: name, Players: players}
}

func (t Team) Ref() *feed.Ref {
	return &feed.Ref{ID: t.ID, Name: t.Name}
}

func PlayerName(playerID int64) string {
	return fmt.Sprintf("Player %d", playerID)
}

type PassSpec struct {
	Length     float64
	StartX     float64
	EndX       float64
	Incomplete bool
	Cross      bool
}

type Builder struct {
	events     []feed.Event
	period     int
	possession int
	holder     Team
	duration   float64
}

// New starts a feed with one starting lineup event per team.
func New(home, away Team) *Builder {
	b := &Builder{period: 1, duration: 1}
	b.StartingXI(home)
	b.StartingXI(away)
	return b
}

// Empty starts a feed without lineup events.
func Empty() *Builder {
	return &Builder{period: 1, duration: 1}
}

func (b *Builder) StartingXI(team Team) *Builder {
	lineup := make([]feed.LineupSlot, 0, len(team.Players))
	for i, playerID := range team.Players {
		jersey := i + 1
		lineup = append(lineup, feed.LineupSlot{
			Player:       &feed.Ref{ID: playerID, Name: PlayerName(playerID)},
			Position:     &feed.Ref{ID: int64(i + 1), Name: positionName(i)},
			JerseyNumber: &jersey,
		})
	}
	return b.add(feed.Event{
		Type:    &feed.Ref{ID: 35, Name: feed.TypeStartingXI},
		Team:    team.Ref(),
		Tactics: &feed.Tactics{Formation: 442, Lineup: lineup},
	}, false)
}

func positionName(i int) string {
	switch {
	case i == 0:
		return "Goalkeeper"
	case i <= 4:
		return "Defender"
	case i <= 8:
		return "Midfielder"
	default:
		return "Forward"
	}
}

func (b *Builder) Period(period int) *Builder {
	b.period = period
	return b
}

// Duration sets the duration of every following event.
func (b *Builder) Duration(seconds float64) *Builder {
	b.duration = seconds
	return b
}

// Possession opens a new possession sequence held by team.
func (b *Builder) Possession(team Team) *Builder {
	b.possession++
	b.holder = team
	return b
}

func (b *Builder) Pass(team Team, from, to int64) *Builder {
	return b.PassWith(team, from, to, PassSpec{Length: 10, StartX: 50, EndX: 60})
}

func (b *Builder) PassWith(team Team, from, to int64, spec PassSpec) *Builder {
	length := spec.Length
	pass := &feed.Pass{
		Recipient:   &feed.Ref{ID: to, Name: PlayerName(to)},
		Length:      &length,
		EndLocation: []float64{spec.EndX, 40},
		Cross:       spec.Cross,
	}
	if spec.Incomplete {
		pass.Outcome = &feed.Ref{ID: 9, Name: "Incomplete"}
	}
	return b.add(feed.Event{
		Type:     &feed.Ref{ID: 30, Name: feed.TypePass},
		Team:     team.Ref(),
		Player:   &feed.Ref{ID: from, Name: PlayerName(from)},
		Location: []float64{spec.StartX, 40},
		Pass:     pass,
	}, true)
}

func (b *Builder) Shot(team Team, playerID int64, outcome string) *Builder {
	return b.add(feed.Event{
		Type:     &feed.Ref{ID: 16, Name: feed.TypeShot},
		Team:     team.Ref(),
		Player:   &feed.Ref{ID: playerID, Name: PlayerName(playerID)},
		Location: []float64{108, 40},
		Shot: &feed.Shot{
			Outcome:     &feed.Ref{ID: 97, Name: outcome},
			EndLocation: []float64{120, 40},
		},
	}, true)
}

func (b *Builder) Goal(team Team, playerID int64) *Builder {
	return b.Shot(team, playerID, feed.ShotOutcomeGoal)
}

func (b *Builder) Dribble(team Team, playerID int64, outcome string) *Builder {
	return b.add(feed.Event{
		Type:    &feed.Ref{ID: 14, Name: feed.TypeDribble},
		Team:    team.Ref(),
		Player:  &feed.Ref{ID: playerID, Name: PlayerName(playerID)},
		Dribble: &feed.Dribble{Outcome: &feed.Ref{ID: 8, Name: outcome}},
	}, true)
}

func (b *Builder) Tackle(team Team, playerID int64, outcome string) *Builder {
	return b.add(feed.Event{
		Type:   &feed.Ref{ID: 4, Name: feed.TypeDuel},
		Team:   team.Ref(),
		Player: &feed.Ref{ID: playerID, Name: PlayerName(playerID)},
		Duel: &feed.Duel{
			Type:    &feed.Ref{ID: 11, Name: feed.DuelTypeTackle},
			Outcome: &feed.Ref{ID: 4, Name: outcome},
		},
	}, true)
}

func (b *Builder) Interception(team Team, playerID int64, outcome string) *Builder {
	return b.add(feed.Event{
		Type:         &feed.Ref{ID: 10, Name: feed.TypeInterception},
		Team:         team.Ref(),
		Player:       &feed.Ref{ID: playerID, Name: PlayerName(playerID)},
		Interception: &feed.Interception{Outcome: &feed.Ref{ID: 4, Name: outcome}},
	}, true)
}

func (b *Builder) Recovery(team Team, playerID int64, failed bool) *Builder {
	return b.add(feed.Event{
		Type:         &feed.Ref{ID: 2, Name: feed.TypeBallRecovery},
		Team:         team.Ref(),
		Player:       &feed.Ref{ID: playerID, Name: PlayerName(playerID)},
		BallRecovery: &feed.BallRecovery{RecoveryFailure: failed},
	}, true)
}

// Other appends an event of a type no component retains.
func (b *Builder) Other(team Team, typeName string) *Builder {
	return b.add(feed.Event{
		Type: &feed.Ref{ID: 99, Name: typeName},
		Team: team.Ref(),
	}, true)
}

func (b *Builder) add(ev feed.Event, inPlay bool) *Builder {
	n := len(b.events) + 1
	ev.ID = fmt.Sprintf("ev-%04d", n)
	ev.Index = n
	ev.Period = b.period
	minute, second := n/60, n%60
	ev.Minute, ev.Second = &minute, &second
	if inPlay {
		duration := b.duration
		ev.Duration = &duration
		ev.Possession = b.possession
		if b.holder.ID > 0 {
			ev.PossessionTeam = b.holder.Ref()
		}
	}
	b.events = append(b.events, ev)
	return b
}

func (b *Builder) Events() []feed.Event {
	out := make([]feed.Event, len(b.events))
	copy(out, b.events)
	return out
}

// JSON encodes the feed the way the provider publishes it.
func (b *Builder) JSON() []byte {
	data, err := sonic.Marshal(b.events)
	if err != nil {
		panic(fmt.Sprintf("encode synthetic feed: %v", err))
	}
	return data
}

// Parsed round-trips through feed.Parse so events carry their raw records.
func (b *Builder) Parsed() []feed.Event {
	events, err := feed.Parse(b.JSON())
	if err != nil {
		panic(fmt.Sprintf("parse synthetic feed: %v", err))
	}
	return events
}
