package match

import (
	"fmt"
	"strings"
	"time"
)

// Side identifies which team of a match a row belongs to.
type Side string

const (
	SideOurs     Side = "ours"
	SideOpponent Side = "opponent"
	SideUnknown  Side = "unknown"
)

type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

func NormalizeVenue(v string) Venue {
	switch Venue(strings.ToLower(strings.TrimSpace(v))) {
	case VenueAway:
		return VenueAway
	default:
		return VenueHome
	}
}

type Result string

const (
	ResultWin  Result = "W"
	ResultDraw Result = "D"
	ResultLoss Result = "L"
)

// Score is a home-away tally.
type Score struct {
	Home int
	Away int
}

func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.Home, s.Away)
}

// Oriented splits the score into ours/theirs for the given venue.
func (s Score) Oriented(v Venue) (ours, theirs int) {
	if v == VenueAway {
		return s.Away, s.Home
	}
	return s.Home, s.Away
}

// ScoreFromSides builds a home-away score from our/their tallies.
func ScoreFromSides(v Venue, ours, theirs int) Score {
	if v == VenueAway {
		return Score{Home: theirs, Away: ours}
	}
	return Score{Home: ours, Away: theirs}
}

func Classify(ours, theirs int) Result {
	switch {
	case ours > theirs:
		return ResultWin
	case ours < theirs:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// Match is one ingested feed.
type Match struct {
	ID             string
	ClubID         string
	OpponentID     string
	MatchDate      time.Time
	Venue          Venue
	EnteredScore   Score
	ComputedScore  Score
	Result         Result
	OurTeamID      int64
	OpponentTeamID int64
}

func (m Match) GoalsFor() int {
	ours, _ := m.ComputedScore.Oriented(m.Venue)
	return ours
}

func (m Match) GoalsAgainst() int {
	_, theirs := m.ComputedScore.Oriented(m.Venue)
	return theirs
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.ClubID) == "" || strings.TrimSpace(m.OpponentID) == "" {
		return fmt.Errorf("match id, club id and opponent id are required")
	}
	if m.MatchDate.IsZero() {
		return fmt.Errorf("match date is required")
	}
	if m.EnteredScore != m.ComputedScore {
		return fmt.Errorf("entered score %s does not match computed score %s", m.EnteredScore, m.ComputedScore)
	}
	return nil
}

// LineupEntry is one frozen as-fielded row of a match lineup.
type LineupEntry struct {
	ID               string
	MatchID          string
	Side             Side
	PlayerID         string
	OpponentPlayerID string
	ExternalPlayerID int64
	Name             string
	JerseyNumber     int
	Position         string
}

// Validate enforces that exactly one player reference is set, on the side it belongs to.
func (e LineupEntry) Validate() error {
	hasPlayer := strings.TrimSpace(e.PlayerID) != ""
	hasOpponent := strings.TrimSpace(e.OpponentPlayerID) != ""
	if hasPlayer == hasOpponent {
		return fmt.Errorf("lineup entry must reference exactly one of player or opponent player")
	}
	switch e.Side {
	case SideOurs:
		if !hasPlayer {
			return fmt.Errorf("our lineup entry must reference a player")
		}
	case SideOpponent:
		if !hasOpponent {
			return fmt.Errorf("opponent lineup entry must reference an opponent player")
		}
	default:
		return fmt.Errorf("invalid lineup side %q", e.Side)
	}
	return nil
}

// UnknownScorer is used when a goal event names no player.
const UnknownScorer = "unknown"

type Goal struct {
	ID               string
	MatchID          string
	Side             Side
	TeamExternalID   int64
	ScorerExternalID int64
	ScorerName       string
	Period           int
	Minute           int
	Second           int
	FeedEventID      string
}

// SideOf maps a feed team id onto the side it played for in this match.
func (m Match) SideOf(teamID int64) Side {
	switch {
	case teamID <= 0:
		return SideUnknown
	case teamID == m.OurTeamID:
		return SideOurs
	case teamID == m.OpponentTeamID:
		return SideOpponent
	default:
		return SideUnknown
	}
}
