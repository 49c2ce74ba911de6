package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrAlreadyClaimed = errors.New("player already claimed")

// State is the lifecycle tag of a roster entry.
type State string

const (
	StatePending State = "pending"
	StateClaimed State = "claimed"
)

// Membership is the state-tagged payload of a roster entry. Exactly two variants exist:
// Pending and Claimed.
type Membership interface {
	State() State
	membership()
}

// Pending is a roster entry created from a feed that nobody has claimed yet.
type Pending struct {
	JoinCode string
}

func (Pending) State() State { return StatePending }
func (Pending) membership()  {}

// Claimed is a roster entry linked to a real account. Name and join code are frozen.
type Claimed struct {
	AccountID string
	ClaimedAt time.Time
}

func (Claimed) State() State { return StateClaimed }
func (Claimed) membership()  {}

// Player is one of our club's roster entries, keyed by (club, external player id).
type Player struct {
	ID               string
	ClubID           string
	ExternalPlayerID int64
	Name             string
	JerseyNumber     int
	Position         string
	Membership       Membership
}

func (p Player) State() State {
	if p.Membership == nil {
		return StatePending
	}
	return p.Membership.State()
}

func (p Player) IsClaimed() bool {
	return p.State() == StateClaimed
}

// JoinCode returns the join code of a pending entry.
func (p Player) JoinCode() (string, bool) {
	pending, ok := p.Membership.(Pending)
	if !ok {
		return "", false
	}
	return pending.JoinCode, true
}

// Claim moves a pending entry to claimed. The transition is one-way.
func (p *Player) Claim(accountID string, at time.Time) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return fmt.Errorf("account id is required")
	}
	if p.IsClaimed() {
		return fmt.Errorf("%w: player=%s", ErrAlreadyClaimed, p.ID)
	}
	p.Membership = Claimed{AccountID: accountID, ClaimedAt: at.UTC()}
	return nil
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.ClubID) == "" {
		return fmt.Errorf("player club id is required")
	}
	if p.ExternalPlayerID <= 0 {
		return fmt.Errorf("player external id is required")
	}
	switch m := p.Membership.(type) {
	case Pending:
		if strings.TrimSpace(m.JoinCode) == "" {
			return fmt.Errorf("pending player requires a join code")
		}
	case Claimed:
		if strings.TrimSpace(m.AccountID) == "" {
			return fmt.Errorf("claimed player requires an account id")
		}
	default:
		return fmt.Errorf("player membership is required")
	}
	return nil
}

// OpponentPlayer is reference-only roster data for the opposing side.
type OpponentPlayer struct {
	ID               string
	OpponentID       string
	ExternalPlayerID int64
	Name             string
	JerseyNumber     int
	Position         string
}

// LineupEntry is one fielded player as the feed describes them.
type LineupEntry struct {
	ExternalPlayerID int64
	Name             string
	JerseyNumber     int
	Position         string
}
