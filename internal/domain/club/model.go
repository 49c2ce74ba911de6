package club

import (
	"fmt"
	"strings"
)

// Club is our side: the club that owns a roster and uploads matches.
type Club struct {
	ID   string
	Name string
	// ExternalTeamID is the feed's identifier for this club, zero until first learned.
	ExternalTeamID int64
}

func (c Club) HasExternalTeamID() bool {
	return c.ExternalTeamID > 0
}

func (c Club) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("club id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("club name is required")
	}
	if c.ExternalTeamID < 0 {
		return fmt.Errorf("club external team id cannot be negative")
	}
	return nil
}

// Opponent is reference data for a club we played against.
type Opponent struct {
	ID             string
	ExternalTeamID int64
	Name           string
	CrestURL       string
}

func (o Opponent) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("opponent id is required")
	}
	if o.ExternalTeamID <= 0 {
		return fmt.Errorf("opponent external team id is required")
	}
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("opponent name is required")
	}
	return nil
}
