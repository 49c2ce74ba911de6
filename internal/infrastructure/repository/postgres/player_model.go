package postgres

import (
	"fmt"
	"time"

	"github.com/riskibarqy/match-ingest/internal/domain/player"
)

type playerTableModel struct {
	ID               string     `db:"id"`
	ClubID           string     `db:"club_id"`
	ExternalPlayerID int64      `db:"external_player_id"`
	Name             string     `db:"name"`
	JerseyNumber     int        `db:"jersey_number"`
	Position         string     `db:"position"`
	State            string     `db:"state"`
	JoinCode         *string    `db:"join_code"`
	AccountID        *string    `db:"account_id"`
	ClaimedAt        *time.Time `db:"claimed_at"`
}

type opponentPlayerTableModel struct {
	ID               string `db:"id"`
	OpponentID       string `db:"opponent_id"`
	ExternalPlayerID int64  `db:"external_player_id"`
	Name             string `db:"name"`
	JerseyNumber     int    `db:"jersey_number"`
	Position         string `db:"position"`
}

func playerToRow(p player.Player) (playerTableModel, error) {
	row := playerTableModel{
		ID:               p.ID,
		ClubID:           p.ClubID,
		ExternalPlayerID: p.ExternalPlayerID,
		Name:             p.Name,
		JerseyNumber:     p.JerseyNumber,
		Position:         p.Position,
		State:            string(p.State()),
	}
	switch m := p.Membership.(type) {
	case player.Pending:
		row.JoinCode = nullableString(m.JoinCode)
	case player.Claimed:
		row.AccountID = nullableString(m.AccountID)
		claimedAt := m.ClaimedAt.UTC()
		row.ClaimedAt = &claimedAt
	default:
		return playerTableModel{}, fmt.Errorf("player %s has no membership", p.ID)
	}
	return row, nil
}

func playerFromRow(row playerTableModel) (player.Player, error) {
	p := player.Player{
		ID:               row.ID,
		ClubID:           row.ClubID,
		ExternalPlayerID: row.ExternalPlayerID,
		Name:             row.Name,
		JerseyNumber:     row.JerseyNumber,
		Position:         row.Position,
	}
	switch player.State(row.State) {
	case player.StatePending:
		p.Membership = player.Pending{JoinCode: stringOrEmpty(row.JoinCode)}
	case player.StateClaimed:
		claimed := player.Claimed{AccountID: stringOrEmpty(row.AccountID)}
		if row.ClaimedAt != nil {
			claimed.ClaimedAt = row.ClaimedAt.UTC()
		}
		p.Membership = claimed
	default:
		return player.Player{}, fmt.Errorf("player %s has unknown state %q", row.ID, row.State)
	}
	return p, nil
}

func opponentPlayerFromRow(row opponentPlayerTableModel) player.OpponentPlayer {
	return player.OpponentPlayer{
		ID:               row.ID,
		OpponentID:       row.OpponentID,
		ExternalPlayerID: row.ExternalPlayerID,
		Name:             row.Name,
		JerseyNumber:     row.JerseyNumber,
		Position:         row.Position,
	}
}
