package postgres

import "github.com/riskibarqy/match-ingest/internal/domain/club"

type clubTableModel struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	ExternalTeamID *int64 `db:"external_team_id"`
}

type opponentTableModel struct {
	ID             string  `db:"id"`
	ExternalTeamID int64   `db:"external_team_id"`
	Name           string  `db:"name"`
	CrestURL       *string `db:"crest_url"`
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:             row.ID,
		Name:           row.Name,
		ExternalTeamID: int64OrZero(row.ExternalTeamID),
	}
}

func opponentFromRow(row opponentTableModel) club.Opponent {
	return club.Opponent{
		ID:             row.ID,
		ExternalTeamID: row.ExternalTeamID,
		Name:           row.Name,
		CrestURL:       stringOrEmpty(row.CrestURL),
	}
}

func opponentToRow(o club.Opponent) opponentTableModel {
	return opponentTableModel{
		ID:             o.ID,
		ExternalTeamID: o.ExternalTeamID,
		Name:           o.Name,
		CrestURL:       nullableString(o.CrestURL),
	}
}
