package postgres

import (
	"time"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
)

type matchTableModel struct {
	ID             string    `db:"id"`
	ClubID         string    `db:"club_id"`
	OpponentID     string    `db:"opponent_id"`
	MatchDate      time.Time `db:"match_date"`
	Venue          string    `db:"venue"`
	EnteredHome    int       `db:"entered_home_score"`
	EnteredAway    int       `db:"entered_away_score"`
	ComputedHome   int       `db:"computed_home_score"`
	ComputedAway   int       `db:"computed_away_score"`
	Result         string    `db:"result"`
	OurTeamID      int64     `db:"our_team_external_id"`
	OpponentTeamID int64     `db:"opponent_team_external_id"`
}

type lineupEntryTableModel struct {
	ID               string  `db:"id"`
	MatchID          string  `db:"match_id"`
	Side             string  `db:"side"`
	PlayerID         *string `db:"player_id"`
	OpponentPlayerID *string `db:"opponent_player_id"`
	ExternalPlayerID int64   `db:"external_player_id"`
	Name             string  `db:"name"`
	JerseyNumber     int     `db:"jersey_number"`
	Position         string  `db:"position"`
}

type goalTableModel struct {
	ID               string `db:"id"`
	MatchID          string `db:"match_id"`
	Side             string `db:"side"`
	TeamExternalID   int64  `db:"team_external_id"`
	ScorerExternalID int64  `db:"scorer_external_id"`
	ScorerName       string `db:"scorer_name"`
	Period           int    `db:"period"`
	Minute           int    `db:"minute"`
	Second           int    `db:"second"`
	FeedEventID      string `db:"feed_event_id"`
}

func matchToRow(m match.Match) matchTableModel {
	return matchTableModel{
		ID:             m.ID,
		ClubID:         m.ClubID,
		OpponentID:     m.OpponentID,
		MatchDate:      m.MatchDate,
		Venue:          string(m.Venue),
		EnteredHome:    m.EnteredScore.Home,
		EnteredAway:    m.EnteredScore.Away,
		ComputedHome:   m.ComputedScore.Home,
		ComputedAway:   m.ComputedScore.Away,
		Result:         string(m.Result),
		OurTeamID:      m.OurTeamID,
		OpponentTeamID: m.OpponentTeamID,
	}
}

func matchFromRow(row matchTableModel) match.Match {
	y, mo, d := row.MatchDate.Date()
	return match.Match{
		ID:             row.ID,
		ClubID:         row.ClubID,
		OpponentID:     row.OpponentID,
		MatchDate:      time.Date(y, mo, d, 0, 0, 0, 0, time.UTC),
		Venue:          match.Venue(row.Venue),
		EnteredScore:   match.Score{Home: row.EnteredHome, Away: row.EnteredAway},
		ComputedScore:  match.Score{Home: row.ComputedHome, Away: row.ComputedAway},
		Result:         match.Result(row.Result),
		OurTeamID:      row.OurTeamID,
		OpponentTeamID: row.OpponentTeamID,
	}
}

func lineupEntryToRow(e match.LineupEntry) lineupEntryTableModel {
	return lineupEntryTableModel{
		ID:               e.ID,
		MatchID:          e.MatchID,
		Side:             string(e.Side),
		PlayerID:         nullableString(e.PlayerID),
		OpponentPlayerID: nullableString(e.OpponentPlayerID),
		ExternalPlayerID: e.ExternalPlayerID,
		Name:             e.Name,
		JerseyNumber:     e.JerseyNumber,
		Position:         e.Position,
	}
}

func lineupEntryFromRow(row lineupEntryTableModel) match.LineupEntry {
	return match.LineupEntry{
		ID:               row.ID,
		MatchID:          row.MatchID,
		Side:             match.Side(row.Side),
		PlayerID:         stringOrEmpty(row.PlayerID),
		OpponentPlayerID: stringOrEmpty(row.OpponentPlayerID),
		ExternalPlayerID: row.ExternalPlayerID,
		Name:             row.Name,
		JerseyNumber:     row.JerseyNumber,
		Position:         row.Position,
	}
}

func goalToRow(g match.Goal) goalTableModel {
	return goalTableModel{
		ID:               g.ID,
		MatchID:          g.MatchID,
		Side:             string(g.Side),
		TeamExternalID:   g.TeamExternalID,
		ScorerExternalID: g.ScorerExternalID,
		ScorerName:       g.ScorerName,
		Period:           g.Period,
		Minute:           g.Minute,
		Second:           g.Second,
		FeedEventID:      g.FeedEventID,
	}
}

func goalFromRow(row goalTableModel) match.Goal {
	return match.Goal{
		ID:               row.ID,
		MatchID:          row.MatchID,
		Side:             match.Side(row.Side),
		TeamExternalID:   row.TeamExternalID,
		ScorerExternalID: row.ScorerExternalID,
		ScorerName:       row.ScorerName,
		Period:           row.Period,
		Minute:           row.Minute,
		Second:           row.Second,
		FeedEventID:      row.FeedEventID,
	}
}

// mapRows converts every row model with fn.
func mapRows[R, T any](rows []R, fn func(R) T) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, fn(row))
	}
	return out
}
