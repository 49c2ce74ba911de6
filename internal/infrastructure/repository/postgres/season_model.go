package postgres

import (
	"fmt"

	"github.com/riskibarqy/match-ingest/internal/domain/season"
)

type clubSeasonTableModel struct {
	ClubID        string `db:"club_id"`
	MatchesPlayed int    `db:"matches_played"`
	Wins          int    `db:"wins"`
	Draws         int    `db:"draws"`
	Losses        int    `db:"losses"`
	GoalsFor      int    `db:"goals_for"`
	GoalsAgainst  int    `db:"goals_against"`
	CleanSheets   int    `db:"clean_sheets"`
	Form          string `db:"form"`
	Averages      string `db:"averages"`
}

type playerSeasonTableModel struct {
	PlayerID    string `db:"player_id"`
	ClubID      string `db:"club_id"`
	Appearances int    `db:"appearances"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
	Totals      string `db:"totals"`
	Rates       string `db:"rates"`
	Attacking   int    `db:"attacking"`
	Technique   int    `db:"technique"`
	Tactical    int    `db:"tactical"`
	Defending   int    `db:"defending"`
	Creativity  int    `db:"creativity"`
}

func clubSeasonToRow(cs season.ClubSeason) (clubSeasonTableModel, error) {
	averages, err := encodeJSON(cs.Averages)
	if err != nil {
		return clubSeasonTableModel{}, fmt.Errorf("encode club season averages: %w", err)
	}
	return clubSeasonTableModel{
		ClubID:        cs.ClubID,
		MatchesPlayed: cs.MatchesPlayed,
		Wins:          cs.Wins,
		Draws:         cs.Draws,
		Losses:        cs.Losses,
		GoalsFor:      cs.GoalsFor,
		GoalsAgainst:  cs.GoalsAgainst,
		CleanSheets:   cs.CleanSheets,
		Form:          cs.Form,
		Averages:      averages,
	}, nil
}

func clubSeasonFromRow(row clubSeasonTableModel) (season.ClubSeason, error) {
	cs := season.ClubSeason{
		ClubID:        row.ClubID,
		MatchesPlayed: row.MatchesPlayed,
		Wins:          row.Wins,
		Draws:         row.Draws,
		Losses:        row.Losses,
		GoalsFor:      row.GoalsFor,
		GoalsAgainst:  row.GoalsAgainst,
		CleanSheets:   row.CleanSheets,
		Form:          row.Form,
	}
	if err := decodeJSON(row.Averages, &cs.Averages); err != nil {
		return season.ClubSeason{}, fmt.Errorf("decode club season averages club=%s: %w", row.ClubID, err)
	}
	return cs, nil
}

func playerSeasonToRow(ps season.PlayerSeason) (playerSeasonTableModel, error) {
	totals, err := encodeJSON(ps.Totals)
	if err != nil {
		return playerSeasonTableModel{}, fmt.Errorf("encode player season totals: %w", err)
	}
	rates, err := encodeJSON(ps.Rates)
	if err != nil {
		return playerSeasonTableModel{}, fmt.Errorf("encode player season rates: %w", err)
	}
	return playerSeasonTableModel{
		PlayerID:    ps.PlayerID,
		ClubID:      ps.ClubID,
		Appearances: ps.Totals.Appearances,
		Goals:       ps.Totals.Goals,
		Assists:     ps.Totals.Assists,
		Totals:      totals,
		Rates:       rates,
		Attacking:   ps.Attributes.Attacking,
		Technique:   ps.Attributes.Technique,
		Tactical:    ps.Attributes.Tactical,
		Defending:   ps.Attributes.Defending,
		Creativity:  ps.Attributes.Creativity,
	}, nil
}

func playerSeasonFromRow(row playerSeasonTableModel) (season.PlayerSeason, error) {
	ps := season.PlayerSeason{
		PlayerID: row.PlayerID,
		ClubID:   row.ClubID,
		Attributes: season.Attributes{
			Attacking:  row.Attacking,
			Technique:  row.Technique,
			Tactical:   row.Tactical,
			Defending:  row.Defending,
			Creativity: row.Creativity,
		},
	}
	if err := decodeJSON(row.Totals, &ps.Totals); err != nil {
		return season.PlayerSeason{}, fmt.Errorf("decode player season totals player=%s: %w", row.PlayerID, err)
	}
	if err := decodeJSON(row.Rates, &ps.Rates); err != nil {
		return season.PlayerSeason{}, fmt.Errorf("decode player season rates player=%s: %w", row.PlayerID, err)
	}
	return ps, nil
}
