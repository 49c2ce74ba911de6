package postgres

import (
	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
)

// counterColumns is embedded by both statistics tables.
type counterColumns struct {
	Goals             int `db:"goals"`
	Shots             int `db:"shots"`
	ShotsOnTarget     int `db:"shots_on_target"`
	ShotsOffTarget    int `db:"shots_off_target"`
	Passes            int `db:"passes"`
	PassesCompleted   int `db:"passes_completed"`
	FinalThirdPasses  int `db:"final_third_passes"`
	LongPasses        int `db:"long_passes"`
	Crosses           int `db:"crosses"`
	Dribbles          int `db:"dribbles"`
	DribblesCompleted int `db:"dribbles_completed"`
	Tackles           int `db:"tackles"`
	Interceptions     int `db:"interceptions"`
	BallRecoveries    int `db:"ball_recoveries"`
}

type matchStatisticsTableModel struct {
	MatchID        string `db:"match_id"`
	Side           string `db:"side"`
	TeamExternalID int64  `db:"team_external_id"`
	counterColumns
	Saves             int      `db:"saves"`
	PossessionPct     *float64 `db:"possession_pct"`
	PassCompletionPct *float64 `db:"pass_completion_pct"`
	DribbleSuccessPct *float64 `db:"dribble_success_pct"`
	ShotAccuracyPct   *float64 `db:"shot_accuracy_pct"`
}

type playerMatchStatisticsTableModel struct {
	MatchID          string `db:"match_id"`
	PlayerID         string `db:"player_id"`
	ClubID           string `db:"club_id"`
	ExternalPlayerID int64  `db:"external_player_id"`
	Assists          int    `db:"assists"`
	counterColumns
	PassCompletionPct *float64 `db:"pass_completion_pct"`
	DribbleSuccessPct *float64 `db:"dribble_success_pct"`
	ShotAccuracyPct   *float64 `db:"shot_accuracy_pct"`
}

func countersToColumns(c stats.Counters) counterColumns {
	return counterColumns(c)
}

func countersFromColumns(c counterColumns) stats.Counters {
	return stats.Counters(c)
}

func matchStatisticsToRow(s stats.MatchStatistics) matchStatisticsTableModel {
	return matchStatisticsTableModel{
		MatchID:           s.MatchID,
		Side:              string(s.Side),
		TeamExternalID:    s.TeamExternalID,
		counterColumns:    countersToColumns(s.Counters),
		Saves:             s.Saves,
		PossessionPct:     s.PossessionPct.Ptr(),
		PassCompletionPct: s.PassCompletionPct.Ptr(),
		DribbleSuccessPct: s.DribbleSuccessPct.Ptr(),
		ShotAccuracyPct:   s.ShotAccuracyPct.Ptr(),
	}
}

func matchStatisticsFromRow(row matchStatisticsTableModel) stats.MatchStatistics {
	return stats.MatchStatistics{
		MatchID:           row.MatchID,
		Side:              match.Side(row.Side),
		TeamExternalID:    row.TeamExternalID,
		Counters:          countersFromColumns(row.counterColumns),
		Saves:             row.Saves,
		PossessionPct:     stats.RatioFromPtr(row.PossessionPct),
		PassCompletionPct: stats.RatioFromPtr(row.PassCompletionPct),
		DribbleSuccessPct: stats.RatioFromPtr(row.DribbleSuccessPct),
		ShotAccuracyPct:   stats.RatioFromPtr(row.ShotAccuracyPct),
	}
}

func playerMatchStatisticsToRow(s stats.PlayerMatchStatistics) playerMatchStatisticsTableModel {
	return playerMatchStatisticsTableModel{
		MatchID:           s.MatchID,
		PlayerID:          s.PlayerID,
		ClubID:            s.ClubID,
		ExternalPlayerID:  s.ExternalPlayerID,
		Assists:           s.Assists,
		counterColumns:    countersToColumns(s.Counters),
		PassCompletionPct: s.PassCompletionPct.Ptr(),
		DribbleSuccessPct: s.DribbleSuccessPct.Ptr(),
		ShotAccuracyPct:   s.ShotAccuracyPct.Ptr(),
	}
}

func playerMatchStatisticsFromRow(row playerMatchStatisticsTableModel) stats.PlayerMatchStatistics {
	return stats.PlayerMatchStatistics{
		MatchID:           row.MatchID,
		PlayerID:          row.PlayerID,
		ClubID:            row.ClubID,
		ExternalPlayerID:  row.ExternalPlayerID,
		Assists:           row.Assists,
		Counters:          countersFromColumns(row.counterColumns),
		PassCompletionPct: stats.RatioFromPtr(row.PassCompletionPct),
		DribbleSuccessPct: stats.RatioFromPtr(row.DribbleSuccessPct),
		ShotAccuracyPct:   stats.RatioFromPtr(row.ShotAccuracyPct),
	}
}
