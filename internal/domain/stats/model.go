package stats

import "github.com/riskibarqy/match-ingest/internal/domain/match"

// Counters are the additive per-match tallies shared by team and player rows.
type Counters struct {
	Goals             int
	Shots             int
	ShotsOnTarget     int
	ShotsOffTarget    int
	Passes            int
	PassesCompleted   int
	FinalThirdPasses  int
	LongPasses        int
	Crosses           int
	Dribbles          int
	DribblesCompleted int
	Tackles           int
	Interceptions     int
	BallRecoveries    int
}

func (c Counters) PassCompletion() Ratio {
	return Percent(float64(c.PassesCompleted), float64(c.Passes))
}

func (c Counters) DribbleSuccess() Ratio {
	return Percent(float64(c.DribblesCompleted), float64(c.Dribbles))
}

func (c Counters) ShotAccuracy() Ratio {
	return Percent(float64(c.ShotsOnTarget), float64(c.Shots))
}

// MatchStatistics is one side's aggregate row; exactly two exist per match.
type MatchStatistics struct {
	MatchID        string
	Side           match.Side
	TeamExternalID int64
	Counters
	Saves             int
	PossessionPct     Ratio
	PassCompletionPct Ratio
	DribbleSuccessPct Ratio
	ShotAccuracyPct   Ratio
}

// PlayerMatchStatistics is one fielded our-side player's aggregate for a match.
type PlayerMatchStatistics struct {
	MatchID          string
	PlayerID         string
	ClubID           string
	ExternalPlayerID int64
	Assists          int
	Counters
	PassCompletionPct Ratio
	DribbleSuccessPct Ratio
	ShotAccuracyPct   Ratio
}
