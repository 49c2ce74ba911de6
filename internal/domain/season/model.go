package season

import (
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
)

const DefaultFormLength = 5

// FormPlaceholder fills form slots for which the club has no match yet.
const FormPlaceholder = '-'

// MatchAverages are per-match means of every team statistic field.
type MatchAverages struct {
	Goals             float64
	Shots             float64
	ShotsOnTarget     float64
	ShotsOffTarget    float64
	Saves             float64
	Passes            float64
	PassesCompleted   float64
	FinalThirdPasses  float64
	LongPasses        float64
	Crosses           float64
	Dribbles          float64
	DribblesCompleted float64
	Tackles           float64
	Interceptions     float64
	BallRecoveries    float64
	PossessionPct     stats.Ratio
	PassCompletionPct stats.Ratio
	DribbleSuccessPct stats.Ratio
	ShotAccuracyPct   stats.Ratio
}

// ClubSeason is the single rollup row of a club, recomputed from full history.
type ClubSeason struct {
	ClubID        string
	MatchesPlayed int
	Wins          int
	Draws         int
	Losses        int
	GoalsFor      int
	GoalsAgainst  int
	CleanSheets   int
	// Form is exactly the configured length: most recent results first, one of W/D/L per
	// match, padded with FormPlaceholder.
	Form     string
	Averages MatchAverages
}

type PlayerTotals struct {
	Appearances int
	Assists     int
	stats.Counters
}

type PlayerRates struct {
	GoalsPerMatch         float64
	AssistsPerMatch       float64
	ShotsPerMatch         float64
	PassesPerMatch        float64
	FinalThirdPerMatch    float64
	LongPassesPerMatch    float64
	CrossesPerMatch       float64
	DribblesPerMatch      float64
	TacklesPerMatch       float64
	InterceptionsPerMatch float64
	RecoveriesPerMatch    float64
	PassCompletionPct     stats.Ratio
	DribbleSuccessPct     stats.Ratio
	ShotAccuracyPct       stats.Ratio
}

// PlayerSeason is the single rollup row of a player.
type PlayerSeason struct {
	PlayerID   string
	ClubID     string
	Totals     PlayerTotals
	Rates      PlayerRates
	Attributes Attributes
}
