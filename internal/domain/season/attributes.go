package season

import (
	"math"

	"github.com/riskibarqy/match-ingest/internal/domain/stats"
)

// Attributes are 0-100 style ratings derived from cumulative statistics.
type Attributes struct {
	Attacking  int
	Technique  int
	Tactical   int
	Defending  int
	Creativity int
}

// AttributeInputs are the per-match rates and percentages the scorer reads.
type AttributeInputs struct {
	GoalsPerMatch         float64
	AssistsPerMatch       float64
	ShotsPerMatch         float64
	PassesPerMatch        float64
	FinalThirdPerMatch    float64
	LongPassesPerMatch    float64
	CrossesPerMatch       float64
	TacklesPerMatch       float64
	InterceptionsPerMatch float64
	RecoveriesPerMatch    float64
	ShotAccuracyPct       stats.Ratio
	PassCompletionPct     stats.Ratio
	DribbleSuccessPct     stats.Ratio
}

// AttributeWeights is scoring policy. Revise it here without touching aggregation.
type AttributeWeights struct {
	AttackingGoals        float64
	AttackingShots        float64
	AttackingAccuracy     float64
	TechniquePassing      float64
	TechniqueDribbling    float64
	TacticalFinalThird    float64
	TacticalPassVolume    float64
	TacticalLongPasses    float64
	DefendingTackles      float64
	DefendingInterception float64
	DefendingRecoveries   float64
	CreativityAssists     float64
	CreativityCrosses     float64
	CreativityFinalThird  float64
}

func DefaultAttributeWeights() AttributeWeights {
	return AttributeWeights{
		AttackingGoals:        40,
		AttackingShots:        8,
		AttackingAccuracy:     0.3,
		TechniquePassing:      0.6,
		TechniqueDribbling:    0.4,
		TacticalFinalThird:    8,
		TacticalPassVolume:    1.2,
		TacticalLongPasses:    4,
		DefendingTackles:      12,
		DefendingInterception: 12,
		DefendingRecoveries:   6,
		CreativityAssists:     45,
		CreativityCrosses:     8,
		CreativityFinalThird:  5,
	}
}

// ScoreAttributes is a pure function of its inputs; every score is clamped to [0, 100].
// A not-applicable percentage contributes nothing.
func ScoreAttributes(in AttributeInputs, w AttributeWeights) Attributes {
	return Attributes{
		Attacking: clampScore(in.GoalsPerMatch*w.AttackingGoals +
			in.ShotsPerMatch*w.AttackingShots +
			ratioValue(in.ShotAccuracyPct)*w.AttackingAccuracy),
		Technique: clampScore(ratioValue(in.PassCompletionPct)*w.TechniquePassing +
			ratioValue(in.DribbleSuccessPct)*w.TechniqueDribbling),
		Tactical: clampScore(in.FinalThirdPerMatch*w.TacticalFinalThird +
			in.PassesPerMatch*w.TacticalPassVolume +
			in.LongPassesPerMatch*w.TacticalLongPasses),
		Defending: clampScore(in.TacklesPerMatch*w.DefendingTackles +
			in.InterceptionsPerMatch*w.DefendingInterception +
			in.RecoveriesPerMatch*w.DefendingRecoveries),
		Creativity: clampScore(in.AssistsPerMatch*w.CreativityAssists +
			in.CrossesPerMatch*w.CreativityCrosses +
			in.FinalThirdPerMatch*w.CreativityFinalThird),
	}
}

func ratioValue(r stats.Ratio) float64 {
	if !r.Applicable {
		return 0
	}
	return r.Value
}

func clampScore(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 100 {
		return 100
	}
	return int(math.Round(v))
}
