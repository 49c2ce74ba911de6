package season

import (
	"sort"
	"strings"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
)

// BuildClubSeason derives the club rollup from the club's full match history. matches must be
// ordered oldest first; ours holds our-side statistics rows for those matches.
func BuildClubSeason(clubID string, matches []match.Match, ours []stats.MatchStatistics, formLength int) ClubSeason {
	if formLength <= 0 {
		formLength = DefaultFormLength
	}

	out := ClubSeason{ClubID: clubID, MatchesPlayed: len(matches)}
	for _, m := range matches {
		goalsFor, goalsAgainst := m.GoalsFor(), m.GoalsAgainst()
		out.GoalsFor += goalsFor
		out.GoalsAgainst += goalsAgainst
		if goalsAgainst == 0 {
			out.CleanSheets++
		}
		switch match.Classify(goalsFor, goalsAgainst) {
		case match.ResultWin:
			out.Wins++
		case match.ResultDraw:
			out.Draws++
		default:
			out.Losses++
		}
	}

	var form strings.Builder
	for i := len(matches) - 1; i >= 0 && form.Len() < formLength; i-- {
		form.WriteString(string(match.Classify(matches[i].GoalsFor(), matches[i].GoalsAgainst())))
	}
	for form.Len() < formLength {
		form.WriteByte(FormPlaceholder)
	}
	out.Form = form.String()
	out.Averages = averageMatchStatistics(ours)

	return out
}

func averageMatchStatistics(rows []stats.MatchStatistics) MatchAverages {
	if len(rows) == 0 {
		return MatchAverages{}
	}

	var sum stats.Counters
	var saves int
	possession := make([]stats.Ratio, 0, len(rows))
	passing := make([]stats.Ratio, 0, len(rows))
	dribbling := make([]stats.Ratio, 0, len(rows))
	accuracy := make([]stats.Ratio, 0, len(rows))
	for _, row := range rows {
		sum = addCounters(sum, row.Counters)
		saves += row.Saves
		possession = append(possession, row.PossessionPct)
		passing = append(passing, row.PassCompletionPct)
		dribbling = append(dribbling, row.DribbleSuccessPct)
		accuracy = append(accuracy, row.ShotAccuracyPct)
	}

	n := float64(len(rows))
	avg := func(v int) float64 { return stats.Round(float64(v)/n, 2) }
	return MatchAverages{
		Goals:             avg(sum.Goals),
		Shots:             avg(sum.Shots),
		ShotsOnTarget:     avg(sum.ShotsOnTarget),
		ShotsOffTarget:    avg(sum.ShotsOffTarget),
		Saves:             avg(saves),
		Passes:            avg(sum.Passes),
		PassesCompleted:   avg(sum.PassesCompleted),
		FinalThirdPasses:  avg(sum.FinalThirdPasses),
		LongPasses:        avg(sum.LongPasses),
		Crosses:           avg(sum.Crosses),
		Dribbles:          avg(sum.Dribbles),
		DribblesCompleted: avg(sum.DribblesCompleted),
		Tackles:           avg(sum.Tackles),
		Interceptions:     avg(sum.Interceptions),
		BallRecoveries:    avg(sum.BallRecoveries),
		PossessionPct:     meanRatio(possession),
		PassCompletionPct: meanRatio(passing),
		DribbleSuccessPct: meanRatio(dribbling),
		ShotAccuracyPct:   meanRatio(accuracy),
	}
}

// meanRatio averages the applicable values; none applicable yields not applicable.
func meanRatio(values []stats.Ratio) stats.Ratio {
	var total float64
	var n int
	for _, v := range values {
		if !v.Applicable {
			continue
		}
		total += v.Value
		n++
	}
	if n == 0 {
		return stats.NotApplicable()
	}
	return stats.Ratio{Value: stats.Round(total/float64(n), 1), Applicable: true}
}

// BuildPlayerSeasons groups per-match player rows by player and derives one rollup per player,
// ordered by player id.
func BuildPlayerSeasons(clubID string, rows []stats.PlayerMatchStatistics, weights AttributeWeights) []PlayerSeason {
	byPlayer := make(map[string]*PlayerTotals)
	for _, row := range rows {
		totals, ok := byPlayer[row.PlayerID]
		if !ok {
			totals = &PlayerTotals{}
			byPlayer[row.PlayerID] = totals
		}
		totals.Appearances++
		totals.Assists += row.Assists
		totals.Counters = addCounters(totals.Counters, row.Counters)
	}

	ids := make([]string, 0, len(byPlayer))
	for id := range byPlayer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]PlayerSeason, 0, len(ids))
	for _, id := range ids {
		totals := *byPlayer[id]
		rates := playerRates(totals)
		out = append(out, PlayerSeason{
			PlayerID:   id,
			ClubID:     clubID,
			Totals:     totals,
			Rates:      rates,
			Attributes: ScoreAttributes(attributeInputs(rates), weights),
		})
	}
	return out
}

func playerRates(t PlayerTotals) PlayerRates {
	per := func(v int) float64 {
		if t.Appearances == 0 {
			return 0
		}
		return stats.Round(float64(v)/float64(t.Appearances), 2)
	}
	return PlayerRates{
		GoalsPerMatch:         per(t.Goals),
		AssistsPerMatch:       per(t.Assists),
		ShotsPerMatch:         per(t.Shots),
		PassesPerMatch:        per(t.Passes),
		FinalThirdPerMatch:    per(t.FinalThirdPasses),
		LongPassesPerMatch:    per(t.LongPasses),
		CrossesPerMatch:       per(t.Crosses),
		DribblesPerMatch:      per(t.Dribbles),
		TacklesPerMatch:       per(t.Tackles),
		InterceptionsPerMatch: per(t.Interceptions),
		RecoveriesPerMatch:    per(t.BallRecoveries),
		PassCompletionPct:     t.PassCompletion(),
		DribbleSuccessPct:     t.DribbleSuccess(),
		ShotAccuracyPct:       t.ShotAccuracy(),
	}
}

func attributeInputs(r PlayerRates) AttributeInputs {
	return AttributeInputs{
		GoalsPerMatch:         r.GoalsPerMatch,
		AssistsPerMatch:       r.AssistsPerMatch,
		ShotsPerMatch:         r.ShotsPerMatch,
		PassesPerMatch:        r.PassesPerMatch,
		FinalThirdPerMatch:    r.FinalThirdPerMatch,
		LongPassesPerMatch:    r.LongPassesPerMatch,
		CrossesPerMatch:       r.CrossesPerMatch,
		TacklesPerMatch:       r.TacklesPerMatch,
		InterceptionsPerMatch: r.InterceptionsPerMatch,
		RecoveriesPerMatch:    r.RecoveriesPerMatch,
		ShotAccuracyPct:       r.ShotAccuracyPct,
		PassCompletionPct:     r.PassCompletionPct,
		DribbleSuccessPct:     r.DribbleSuccessPct,
	}
}

func addCounters(a, b stats.Counters) stats.Counters {
	return stats.Counters{
		Goals:             a.Goals + b.Goals,
		Shots:             a.Shots + b.Shots,
		ShotsOnTarget:     a.ShotsOnTarget + b.ShotsOnTarget,
		ShotsOffTarget:    a.ShotsOffTarget + b.ShotsOffTarget,
		Passes:            a.Passes + b.Passes,
		PassesCompleted:   a.PassesCompleted + b.PassesCompleted,
		FinalThirdPasses:  a.FinalThirdPasses + b.FinalThirdPasses,
		LongPasses:        a.LongPasses + b.LongPasses,
		Crosses:           a.Crosses + b.Crosses,
		Dribbles:          a.Dribbles + b.Dribbles,
		DribblesCompleted: a.DribblesCompleted + b.DribblesCompleted,
		Tackles:           a.Tackles + b.Tackles,
		Interceptions:     a.Interceptions + b.Interceptions,
		BallRecoveries:    a.BallRecoveries + b.BallRecoveries,
	}
}
