package usecase

import (
	"github.com/riskibarqy/match-ingest/internal/domain/event"
	"github.com/riskibarqy/match-ingest/internal/domain/feed"
	"github.com/riskibarqy/match-ingest/internal/domain/stats"
)

// tallyEvent adds one stored action to c. Match and player aggregation both go through here
// with the same taxonomy, so their totals cannot drift apart.
func tallyEvent(c *stats.Counters, ev event.MatchEvent, t *stats.Taxonomy) {
	if ev.IsShootout() {
		return
	}

	switch ev.Category {
	case event.CategoryPass:
		c.Passes++
		completed := ev.Outcome == stats.OutcomeComplete
		if completed {
			c.PassesCompleted++
			if entersFinalThird(ev) {
				c.FinalThirdPasses++
			}
		}
		if ev.PassLength != nil && *ev.PassLength >= feed.LongPassLength {
			c.LongPasses++
		}
		if ev.IsCross {
			c.Crosses++
		}
	case event.CategoryShot:
		c.Shots++
		switch t.ClassifyShot(ev.Outcome) {
		case stats.BucketOnTarget:
			c.ShotsOnTarget++
		case stats.BucketOffTarget:
			c.ShotsOffTarget++
		}
		if ev.Outcome == stats.OutcomeGoal {
			c.Goals++
		}
	case event.CategoryDribble:
		c.Dribbles++
		if t.DribbleSuccess.Contains(ev.Outcome) {
			c.DribblesCompleted++
		}
	}
}

func entersFinalThird(ev event.MatchEvent) bool {
	if ev.EndX == nil || *ev.EndX < feed.FinalThirdStartX {
		return false
	}
	return ev.StartX == nil || *ev.StartX < feed.FinalThirdStartX
}

// tallyDefensive counts the defensive actions that only exist in the full feed.
func tallyDefensive(c *stats.Counters, ev feed.Event, t *stats.Taxonomy) {
	if ev.IsShootout() {
		return
	}

	switch ev.TypeName() {
	case feed.TypeDuel:
		if ev.Duel == nil || ev.Duel.Type == nil || ev.Duel.Type.Name != feed.DuelTypeTackle {
			return
		}
		if ev.Duel.Outcome != nil && t.TackleSuccess.Contains(stats.CanonicalOutcome(ev.Duel.Outcome.Name)) {
			c.Tackles++
		}
	case feed.TypeInterception:
		if ev.Interception != nil && ev.Interception.Outcome != nil &&
			t.InterceptionSuccess.Contains(stats.CanonicalOutcome(ev.Interception.Outcome.Name)) {
			c.Interceptions++
		}
	case feed.TypeBallRecovery:
		if ev.BallRecovery == nil || !ev.BallRecovery.RecoveryFailure {
			c.BallRecoveries++
		}
	}
}
