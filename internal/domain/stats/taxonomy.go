package stats

import (
	"sort"
	"strings"
)

// ShotBucket is the classification of a shot outcome. Every outcome code maps to exactly one bucket.
type ShotBucket string

const (
	BucketOnTarget  ShotBucket = "on_target"
	BucketOffTarget ShotBucket = "off_target"
	BucketTotalOnly ShotBucket = "total_only"
)

// Canonical outcome codes.
const (
	OutcomeGoal           = "goal"
	OutcomeSaved          = "saved"
	OutcomeSavedToPost    = "saved-to-post"
	OutcomeOffTarget      = "off-target"
	OutcomePost           = "post"
	OutcomeWayward        = "wayward"
	OutcomeBlocked        = "blocked"
	OutcomeSavedOffTarget = "saved-off-target"

	OutcomeComplete      = "complete"
	OutcomeIncomplete    = "incomplete"
	OutcomeWon           = "won"
	OutcomeSuccess       = "success"
	OutcomeSuccessInPlay = "success-in-play"
	OutcomeSuccessOut    = "success-out"
	OutcomeLostInPlay    = "lost-in-play"
	OutcomeLostOut       = "lost-out"
	OutcomeUnknown       = "unknown"
)

var outcomeAliases = map[string]string{
	"off-t":       OutcomeOffTarget,
	"saved-off-t": OutcomeSavedOffTarget,
}

// CanonicalOutcome turns a feed outcome name ("Saved To Post", "Off T") into its code.
func CanonicalOutcome(name string) string {
	code := strings.ToLower(strings.TrimSpace(name))
	if code == "" {
		return OutcomeUnknown
	}
	code = strings.Join(strings.FieldsFunc(code, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "-")
	if alias, ok := outcomeAliases[code]; ok {
		return alias
	}
	return code
}

// OutcomeSet is an allow-list of outcome codes.
type OutcomeSet map[string]struct{}

func NewOutcomeSet(codes ...string) OutcomeSet {
	out := make(OutcomeSet, len(codes))
	for _, code := range codes {
		out[code] = struct{}{}
	}
	return out
}

func (s OutcomeSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

func (s OutcomeSet) Codes() []string {
	out := make([]string, 0, len(s))
	for code := range s {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Taxonomy holds the outcome lookup tables. Match- and player-level aggregation both read
// the single Outcomes instance so their totals cannot diverge.
type Taxonomy struct {
	ShotBuckets         map[string]ShotBucket
	GoalkeeperSaves     OutcomeSet
	DribbleSuccess      OutcomeSet
	TackleSuccess       OutcomeSet
	InterceptionSuccess OutcomeSet
}

var Outcomes = &Taxonomy{
	ShotBuckets: map[string]ShotBucket{
		OutcomeGoal:           BucketOnTarget,
		OutcomeSaved:          BucketOnTarget,
		OutcomeSavedToPost:    BucketOnTarget,
		OutcomeOffTarget:      BucketOffTarget,
		OutcomePost:           BucketOffTarget,
		OutcomeWayward:        BucketOffTarget,
		OutcomeSavedOffTarget: BucketOffTarget,
		OutcomeBlocked:        BucketTotalOnly,
	},
	GoalkeeperSaves:     NewOutcomeSet(OutcomeSaved, OutcomeSavedToPost),
	DribbleSuccess:      NewOutcomeSet(OutcomeComplete),
	TackleSuccess:       NewOutcomeSet(OutcomeWon, OutcomeSuccess, OutcomeSuccessInPlay, OutcomeSuccessOut),
	InterceptionSuccess: NewOutcomeSet(OutcomeWon, OutcomeSuccess, OutcomeSuccessInPlay, OutcomeSuccessOut),
}

// ClassifyShot buckets a shot outcome code. Codes outside the table count in the total only.
func (t *Taxonomy) ClassifyShot(code string) ShotBucket {
	if bucket, ok := t.ShotBuckets[code]; ok {
		return bucket
	}
	return BucketTotalOnly
}

// ShotOutcomeCodes lists the codes with an explicit bucket.
func (t *Taxonomy) ShotOutcomeCodes() []string {
	out := make([]string, 0, len(t.ShotBuckets))
	for code := range t.ShotBuckets {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (t *Taxonomy) IsGoalkeeperSave(shotOutcome string) bool {
	return t.GoalkeeperSaves.Contains(shotOutcome)
}
