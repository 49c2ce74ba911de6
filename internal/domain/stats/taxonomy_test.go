package stats

import "testing"

func TestCanonicalOutcome(t *testing.T) {
	tests := map[string]string{
		"Goal":            OutcomeGoal,
		"Saved To Post":   OutcomeSavedToPost,
		"Off T":           OutcomeOffTarget,
		"Saved Off T":     OutcomeSavedOffTarget,
		"Success In Play": OutcomeSuccessInPlay,
		"":                OutcomeUnknown,
	}
	for name, want := range tests {
		if got := CanonicalOutcome(name); got != want {
			t.Fatalf("CanonicalOutcome(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestClassifyShotIsTotal(t *testing.T) {
	want := map[string]ShotBucket{
		OutcomeGoal:           BucketOnTarget,
		OutcomeSaved:          BucketOnTarget,
		OutcomeSavedToPost:    BucketOnTarget,
		OutcomeOffTarget:      BucketOffTarget,
		OutcomePost:           BucketOffTarget,
		OutcomeWayward:        BucketOffTarget,
		OutcomeSavedOffTarget: BucketOffTarget,
		OutcomeBlocked:        BucketTotalOnly,
	}

	codes := Outcomes.ShotOutcomeCodes()
	if len(codes) != len(want) {
		t.Fatalf("shot table has codes %v, want exactly %d", codes, len(want))
	}
	for _, code := range codes {
		if _, ok := want[code]; !ok {
			t.Fatalf("unexpected shot outcome code %q", code)
		}
	}
	for code, bucket := range want {
		if got := Outcomes.ClassifyShot(code); got != bucket {
			t.Fatalf("ClassifyShot(%q) = %s, want %s", code, got, bucket)
		}
	}

	// Feed names reach the table through CanonicalOutcome.
	for name, bucket := range map[string]ShotBucket{
		"Goal":          BucketOnTarget,
		"Saved To Post": BucketOnTarget,
		"Off T":         BucketOffTarget,
		"Wayward":       BucketOffTarget,
		"Blocked":       BucketTotalOnly,
	} {
		if got := Outcomes.ClassifyShot(CanonicalOutcome(name)); got != bucket {
			t.Fatalf("feed outcome %q = %s, want %s", name, got, bucket)
		}
	}

	if got := Outcomes.ClassifyShot("something-new"); got != BucketTotalOnly {
		t.Fatalf("unknown code must count in total only, got %s", got)
	}
}

func TestPercent(t *testing.T) {
	if r := Percent(1, 0); r.Applicable {
		t.Fatalf("zero denominator must be not applicable")
	}
	if r := Percent(2, 3); !r.Applicable || r.Value != 66.7 {
		t.Fatalf("unexpected ratio: %+v", r)
	}
	if got := NotApplicable().String(); got != "n/a" {
		t.Fatalf("unexpected n/a rendering %q", got)
	}
}
