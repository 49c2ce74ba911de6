package match

import "testing"

func TestScoreOrientation(t *testing.T) {
	tests := []struct {
		name       string
		venue      Venue
		score      Score
		wantOurs   int
		wantTheirs int
		wantResult Result
	}{
		{name: "home win", venue: VenueHome, score: Score{Home: 2, Away: 1}, wantOurs: 2, wantTheirs: 1, wantResult: ResultWin},
		{name: "away loss", venue: VenueAway, score: Score{Home: 2, Away: 1}, wantOurs: 1, wantTheirs: 2, wantResult: ResultLoss},
		{name: "draw", venue: VenueAway, score: Score{Home: 0, Away: 0}, wantOurs: 0, wantTheirs: 0, wantResult: ResultDraw},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ours, theirs := tc.score.Oriented(tc.venue)
			if ours != tc.wantOurs || theirs != tc.wantTheirs {
				t.Fatalf("oriented = %d-%d, want %d-%d", ours, theirs, tc.wantOurs, tc.wantTheirs)
			}
			if got := Classify(ours, theirs); got != tc.wantResult {
				t.Fatalf("result = %s, want %s", got, tc.wantResult)
			}
			if back := ScoreFromSides(tc.venue, ours, theirs); back != tc.score {
				t.Fatalf("round trip = %s, want %s", back, tc.score)
			}
		})
	}
}

func TestLineupEntryValidate(t *testing.T) {
	if err := (LineupEntry{Side: SideOurs, PlayerID: "p1"}).Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}
	if err := (LineupEntry{Side: SideOurs, PlayerID: "p1", OpponentPlayerID: "o1"}).Validate(); err == nil {
		t.Fatalf("entry with both references must fail")
	}
	if err := (LineupEntry{Side: SideOpponent, PlayerID: "p1"}).Validate(); err == nil {
		t.Fatalf("opponent entry referencing our player must fail")
	}
}
