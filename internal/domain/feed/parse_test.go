package feed

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	doc := []byte(`[
		{"id":"a","index":1,"period":1,"type":{"id":35,"name":"Starting XI"},"team":{"id":10,"name":"Harbour FC"},
		 "tactics":{"formation":442,"lineup":[{"player":{"id":7,"name":"Ana"},"position":{"id":1,"name":"Goalkeeper"},"jersey_number":1}]}},
		{"id":"b","period":5,"type":{"id":16,"name":"Shot"},"team":{"id":10,"name":"Harbour FC"},
		 "shot":{"outcome":{"id":97,"name":"Goal"},"end_location":[120,40,1.2]},"location":[108,40]}
	]`)

	events, err := Parse(doc)
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].Index != 2 {
		t.Fatalf("expected missing index to default to position, got %d", events[1].Index)
	}
	if !events[1].IsGoal() || events[1].IsCountedGoal() {
		t.Fatalf("shootout goal must be a goal that does not count")
	}
	end, ok := events[1].EndLocation()
	if !ok || end.X != 120 {
		t.Fatalf("unexpected end location: %+v ok=%v", end, ok)
	}
	if len(events[0].Raw) == 0 {
		t.Fatalf("expected raw record to be kept")
	}

	lineups := StartingLineups(events)
	if len(lineups) != 1 || lineups[0].Tactics.Lineup[0].Jersey() != 1 {
		t.Fatalf("unexpected starting lineups: %+v", lineups)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: "  "},
		{name: "object", doc: `{"id":"x"}`},
		{name: "empty array", doc: `[]`},
		{name: "truncated", doc: `[{"id":"x"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if !errors.Is(err, ErrMalformedFeed) {
				t.Fatalf("expected ErrMalformedFeed, got %v", err)
			}
		})
	}
}
