package memory

import "github.com/riskibarqy/match-ingest/internal/domain/club"

const (
	ClubIDHarbour = "club-harbour"
	ClubIDNorth   = "club-north"
)

// SeedClubs returns the clubs a local memory-backed process starts with.
func SeedClubs() []club.Club {
	return []club.Club{
		{ID: ClubIDHarbour, Name: "Harbour Athletic"},
		{ID: ClubIDNorth, Name: "North End Rovers"},
	}
}
