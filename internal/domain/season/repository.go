package season

import "context"

// Repository stores the recomputed rollups.
type Repository interface {
	// LockClub serializes rollup recomputation for one club until the surrounding
	// transaction ends.
	LockClub(ctx context.Context, clubID string) error
	UpsertClubSeason(ctx context.Context, row ClubSeason) error
	GetClubSeason(ctx context.Context, clubID string) (ClubSeason, bool, error)
	// ReplacePlayerSeasons replaces every player rollup row of the club.
	ReplacePlayerSeasons(ctx context.Context, clubID string, rows []PlayerSeason) error
	ListPlayerSeasons(ctx context.Context, clubID string) ([]PlayerSeason, error)
}
