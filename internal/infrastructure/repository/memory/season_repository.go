package memory

import (
	"context"

	"github.com/riskibarqy/match-ingest/internal/domain/season"
)

type seasonRepository struct{ st *state }

// LockClub is a no-op. Stores from NewStore run one transaction at a time; with
// NewConcurrentStore the caller owns per-club serialization.
func (r seasonRepository) LockClub(_ context.Context, _ string) error {
	return nil
}

func (r seasonRepository) UpsertClubSeason(_ context.Context, row season.ClubSeason) error {
	r.st.clubSeasons[row.ClubID] = row
	return nil
}

func (r seasonRepository) GetClubSeason(_ context.Context, clubID string) (season.ClubSeason, bool, error) {
	row, ok := r.st.clubSeasons[clubID]
	return row, ok, nil
}

func (r seasonRepository) ReplacePlayerSeasons(_ context.Context, clubID string, rows []season.PlayerSeason) error {
	r.st.playerSeasons[clubID] = append([]season.PlayerSeason(nil), rows...)
	return nil
}

func (r seasonRepository) ListPlayerSeasons(_ context.Context, clubID string) ([]season.PlayerSeason, error) {
	return append([]season.PlayerSeason(nil), r.st.playerSeasons[clubID]...), nil
}
