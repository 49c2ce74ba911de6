package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/season"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

type SeasonRollup struct {
	formLength int
	weights    season.AttributeWeights
}

func NewSeasonRollup(formLength int, weights season.AttributeWeights) *SeasonRollup {
	if formLength <= 0 {
		formLength = season.DefaultFormLength
	}
	return &SeasonRollup{formLength: formLength, weights: weights}
}

type SeasonRollupResult struct {
	Club    season.ClubSeason
	Players []season.PlayerSeason
}

// Recompute rebuilds the club's season rows from its full history. The club lock taken first
// keeps concurrent recomputations of one club from overwriting each other with stale data.
func (s *SeasonRollup) Recompute(ctx context.Context, repos storage.Repositories, clubID string) (SeasonRollupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonRollup.Recompute")
	defer span.End()

	if err := repos.Seasons.LockClub(ctx, clubID); err != nil {
		return SeasonRollupResult{}, fmt.Errorf("lock club season: %w", err)
	}

	matches, err := repos.Matches.ListByClub(ctx, clubID)
	if err != nil {
		return SeasonRollupResult{}, fmt.Errorf("list club matches: %w", err)
	}
	ours, err := repos.MatchStats.ListByClub(ctx, clubID, match.SideOurs)
	if err != nil {
		return SeasonRollupResult{}, fmt.Errorf("list club match statistics: %w", err)
	}
	playerRows, err := repos.PlayerStats.ListByClub(ctx, clubID)
	if err != nil {
		return SeasonRollupResult{}, fmt.Errorf("list club player statistics: %w", err)
	}

	result := SeasonRollupResult{
		Club:    season.BuildClubSeason(clubID, matches, ours, s.formLength),
		Players: season.BuildPlayerSeasons(clubID, playerRows, s.weights),
	}

	if err := repos.Seasons.UpsertClubSeason(ctx, result.Club); err != nil {
		return SeasonRollupResult{}, fmt.Errorf("upsert club season: %w", err)
	}
	if err := repos.Seasons.ReplacePlayerSeasons(ctx, clubID, result.Players); err != nil {
		return SeasonRollupResult{}, fmt.Errorf("replace player seasons: %w", err)
	}
	return result, nil
}
