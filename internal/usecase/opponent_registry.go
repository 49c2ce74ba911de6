package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-ingest/internal/domain/club"
	"github.com/riskibarqy/match-ingest/internal/platform/id"
)

type OpponentRegistry struct {
	ids id.Generator
}

func NewOpponentRegistry(ids id.Generator) *OpponentRegistry {
	return &OpponentRegistry{ids: ids}
}

// Upsert gets or creates the opponent keyed by its external team id. The caller's display name
// wins over the feed's team name; stored name and crest are rewritten only when they differ.
func (r *OpponentRegistry) Upsert(ctx context.Context, repo club.OpponentRepository, team FeedTeam, displayName, crestURL string) (club.Opponent, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OpponentRegistry.Upsert")
	defer span.End()

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = strings.TrimSpace(team.Name)
	}
	crestURL = strings.TrimSpace(crestURL)

	existing, ok, err := repo.GetByExternalID(ctx, team.ExternalID)
	if err != nil {
		return club.Opponent{}, false, fmt.Errorf("get opponent by external id=%d: %w", team.ExternalID, err)
	}

	if !ok {
		opponentID, err := r.ids.NewID()
		if err != nil {
			return club.Opponent{}, false, fmt.Errorf("generate opponent id: %w", err)
		}
		created := club.Opponent{
			ID:             opponentID,
			ExternalTeamID: team.ExternalID,
			Name:           name,
			CrestURL:       crestURL,
		}
		if err := created.Validate(); err != nil {
			return club.Opponent{}, false, errors.Wrap(ErrValidation, err.Error())
		}
		if err := repo.Create(ctx, created); err != nil {
			return club.Opponent{}, false, fmt.Errorf("create opponent: %w", err)
		}
		return created, true, nil
	}

	updated := existing
	if name != "" {
		updated.Name = name
	}
	if crestURL != "" {
		updated.CrestURL = crestURL
	}
	if updated == existing {
		return existing, false, nil
	}
	if err := repo.Update(ctx, updated); err != nil {
		return club.Opponent{}, false, fmt.Errorf("update opponent id=%s: %w", existing.ID, err)
	}
	return updated, false, nil
}
