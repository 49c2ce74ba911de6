package usecase

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-ingest/internal/domain/player"
	"github.com/riskibarqy/match-ingest/internal/platform/id"
)

const defaultJoinCodeAttempts = 8

// NewJoinCode is handed back to the caller for distribution to a new roster member.
type NewJoinCode struct {
	PlayerID         string `json:"player_id"`
	ExternalPlayerID int64  `json:"external_player_id"`
	Name             string `json:"name"`
	JoinCode         string `json:"join_code"`
}

type RosterResult struct {
	// Ours and Opponents are keyed by external player id.
	Ours      map[int64]player.Player
	Opponents map[int64]player.OpponentPlayer

	Created         int
	Updated         int
	Untouched       int
	OpponentCreated int
	OpponentUpdated int
	JoinCodes       []NewJoinCode
}

type RosterReconciler struct {
	ids          id.Generator
	codes        id.CodeGenerator
	codeAttempts int
}

func NewRosterReconciler(ids id.Generator, codes id.CodeGenerator) *RosterReconciler {
	return &RosterReconciler{ids: ids, codes: codes, codeAttempts: defaultJoinCodeAttempts}
}

// Reconcile upserts both fielded lineups. Claimed players are never written; pending players
// only get jersey and position refreshed.
func (r *RosterReconciler) Reconcile(
	ctx context.Context,
	players player.Repository,
	opponentPlayers player.OpponentRepository,
	clubID, opponentID string,
	ours, theirs []player.LineupEntry,
) (RosterResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterReconciler.Reconcile")
	defer span.End()

	result := RosterResult{
		Ours:      make(map[int64]player.Player, len(ours)),
		Opponents: make(map[int64]player.OpponentPlayer, len(theirs)),
	}
	issued := make(map[string]struct{}, len(ours))

	for _, entry := range ours {
		p, err := r.reconcileOurs(ctx, players, clubID, entry, issued, &result)
		if err != nil {
			return RosterResult{}, err
		}
		result.Ours[entry.ExternalPlayerID] = p
	}

	for _, entry := range theirs {
		p, err := r.reconcileOpponent(ctx, opponentPlayers, opponentID, entry, &result)
		if err != nil {
			return RosterResult{}, err
		}
		result.Opponents[entry.ExternalPlayerID] = p
	}

	return result, nil
}

func (r *RosterReconciler) reconcileOurs(
	ctx context.Context,
	players player.Repository,
	clubID string,
	entry player.LineupEntry,
	issued map[string]struct{},
	result *RosterResult,
) (player.Player, error) {
	existing, ok, err := players.GetByExternalID(ctx, clubID, entry.ExternalPlayerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player club=%s external=%d: %w", clubID, entry.ExternalPlayerID, err)
	}

	if !ok {
		playerID, err := r.ids.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
		code, err := r.uniqueJoinCode(ctx, players, issued)
		if err != nil {
			return player.Player{}, err
		}
		created := player.Player{
			ID:               playerID,
			ClubID:           clubID,
			ExternalPlayerID: entry.ExternalPlayerID,
			Name:             entry.Name,
			JerseyNumber:     entry.JerseyNumber,
			Position:         entry.Position,
			Membership:       player.Pending{JoinCode: code},
		}
		if err := created.Validate(); err != nil {
			return player.Player{}, errors.Wrap(ErrValidation, err.Error())
		}
		if err := players.Create(ctx, created); err != nil {
			return player.Player{}, fmt.Errorf("create player external=%d: %w", entry.ExternalPlayerID, err)
		}
		result.Created++
		result.JoinCodes = append(result.JoinCodes, NewJoinCode{
			PlayerID:         created.ID,
			ExternalPlayerID: created.ExternalPlayerID,
			Name:             created.Name,
			JoinCode:         code,
		})
		return created, nil
	}

	if existing.IsClaimed() {
		result.Untouched++
		return existing, nil
	}
	if existing.JerseyNumber == entry.JerseyNumber && existing.Position == entry.Position {
		result.Untouched++
		return existing, nil
	}

	if err := players.UpdateSquadDetails(ctx, existing.ID, entry.JerseyNumber, entry.Position); err != nil {
		return player.Player{}, fmt.Errorf("update player id=%s: %w", existing.ID, err)
	}
	existing.JerseyNumber = entry.JerseyNumber
	existing.Position = entry.Position
	result.Updated++
	return existing, nil
}

func (r *RosterReconciler) uniqueJoinCode(ctx context.Context, players player.Repository, issued map[string]struct{}) (string, error) {
	for attempt := 0; attempt < r.codeAttempts; attempt++ {
		code, err := r.codes.NewCode()
		if err != nil {
			return "", err
		}
		if _, dup := issued[code]; dup {
			continue
		}
		exists, err := players.JoinCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check join code: %w", err)
		}
		if exists {
			continue
		}
		issued[code] = struct{}{}
		return code, nil
	}
	return "", errors.Newf("no unique join code after %d attempts", r.codeAttempts)
}

func (r *RosterReconciler) reconcileOpponent(
	ctx context.Context,
	repo player.OpponentRepository,
	opponentID string,
	entry player.LineupEntry,
	result *RosterResult,
) (player.OpponentPlayer, error) {
	existing, ok, err := repo.GetByExternalID(ctx, opponentID, entry.ExternalPlayerID)
	if err != nil {
		return player.OpponentPlayer{}, fmt.Errorf("get opponent player opponent=%s external=%d: %w", opponentID, entry.ExternalPlayerID, err)
	}

	if !ok {
		playerID, err := r.ids.NewID()
		if err != nil {
			return player.OpponentPlayer{}, fmt.Errorf("generate opponent player id: %w", err)
		}
		created := player.OpponentPlayer{
			ID:               playerID,
			OpponentID:       opponentID,
			ExternalPlayerID: entry.ExternalPlayerID,
			Name:             entry.Name,
			JerseyNumber:     entry.JerseyNumber,
			Position:         entry.Position,
		}
		if err := repo.Create(ctx, created); err != nil {
			return player.OpponentPlayer{}, fmt.Errorf("create opponent player external=%d: %w", entry.ExternalPlayerID, err)
		}
		result.OpponentCreated++
		return created, nil
	}

	if existing.Name == entry.Name && existing.JerseyNumber == entry.JerseyNumber && existing.Position == entry.Position {
		return existing, nil
	}
	if err := repo.UpdateSquadDetails(ctx, existing.ID, entry.Name, entry.JerseyNumber, entry.Position); err != nil {
		return player.OpponentPlayer{}, fmt.Errorf("update opponent player id=%s: %w", existing.ID, err)
	}
	existing.Name = entry.Name
	existing.JerseyNumber = entry.JerseyNumber
	existing.Position = entry.Position
	result.OpponentUpdated++
	return existing, nil
}
