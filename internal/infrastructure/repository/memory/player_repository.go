package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/match-ingest/internal/domain/player"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

type playerRepository struct{ st *state }

func (r playerRepository) GetByExternalID(_ context.Context, clubID string, externalPlayerID int64) (player.Player, bool, error) {
	for _, p := range r.st.players {
		if p.ClubID == clubID && p.ExternalPlayerID == externalPlayerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r playerRepository) ListByClub(_ context.Context, clubID string) ([]player.Player, error) {
	out := make([]player.Player, 0)
	for _, p := range r.st.players {
		if p.ClubID == clubID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r playerRepository) Create(ctx context.Context, p player.Player) error {
	if _, ok, _ := r.GetByExternalID(ctx, p.ClubID, p.ExternalPlayerID); ok {
		return fmt.Errorf("%w: player club=%s external=%d", storage.ErrDuplicate, p.ClubID, p.ExternalPlayerID)
	}
	if code, ok := p.JoinCode(); ok {
		if exists, _ := r.JoinCodeExists(ctx, code); exists {
			return fmt.Errorf("%w: join code %s", storage.ErrDuplicate, code)
		}
	}
	r.st.players[p.ID] = p
	return nil
}

// UpdateSquadDetails only ever touches pending rows; claimed players are immutable here.
func (r playerRepository) UpdateSquadDetails(_ context.Context, playerID string, jerseyNumber int, position string) error {
	p, ok := r.st.players[playerID]
	if !ok || p.IsClaimed() {
		return fmt.Errorf("%w: pending player %s", storage.ErrNotFound, playerID)
	}
	p.JerseyNumber = jerseyNumber
	p.Position = position
	r.st.players[playerID] = p
	return nil
}

func (r playerRepository) JoinCodeExists(_ context.Context, code string) (bool, error) {
	for _, p := range r.st.players {
		if existing, ok := p.JoinCode(); ok && existing == code {
			return true, nil
		}
	}
	return false, nil
}

// ClaimPlayer links a pending roster entry to an account.
func (s *Store) ClaimPlayer(_ context.Context, playerID, accountID string, at time.Time) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.committed.players[playerID]
	if !ok {
		return fmt.Errorf("%w: player %s", storage.ErrNotFound, playerID)
	}
	if err := p.Claim(accountID, at); err != nil {
		return err
	}
	work := s.committed.clone()
	work.players[playerID] = p
	s.committed = work
	return nil
}

type opponentPlayerRepository struct{ st *state }

func (r opponentPlayerRepository) GetByExternalID(_ context.Context, opponentID string, externalPlayerID int64) (player.OpponentPlayer, bool, error) {
	for _, p := range r.st.opponentPlayers {
		if p.OpponentID == opponentID && p.ExternalPlayerID == externalPlayerID {
			return p, true, nil
		}
	}
	return player.OpponentPlayer{}, false, nil
}

func (r opponentPlayerRepository) Create(ctx context.Context, p player.OpponentPlayer) error {
	if _, ok, _ := r.GetByExternalID(ctx, p.OpponentID, p.ExternalPlayerID); ok {
		return fmt.Errorf("%w: opponent player opponent=%s external=%d", storage.ErrDuplicate, p.OpponentID, p.ExternalPlayerID)
	}
	r.st.opponentPlayers[p.ID] = p
	return nil
}

func (r opponentPlayerRepository) UpdateSquadDetails(_ context.Context, playerID, name string, jerseyNumber int, position string) error {
	p, ok := r.st.opponentPlayers[playerID]
	if !ok {
		return fmt.Errorf("%w: opponent player %s", storage.ErrNotFound, playerID)
	}
	p.Name = name
	p.JerseyNumber = jerseyNumber
	p.Position = position
	r.st.opponentPlayers[playerID] = p
	return nil
}
