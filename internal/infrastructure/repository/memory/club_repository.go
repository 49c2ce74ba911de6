package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/match-ingest/internal/domain/club"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

type clubRepository struct{ st *state }

func (r clubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	c, ok := r.st.clubs[clubID]
	return c, ok, nil
}

func (r clubRepository) ListIDs(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(r.st.clubs))
	for id := range r.st.clubs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (r clubRepository) Create(_ context.Context, c club.Club) error {
	if _, ok := r.st.clubs[c.ID]; ok {
		return fmt.Errorf("%w: club %s", storage.ErrDuplicate, c.ID)
	}
	r.st.clubs[c.ID] = c
	return nil
}

func (r clubRepository) SetExternalTeamID(_ context.Context, clubID string, externalTeamID int64) error {
	c, ok := r.st.clubs[clubID]
	if !ok {
		return fmt.Errorf("%w: club %s", storage.ErrNotFound, clubID)
	}
	c.ExternalTeamID = externalTeamID
	r.st.clubs[clubID] = c
	return nil
}

type opponentRepository struct{ st *state }

func (r opponentRepository) GetByExternalID(_ context.Context, externalTeamID int64) (club.Opponent, bool, error) {
	for _, o := range r.st.opponents {
		if o.ExternalTeamID == externalTeamID {
			return o, true, nil
		}
	}
	return club.Opponent{}, false, nil
}

func (r opponentRepository) Create(ctx context.Context, o club.Opponent) error {
	if _, ok, _ := r.GetByExternalID(ctx, o.ExternalTeamID); ok {
		return fmt.Errorf("%w: opponent external id %d", storage.ErrDuplicate, o.ExternalTeamID)
	}
	r.st.opponents[o.ID] = o
	return nil
}

func (r opponentRepository) Update(_ context.Context, o club.Opponent) error {
	if _, ok := r.st.opponents[o.ID]; !ok {
		return fmt.Errorf("%w: opponent %s", storage.ErrNotFound, o.ID)
	}
	r.st.opponents[o.ID] = o
	return nil
}
