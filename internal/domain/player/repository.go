package player

import "context"

// Repository describes our-side roster persistence.
type Repository interface {
	GetByExternalID(ctx context.Context, clubID string, externalPlayerID int64) (Player, bool, error)
	ListByClub(ctx context.Context, clubID string) ([]Player, error)
	Create(ctx context.Context, p Player) error
	UpdateSquadDetails(ctx context.Context, playerID string, jerseyNumber int, position string) error
	JoinCodeExists(ctx context.Context, code string) (bool, error)
}

// OpponentRepository describes opponent roster persistence.
type OpponentRepository interface {
	GetByExternalID(ctx context.Context, opponentID string, externalPlayerID int64) (OpponentPlayer, bool, error)
	Create(ctx context.Context, p OpponentPlayer) error
	UpdateSquadDetails(ctx context.Context, playerID, name string, jerseyNumber int, position string) error
}
