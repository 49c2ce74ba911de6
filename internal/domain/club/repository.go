package club

import "context"

// Repository describes club persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, clubID string) (Club, bool, error)
	ListIDs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, c Club) error
	SetExternalTeamID(ctx context.Context, clubID string, externalTeamID int64) error
}

// OpponentRepository stores opponent clubs keyed by external team id.
type OpponentRepository interface {
	GetByExternalID(ctx context.Context, externalTeamID int64) (Opponent, bool, error)
	Create(ctx context.Context, o Opponent) error
	Update(ctx context.Context, o Opponent) error
}
