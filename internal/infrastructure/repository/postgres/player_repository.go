package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/match-ingest/internal/domain/player"
	qb "github.com/riskibarqy/match-ingest/internal/platform/querybuilder"
)

type PlayerRepository struct {
	q sqlx.ExtContext
}

func (r *PlayerRepository) GetByExternalID(ctx context.Context, clubID string, externalPlayerID int64) (player.Player, bool, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(
			qb.Eq("club_id", clubID),
			qb.Eq("external_player_id", externalPlayerID),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player club=%s external=%d: %w", clubID, externalPlayerID, err)
	}

	p, err := playerFromRow(row)
	if err != nil {
		return player.Player{}, false, err
	}
	return p, true, nil
}

func (r *PlayerRepository) ListByClub(ctx context.Context, clubID string) ([]player.Player, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(qb.Eq("club_id", clubID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players club=%s: %w", clubID, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		p, err := playerFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	row, err := playerToRow(p)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("players", row, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert player", err)
	}
	return nil
}

// UpdateSquadDetails only ever touches pending rows; claimed players are immutable here.
func (r *PlayerRepository) UpdateSquadDetails(ctx context.Context, playerID string, jerseyNumber int, position string) error {
	query, args, err := qb.Update("players").
		Set("jersey_number", jerseyNumber).
		Set("position", position).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", playerID),
			qb.Eq("state", string(player.StatePending)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}
	return execOne(ctx, r.q, "update player squad details", query, args, "pending player "+playerID)
}

const joinCodeExistsQuery = `SELECT EXISTS (SELECT 1 FROM players WHERE join_code = $1)`

func (r *PlayerRepository) JoinCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, r.q, &exists, joinCodeExistsQuery, code); err != nil {
		return false, fmt.Errorf("check join code: %w", err)
	}
	return exists, nil
}

func playerBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(qb.Columns(playerTableModel{})...).From("players")
}

type OpponentPlayerRepository struct {
	q sqlx.ExtContext
}

func (r *OpponentPlayerRepository) GetByExternalID(ctx context.Context, opponentID string, externalPlayerID int64) (player.OpponentPlayer, bool, error) {
	query, args, err := qb.Select(qb.Columns(opponentPlayerTableModel{})...).
		From("opponent_players").
		Where(
			qb.Eq("opponent_id", opponentID),
			qb.Eq("external_player_id", externalPlayerID),
		).
		ToSQL()
	if err != nil {
		return player.OpponentPlayer{}, false, fmt.Errorf("build get opponent player query: %w", err)
	}

	var row opponentPlayerTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.OpponentPlayer{}, false, nil
		}
		return player.OpponentPlayer{}, false, fmt.Errorf("get opponent player opponent=%s external=%d: %w", opponentID, externalPlayerID, err)
	}
	return opponentPlayerFromRow(row), true, nil
}

func (r *OpponentPlayerRepository) Create(ctx context.Context, p player.OpponentPlayer) error {
	query, args, err := qb.InsertModel("opponent_players", opponentPlayerTableModel{
		ID:               p.ID,
		OpponentID:       p.OpponentID,
		ExternalPlayerID: p.ExternalPlayerID,
		Name:             p.Name,
		JerseyNumber:     p.JerseyNumber,
		Position:         p.Position,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert opponent player query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert opponent player", err)
	}
	return nil
}

func (r *OpponentPlayerRepository) UpdateSquadDetails(ctx context.Context, playerID, name string, jerseyNumber int, position string) error {
	query, args, err := qb.Update("opponent_players").
		Set("name", name).
		Set("jersey_number", jerseyNumber).
		Set("position", position).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update opponent player query: %w", err)
	}
	return execOne(ctx, r.q, "update opponent player", query, args, "opponent player "+playerID)
}
