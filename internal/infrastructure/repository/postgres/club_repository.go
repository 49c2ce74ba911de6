package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/match-ingest/internal/domain/club"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
	qb "github.com/riskibarqy/match-ingest/internal/platform/querybuilder"
)

type ClubRepository struct {
	q sqlx.ExtContext
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	query, args, err := qb.Select(qb.Columns(clubTableModel{})...).
		From("clubs").
		Where(qb.Eq("id", clubID)).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club query: %w", err)
	}

	var row clubTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club id=%s: %w", clubID, err)
	}
	return clubFromRow(row), true, nil
}

func (r *ClubRepository) ListIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("id").From("clubs").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list club ids query: %w", err)
	}

	var ids []string
	if err := sqlx.SelectContext(ctx, r.q, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list club ids: %w", err)
	}
	return ids, nil
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	query, args, err := qb.InsertModel("clubs", clubTableModel{
		ID:             c.ID,
		Name:           c.Name,
		ExternalTeamID: nullableInt64(c.ExternalTeamID),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert club query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert club", err)
	}
	return nil
}

func (r *ClubRepository) SetExternalTeamID(ctx context.Context, clubID string, externalTeamID int64) error {
	query, args, err := qb.Update("clubs").
		Set("external_team_id", externalTeamID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", clubID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update club team id query: %w", err)
	}
	return execOne(ctx, r.q, "update club external team id", query, args, "club "+clubID)
}

type OpponentRepository struct {
	q sqlx.ExtContext
}

func (r *OpponentRepository) GetByExternalID(ctx context.Context, externalTeamID int64) (club.Opponent, bool, error) {
	query, args, err := qb.Select(qb.Columns(opponentTableModel{})...).
		From("opponents").
		Where(qb.Eq("external_team_id", externalTeamID)).
		ToSQL()
	if err != nil {
		return club.Opponent{}, false, fmt.Errorf("build get opponent query: %w", err)
	}

	var row opponentTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Opponent{}, false, nil
		}
		return club.Opponent{}, false, fmt.Errorf("get opponent external_team_id=%d: %w", externalTeamID, err)
	}
	return opponentFromRow(row), true, nil
}

func (r *OpponentRepository) Create(ctx context.Context, o club.Opponent) error {
	query, args, err := qb.InsertModel("opponents", opponentToRow(o), "")
	if err != nil {
		return fmt.Errorf("build insert opponent query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert opponent", err)
	}
	return nil
}

func (r *OpponentRepository) Update(ctx context.Context, o club.Opponent) error {
	query, args, err := qb.Update("opponents").
		Set("name", o.Name).
		Set("crest_url", nullableString(o.CrestURL)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", o.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update opponent query: %w", err)
	}
	return execOne(ctx, r.q, "update opponent", query, args, "opponent "+o.ID)
}

// execOne runs a single-row write and reports storage.ErrNotFound when nothing matched.
func execOne(ctx context.Context, q sqlx.ExecerContext, op, query string, args []any, subject string) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return writeErr(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w: %s", op, storage.ErrNotFound, subject)
	}
	return nil
}
