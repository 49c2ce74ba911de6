package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/match-ingest/internal/domain/season"
	qb "github.com/riskibarqy/match-ingest/internal/platform/querybuilder"
)

const clubSeasonLockQuery = `SELECT pg_advisory_xact_lock(hashtext($1))`

type SeasonRepository struct {
	q sqlx.ExtContext
}

// LockClub takes a transaction-scoped advisory lock keyed by the club.
func (r *SeasonRepository) LockClub(ctx context.Context, clubID string) error {
	if _, err := r.q.ExecContext(ctx, clubSeasonLockQuery, "season:"+clubID); err != nil {
		return fmt.Errorf("advisory lock club=%s: %w", clubID, err)
	}
	return nil
}

func (r *SeasonRepository) UpsertClubSeason(ctx context.Context, cs season.ClubSeason) error {
	row, err := clubSeasonToRow(cs)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("club_seasons", row, `ON CONFLICT (club_id)
DO UPDATE SET
    matches_played = EXCLUDED.matches_played,
    wins = EXCLUDED.wins,
    draws = EXCLUDED.draws,
    losses = EXCLUDED.losses,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    clean_sheets = EXCLUDED.clean_sheets,
    form = EXCLUDED.form,
    averages = EXCLUDED.averages,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert club season query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("upsert club season", err)
	}
	return nil
}

func (r *SeasonRepository) GetClubSeason(ctx context.Context, clubID string) (season.ClubSeason, bool, error) {
	query, args, err := qb.Select(qb.Columns(clubSeasonTableModel{})...).
		From("club_seasons").
		Where(qb.Eq("club_id", clubID)).
		ToSQL()
	if err != nil {
		return season.ClubSeason{}, false, fmt.Errorf("build get club season query: %w", err)
	}

	var row clubSeasonTableModel
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.ClubSeason{}, false, nil
		}
		return season.ClubSeason{}, false, fmt.Errorf("get club season club=%s: %w", clubID, err)
	}
	cs, err := clubSeasonFromRow(row)
	if err != nil {
		return season.ClubSeason{}, false, err
	}
	return cs, true, nil
}

func (r *SeasonRepository) ReplacePlayerSeasons(ctx context.Context, clubID string, rows []season.PlayerSeason) error {
	query, args, err := qb.DeleteFrom("player_seasons").Where(qb.Eq("club_id", clubID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player seasons query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player seasons club=%s: %w", clubID, err)
	}
	if len(rows) == 0 {
		return nil
	}

	models := make([]playerSeasonTableModel, 0, len(rows))
	for _, ps := range rows {
		model, err := playerSeasonToRow(ps)
		if err != nil {
			return err
		}
		models = append(models, model)
	}
	query, args, err = qb.InsertModels("player_seasons", models, "")
	if err != nil {
		return fmt.Errorf("build insert player seasons query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return writeErr("insert player seasons", err)
	}
	return nil
}

func (r *SeasonRepository) ListPlayerSeasons(ctx context.Context, clubID string) ([]season.PlayerSeason, error) {
	query, args, err := qb.Select(qb.Columns(playerSeasonTableModel{})...).
		From("player_seasons").
		Where(qb.Eq("club_id", clubID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player seasons query: %w", err)
	}

	var rows []playerSeasonTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player seasons club=%s: %w", clubID, err)
	}

	out := make([]season.PlayerSeason, 0, len(rows))
	for _, row := range rows {
		ps, err := playerSeasonFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, nil
}
