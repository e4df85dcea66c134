package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-engine/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

//go:generate mockgen -source=targeting.go -destination=mocks/targeting_mock.go -package=mocks
type TargetingRepository interface {
	Save(ctx context.Context, targeting *domain.Targeting) error
	GetActiveByCampaign(ctx context.Context, campaignID string) (*domain.Targeting, error)
}

type targetingRepository struct {
	conn *postgres.Connection
}

func NewTargetingRepository(conn *postgres.Connection) TargetingRepository {
	return &targetingRepository{
		conn: conn,
	}
}

// Save grava a nova segmentação ativa e desativa a anterior na mesma transação
func (r *targetingRepository) Save(ctx context.Context, t *domain.Targeting) error {
	deactivate, deactivateArgs, err := squirrel.
		Update("targetings").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"campaign_id": t.CampaignID, "active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	insert, insertArgs, err := squirrel.
		Insert("targetings").
		Columns(
			"id", "campaign_id", "age_min", "age_max", "genders", "locations", "interests",
			"languages", "placements", "custom_audience_ids", "lookalike", "active",
		).
		Values(
			t.ID, t.CampaignID, t.AgeMin, t.AgeMax, textArray(t.Genders), textArray(t.Locations), textArray(t.Interests),
			textArray(t.Languages), textArray(t.Placements), textArray(t.CustomAudienceIDs), t.Lookalike, true,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deactivate, deactivateArgs...); err != nil {
			return execError(err)
		}
		if err := tx.QueryRowContext(ctx, insert, insertArgs...).Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
			return execError(err)
		}
		t.Active = true
		return nil
	})
}

func (r *targetingRepository) GetActiveByCampaign(ctx context.Context, campaignID string) (*domain.Targeting, error) {
	query, args, err := squirrel.
		Select(
			"id", "campaign_id", "age_min", "age_max", "genders", "locations", "interests",
			"languages", "placements", "custom_audience_ids", "lookalike", "active", "created_at", "updated_at",
		).
		From("targetings").
		Where(squirrel.Eq{"campaign_id": campaignID, "active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	t := &domain.Targeting{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&t.ID, &t.CampaignID, &t.AgeMin, &t.AgeMax, pq.Array(&t.Genders), pq.Array(&t.Locations), pq.Array(&t.Interests),
		pq.Array(&t.Languages), pq.Array(&t.Placements), pq.Array(&t.CustomAudienceIDs), &t.Lookalike, &t.Active,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear segmentação: %w", err)
	}

	return t, nil
}
