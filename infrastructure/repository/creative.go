package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-engine/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

var creativeColumns = []string{
	"id", "campaign_id", "name", "type", "headline", "body", "media_url", "call_to_action",
	"variant", "approval_status", "status", "impressions", "clicks", "ctr", "spend", "conversions",
	"is_winner", "created_at", "updated_at",
}

// CreativeMetrics são os totais de um criativo recalculados a partir das suas campanhas de plataforma
type CreativeMetrics struct {
	Impressions int64
	Clicks      int64
	CTR         float64
	Spend       float64
	Conversions int64
}

//go:generate mockgen -source=creative.go -destination=mocks/creative_mock.go -package=mocks
type CreativeRepository interface {
	CreateBatch(ctx context.Context, creatives []*domain.Creative) error
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Creative, error)
	UpdateStatus(ctx context.Context, id string, status domain.CreativeStatus) error
	MarkWinner(ctx context.Context, campaignID string, variant domain.Variant) (int64, error)
	UpdateMetrics(ctx context.Context, id string, metrics CreativeMetrics) error
}

type creativeRepository struct {
	conn *postgres.Connection
}

func NewCreativeRepository(conn *postgres.Connection) CreativeRepository {
	return &creativeRepository{
		conn: conn,
	}
}

// CreateBatch grava todos os criativos em uma única transação
func (r *creativeRepository) CreateBatch(ctx context.Context, creatives []*domain.Creative) error {
	if len(creatives) == 0 {
		return nil
	}

	builder := squirrel.
		Insert("creatives").
		Columns(
			"id", "campaign_id", "name", "type", "headline", "body", "media_url",
			"call_to_action", "variant", "approval_status", "status",
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, c := range creatives {
		builder = builder.Values(
			c.ID, c.CampaignID, c.Name, c.Type, c.Headline, c.Body, c.MediaURL,
			c.CallToAction, c.Variant, c.ApprovalStatus, c.Status,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return execError(err)
		}
		defer rows.Close()

		i := 0
		for rows.Next() {
			if i < len(creatives) {
				if err := rows.Scan(&creatives[i].CreatedAt, &creatives[i].UpdatedAt); err != nil {
					return fmt.Errorf("erro ao escanear criativo: %w", err)
				}
			}
			i++
		}

		return rows.Err()
	})
}

func (r *creativeRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Creative, error) {
	query, args, err := squirrel.
		Select(creativeColumns...).
		From("creatives").
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	creatives := make([]*domain.Creative, 0)
	for rows.Next() {
		c := &domain.Creative{}
		err := rows.Scan(
			&c.ID, &c.CampaignID, &c.Name, &c.Type, &c.Headline, &c.Body, &c.MediaURL, &c.CallToAction,
			&c.Variant, &c.ApprovalStatus, &c.Status, &c.Impressions, &c.Clicks, &c.CTR, &c.Spend, &c.Conversions,
			&c.IsWinner, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear criativo: %w", err)
		}
		creatives = append(creatives, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return creatives, nil
}

func (r *creativeRepository) UpdateStatus(ctx context.Context, id string, status domain.CreativeStatus) error {
	query, args, err := squirrel.
		Update("creatives").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return execError(err)
	}

	return nil
}

// MarkWinner marca os criativos da variante vencedora. Devolve quantos foram marcados.
func (r *creativeRepository) MarkWinner(ctx context.Context, campaignID string, variant domain.Variant) (int64, error) {
	query, args, err := squirrel.
		Update("creatives").
		Set("is_winner", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"campaign_id": campaignID, "variant": variant, "is_winner": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, execError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rows, nil
}

func (r *creativeRepository) UpdateMetrics(ctx context.Context, id string, m CreativeMetrics) error {
	query, args, err := squirrel.
		Update("creatives").
		Set("impressions", m.Impressions).
		Set("clicks", m.Clicks).
		Set("ctr", m.CTR).
		Set("spend", m.Spend).
		Set("conversions", m.Conversions).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return execError(err)
	}

	return nil
}
