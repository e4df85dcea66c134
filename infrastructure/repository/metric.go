package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-engine/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

//go:generate mockgen -source=metric.go -destination=mocks/metric_mock.go -package=mocks
type MetricRepository interface {
	Upsert(ctx context.Context, metric *domain.Metric) error
	List(ctx context.Context, campaignID string, filters domain.MetricFilters) ([]*domain.Metric, error)
}

type metricRepository struct {
	conn *postgres.Connection
}

func NewMetricRepository(conn *postgres.Connection) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

// Upsert grava a linha diária substituindo os valores de uma sincronização anterior do mesmo dia
func (r *metricRepository) Upsert(ctx context.Context, m *domain.Metric) error {
	query, args, err := squirrel.
		Insert("metrics").
		Columns(
			"campaign_id", "platform_campaign_id", "platform", "variant", "date",
			"impressions", "reach", "clicks", "spend", "conversions", "revenue",
			"tickets_sold", "new_customers", "video_views", "frequency",
			"ctr", "cpc", "cpm", "roas", "cac",
		).
		Values(
			m.CampaignID, m.PlatformCampaignID, m.Platform, m.Variant, m.Date,
			m.Impressions, m.Reach, m.Clicks, m.Spend, m.Conversions, m.Revenue,
			m.TicketsSold, m.NewCustomers, m.VideoViews, m.Frequency,
			m.CTR, m.CPC, m.CPM, m.ROAS, m.CAC,
		).
		Suffix(`ON CONFLICT (campaign_id, platform_campaign_id, platform, date) DO UPDATE SET
			variant = EXCLUDED.variant,
			impressions = EXCLUDED.impressions,
			reach = EXCLUDED.reach,
			clicks = EXCLUDED.clicks,
			spend = EXCLUDED.spend,
			conversions = EXCLUDED.conversions,
			revenue = EXCLUDED.revenue,
			tickets_sold = EXCLUDED.tickets_sold,
			new_customers = EXCLUDED.new_customers,
			video_views = EXCLUDED.video_views,
			frequency = EXCLUDED.frequency,
			ctr = EXCLUDED.ctr,
			cpc = EXCLUDED.cpc,
			cpm = EXCLUDED.cpm,
			roas = EXCLUDED.roas,
			cac = EXCLUDED.cac,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return execError(err)
	}

	return nil
}

func (r *metricRepository) List(ctx context.Context, campaignID string, filters domain.MetricFilters) ([]*domain.Metric, error) {
	builder := squirrel.
		Select(
			"id", "campaign_id", "platform_campaign_id", "platform", "variant", "date",
			"impressions", "reach", "clicks", "spend", "conversions", "revenue",
			"tickets_sold", "new_customers", "video_views", "frequency",
			"ctr", "cpc", "cpm", "roas", "cac", "created_at", "updated_at",
		).
		From("metrics").
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("date ASC", "platform ASC", "platform_campaign_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"date": domain.TruncateDay(*filters.StartDate)})
	}
	if filters.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"date": domain.TruncateDay(*filters.EndDate)})
	}
	if filters.Platform != nil {
		builder = builder.Where(squirrel.Eq{"platform": *filters.Platform})
	}
	if filters.PlatformCampaignID != nil {
		builder = builder.Where(squirrel.Eq{"platform_campaign_id": *filters.PlatformCampaignID})
	}
	if filters.ExcludeAggregated {
		builder = builder.Where(squirrel.NotEq{"platform": domain.PlatformAggregated})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.Metric, 0)
	for rows.Next() {
		m := &domain.Metric{}
		err := rows.Scan(
			&m.ID, &m.CampaignID, &m.PlatformCampaignID, &m.Platform, &m.Variant, &m.Date,
			&m.Impressions, &m.Reach, &m.Clicks, &m.Spend, &m.Conversions, &m.Revenue,
			&m.TicketsSold, &m.NewCustomers, &m.VideoViews, &m.Frequency,
			&m.CTR, &m.CPC, &m.CPM, &m.ROAS, &m.CAC, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica: %w", err)
		}
		metrics = append(metrics, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}
