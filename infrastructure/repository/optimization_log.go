package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-engine/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

//go:generate mockgen -source=optimization_log.go -destination=mocks/optimization_log_mock.go -package=mocks
type OptimizationLogRepository interface {
	Create(ctx context.Context, log *domain.OptimizationLog) (bool, error)
	ListByCampaign(ctx context.Context, campaignID string, limit uint64) ([]*domain.OptimizationLog, error)
}

type optimizationLogRepository struct {
	conn *postgres.Connection
}

func NewOptimizationLogRepository(conn *postgres.Connection) OptimizationLogRepository {
	return &optimizationLogRepository{
		conn: conn,
	}
}

// Create grava o registro de auditoria. Com chave de deduplicação repetida nada é gravado e devolve false.
func (r *optimizationLogRepository) Create(ctx context.Context, l *domain.OptimizationLog) (bool, error) {
	before, err := nullableJSON(l.BeforeState)
	if err != nil {
		return false, err
	}
	after, err := nullableJSON(l.AfterState)
	if err != nil {
		return false, err
	}
	trigger, err := nullableJSON(l.TriggerMetrics)
	if err != nil {
		return false, err
	}

	query, args, err := squirrel.
		Insert("optimization_logs").
		Columns(
			"id", "campaign_id", "platform_campaign_id", "type", "description",
			"before_state", "after_state", "trigger_metrics", "source", "dedupe_key",
		).
		Values(
			l.ID, l.CampaignID, nullString(l.PlatformCampaignID), l.Type, l.Description,
			before, after, trigger, l.Source, nullString(l.DedupeKey),
		).
		Suffix("ON CONFLICT (dedupe_key) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, execError(err)
	}

	return affected(result)
}

func (r *optimizationLogRepository) ListByCampaign(ctx context.Context, campaignID string, limit uint64) ([]*domain.OptimizationLog, error) {
	builder := squirrel.
		Select(
			"id", "campaign_id", "platform_campaign_id", "type", "description",
			"before_state", "after_state", "trigger_metrics", "source", "created_at",
		).
		From("optimization_logs").
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		builder = builder.Limit(limit)
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

	logs := make([]*domain.OptimizationLog, 0)
	for rows.Next() {
		l := &domain.OptimizationLog{}
		var (
			platformCampaignID sql.NullString
			before             []byte
			after              []byte
			trigger            []byte
		)

		err := rows.Scan(
			&l.ID, &l.CampaignID, &platformCampaignID, &l.Type, &l.Description,
			&before, &after, &trigger, &l.Source, &l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de otimização: %w", err)
		}

		if err := unmarshalJSON(before, &l.BeforeState); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(after, &l.AfterState); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(trigger, &l.TriggerMetrics); err != nil {
			return nil, err
		}
		l.PlatformCampaignID = stringPtr(platformCampaignID)

		logs = append(logs, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return logs, nil
}

func nullableJSON(value map[string]any) (any, error) {
	if value == nil {
		return nil, nil
	}
	data, err := marshalJSON(value)
	if err != nil {
		return nil, err
	}
	return data, nil
}
