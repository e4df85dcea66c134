package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-engine/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

var platformCampaignColumns = []string{
	"id", "campaign_id", "creative_id", "platform", "ad_account_id",
	"external_campaign_id", "external_ad_set_id", "external_creative_id", "external_ad_id",
	"variant", "budget_allocated", "daily_budget", "status", "totals", "derived", "frequency",
	"launched_at", "last_synced_at", "error_message", "created_at", "updated_at",
}

//go:generate mockgen -source=platform_campaign.go -destination=mocks/platform_campaign_mock.go -package=mocks
type PlatformCampaignRepository interface {
	Create(ctx context.Context, pc *domain.PlatformCampaign) error
	GetByID(ctx context.Context, id string) (*domain.PlatformCampaign, error)
	ListByCampaign(ctx context.Context, campaignID string, statuses ...domain.PlatformCampaignStatus) ([]*domain.PlatformCampaign, error)
	Update(ctx context.Context, pc *domain.PlatformCampaign) error
	UpdateStatus(ctx context.Context, id string, status domain.PlatformCampaignStatus, errorMessage string) error
	UpdateBudget(ctx context.Context, id string, allocated, daily float64) error
	UpdateTotals(ctx context.Context, id string, totals domain.MetricTotals, derived domain.DerivedMetrics, frequency float64, syncedAt time.Time) error
}

type platformCampaignRepository struct {
	conn *postgres.Connection
}

func NewPlatformCampaignRepository(conn *postgres.Connection) PlatformCampaignRepository {
	return &platformCampaignRepository{
		conn: conn,
	}
}

func (r *platformCampaignRepository) Create(ctx context.Context, pc *domain.PlatformCampaign) error {
	totals, err := marshalJSON(pc.Totals)
	if err != nil {
		return err
	}
	derived, err := marshalJSON(pc.Derived)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert("platform_campaigns").
		Columns(
			"id", "campaign_id", "creative_id", "platform", "ad_account_id",
			"external_campaign_id", "external_ad_set_id", "external_creative_id", "external_ad_id",
			"variant", "budget_allocated", "daily_budget", "status", "totals", "derived", "frequency",
			"launched_at", "error_message",
		).
		Values(
			pc.ID, pc.CampaignID, pc.CreativeID, pc.Platform, pc.AdAccountID,
			pc.ExternalCampaignID, pc.ExternalAdSetID, pc.ExternalCreativeID, pc.ExternalAdID,
			pc.Variant, pc.BudgetAllocated, pc.DailyBudget, pc.Status, totals, derived, pc.Frequency,
			pc.LaunchedAt, pc.ErrorMessage,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&pc.CreatedAt, &pc.UpdatedAt); err != nil {
		return execError(err)
	}

	return nil
}

func (r *platformCampaignRepository) GetByID(ctx context.Context, id string) (*domain.PlatformCampaign, error) {
	query, args, err := squirrel.
		Select(platformCampaignColumns...).
		From("platform_campaigns").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	pc, err := scanPlatformCampaign(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha de plataforma: %w", err)
	}

	return pc, nil
}

// ListByCampaign lista as campanhas de plataforma de uma campanha. Sem status informado, lista todas.
func (r *platformCampaignRepository) ListByCampaign(ctx context.Context, campaignID string, statuses ...domain.PlatformCampaignStatus) ([]*domain.PlatformCampaign, error) {
	builder := squirrel.
		Select(platformCampaignColumns...).
		From("platform_campaigns").
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statuses})
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

	result := make([]*domain.PlatformCampaign, 0)
	for rows.Next() {
		pc, err := scanPlatformCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha de plataforma: %w", err)
		}
		result = append(result, pc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

// Update grava os identificadores remotos e o estado após a materialização na plataforma
func (r *platformCampaignRepository) Update(ctx context.Context, pc *domain.PlatformCampaign) error {
	query, args, err := squirrel.
		Update("platform_campaigns").
		Set("ad_account_id", pc.AdAccountID).
		Set("external_campaign_id", pc.ExternalCampaignID).
		Set("external_ad_set_id", pc.ExternalAdSetID).
		Set("external_creative_id", pc.ExternalCreativeID).
		Set("external_ad_id", pc.ExternalAdID).
		Set("budget_allocated", pc.BudgetAllocated).
		Set("daily_budget", pc.DailyBudget).
		Set("status", pc.Status).
		Set("launched_at", pc.LaunchedAt).
		Set("error_message", pc.ErrorMessage).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": pc.ID}).
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

func (r *platformCampaignRepository) UpdateStatus(ctx context.Context, id string, status domain.PlatformCampaignStatus, errorMessage string) error {
	query, args, err := squirrel.
		Update("platform_campaigns").
		Set("status", status).
		Set("error_message", errorMessage).
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

func (r *platformCampaignRepository) UpdateBudget(ctx context.Context, id string, allocated, daily float64) error {
	query, args, err := squirrel.
		Update("platform_campaigns").
		Set("budget_allocated", allocated).
		Set("daily_budget", daily).
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

func (r *platformCampaignRepository) UpdateTotals(ctx context.Context, id string, totals domain.MetricTotals, derived domain.DerivedMetrics, frequency float64, syncedAt time.Time) error {
	totalsJSON, err := marshalJSON(totals)
	if err != nil {
		return err
	}
	derivedJSON, err := marshalJSON(derived)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Update("platform_campaigns").
		Set("totals", totalsJSON).
		Set("derived", derivedJSON).
		Set("frequency", frequency).
		Set("last_synced_at", syncedAt).
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

func scanPlatformCampaign(row rowScanner) (*domain.PlatformCampaign, error) {
	pc := &domain.PlatformCampaign{}
	var (
		totals       []byte
		derived      []byte
		launchedAt   sql.NullTime
		lastSyncedAt sql.NullTime
	)

	err := row.Scan(
		&pc.ID, &pc.CampaignID, &pc.CreativeID, &pc.Platform, &pc.AdAccountID,
		&pc.ExternalCampaignID, &pc.ExternalAdSetID, &pc.ExternalCreativeID, &pc.ExternalAdID,
		&pc.Variant, &pc.BudgetAllocated, &pc.DailyBudget, &pc.Status, &totals, &derived, &pc.Frequency,
		&launchedAt, &lastSyncedAt, &pc.ErrorMessage, &pc.CreatedAt, &pc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSON(totals, &pc.Totals); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(derived, &pc.Derived); err != nil {
		return nil, err
	}

	pc.LaunchedAt = timePtr(launchedAt)
	pc.LastSyncedAt = timePtr(lastSyncedAt)

	return pc, nil
}
