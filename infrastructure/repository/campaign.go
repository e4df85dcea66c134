package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-engine/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

const (
	campaignsTable = "campaigns c"
)

var campaignColumns = []string{
	"c.id", "c.tenant_id", "c.event_id", "c.service_request_id", "c.name", "c.objective",
	"c.total_budget", "c.daily_budget", "c.spent_budget", "c.currency", "c.target_platforms",
	"c.budget_allocation", "c.manual_allocations", "c.auto_optimize", "c.optimization_rules",
	"c.ab_test", "c.ab_test_winner", "c.ab_test_winner_date", "c.ab_test_applied_at", "c.retargeting", "c.utm",
	"c.landing_page_url", "c.tracking_url", "c.start_date", "c.end_date", "c.status", "c.status_note",
	"c.budget_warning_sent_at", "c.totals", "c.derived", "c.launched_at", "c.completed_at",
	"c.created_at", "c.updated_at",
}

//go:generate mockgen -source=campaign.go -destination=mocks/campaign_mock.go -package=mocks
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	ListForOptimization(ctx context.Context) ([]*domain.Campaign, error)
	ListByStatus(ctx context.Context, statuses ...domain.CampaignStatus) ([]*domain.Campaign, error)
	UpdateStatus(ctx context.Context, campaign *domain.Campaign) error
	UpdateTotals(ctx context.Context, id string, spent float64, totals domain.MetricTotals, derived domain.DerivedMetrics) error
	MarkBudgetWarningSent(ctx context.Context, id string, at time.Time) (bool, error)
	SetABTestWinner(ctx context.Context, id string, winner domain.Variant, at time.Time) (bool, error)
	MarkABTestApplied(ctx context.Context, id string, at time.Time) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	manual, err := marshalJSON(c.ManualAllocations)
	if err != nil {
		return err
	}
	rules, err := marshalJSON(c.OptimizationRules)
	if err != nil {
		return err
	}
	abTest, err := marshalJSON(c.ABTest)
	if err != nil {
		return err
	}
	retargeting, err := marshalJSON(c.Retargeting)
	if err != nil {
		return err
	}
	utm, err := marshalJSON(c.UTM)
	if err != nil {
		return err
	}
	totals, err := marshalJSON(c.Totals)
	if err != nil {
		return err
	}
	derived, err := marshalJSON(c.Derived)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert("campaigns").
		Columns(
			"id", "tenant_id", "event_id", "service_request_id", "name", "objective",
			"total_budget", "daily_budget", "spent_budget", "currency", "target_platforms",
			"budget_allocation", "manual_allocations", "auto_optimize", "optimization_rules",
			"ab_test", "retargeting", "utm", "landing_page_url", "tracking_url",
			"start_date", "end_date", "status", "status_note", "totals", "derived",
		).
		Values(
			c.ID, c.TenantID, c.EventID, nullString(c.ServiceRequestID), c.Name, c.Objective,
			c.TotalBudget, c.DailyBudget, c.SpentBudget, c.Currency, textArray(platformsToStrings(c.TargetPlatforms)),
			c.AllocationStrategy, manual, c.AutoOptimize, rules,
			abTest, retargeting, utm, c.LandingPageURL, c.TrackingURL,
			c.StartDate.Format(time.DateOnly), c.EndDate.Format(time.DateOnly), c.Status, c.StatusNote, totals, derived,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return execError(err)
	}

	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns...).
		From(campaignsTable).
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaign, err := scanCampaign(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

// ListForOptimization lista as campanhas com otimização automática ligadas e em veiculação
func (r *campaignRepository) ListForOptimization(ctx context.Context) ([]*domain.Campaign, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"c.auto_optimize": true},
		squirrel.Eq{"c.status": []domain.CampaignStatus{domain.CampaignStatusActive, domain.CampaignStatusOptimizing}},
	})
}

func (r *campaignRepository) ListByStatus(ctx context.Context, statuses ...domain.CampaignStatus) ([]*domain.Campaign, error) {
	return r.list(ctx, squirrel.Eq{"c.status": statuses})
}

func (r *campaignRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns...).
		From(campaignsTable).
		Where(where).
		OrderBy("c.start_date ASC", "c.id ASC").
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

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

// UpdateStatus grava o estado do ciclo de vida: status, nota, URL de rastreamento e marcos de data
func (r *campaignRepository) UpdateStatus(ctx context.Context, c *domain.Campaign) error {
	query, args, err := squirrel.
		Update("campaigns").
		Set("status", c.Status).
		Set("status_note", c.StatusNote).
		Set("tracking_url", c.TrackingURL).
		Set("daily_budget", c.DailyBudget).
		Set("launched_at", c.LaunchedAt).
		Set("completed_at", c.CompletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
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

func (r *campaignRepository) UpdateTotals(ctx context.Context, id string, spent float64, totals domain.MetricTotals, derived domain.DerivedMetrics) error {
	totalsJSON, err := marshalJSON(totals)
	if err != nil {
		return err
	}
	derivedJSON, err := marshalJSON(derived)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Update("campaigns").
		Set("spent_budget", spent).
		Set("totals", totalsJSON).
		Set("derived", derivedJSON).
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

// MarkBudgetWarningSent grava o aviso de 80% apenas uma vez. Devolve false se já estava marcado.
func (r *campaignRepository) MarkBudgetWarningSent(ctx context.Context, id string, at time.Time) (bool, error) {
	query, args, err := squirrel.
		Update("campaigns").
		Set("budget_warning_sent_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "budget_warning_sent_at": nil}).
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

// SetABTestWinner define o vencedor do teste A/B. Um vencedor já definido nunca é trocado.
func (r *campaignRepository) SetABTestWinner(ctx context.Context, id string, winner domain.Variant, at time.Time) (bool, error) {
	query, args, err := squirrel.
		Update("campaigns").
		Set("ab_test_winner", string(winner)).
		Set("ab_test_winner_date", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "ab_test_winner": nil}).
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

// MarkABTestApplied registra que as ações do vencedor foram concluídas
func (r *campaignRepository) MarkABTestApplied(ctx context.Context, id string, at time.Time) error {
	query, args, err := squirrel.
		Update("campaigns").
		Set("ab_test_applied_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "ab_test_applied_at": nil}).
		Where(squirrel.NotEq{"ab_test_winner": nil}).
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

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	var (
		serviceRequestID sql.NullString
		platforms        []string
		manual           []byte
		rules            []byte
		abTest           []byte
		winner           sql.NullString
		winnerDate       sql.NullTime
		appliedAt        sql.NullTime
		retargeting      []byte
		utm              []byte
		warningSentAt    sql.NullTime
		totals           []byte
		derived          []byte
		launchedAt       sql.NullTime
		completedAt      sql.NullTime
	)

	err := row.Scan(
		&c.ID, &c.TenantID, &c.EventID, &serviceRequestID, &c.Name, &c.Objective,
		&c.TotalBudget, &c.DailyBudget, &c.SpentBudget, &c.Currency, pq.Array(&platforms),
		&c.AllocationStrategy, &manual, &c.AutoOptimize, &rules,
		&abTest, &winner, &winnerDate, &appliedAt, &retargeting, &utm,
		&c.LandingPageURL, &c.TrackingURL, &c.StartDate, &c.EndDate, &c.Status, &c.StatusNote,
		&warningSentAt, &totals, &derived, &launchedAt, &completedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, field := range []struct {
		data []byte
		out  any
	}{
		{manual, &c.ManualAllocations},
		{rules, &c.OptimizationRules},
		{abTest, &c.ABTest},
		{retargeting, &c.Retargeting},
		{utm, &c.UTM},
		{totals, &c.Totals},
		{derived, &c.Derived},
	} {
		if err := unmarshalJSON(field.data, field.out); err != nil {
			return nil, err
		}
	}

	c.ServiceRequestID = stringPtr(serviceRequestID)
	c.TargetPlatforms = stringsToPlatforms(platforms)
	c.BudgetWarningSentAt = timePtr(warningSentAt)
	c.LaunchedAt = timePtr(launchedAt)
	c.CompletedAt = timePtr(completedAt)
	c.ABTest.AppliedAt = nil
	if winner.Valid {
		c.ABTest.Winner = domain.Variant(winner.String)
		c.ABTest.WinnerDate = timePtr(winnerDate)
		c.ABTest.AppliedAt = timePtr(appliedAt)
	}

	return c, nil
}
