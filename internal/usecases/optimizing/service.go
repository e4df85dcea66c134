// Package optimizing analisa o desempenho de uma campanha e propõe ajustes de orçamento, pausas de criativos,
// avisos e a decisão do teste A/B. Nada é aplicado aqui.
package optimizing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/infrastructure/repository"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

type Optimizer struct {
	platformCampaigns repository.PlatformCampaignRepository
	creatives         repository.CreativeRepository
	metrics           repository.MetricRepository
	clock             utils.Clock
}

func NewOptimizer(
	platformCampaigns repository.PlatformCampaignRepository,
	creatives repository.CreativeRepository,
	metrics repository.MetricRepository,
	clock utils.Clock,
) *Optimizer {
	return &Optimizer{
		platformCampaigns: platformCampaigns,
		creatives:         creatives,
		metrics:           metrics,
		clock:             clock,
	}
}

// Optimize carrega o snapshot da campanha e devolve o plano proposto
func (o *Optimizer) Optimize(ctx context.Context, campaign *domain.Campaign) (*Plan, error) {
	snapshot, err := o.load(ctx, campaign, true)
	if err != nil {
		return nil, err
	}

	plan := BuildPlan(snapshot, o.clock.Now())

	log.Entry(ctx).WithFields(logrus.Fields{
		"campaign_id":     campaign.ID,
		"advisories":      len(plan.Advisories),
		"budget_changes":  len(plan.BudgetChanges),
		"creative_pauses": len(plan.CreativePauses),
	}).Debug("Plano de otimização calculado")

	return plan, nil
}

// EvaluateABTest devolve a decisão do teste A/B, as ações ainda pendentes de um teste resolvido ou nil
func (o *Optimizer) EvaluateABTest(ctx context.Context, campaign *domain.Campaign) (*ABDecision, error) {
	if !campaign.ABTest.Enabled || campaign.ABTest.IsApplied() {
		return nil, nil
	}

	snapshot, err := o.load(ctx, campaign, false)
	if err != nil {
		return nil, err
	}

	if campaign.ABTest.IsResolved() {
		return PendingABDecision(snapshot), nil
	}
	return DecideABTest(snapshot), nil
}

func (o *Optimizer) load(ctx context.Context, campaign *domain.Campaign, full bool) (Snapshot, error) {
	snapshot := Snapshot{Campaign: campaign}

	pcs, err := o.platformCampaigns.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return snapshot, fmt.Errorf("erro ao listar campanhas de plataforma: %w", err)
	}
	snapshot.PlatformCampaigns = pcs

	if !full {
		return snapshot, nil
	}

	creatives, err := o.creatives.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return snapshot, fmt.Errorf("erro ao listar criativos: %w", err)
	}
	snapshot.Creatives = creatives

	metrics, err := o.metrics.List(ctx, campaign.ID, domain.MetricFilters{})
	if err != nil {
		return snapshot, fmt.Errorf("erro ao listar métricas: %w", err)
	}
	snapshot.Metrics = metrics

	return snapshot, nil
}
