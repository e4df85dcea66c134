package campaigning

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/insighting"
	"github.com/vfg2006/campaign-engine/internal/usecases/optimizing"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	budgetWarningFraction = 0.8
	defaultWorkers        = 4
)

// OptimizationResult resume uma passada de otimização de uma campanha
type OptimizationResult struct {
	CampaignID      string                 `json:"campaign_id"`
	Sync            *insighting.SyncResult `json:"sync"`
	Advisories      int                    `json:"advisories"`
	BudgetChanges   int                    `json:"budget_changes"`
	CreativesPaused int                    `json:"creatives_paused"`
	BudgetWarning   bool                   `json:"budget_warning"`
	Completed       bool                   `json:"completed"`
	ABTestWinner    domain.Variant         `json:"ab_test_winner,omitempty"`
	Status          domain.CampaignStatus  `json:"status"`
}

// CampaignFailure é uma campanha cuja passada falhou e pode ser repetida
type CampaignFailure struct {
	CampaignID string `json:"campaign_id"`
	Error      string `json:"error"`
}

// BatchResult resume a otimização de todas as campanhas elegíveis
type BatchResult struct {
	Processed int                   `json:"processed"`
	Succeeded int                   `json:"succeeded"`
	Completed int                   `json:"completed"`
	Failures  []CampaignFailure     `json:"failures"`
	Results   []*OptimizationResult `json:"-"`
}

// OptimizeActiveCampaigns roda a passada de otimização em paralelo, limitada a workers campanhas por vez.
// A falha de uma campanha não interrompe as demais.
func (s *Service) OptimizeActiveCampaigns(ctx context.Context, workers int) (*BatchResult, error) {
	campaigns, err := s.campaigns.ListForOptimization(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas para otimização: %w", err)
	}

	if workers <= 0 {
		workers = defaultWorkers
	}

	result := &BatchResult{Processed: len(campaigns)}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(workers)

	for _, campaign := range campaigns {
		g.Go(func() error {
			res, err := s.OptimizeCampaign(ctx, campaign)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				log.Entry(ctx).WithFields(logrus.Fields{
					"campaign_id": campaign.ID,
					"error":       err,
				}).Error("Erro ao otimizar campanha")
				result.Failures = append(result.Failures, CampaignFailure{CampaignID: campaign.ID, Error: err.Error()})
				return nil
			}

			result.Succeeded++
			if res.Completed {
				result.Completed++
			}
			result.Results = append(result.Results, res)
			return nil
		})
	}

	_ = g.Wait()

	return result, nil
}

func (s *Service) OptimizeCampaignByID(ctx context.Context, id string) (*OptimizationResult, error) {
	campaign, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.OptimizeCampaign(ctx, campaign)
}

// OptimizeCampaign sincroniza as métricas, aplica o plano do otimizador e verifica, nessa ordem, orçamento
// esgotado, aviso de 80% e data final. Por último avalia o teste A/B.
func (s *Service) OptimizeCampaign(ctx context.Context, campaign *domain.Campaign) (*OptimizationResult, error) {
	logger := log.Entry(ctx).WithField("campaign_id", campaign.ID)
	result := &OptimizationResult{CampaignID: campaign.ID}

	// otimizando é transitório e volta para ativo no início da passada seguinte
	if campaign.Status == domain.CampaignStatusOptimizing {
		if err := s.transition(ctx, campaign, domain.CampaignStatusActive); err != nil {
			return nil, err
		}
	}
	if campaign.Status != domain.CampaignStatusActive {
		logger.WithField("status", campaign.Status).Debug("Campanha fora de status otimizável, ignorando")
		result.Status = campaign.Status
		return result, nil
	}

	synced, err := s.syncer.SyncCampaign(ctx, campaign, insighting.SyncOptions{})
	if err != nil {
		return nil, fmt.Errorf("erro ao sincronizar métricas: %w", err)
	}
	result.Sync = synced

	plan, err := s.planner.Optimize(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular plano de otimização: %w", err)
	}
	if err := s.applyPlan(ctx, campaign, plan, result); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	if campaign.TotalBudget > 0 && campaign.SpentFraction() >= 1 {
		if err := s.completeCampaign(ctx, campaign, domain.SourceAuto, "Orçamento esgotado"); err != nil {
			return nil, err
		}
		s.notify(ctx, campaign, domain.NotificationBudgetExhausted, "Orçamento da campanha esgotado", map[string]any{
			"spent_budget": campaign.SpentBudget,
			"total_budget": campaign.TotalBudget,
		})
		result.Completed = true
		result.Status = campaign.Status
		return result, nil
	}

	if campaign.TotalBudget > 0 && campaign.SpentFraction() >= budgetWarningFraction && campaign.BudgetWarningSentAt == nil {
		marked, err := s.campaigns.MarkBudgetWarningSent(ctx, campaign.ID, now)
		if err != nil {
			return nil, fmt.Errorf("erro ao marcar aviso de orçamento: %w", err)
		}
		campaign.BudgetWarningSentAt = &now
		if marked {
			result.BudgetWarning = true
			s.notify(ctx, campaign, domain.NotificationBudgetThreshold, "Campanha atingiu 80% do orçamento", map[string]any{
				"spent_budget":   campaign.SpentBudget,
				"total_budget":   campaign.TotalBudget,
				"spent_fraction": utils.RoundWithFourDecimalPlace(campaign.SpentFraction()),
			})
		}
	}

	if domain.TruncateDay(now).After(domain.TruncateDay(campaign.EndDate)) {
		if err := s.completeCampaign(ctx, campaign, domain.SourceAuto, "Data final da campanha atingida"); err != nil {
			return nil, err
		}
		result.Completed = true
		result.Status = campaign.Status
		return result, nil
	}

	if campaign.ABTest.Enabled && !campaign.ABTest.IsApplied() {
		decision, err := s.planner.EvaluateABTest(ctx, campaign)
		if err != nil {
			return nil, fmt.Errorf("erro ao avaliar teste A/B: %w", err)
		}
		if decision != nil {
			if err := s.applyABDecision(ctx, campaign, decision); err != nil {
				return nil, err
			}
			result.ABTestWinner = campaign.ABTest.Winner
		}
	}

	result.Status = campaign.Status

	logger.WithFields(logrus.Fields{
		"advisories":       result.Advisories,
		"budget_changes":   result.BudgetChanges,
		"creatives_paused": result.CreativesPaused,
		"status":           campaign.Status,
	}).Info("Passada de otimização concluída")

	return result, nil
}

func (s *Service) applyPlan(ctx context.Context, campaign *domain.Campaign, plan *optimizing.Plan, result *OptimizationResult) error {
	if plan.IsEmpty() {
		return nil
	}

	for _, advisory := range plan.Advisories {
		created, err := s.writeLog(ctx, advisory)
		if err != nil {
			return err
		}
		if created {
			result.Advisories++
		}
	}

	for _, change := range plan.BudgetChanges {
		description := fmt.Sprintf("Orçamento diário de %s ajustado por performance", change.PlatformCampaign.Platform)
		applied, err := s.applyBudgetChange(ctx, campaign, change, domain.OptimizationBudgetReallocation, description)
		if err != nil {
			return err
		}
		if applied {
			result.BudgetChanges++
		}
	}

	if result.BudgetChanges > 0 {
		if err := s.transition(ctx, campaign, domain.CampaignStatusOptimizing); err != nil {
			return err
		}
	}

	for _, pause := range plan.CreativePauses {
		if err := s.applyCreativePause(ctx, campaign, pause); err != nil {
			return err
		}
		result.CreativesPaused++
	}

	return nil
}

func (s *Service) applyBudgetChange(
	ctx context.Context,
	campaign *domain.Campaign,
	change optimizing.BudgetChange,
	logType domain.OptimizationType,
	description string,
) (bool, error) {
	pc := change.PlatformCampaign
	before := map[string]any{
		"budget_allocated": pc.BudgetAllocated,
		"daily_budget":     pc.DailyBudget,
	}

	applied := false
	err := s.withPlatformCampaign(ctx, pc, func() error {
		if err := s.gateway.UpdateBudget(ctx, pc, change.NewDaily); err != nil {
			log.Entry(ctx).WithFields(logrus.Fields{
				"campaign_id":          campaign.ID,
				"platform_campaign_id": pc.ID,
				"platform":             pc.Platform,
				"error":                err,
			}).Warn("Falha ao atualizar orçamento na plataforma")
			return nil
		}

		if err := s.platformCampaigns.UpdateBudget(ctx, pc.ID, change.NewAllocated, change.NewDaily); err != nil {
			return err
		}
		pc.BudgetAllocated = change.NewAllocated
		pc.DailyBudget = change.NewDaily
		applied = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("erro ao realocar orçamento da campanha de plataforma %s: %w", pc.ID, err)
	}
	if !applied {
		return false, nil
	}

	pcID := pc.ID
	if _, err := s.writeLog(ctx, &domain.OptimizationLog{
		CampaignID:         campaign.ID,
		PlatformCampaignID: &pcID,
		Type:               logType,
		Description:        description,
		BeforeState:        before,
		AfterState: map[string]any{
			"budget_allocated": change.NewAllocated,
			"daily_budget":     change.NewDaily,
		},
		TriggerMetrics: map[string]any{
			"score": utils.RoundWithFourDecimalPlace(change.Score),
			"spend": pc.Totals.Spend,
			"roas":  pc.Derived.ROAS,
		},
		Source: domain.SourceAuto,
	}); err != nil {
		return false, err
	}

	return true, nil
}

func (s *Service) applyCreativePause(ctx context.Context, campaign *domain.Campaign, pause optimizing.CreativePause) error {
	var toggled toggleResult
	for _, pc := range pause.PlatformCampaigns {
		ok, err := s.pausePlatformCampaign(ctx, pc)
		if err != nil {
			return err
		}
		if ok {
			toggled.changed++
		} else {
			toggled.failed++
		}
	}

	if err := s.creatives.UpdateStatus(ctx, pause.Creative.ID, domain.CreativeStatusPaused); err != nil {
		return fmt.Errorf("erro ao pausar criativo %s: %w", pause.Creative.ID, err)
	}
	pause.Creative.Status = domain.CreativeStatusPaused

	_, err := s.writeLog(ctx, &domain.OptimizationLog{
		CampaignID:  campaign.ID,
		Type:        domain.OptimizationCreativePaused,
		Description: fmt.Sprintf("Criativo %s pausado por CTR abaixo de 50%% do melhor", pause.Creative.Name),
		BeforeState: map[string]any{"creative_id": pause.Creative.ID, "status": string(domain.CreativeStatusActive)},
		AfterState: map[string]any{
			"creative_id":               pause.Creative.ID,
			"status":                    string(domain.CreativeStatusPaused),
			"paused_platform_campaigns": toggled.changed,
			"failed_platform_campaigns": toggled.failed,
		},
		TriggerMetrics: map[string]any{
			"ctr":      pause.CTR,
			"best_ctr": pause.BestCTR,
		},
		Source: domain.SourceAuto,
	})
	return err
}

// applyABDecision grava o vencedor e depois pausa a perdedora e dobra o orçamento da vencedora. A gravação do
// vencedor é condicional, então uma segunda decisão para a mesma campanha não é aplicada. Enquanto alguma ação
// não for concluída o teste fica sem applied_at e a passada seguinte refaz apenas o que falta.
func (s *Service) applyABDecision(ctx context.Context, campaign *domain.Campaign, decision *optimizing.ABDecision) error {
	logger := log.Entry(ctx).WithField("campaign_id", campaign.ID)
	now := s.clock.Now()

	boosted := map[string]bool{}
	if campaign.ABTest.IsResolved() {
		var err error
		if boosted, err = s.boostedPlatformCampaigns(ctx, campaign.ID); err != nil {
			return err
		}
	} else {
		set, err := s.campaigns.SetABTestWinner(ctx, campaign.ID, decision.Winner, now)
		if err != nil {
			return fmt.Errorf("erro ao gravar vencedor do teste A/B: %w", err)
		}
		if !set {
			return nil
		}
		campaign.ABTest.Winner = decision.Winner
		campaign.ABTest.WinnerDate = &now
	}

	pending := 0
	for _, pc := range decision.Pause {
		paused, err := s.pausePlatformCampaign(ctx, pc)
		if err != nil {
			return err
		}
		if !paused {
			pending++
		}
	}

	for _, pc := range decision.Boost {
		if boosted[pc.ID] {
			continue
		}
		applied, err := s.applyBudgetChange(ctx, campaign, optimizing.BudgetChange{
			PlatformCampaign: pc,
			NewAllocated:     pc.BudgetAllocated,
			NewDaily:         utils.RoundWithTwoDecimalPlace(pc.DailyBudget * 2),
		}, domain.OptimizationABTestBoost, "Orçamento diário dobrado para a variante vencedora")
		if err != nil {
			return err
		}
		if !applied {
			pending++
		}
	}

	marked, err := s.creatives.MarkWinner(ctx, campaign.ID, decision.Winner)
	if err != nil {
		return fmt.Errorf("erro ao marcar criativos vencedores: %w", err)
	}

	winnerLog := optimizing.WinnerLog(campaign.ID, decision)
	dedupeKey := "ab_test_winner:" + campaign.ID
	winnerLog.DedupeKey = &dedupeKey
	created, err := s.writeLog(ctx, winnerLog)
	if err != nil {
		return err
	}

	fields := logrus.Fields{
		"winner":            decision.Winner,
		"metric":            decision.Metric,
		"paused":            len(decision.Pause),
		"boosted":           len(decision.Boost),
		"pending":           pending,
		"winning_creatives": marked,
	}

	if pending > 0 {
		logger.WithFields(fields).Warn("Ações do teste A/B incompletas, serão refeitas na próxima passada")
	} else {
		if err := s.campaigns.MarkABTestApplied(ctx, campaign.ID, now); err != nil {
			return fmt.Errorf("erro ao marcar teste A/B como aplicado: %w", err)
		}
		campaign.ABTest.AppliedAt = &now
		logger.WithFields(fields).Info("Teste A/B resolvido")
	}

	if created {
		s.notify(ctx, campaign, domain.NotificationABTestWinner, "Variante "+string(decision.Winner)+" venceu o teste A/B",
			map[string]any{"winner": string(decision.Winner), "metric": decision.Metric})
	}

	return nil
}

// boostedPlatformCampaigns lista as campanhas de plataforma que já receberam o reforço da variante vencedora
func (s *Service) boostedPlatformCampaigns(ctx context.Context, campaignID string) (map[string]bool, error) {
	logs, err := s.optimizationLogs.ListByCampaign(ctx, campaignID, 0)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar registros de otimização: %w", err)
	}

	boosted := make(map[string]bool)
	for _, l := range logs {
		if l.Type == domain.OptimizationABTestBoost && l.PlatformCampaignID != nil {
			boosted[*l.PlatformCampaignID] = true
		}
	}
	return boosted, nil
}
