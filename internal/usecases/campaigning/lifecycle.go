package campaigning

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/insighting"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"github.com/vfg2006/campaign-engine/pkg/log"
)

// toggleResult conta as campanhas de plataforma alteradas e as que falharam na plataforma
type toggleResult struct {
	changed int
	failed  int
}

// Pause pausa as campanhas de plataforma ativas. Erros de plataforma são logados e não interrompem a pausa.
func (s *Service) Pause(ctx context.Context, id string, source domain.OptimizationSource) (*domain.Campaign, error) {
	campaign, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if !campaign.Status.CanTransitionTo(domain.CampaignStatusPaused) {
		return nil, NewCampaignErrorWithID(ErrInvalidTransition, apiErrors.ErrInvalidTransition, id,
			fmt.Sprintf("campanha em %s não pode ser pausada", campaign.Status))
	}

	toggled, err := s.pausePlatformCampaigns(ctx, campaign)
	if err != nil {
		return nil, err
	}

	before := campaign.Status
	if err := s.transition(ctx, campaign, domain.CampaignStatusPaused); err != nil {
		return nil, err
	}

	if _, err := s.writeLog(ctx, &domain.OptimizationLog{
		CampaignID:  id,
		Type:        domain.OptimizationCampaignPaused,
		Description: "Campanha pausada",
		BeforeState: map[string]any{"status": string(before)},
		AfterState:  map[string]any{"status": string(campaign.Status), "paused": toggled.changed, "failed": toggled.failed},
		Source:      sourceOrManual(source),
	}); err != nil {
		return nil, err
	}

	s.notify(ctx, campaign, domain.NotificationCampaignPaused, "Campanha pausada",
		map[string]any{"paused": toggled.changed, "failed": toggled.failed})

	return campaign, nil
}

// Resume reativa as campanhas de plataforma pausadas, exceto as da variante perdedora do teste A/B e as de
// criativos podados
func (s *Service) Resume(ctx context.Context, id string, source domain.OptimizationSource) (*domain.Campaign, error) {
	campaign, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign.Status != domain.CampaignStatusPaused {
		return nil, NewCampaignErrorWithID(ErrInvalidTransition, apiErrors.ErrInvalidTransition, id,
			fmt.Sprintf("campanha em %s não pode ser retomada", campaign.Status))
	}

	paused, err := s.platformCampaigns.ListByCampaign(ctx, id, domain.PlatformCampaignPaused)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas de plataforma pausadas: %w", err)
	}

	creatives, err := s.creatives.ListByCampaign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar criativos: %w", err)
	}

	var toggled toggleResult
	for _, pc := range resumable(campaign, paused, creatives) {
		ok, err := s.activatePlatformCampaign(ctx, pc)
		if err != nil {
			return nil, err
		}
		if ok {
			toggled.changed++
		} else {
			toggled.failed++
		}
	}

	if err := s.transition(ctx, campaign, domain.CampaignStatusActive); err != nil {
		return nil, err
	}

	if _, err := s.writeLog(ctx, &domain.OptimizationLog{
		CampaignID:  id,
		Type:        domain.OptimizationCampaignResumed,
		Description: "Campanha retomada",
		BeforeState: map[string]any{"status": string(domain.CampaignStatusPaused)},
		AfterState:  map[string]any{"status": string(campaign.Status), "activated": toggled.changed, "failed": toggled.failed},
		Source:      sourceOrManual(source),
	}); err != nil {
		return nil, err
	}

	s.notify(ctx, campaign, domain.NotificationCampaignResumed, "Campanha retomada",
		map[string]any{"activated": toggled.changed, "failed": toggled.failed})

	return campaign, nil
}

// Complete encerra a campanha: pausa as campanhas de plataforma, faz a sincronização final e marca como concluída
func (s *Service) Complete(ctx context.Context, id string, source domain.OptimizationSource) (*domain.Campaign, error) {
	campaign, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if !campaign.Status.CanTransitionTo(domain.CampaignStatusCompleted) {
		return nil, NewCampaignErrorWithID(ErrInvalidTransition, apiErrors.ErrInvalidTransition, id,
			fmt.Sprintf("campanha em %s não pode ser concluída", campaign.Status))
	}

	if err := s.completeCampaign(ctx, campaign, sourceOrManual(source), "Campanha concluída manualmente"); err != nil {
		return nil, err
	}

	return campaign, nil
}

func (s *Service) completeCampaign(ctx context.Context, campaign *domain.Campaign, source domain.OptimizationSource, reason string) error {
	logger := log.Entry(ctx).WithField("campaign_id", campaign.ID)

	pcs, err := s.platformCampaigns.ListByCampaign(ctx, campaign.ID, domain.PlatformCampaignActive, domain.PlatformCampaignPaused)
	if err != nil {
		return fmt.Errorf("erro ao listar campanhas de plataforma: %w", err)
	}

	var toggled toggleResult
	for _, pc := range pcs {
		err := s.withPlatformCampaign(ctx, pc, func() error {
			if pc.Status == domain.PlatformCampaignActive && pc.IsMaterialized() {
				if err := s.gateway.Pause(ctx, pc); err != nil {
					toggled.failed++
					logger.WithFields(logrus.Fields{
						"platform_campaign_id": pc.ID,
						"platform":             pc.Platform,
						"error":                err,
					}).Warn("Falha ao pausar campanha de plataforma na conclusão")
				}
			}

			pc.Status = domain.PlatformCampaignEnded
			return s.platformCampaigns.UpdateStatus(ctx, pc.ID, pc.Status, pc.ErrorMessage)
		})
		if err != nil {
			return fmt.Errorf("erro ao encerrar campanha de plataforma %s: %w", pc.ID, err)
		}
		toggled.changed++
	}

	// a sincronização final inclui as campanhas de plataforma já encerradas e recalcula os totais da campanha
	if _, err := s.syncer.SyncCampaign(ctx, campaign, insighting.SyncOptions{IncludeStopped: true}); err != nil {
		logger.WithField("error", err).Warn("Falha na sincronização final de métricas")
	}

	before := campaign.Status
	now := s.clock.Now()
	campaign.CompletedAt = &now
	if err := s.transition(ctx, campaign, domain.CampaignStatusCompleted); err != nil {
		return err
	}

	if _, err := s.writeLog(ctx, &domain.OptimizationLog{
		CampaignID:  campaign.ID,
		Type:        domain.OptimizationCampaignCompleted,
		Description: reason,
		BeforeState: map[string]any{"status": string(before)},
		AfterState: map[string]any{
			"status":       string(campaign.Status),
			"ended":        toggled.changed,
			"pause_failed": toggled.failed,
			"spent_budget": campaign.SpentBudget,
		},
		Source: source,
	}); err != nil {
		return err
	}

	s.notify(ctx, campaign, domain.NotificationCampaignCompleted, reason, map[string]any{
		"spent_budget": campaign.SpentBudget,
		"total_budget": campaign.TotalBudget,
	})

	return nil
}

func (s *Service) pausePlatformCampaigns(ctx context.Context, campaign *domain.Campaign) (toggleResult, error) {
	var toggled toggleResult

	active, err := s.platformCampaigns.ListByCampaign(ctx, campaign.ID, domain.PlatformCampaignActive)
	if err != nil {
		return toggled, fmt.Errorf("erro ao listar campanhas de plataforma ativas: %w", err)
	}

	for _, pc := range active {
		ok, err := s.pausePlatformCampaign(ctx, pc)
		if err != nil {
			return toggled, err
		}
		if ok {
			toggled.changed++
		} else {
			toggled.failed++
		}
	}

	return toggled, nil
}

// pausePlatformCampaign pausa na plataforma e grava o novo status. Devolve false quando a plataforma recusou.
func (s *Service) pausePlatformCampaign(ctx context.Context, pc *domain.PlatformCampaign) (bool, error) {
	paused := false
	err := s.withPlatformCampaign(ctx, pc, func() error {
		if err := s.gateway.Pause(ctx, pc); err != nil {
			log.Entry(ctx).WithFields(logrus.Fields{
				"campaign_id":          pc.CampaignID,
				"platform_campaign_id": pc.ID,
				"platform":             pc.Platform,
				"error":                err,
			}).Warn("Falha ao pausar campanha de plataforma")
			return nil
		}

		pc.Status = domain.PlatformCampaignPaused
		paused = true
		return s.platformCampaigns.UpdateStatus(ctx, pc.ID, pc.Status, "")
	})
	if err != nil {
		return false, fmt.Errorf("erro ao pausar campanha de plataforma %s: %w", pc.ID, err)
	}

	return paused, nil
}

func (s *Service) activatePlatformCampaign(ctx context.Context, pc *domain.PlatformCampaign) (bool, error) {
	activated := false
	err := s.withPlatformCampaign(ctx, pc, func() error {
		if err := s.gateway.Activate(ctx, pc); err != nil {
			log.Entry(ctx).WithFields(logrus.Fields{
				"campaign_id":          pc.CampaignID,
				"platform_campaign_id": pc.ID,
				"platform":             pc.Platform,
				"error":                err,
			}).Warn("Falha ao reativar campanha de plataforma")
			return nil
		}

		pc.Status = domain.PlatformCampaignActive
		activated = true
		return s.platformCampaigns.UpdateStatus(ctx, pc.ID, pc.Status, "")
	})
	if err != nil {
		return false, fmt.Errorf("erro ao reativar campanha de plataforma %s: %w", pc.ID, err)
	}

	return activated, nil
}

// resumable descarta as campanhas de plataforma pausadas pelo otimizador: a variante perdedora do teste A/B
// e as de criativos pausados por baixo CTR continuam pausadas na retomada
func resumable(campaign *domain.Campaign, paused []*domain.PlatformCampaign, creatives []*domain.Creative) []*domain.PlatformCampaign {
	pausedCreatives := make(map[string]bool, len(creatives))
	for _, cr := range creatives {
		if cr.Status == domain.CreativeStatusPaused {
			pausedCreatives[cr.ID] = true
		}
	}

	winner := campaign.ABTest.Winner
	out := make([]*domain.PlatformCampaign, 0, len(paused))
	for _, pc := range paused {
		if pausedCreatives[pc.CreativeID] {
			continue
		}
		if winner != domain.VariantNone && pc.Variant != domain.VariantNone && pc.Variant != winner {
			continue
		}
		out = append(out, pc)
	}
	return out
}

func sourceOrManual(source domain.OptimizationSource) domain.OptimizationSource {
	if source == "" {
		return domain.SourceManual
	}
	return source
}
