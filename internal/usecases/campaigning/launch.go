package campaigning

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/allocating"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

// LaunchFailure é uma combinação de plataforma e criativo que não chegou a ficar ativa
type LaunchFailure struct {
	Platform   domain.Platform `json:"platform"`
	CreativeID string          `json:"creative_id"`
	Error      string          `json:"error"`
}

func (f LaunchFailure) String() string {
	return fmt.Sprintf("%s/%s: %s", f.Platform, f.CreativeID, f.Error)
}

type LaunchResult struct {
	Campaign          *domain.Campaign           `json:"campaign"`
	PlatformCampaigns []*domain.PlatformCampaign `json:"platform_campaigns"`
	Failures          []LaunchFailure            `json:"failures"`
}

// Launch materializa a campanha em cada par plataforma x criativo aprovado. Falhas são coletadas por tentativa
// e a campanha fica ativa se ao menos uma campanha de plataforma ficou ativa.
func (s *Service) Launch(ctx context.Context, id string) (*LaunchResult, error) {
	campaign, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	if !campaign.Status.CanTransitionTo(domain.CampaignStatusLaunching) {
		return nil, NewCampaignErrorWithID(ErrInvalidTransition, apiErrors.ErrInvalidTransition, id,
			fmt.Sprintf("campanha em %s não pode ser lançada", campaign.Status))
	}

	creatives, err := s.creatives.ListByCampaign(ctx, id)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao listar criativos")
	}
	approved := make([]*domain.Creative, 0, len(creatives))
	for _, cr := range creatives {
		if cr.IsApproved() {
			approved = append(approved, cr)
		}
	}
	if len(approved) == 0 {
		return nil, NewCampaignErrorWithID(ErrNoApprovedCreatives, apiErrors.ErrNoApprovedCreatives, id, "")
	}

	targeting, err := s.targetings.GetActiveByCampaign(ctx, id)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar segmentação")
	}
	if targeting == nil {
		return nil, NewCampaignErrorWithID(ErrMissingTargeting, apiErrors.ErrMissingTargeting, id, "")
	}

	previous, err := s.platformCampaigns.ListByCampaign(ctx, id)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao listar campanhas de plataforma")
	}

	allocations, err := allocating.Allocate(campaign, platformHistory(previous))
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrInvalidAllocation, apiErrors.ErrInvalidBudget, id, err.Error())
	}

	if err := s.transition(ctx, campaign, domain.CampaignStatusLaunching); err != nil {
		return nil, err
	}

	result, err := s.launchPlatformCampaigns(ctx, campaign, approved, targeting, previous, allocations)
	if err != nil {
		s.abandonLaunch(ctx, campaign, err)
		return nil, err
	}

	return result, nil
}

// launchPlatformCampaigns roda com a campanha em launching e sempre a deixa em active ou failed quando não há erro
func (s *Service) launchPlatformCampaigns(
	ctx context.Context,
	campaign *domain.Campaign,
	approved []*domain.Creative,
	targeting *domain.Targeting,
	previous []*domain.PlatformCampaign,
	allocations map[domain.Platform]float64,
) (*LaunchResult, error) {
	id := campaign.ID

	// relançamento: as tentativas que falharam antes saem da soma das alocações
	for _, pc := range previous {
		if pc.Status != domain.PlatformCampaignFailed {
			continue
		}
		if err := s.platformCampaigns.UpdateStatus(ctx, pc.ID, domain.PlatformCampaignDeleted, pc.ErrorMessage); err != nil {
			return nil, fmt.Errorf("erro ao descartar campanha de plataforma %s: %w", pc.ID, err)
		}
	}

	now := s.clock.Now()
	days := campaign.DaysUntilEnd(now)
	weights := creativeWeights(campaign, approved)
	creativeIDs := make([]string, 0, len(approved))
	for _, cr := range approved {
		creativeIDs = append(creativeIDs, cr.ID)
	}

	result := &LaunchResult{Campaign: campaign}
	var dailyTotal float64

	for _, p := range uniquePlatforms(campaign.TargetPlatforms) {
		shares := allocating.Distribute(allocations[p], creativeIDs, weights)

		for _, cr := range approved {
			pc, failure, err := s.launchOne(ctx, campaign, targeting, cr, p, shares[cr.ID], days)
			if err != nil {
				return nil, err
			}
			result.PlatformCampaigns = append(result.PlatformCampaigns, pc)

			if failure != nil {
				result.Failures = append(result.Failures, *failure)
				continue
			}
			dailyTotal += pc.DailyBudget
		}
	}

	reasons := make([]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		reasons = append(reasons, f.String())
	}

	if len(result.Failures) == len(result.PlatformCampaigns) {
		campaign.StatusNote = strings.Join(reasons, "; ")
		if err := s.transition(ctx, campaign, domain.CampaignStatusFailed); err != nil {
			return nil, err
		}

		log.Entry(ctx).WithFields(logrus.Fields{
			"campaign_id": id,
			"failures":    len(result.Failures),
		}).Error("Campanha não foi lançada em nenhuma plataforma")

		s.notify(ctx, campaign, domain.NotificationCampaignFailed, "Campanha falhou no lançamento em todas as plataformas",
			map[string]any{"reasons": reasons})

		return result, nil
	}

	campaign.StatusNote = ""
	if len(reasons) > 0 {
		campaign.StatusNote = "Falhas parciais: " + strings.Join(reasons, "; ")
	}
	campaign.DailyBudget = utils.RoundWithTwoDecimalPlace(dailyTotal)
	if campaign.LaunchedAt == nil {
		campaign.LaunchedAt = &now
	}
	if campaign.TrackingURL == "" {
		campaign.TrackingURL = BuildTrackingURL(campaign.LandingPageURL, campaign.UTM)
	}

	if err := s.transition(ctx, campaign, domain.CampaignStatusActive); err != nil {
		return nil, err
	}

	active := len(result.PlatformCampaigns) - len(result.Failures)
	if _, err := s.writeLog(ctx, &domain.OptimizationLog{
		CampaignID:  id,
		Type:        domain.OptimizationCampaignLaunched,
		Description: fmt.Sprintf("Campanha lançada em %d de %d combinações", active, len(result.PlatformCampaigns)),
		BeforeState: map[string]any{"status": string(domain.CampaignStatusLaunching)},
		AfterState: map[string]any{
			"status":       string(campaign.Status),
			"active":       active,
			"failed":       len(result.Failures),
			"daily_budget": campaign.DailyBudget,
			"allocations":  allocationsToMap(allocations),
		},
		Source: domain.SourceManual,
	}); err != nil {
		return nil, err
	}

	log.Entry(ctx).WithFields(logrus.Fields{
		"campaign_id":  id,
		"active":       active,
		"failures":     len(result.Failures),
		"daily_budget": campaign.DailyBudget,
	}).Info("Campanha lançada")

	s.notify(ctx, campaign, domain.NotificationCampaignLaunched, "Campanha lançada",
		map[string]any{"active": active, "failures": reasons})

	return result, nil
}

// abandonLaunch tira a campanha de launching depois de um erro de banco, para que possa ser relançada ou concluída.
// A falha aqui só é logada e o erro original é o que volta para o chamador.
func (s *Service) abandonLaunch(ctx context.Context, campaign *domain.Campaign, cause error) {
	if campaign.Status != domain.CampaignStatusLaunching {
		return
	}

	campaign.StatusNote = "Lançamento interrompido: " + cause.Error()
	if err := s.transition(ctx, campaign, domain.CampaignStatusFailed); err != nil {
		log.Entry(ctx).WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"error":       err,
			"cause":       cause,
		}).Error("Falha ao marcar lançamento interrompido")
		return
	}

	s.notify(ctx, campaign, domain.NotificationCampaignFailed, "Lançamento da campanha interrompido",
		map[string]any{"reasons": []string{cause.Error()}})
}

// launchOne cria a campanha de plataforma localmente, monta a hierarquia remota pausada e a ativa.
// Erros da plataforma viram LaunchFailure; erros de banco interrompem o lançamento.
func (s *Service) launchOne(
	ctx context.Context,
	campaign *domain.Campaign,
	targeting *domain.Targeting,
	creative *domain.Creative,
	p domain.Platform,
	allocated float64,
	days int,
) (*domain.PlatformCampaign, *LaunchFailure, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, nil, ErrGenerateID
	}

	pc := &domain.PlatformCampaign{
		ID:              id,
		CampaignID:      campaign.ID,
		CreativeID:      creative.ID,
		Platform:        p,
		Variant:         creative.Variant,
		BudgetAllocated: allocated,
		DailyBudget:     allocating.DailyBudget(allocated, days),
		Status:          domain.PlatformCampaignPendingCreation,
	}
	if err := s.platformCampaigns.Create(ctx, pc); err != nil {
		return nil, nil, fmt.Errorf("erro ao criar campanha de plataforma: %w", err)
	}

	logger := log.Entry(ctx).WithFields(logrus.Fields{
		"campaign_id":          campaign.ID,
		"platform_campaign_id": pc.ID,
		"platform":             p,
		"creative_id":          creative.ID,
	})

	var remoteErr error
	err = s.withPlatformCampaign(ctx, pc, func() error {
		remote, err := s.gateway.CreateCampaign(ctx, platform.CreateRequest{
			Campaign:    campaign,
			Targeting:   targeting,
			Creative:    creative,
			Platform:    p,
			Variant:     creative.Variant,
			DailyBudget: pc.DailyBudget,
		})
		if err != nil {
			remoteErr = err
			return nil
		}

		pc.AdAccountID = remote.AdAccountID
		pc.ExternalCampaignID = remote.ExternalCampaignID
		pc.ExternalAdSetID = remote.ExternalAdSetID
		pc.ExternalCreativeID = remote.ExternalCreativeID
		pc.ExternalAdID = remote.ExternalAdID
		if err := s.platformCampaigns.Update(ctx, pc); err != nil {
			return fmt.Errorf("erro ao gravar identificadores remotos: %w", err)
		}

		if err := s.gateway.Activate(ctx, pc); err != nil {
			remoteErr = err
			return nil
		}

		now := s.clock.Now()
		pc.Status = domain.PlatformCampaignActive
		pc.LaunchedAt = &now
		return s.platformCampaigns.Update(ctx, pc)
	})
	if err != nil {
		return nil, nil, err
	}

	if remoteErr != nil {
		logger.WithField("error", remoteErr).Warn("Falha ao lançar campanha na plataforma")

		pc.Status = domain.PlatformCampaignFailed
		pc.ErrorMessage = remoteErr.Error()
		if err := s.platformCampaigns.UpdateStatus(ctx, pc.ID, pc.Status, pc.ErrorMessage); err != nil {
			return nil, nil, fmt.Errorf("erro ao marcar campanha de plataforma como falha: %w", err)
		}

		return pc, &LaunchFailure{Platform: p, CreativeID: creative.ID, Error: remoteErr.Error()}, nil
	}

	logger.Info("Campanha ativa na plataforma")

	return pc, nil, nil
}

// creativeWeights reparte a alocação de cada plataforma entre os criativos. Com teste A/B, o grupo de
// variantes mantém o peso somado mas é dividido pelo percentual configurado.
func creativeWeights(campaign *domain.Campaign, creatives []*domain.Creative) map[string]float64 {
	weights := make(map[string]float64, len(creatives))
	counts := map[domain.Variant]int{}
	for _, cr := range creatives {
		weights[cr.ID] = 1
		counts[cr.Variant]++
	}

	ab := campaign.ABTest
	if !ab.Enabled || counts[domain.VariantA] == 0 || counts[domain.VariantB] == 0 {
		return weights
	}

	split := float64(ab.SplitPercent) / 100
	if split <= 0 || split >= 1 {
		split = 0.5
	}
	group := float64(counts[domain.VariantA] + counts[domain.VariantB])

	for _, cr := range creatives {
		switch cr.Variant {
		case domain.VariantA:
			weights[cr.ID] = split * group / float64(counts[domain.VariantA])
		case domain.VariantB:
			weights[cr.ID] = (1 - split) * group / float64(counts[domain.VariantB])
		}
	}

	return weights
}

// platformHistory soma os totais já sincronizados por plataforma, usados pela estratégia de performance
func platformHistory(pcs []*domain.PlatformCampaign) map[domain.Platform]domain.MetricTotals {
	history := make(map[domain.Platform]domain.MetricTotals)
	for _, pc := range pcs {
		history[pc.Platform] = history[pc.Platform].Add(pc.Totals)
	}
	return history
}

func allocationsToMap(allocations map[domain.Platform]float64) map[string]any {
	out := make(map[string]any, len(allocations))
	for p, amount := range allocations {
		out[string(p)] = amount
	}
	return out
}

func uniquePlatforms(platforms []domain.Platform) []domain.Platform {
	seen := make(map[domain.Platform]struct{}, len(platforms))
	unique := make([]domain.Platform, 0, len(platforms))
	for _, p := range platforms {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

// BuildTrackingURL acrescenta os parâmetros UTM da campanha à página de destino, preservando a query existente
func BuildTrackingURL(landingPage string, utm domain.UTMParams) string {
	if landingPage == "" {
		return ""
	}

	u, err := url.Parse(landingPage)
	if err != nil {
		return landingPage
	}

	query := u.Query()
	for key, value := range map[string]string{
		"utm_source":   utm.Source,
		"utm_medium":   utm.Medium,
		"utm_campaign": utm.Campaign,
		"utm_content":  utm.Content,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}
	u.RawQuery = query.Encode()

	return u.String()
}
