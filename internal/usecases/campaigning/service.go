// Package campaigning é o gerenciador do ciclo de vida das campanhas: criação, lançamento nas plataformas,
// pausa, retomada, conclusão e a aplicação dos planos de otimização.
package campaigning

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/infrastructure/lock"
	"github.com/vfg2006/campaign-engine/infrastructure/notification"
	"github.com/vfg2006/campaign-engine/infrastructure/repository"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/allocating"
	"github.com/vfg2006/campaign-engine/internal/usecases/insighting"
	"github.com/vfg2006/campaign-engine/internal/usecases/optimizing"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

const (
	defaultCurrency     = "BRL"
	defaultUTMMedium    = "cpc"
	defaultSplitPercent = 50

	defaultLogLimit = 50
	maxLogLimit     = 500
)

// CampaignManager é a porta de entrada do ciclo de vida das campanhas
//
//go:generate mockgen -source=service.go -destination=mocks/campaigning_mock.go -package=mocks
type CampaignManager interface {
	Create(ctx context.Context, req *domain.CreateCampaignRequest) (*domain.Campaign, error)
	Duplicate(ctx context.Context, id string) (*domain.Campaign, error)
	Get(ctx context.Context, id string) (*CampaignDetails, error)
	Launch(ctx context.Context, id string) (*LaunchResult, error)
	Pause(ctx context.Context, id string, source domain.OptimizationSource) (*domain.Campaign, error)
	Resume(ctx context.Context, id string, source domain.OptimizationSource) (*domain.Campaign, error)
	Complete(ctx context.Context, id string, source domain.OptimizationSource) (*domain.Campaign, error)
	SyncMetrics(ctx context.Context, id string) (*insighting.SyncResult, error)
	OptimizeCampaign(ctx context.Context, campaign *domain.Campaign) (*OptimizationResult, error)
	OptimizeCampaignByID(ctx context.Context, id string) (*OptimizationResult, error)
	OptimizeActiveCampaigns(ctx context.Context, workers int) (*BatchResult, error)
	ListMetrics(ctx context.Context, id string, filters domain.MetricFilters) ([]*domain.Metric, error)
	ListOptimizationLogs(ctx context.Context, id string, limit uint64) ([]*domain.OptimizationLog, error)
}

// CampaignDetails é a campanha com tudo que foi materializado para ela
type CampaignDetails struct {
	Campaign          *domain.Campaign           `json:"campaign"`
	PlatformCampaigns []*domain.PlatformCampaign `json:"platform_campaigns"`
	Creatives         []*domain.Creative         `json:"creatives"`
	Targeting         *domain.Targeting          `json:"targeting"`
}

type Service struct {
	campaigns         repository.CampaignRepository
	platformCampaigns repository.PlatformCampaignRepository
	creatives         repository.CreativeRepository
	targetings        repository.TargetingRepository
	metrics           repository.MetricRepository
	optimizationLogs  repository.OptimizationLogRepository
	serviceRequests   repository.ServiceRequestRepository
	gateway           platform.Gateway
	syncer            insighting.Syncer
	planner           optimizing.Planner
	notifier          notification.Notifier
	locker            lock.Locker
	clock             utils.Clock
}

// Repositories agrupa as portas de armazenamento usadas pelo ciclo de vida
type Repositories struct {
	Campaigns         repository.CampaignRepository
	PlatformCampaigns repository.PlatformCampaignRepository
	Creatives         repository.CreativeRepository
	Targetings        repository.TargetingRepository
	Metrics           repository.MetricRepository
	OptimizationLogs  repository.OptimizationLogRepository
	ServiceRequests   repository.ServiceRequestRepository
}

func NewService(
	repos Repositories,
	gateway platform.Gateway,
	syncer insighting.Syncer,
	planner optimizing.Planner,
	notifier notification.Notifier,
	locker lock.Locker,
	clock utils.Clock,
) *Service {
	return &Service{
		campaigns:         repos.Campaigns,
		platformCampaigns: repos.PlatformCampaigns,
		creatives:         repos.Creatives,
		targetings:        repos.Targetings,
		metrics:           repos.Metrics,
		optimizationLogs:  repos.OptimizationLogs,
		serviceRequests:   repos.ServiceRequests,
		gateway:           gateway,
		syncer:            syncer,
		planner:           planner,
		notifier:          notifier,
		locker:            locker,
		clock:             clock,
	}
}

// Create grava a campanha em rascunho com a segmentação padrão e os criativos enviados
func (s *Service) Create(ctx context.Context, req *domain.CreateCampaignRequest) (*domain.Campaign, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	campaignID, err := utils.GenerateID()
	if err != nil {
		return nil, NewCampaignError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador da campanha")
	}

	campaign := newCampaignFromRequest(campaignID, req)

	targeting := domain.DefaultTargeting(campaignID, req.Audience)
	if targeting.ID, err = utils.GenerateID(); err != nil {
		return nil, NewCampaignError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador da segmentação")
	}

	creatives := make([]*domain.Creative, 0, len(req.Creatives))
	for _, input := range req.Creatives {
		creative, err := newCreative(campaignID, input)
		if err != nil {
			return nil, err
		}
		creatives = append(creatives, creative)
	}

	if err := s.persistNew(ctx, campaign, targeting, creatives); err != nil {
		return nil, err
	}

	if req.ServiceRequestID != nil && *req.ServiceRequestID != "" {
		if err := s.serviceRequests.UpdateStatus(ctx, *req.ServiceRequestID, domain.ServiceRequestInProgress); err != nil {
			log.Entry(ctx).WithFields(logrus.Fields{
				"campaign_id":        campaignID,
				"service_request_id": *req.ServiceRequestID,
				"error":              err,
			}).Error("Erro ao marcar solicitação de serviço como em andamento")
		}
	}

	log.Entry(ctx).WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"tenant_id":   campaign.TenantID,
		"platforms":   campaign.TargetPlatforms,
		"creatives":   len(creatives),
	}).Info("Campanha criada")

	return campaign, nil
}

// Duplicate copia a configuração, a segmentação e os criativos de uma campanha para um novo rascunho
func (s *Service) Duplicate(ctx context.Context, id string) (*domain.Campaign, error) {
	source, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	targeting, err := s.targetings.GetActiveByCampaign(ctx, id)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar segmentação")
	}

	sourceCreatives, err := s.creatives.ListByCampaign(ctx, id)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao listar criativos")
	}

	campaignID, err := utils.GenerateID()
	if err != nil {
		return nil, NewCampaignError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador da campanha")
	}

	campaign := duplicateCampaign(campaignID, source)

	var newTargeting *domain.Targeting
	if targeting != nil {
		copied := *targeting
		copied.CampaignID = campaignID
		copied.Active = true
		if copied.ID, err = utils.GenerateID(); err != nil {
			return nil, NewCampaignError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador da segmentação")
		}
		newTargeting = &copied
	}

	creatives := make([]*domain.Creative, 0, len(sourceCreatives))
	for _, cr := range sourceCreatives {
		creative, err := newCreative(campaignID, domain.CreativeInput{
			Name:           cr.Name,
			Type:           cr.Type,
			Headline:       cr.Headline,
			Body:           cr.Body,
			MediaURL:       cr.MediaURL,
			CallToAction:   cr.CallToAction,
			Variant:        cr.Variant,
			ApprovalStatus: cr.ApprovalStatus,
		})
		if err != nil {
			return nil, err
		}
		creatives = append(creatives, creative)
	}

	if err := s.persistNew(ctx, campaign, newTargeting, creatives); err != nil {
		return nil, err
	}

	log.Entry(ctx).WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"source_id":   id,
	}).Info("Campanha duplicada")

	return campaign, nil
}

func (s *Service) persistNew(ctx context.Context, campaign *domain.Campaign, targeting *domain.Targeting, creatives []*domain.Creative) error {
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		log.Entry(ctx).WithField("error", err).Error("Erro ao criar campanha")
		return NewCampaignError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar campanha")
	}

	if targeting != nil {
		if err := s.targetings.Save(ctx, targeting); err != nil {
			log.Entry(ctx).WithField("error", err).Error("Erro ao salvar segmentação")
			return NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, campaign.ID, "Falha ao salvar segmentação")
		}
	}

	if len(creatives) > 0 {
		if err := s.creatives.CreateBatch(ctx, creatives); err != nil {
			log.Entry(ctx).WithField("error", err).Error("Erro ao salvar criativos")
			return NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, campaign.ID, "Falha ao salvar criativos")
		}
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*CampaignDetails, error) {
	campaign, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	pcs, err := s.platformCampaigns.ListByCampaign(ctx, id)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao listar campanhas de plataforma")
	}

	creatives, err := s.creatives.ListByCampaign(ctx, id)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao listar criativos")
	}

	targeting, err := s.targetings.GetActiveByCampaign(ctx, id)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar segmentação")
	}

	return &CampaignDetails{
		Campaign:          campaign,
		PlatformCampaigns: pcs,
		Creatives:         creatives,
		Targeting:         targeting,
	}, nil
}

// SyncMetrics força a sincronização de métricas fora do agendamento
func (s *Service) SyncMetrics(ctx context.Context, id string) (*insighting.SyncResult, error) {
	campaign, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.syncer.SyncCampaign(ctx, campaign, insighting.SyncOptions{})
	if err != nil {
		return nil, NewCampaignErrorWithID(err, apiErrors.ErrExternalService, id, "Falha ao sincronizar métricas")
	}

	return result, nil
}

func (s *Service) ListMetrics(ctx context.Context, id string, filters domain.MetricFilters) ([]*domain.Metric, error) {
	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, NewCampaignErrorWithID(ErrInvalidDateRange, apiErrors.ErrInvalidDateRange, id, "Data final anterior à data inicial")
	}

	if _, err := s.getCampaign(ctx, id); err != nil {
		return nil, err
	}

	metrics, err := s.metrics.List(ctx, id, filters)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao listar métricas")
	}

	return metrics, nil
}

func (s *Service) ListOptimizationLogs(ctx context.Context, id string, limit uint64) ([]*domain.OptimizationLog, error) {
	if _, err := s.getCampaign(ctx, id); err != nil {
		return nil, err
	}

	if limit == 0 {
		limit = defaultLogLimit
	}
	limit = min(limit, maxLogLimit)

	logs, err := s.optimizationLogs.ListByCampaign(ctx, id, limit)
	if err != nil {
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao listar registros de otimização")
	}

	return logs, nil
}

func (s *Service) getCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewCampaignError(ErrCampaignIDRequired, apiErrors.ErrMissingRequiredData, "ID da campanha é obrigatório")
	}

	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		log.Entry(ctx).WithFields(logrus.Fields{
			"campaign_id": id,
			"error":       err,
		}).Error("Erro ao buscar campanha")
		return nil, NewCampaignErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar campanha")
	}
	if campaign == nil {
		return nil, NewCampaignErrorWithID(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, id, "")
	}

	return campaign, nil
}

// transition muda o status da campanha em memória e no banco, respeitando a máquina de estados
func (s *Service) transition(ctx context.Context, campaign *domain.Campaign, next domain.CampaignStatus) error {
	if !campaign.Status.CanTransitionTo(next) {
		return NewCampaignErrorWithID(ErrInvalidTransition, apiErrors.ErrInvalidTransition, campaign.ID,
			fmt.Sprintf("%s -> %s", campaign.Status, next))
	}

	previous := campaign.Status
	campaign.Status = next
	if err := s.campaigns.UpdateStatus(ctx, campaign); err != nil {
		campaign.Status = previous
		return fmt.Errorf("erro ao atualizar status da campanha %s: %w", campaign.ID, err)
	}

	log.Entry(ctx).WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"from":        previous,
		"to":          next,
	}).Info("Status da campanha alterado")

	return nil
}

func (s *Service) withPlatformCampaign(ctx context.Context, pc *domain.PlatformCampaign, fn func() error) error {
	return lock.WithLock(ctx, s.locker, lock.PlatformCampaignKey(pc.ID), fn)
}

// writeLog grava um registro de auditoria. Registros com chave de deduplicação já existente são ignorados.
func (s *Service) writeLog(ctx context.Context, entry *domain.OptimizationLog) (bool, error) {
	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return false, ErrGenerateID
		}
		entry.ID = id
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.clock.Now()
	}

	created, err := s.optimizationLogs.Create(ctx, entry)
	if err != nil {
		return false, fmt.Errorf("erro ao gravar registro de otimização %s: %w", entry.Type, err)
	}

	return created, nil
}

func (s *Service) notify(ctx context.Context, campaign *domain.Campaign, kind domain.NotificationType, message string, payload map[string]any) {
	s.notifier.Notify(ctx, domain.Notification{
		Type:       kind,
		TenantID:   campaign.TenantID,
		CampaignID: campaign.ID,
		Message:    message,
		Payload:    payload,
		OccurredAt: s.clock.Now(),
	})
}

func validateCreateRequest(req *domain.CreateCampaignRequest) error {
	if req == nil {
		return NewCampaignError(ErrInvalidCampaign, apiErrors.ErrInvalidRequest, "Requisição vazia")
	}

	missing := make([]string, 0)
	if strings.TrimSpace(req.TenantID) == "" {
		missing = append(missing, "tenant_id")
	}
	if strings.TrimSpace(req.EventID) == "" {
		missing = append(missing, "event_id")
	}
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if len(req.TargetPlatforms) == 0 {
		missing = append(missing, "target_platforms")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		missing = append(missing, "start_date/end_date")
	}
	if len(missing) > 0 {
		return NewCampaignError(ErrInvalidCampaign, apiErrors.ErrMissingRequiredData, "Campos obrigatórios: "+strings.Join(missing, ", "))
	}

	for _, p := range req.TargetPlatforms {
		if !p.IsValid() {
			return NewCampaignError(ErrInvalidCampaign, apiErrors.ErrUnsupportedPlatform, string(p))
		}
	}

	if req.TotalBudget <= 0 {
		return NewCampaignError(ErrInvalidAllocation, apiErrors.ErrInvalidBudget, "Orçamento total deve ser positivo")
	}
	for p, amount := range req.ManualAllocations {
		if amount < 0 || !p.IsValid() {
			return NewCampaignError(ErrInvalidAllocation, apiErrors.ErrInvalidBudget, "Alocação manual inválida para "+string(p))
		}
	}

	if req.EndDate.Before(req.StartDate) {
		return NewCampaignError(ErrInvalidDateRange, apiErrors.ErrInvalidDateRange, "Data final anterior à data inicial")
	}

	if req.Objective != "" && !req.Objective.IsValid() {
		return NewCampaignError(ErrInvalidCampaign, apiErrors.ErrInvalidFormat, "Objetivo inválido: "+string(req.Objective))
	}
	if req.AllocationStrategy != "" && !req.AllocationStrategy.IsValid() {
		return NewCampaignError(ErrInvalidCampaign, apiErrors.ErrInvalidFormat, "Estratégia de alocação inválida: "+string(req.AllocationStrategy))
	}

	ab := req.ABTest
	if ab.Enabled {
		if ab.SplitPercent < 0 || ab.SplitPercent >= 100 {
			return NewCampaignError(ErrInvalidCampaign, apiErrors.ErrInvalidFormat, "Divisão do teste A/B deve ficar entre 1 e 99")
		}
		if ab.WinnerMetric != "" && !optimizing.IsWinnerMetric(ab.WinnerMetric) {
			return NewCampaignError(ErrInvalidCampaign, apiErrors.ErrInvalidFormat, "Métrica do teste A/B inválida: "+ab.WinnerMetric)
		}
	}

	return nil
}

func newCampaignFromRequest(id string, req *domain.CreateCampaignRequest) *domain.Campaign {
	campaign := &domain.Campaign{
		ID:                 id,
		TenantID:           req.TenantID,
		EventID:            req.EventID,
		ServiceRequestID:   req.ServiceRequestID,
		Name:               strings.TrimSpace(req.Name),
		Objective:          req.Objective,
		TotalBudget:        utils.RoundWithTwoDecimalPlace(req.TotalBudget),
		Currency:           req.Currency,
		TargetPlatforms:    req.TargetPlatforms,
		AllocationStrategy: req.AllocationStrategy,
		ManualAllocations:  req.ManualAllocations,
		AutoOptimize:       req.AutoOptimize,
		OptimizationRules:  req.OptimizationRules,
		ABTest:             req.ABTest,
		Retargeting:        req.Retargeting,
		UTM:                req.UTM,
		LandingPageURL:     strings.TrimSpace(req.LandingPageURL),
		StartDate:          domain.TruncateDay(req.StartDate),
		EndDate:            domain.TruncateDay(req.EndDate),
		Status:             domain.CampaignStatusDraft,
	}

	if campaign.Objective == "" {
		campaign.Objective = domain.ObjectiveConversions
	}
	if campaign.AllocationStrategy == "" {
		campaign.AllocationStrategy = domain.AllocationEqual
	}
	if campaign.Currency == "" {
		campaign.Currency = defaultCurrency
	}
	if campaign.UTM.Campaign == "" {
		campaign.UTM.Campaign = id
	}
	if campaign.UTM.Medium == "" {
		campaign.UTM.Medium = defaultUTMMedium
	}
	if campaign.ABTest.Enabled && campaign.ABTest.SplitPercent == 0 {
		campaign.ABTest.SplitPercent = defaultSplitPercent
	}
	campaign.ABTest.Winner = domain.VariantNone
	campaign.ABTest.WinnerDate = nil
	campaign.ABTest.AppliedAt = nil

	campaign.DailyBudget = allocating.DailyBudget(campaign.TotalBudget, campaign.TotalDays())

	return campaign
}

func duplicateCampaign(id string, source *domain.Campaign) *domain.Campaign {
	campaign := &domain.Campaign{
		ID:                 id,
		TenantID:           source.TenantID,
		EventID:            source.EventID,
		Name:               source.Name + " (cópia)",
		Objective:          source.Objective,
		TotalBudget:        source.TotalBudget,
		Currency:           source.Currency,
		TargetPlatforms:    append([]domain.Platform(nil), source.TargetPlatforms...),
		AllocationStrategy: source.AllocationStrategy,
		AutoOptimize:       source.AutoOptimize,
		OptimizationRules:  source.OptimizationRules,
		ABTest: domain.ABTestConfig{
			Enabled:      source.ABTest.Enabled,
			Variable:     source.ABTest.Variable,
			SplitPercent: source.ABTest.SplitPercent,
			WinnerMetric: source.ABTest.WinnerMetric,
		},
		Retargeting: domain.RetargetingConfig{
			Enabled:      source.Retargeting.Enabled,
			AudienceIDs:  append([]string(nil), source.Retargeting.AudienceIDs...),
			LookbackDays: source.Retargeting.LookbackDays,
		},
		UTM:            source.UTM,
		LandingPageURL: source.LandingPageURL,
		StartDate:      source.StartDate,
		EndDate:        source.EndDate,
		Status:         domain.CampaignStatusDraft,
	}

	if len(source.ManualAllocations) > 0 {
		campaign.ManualAllocations = make(map[domain.Platform]float64, len(source.ManualAllocations))
		for p, amount := range source.ManualAllocations {
			campaign.ManualAllocations[p] = amount
		}
	}

	// a UTM padrão aponta para a campanha de origem e quebraria a reconciliação
	if campaign.UTM.Campaign == source.ID {
		campaign.UTM.Campaign = id
	}

	campaign.DailyBudget = allocating.DailyBudget(campaign.TotalBudget, campaign.TotalDays())

	return campaign
}

func newCreative(campaignID string, input domain.CreativeInput) (*domain.Creative, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewCampaignError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador do criativo")
	}

	creative := &domain.Creative{
		ID:             id,
		CampaignID:     campaignID,
		Name:           input.Name,
		Type:           input.Type,
		Headline:       input.Headline,
		Body:           input.Body,
		MediaURL:       input.MediaURL,
		CallToAction:   input.CallToAction,
		Variant:        input.Variant,
		ApprovalStatus: input.ApprovalStatus,
		Status:         domain.CreativeStatusDraft,
	}

	if creative.Type == "" {
		creative.Type = domain.CreativeTypeImage
	}
	if creative.ApprovalStatus == "" {
		creative.ApprovalStatus = domain.ApprovalPending
	}

	return creative, nil
}

// IsValidationError informa se o erro é de validação e não deve ser repetido pelo agendador
func IsValidationError(err error) bool {
	var campaignErr *CampaignError
	if !errors.As(err, &campaignErr) {
		return false
	}
	return strings.HasPrefix(campaignErr.Code, "VAL_") || campaignErr.Code == apiErrors.ErrCampaignNotFound
}
