package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/infrastructure/repository"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-engine/internal/usecases/insighting"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const defaultSyncWorkers = 5

// MetricsSyncConfig representa a configuração do agendador de sincronização de métricas
type MetricsSyncConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	Enabled           bool
}

// MetricsSyncCycle resume um ciclo de sincronização de métricas
type MetricsSyncCycle struct {
	Campaigns int                           `json:"campaigns"`
	Synced    int                           `json:"synced"`
	Rows      int                           `json:"rows"`
	Failures       []campaigning.CampaignFailure `json:"failures"`
	RetryScheduled []string                      `json:"retry_scheduled"`
}

// MetricsSyncService sincroniza periodicamente as métricas das campanhas em veiculação
type MetricsSyncService struct {
	scheduler *gocron.Scheduler
	config    MetricsSyncConfig
	campaigns repository.CampaignRepository
	syncer    insighting.Syncer
	retries   *retryQueue
	clock     utils.Clock
	state     cycleState
	lastCycle *MetricsSyncCycle
}

func NewMetricsSyncService(
	campaigns repository.CampaignRepository,
	syncer insighting.Syncer,
	appConfig *config.Config,
	clock utils.Clock,
) *MetricsSyncService {
	syncConfig := MetricsSyncConfig{
		CronSchedule:      appConfig.MetricsSync.CronSchedule,
		MaxConcurrentJobs: appConfig.MetricsSync.MaxConcurrentJobs,
		Enabled:           appConfig.MetricsSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs <= 0 {
		syncConfig.MaxConcurrentJobs = defaultSyncWorkers
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"enabled":             syncConfig.Enabled,
	}).Info("Configuração do agendador de sincronização de métricas carregada")

	s := &MetricsSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    syncConfig,
		campaigns: campaigns,
		syncer:    syncer,
		clock:     clock,
	}
	s.retries = newRetryQueue(JobMetricsSync, NewRetryPolicy(appConfig.JobRetry.Delays), oneOffJob(s.scheduler), s.syncByID)
	return s
}

// Start inicia o agendador
func (s *MetricsSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sincronização de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		_, _ = s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de métricas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce sincroniza todas as campanhas ativas, pausadas ou em otimização
func (s *MetricsSyncService) RunOnce(ctx context.Context) (*MetricsSyncCycle, error) {
	if !s.state.begin(s.clock.Now()) {
		logrus.Info("Sincronização de métricas já em andamento, ignorando")
		return nil, ErrJobAlreadyRunning
	}

	ctx, _ = log.WithCorrelationID(ctx)
	startTime := s.clock.Now()

	cycle, err := s.run(ctx)
	s.state.end(s.clock.Now(), err)
	if err != nil {
		log.Entry(ctx).WithField("error", err).Error("Erro no ciclo de sincronização de métricas")
		return nil, err
	}

	s.state.mu.Lock()
	s.lastCycle = cycle
	s.state.mu.Unlock()

	log.Entry(ctx).WithFields(logrus.Fields{
		"duration":  s.clock.Now().Sub(startTime).String(),
		"campaigns": cycle.Campaigns,
		"synced":    cycle.Synced,
		"rows":      cycle.Rows,
		"failed":    len(cycle.Failures),
		"retrying":  len(cycle.RetryScheduled),
	}).Info("Sincronização de métricas concluída")

	return cycle, nil
}

func (s *MetricsSyncService) run(ctx context.Context) (*MetricsSyncCycle, error) {
	campaigns, err := s.campaigns.ListByStatus(ctx,
		domain.CampaignStatusActive,
		domain.CampaignStatusPaused,
		domain.CampaignStatusOptimizing,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas para sincronização: %w", err)
	}

	cycle := &MetricsSyncCycle{Campaigns: len(campaigns)}
	if len(campaigns) == 0 {
		log.Entry(ctx).Info("Nenhuma campanha encontrada para sincronização de métricas")
		return cycle, nil
	}

	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(s.config.MaxConcurrentJobs)

	for _, campaign := range campaigns {
		g.Go(func() error {
			result, err := s.syncer.SyncCampaign(ctx, campaign, insighting.SyncOptions{})

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				log.Entry(ctx).WithFields(logrus.Fields{
					"campaign_id": campaign.ID,
					"error":       err,
				}).Error("Erro ao sincronizar métricas da campanha")
				cycle.Failures = append(cycle.Failures, campaigning.CampaignFailure{CampaignID: campaign.ID, Error: err.Error()})
				return nil
			}

			cycle.Synced++
			if result != nil {
				cycle.Rows += result.Rows
			}
			return nil
		})
	}

	_ = g.Wait()

	failed := make([]string, 0, len(cycle.Failures))
	for _, failure := range cycle.Failures {
		failed = append(failed, failure.CampaignID)
	}

	cycle.RetryScheduled = s.retries.Enqueue(ctx, failed)

	return cycle, nil
}

// syncByID relê a campanha antes da nova tentativa, que pode ter sido concluída nesse meio tempo
func (s *MetricsSyncService) syncByID(ctx context.Context, id string) error {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("erro ao buscar campanha %s: %w", id, err)
	}
	if campaign == nil || campaign.Status.IsTerminal() {
		return nil
	}

	_, err = s.syncer.SyncCampaign(ctx, campaign, insighting.SyncOptions{})
	return err
}

// TriggerManualSync inicia manualmente uma sincronização de métricas em segundo plano
func (s *MetricsSyncService) TriggerManualSync(ctx context.Context) error {
	if s.state.isRunning() {
		logrus.Info("Sincronização de métricas já em andamento, ignorando solicitação manual")
		return ErrJobAlreadyRunning
	}

	logrus.Info("Iniciando sincronização manual de métricas")
	go func() {
		_, _ = s.RunOnce(context.WithoutCancel(ctx))
	}()
	return nil
}

// GetStatus retorna o status atual do agendador
func (s *MetricsSyncService) GetStatus() map[string]any {
	status := s.state.status()

	s.state.mu.Lock()
	lastCycle := s.lastCycle
	s.state.mu.Unlock()

	return mergeStatus(mergeStatus(status, s.retries.status()), map[string]any{
		"enabled":             s.config.Enabled,
		"cron":                s.config.CronSchedule,
		"max_concurrent_jobs": s.config.MaxConcurrentJobs,
		"last_cycle":          lastCycle,
	})
}
