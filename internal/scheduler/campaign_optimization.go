package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

// CampaignOptimizationConfig representa a configuração do agendador de otimização de campanhas
type CampaignOptimizationConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	Enabled           bool
}

// CampaignOptimizationCycle resume um ciclo de otimização e as campanhas que ficaram com nova tentativa agendada
type CampaignOptimizationCycle struct {
	Batch          *campaigning.BatchResult `json:"batch"`
	RetryScheduled []string                 `json:"retry_scheduled"`
}

// CampaignOptimizationService agenda a passada de otimização das campanhas ativas
type CampaignOptimizationService struct {
	scheduler *gocron.Scheduler
	config    CampaignOptimizationConfig
	campaigns campaigning.CampaignManager
	retries   *retryQueue
	clock     utils.Clock
	state     cycleState
	lastCycle *CampaignOptimizationCycle
}

func NewCampaignOptimizationService(
	campaigns campaigning.CampaignManager,
	appConfig *config.Config,
	clock utils.Clock,
) *CampaignOptimizationService {
	optimizationConfig := CampaignOptimizationConfig{
		CronSchedule:      appConfig.CampaignOptimization.CronSchedule,
		MaxConcurrentJobs: appConfig.CampaignOptimization.MaxConcurrentJobs,
		Enabled:           appConfig.CampaignOptimization.Enabled,
	}
	retry := NewRetryPolicy(appConfig.JobRetry.Delays)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       optimizationConfig.CronSchedule,
		"max_concurrent_jobs": optimizationConfig.MaxConcurrentJobs,
		"enabled":             optimizationConfig.Enabled,
		"retry_delays":        retry.Delays,
	}).Info("Configuração do agendador de otimização de campanhas carregada")

	s := &CampaignOptimizationService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    optimizationConfig,
		campaigns: campaigns,
		clock:     clock,
	}
	s.retries = newRetryQueue(JobCampaignOptimization, retry, oneOffJob(s.scheduler), func(ctx context.Context, id string) error {
		_, err := s.campaigns.OptimizeCampaignByID(ctx, id)
		return err
	})
	return s
}

// Start inicia o agendador
func (s *CampaignOptimizationService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Otimização automática de campanhas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de otimização de campanhas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		_, _ = s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar otimização de campanhas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de otimização de campanhas")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce executa um ciclo completo. Campanhas que falharam ganham novas tentativas agendadas à parte,
// conforme a política, sem segurar o ciclo.
func (s *CampaignOptimizationService) RunOnce(ctx context.Context) (*CampaignOptimizationCycle, error) {
	if !s.state.begin(s.clock.Now()) {
		logrus.Info("Otimização de campanhas já em andamento, ignorando")
		return nil, ErrJobAlreadyRunning
	}

	ctx, _ = log.WithCorrelationID(ctx)
	logger := log.Entry(ctx)
	startTime := s.clock.Now()

	cycle, err := s.run(ctx)
	s.state.end(s.clock.Now(), err)
	if err != nil {
		logger.WithField("error", err).Error("Erro no ciclo de otimização de campanhas")
		return nil, err
	}

	s.state.mu.Lock()
	s.lastCycle = cycle
	s.state.mu.Unlock()

	logger.WithFields(logrus.Fields{
		"duration":  s.clock.Now().Sub(startTime).String(),
		"processed": cycle.Batch.Processed,
		"succeeded": cycle.Batch.Succeeded,
		"completed": cycle.Batch.Completed,
		"retrying":  len(cycle.RetryScheduled),
	}).Info("Ciclo de otimização de campanhas concluído")

	return cycle, nil
}

func (s *CampaignOptimizationService) run(ctx context.Context) (*CampaignOptimizationCycle, error) {
	batch, err := s.campaigns.OptimizeActiveCampaigns(ctx, s.config.MaxConcurrentJobs)
	if err != nil {
		return nil, err
	}

	failed := make([]string, 0, len(batch.Failures))
	for _, failure := range batch.Failures {
		failed = append(failed, failure.CampaignID)
	}

	return &CampaignOptimizationCycle{
		Batch:          batch,
		RetryScheduled: s.retries.Enqueue(ctx, failed),
	}, nil
}

// TriggerManualSync inicia manualmente um ciclo de otimização em segundo plano
func (s *CampaignOptimizationService) TriggerManualSync(ctx context.Context) error {
	if s.state.isRunning() {
		logrus.Info("Otimização de campanhas já em andamento, ignorando solicitação manual")
		return ErrJobAlreadyRunning
	}

	logrus.Info("Iniciando otimização manual de campanhas")
	go func() {
		_, _ = s.RunOnce(context.WithoutCancel(ctx))
	}()
	return nil
}

// GetStatus retorna o status atual do agendador
func (s *CampaignOptimizationService) GetStatus() map[string]any {
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
