package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/converting"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

// ConversionRetryConfig representa a configuração do agendador de reenvio de conversões
type ConversionRetryConfig struct {
	CronSchedule string
	Enabled      bool
}

// ConversionRetryService reenvia periodicamente as conversões que falharam
type ConversionRetryService struct {
	scheduler  *gocron.Scheduler
	config     ConversionRetryConfig
	retrier    converting.ConversionRetrier
	clock      utils.Clock
	state      cycleState
	lastResult *domain.ConversionRetryResult
}

func NewConversionRetryService(retrier converting.ConversionRetrier, appConfig *config.Config, clock utils.Clock) *ConversionRetryService {
	retryConfig := ConversionRetryConfig{
		CronSchedule: appConfig.ConversionRetry.CronSchedule,
		Enabled:      appConfig.ConversionRetry.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": retryConfig.CronSchedule,
		"enabled":       retryConfig.Enabled,
		"batch_size":    appConfig.ConversionRetry.BatchSize,
		"max_retries":   appConfig.ConversionRetry.MaxRetries,
	}).Info("Configuração do agendador de reenvio de conversões carregada")

	return &ConversionRetryService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    retryConfig,
		retrier:   retrier,
		clock:     clock,
	}
}

// Start inicia o agendador
func (s *ConversionRetryService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Reenvio de conversões desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de reenvio de conversões")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		_, _ = s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reenvio de conversões: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de reenvio de conversões")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ConversionRetryService) RunOnce(ctx context.Context) (*domain.ConversionRetryResult, error) {
	if !s.state.begin(s.clock.Now()) {
		logrus.Info("Reenvio de conversões já em andamento, ignorando")
		return nil, ErrJobAlreadyRunning
	}

	ctx, _ = log.WithCorrelationID(ctx)

	result, err := s.retrier.RetryFailed(ctx)
	s.state.end(s.clock.Now(), err)
	if err != nil {
		log.Entry(ctx).WithField("error", err).Error("Erro no reenvio de conversões")
		return nil, err
	}

	s.state.mu.Lock()
	s.lastResult = result
	s.state.mu.Unlock()

	return result, nil
}

// TriggerManualSync inicia manualmente um reenvio de conversões em segundo plano
func (s *ConversionRetryService) TriggerManualSync(ctx context.Context) error {
	if s.state.isRunning() {
		logrus.Info("Reenvio de conversões já em andamento, ignorando solicitação manual")
		return ErrJobAlreadyRunning
	}

	go func() {
		_, _ = s.RunOnce(context.WithoutCancel(ctx))
	}()
	return nil
}

// GetStatus retorna o status atual do agendador
func (s *ConversionRetryService) GetStatus() map[string]any {
	status := s.state.status()

	s.state.mu.Lock()
	lastResult := s.lastResult
	s.state.mu.Unlock()

	return mergeStatus(status, map[string]any{
		"enabled":     s.config.Enabled,
		"cron":        s.config.CronSchedule,
		"last_result": lastResult,
	})
}
