package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/internal/usecases/campaigning"
	campaigningmocks "github.com/vfg2006/campaign-engine/internal/usecases/campaigning/mocks"
	"github.com/vfg2006/campaign-engine/pkg/utils"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

var cycleStart = time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		CampaignOptimization: config.CampaignOptimization{CronSchedule: "0 */4 * * *", MaxConcurrentJobs: 3, Enabled: true},
		MetricsSync:          config.MetricsSync{CronSchedule: "30 * * * *", MaxConcurrentJobs: 2, Enabled: true},
		ConversionRetry:      config.ConversionRetry{CronSchedule: "*/10 * * * *", Enabled: true},
	}
}

func TestCampaignOptimizationService_RunOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := gomock.NewController(t)
	manager := campaigningmocks.NewMockCampaignManager(ctrl)

	service := NewCampaignOptimizationService(manager, testConfig(), utils.FixedClock{At: cycleStart})
	sched := &manualSchedule{}
	service.retries.schedule = sched.schedule

	manager.EXPECT().OptimizeActiveCampaigns(gomock.Any(), 3).Return(&campaigning.BatchResult{
		Processed: 3,
		Succeeded: 1,
		Failures: []campaigning.CampaignFailure{
			{CampaignID: "c1", Error: "timeout"},
			{CampaignID: "c2", Error: "timeout"},
		},
	}, nil)

	cycle, err := service.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, cycle.RetryScheduled)
	assert.Equal(t, []time.Duration{time.Minute, time.Minute}, sched.delays)

	// o ciclo termina sem esperar as novas tentativas e o próximo pode começar
	status := service.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Equal(t, cycle, status["last_cycle"])
	assert.Equal(t, []string{"c1", "c2"}, status["retry_pending"])

	manager.EXPECT().OptimizeActiveCampaigns(gomock.Any(), 3).Return(&campaigning.BatchResult{Processed: 1, Succeeded: 1}, nil)
	next, err := service.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Empty(t, next.RetryScheduled)

	manager.EXPECT().OptimizeCampaignByID(gomock.Any(), "c1").Return(&campaigning.OptimizationResult{CampaignID: "c1"}, nil)
	manager.EXPECT().OptimizeCampaignByID(gomock.Any(), "c2").Return(nil, errors.New("timeout")).Times(3)

	sched.runAll()

	status = service.GetStatus()
	assert.Equal(t, []string{}, status["retry_pending"])
	assert.Equal(t, 1, status["retry_recovered"])
	assert.Equal(t, 1, status["retry_gave_up"])
	assert.Equal(t, "", status["last_error"])
}

func TestCampaignOptimizationService_RunOnce_BatchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := campaigningmocks.NewMockCampaignManager(ctrl)
	service := NewCampaignOptimizationService(manager, testConfig(), utils.FixedClock{At: cycleStart})

	manager.EXPECT().OptimizeActiveCampaigns(gomock.Any(), 3).Return(nil, errors.New("banco indisponível"))

	cycle, err := service.RunOnce(context.Background())

	assert.Nil(t, cycle)
	assert.EqualError(t, err, "banco indisponível")
	assert.Equal(t, "banco indisponível", service.GetStatus()["last_error"])
}

func TestCampaignOptimizationService_AlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewCampaignOptimizationService(campaigningmocks.NewMockCampaignManager(ctrl), testConfig(), utils.FixedClock{At: cycleStart})
	service.state.running = true

	_, err := service.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrJobAlreadyRunning)
	assert.ErrorIs(t, service.TriggerManualSync(context.Background()), ErrJobAlreadyRunning)
}

func TestCampaignOptimizationService_TriggerManualSync(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := gomock.NewController(t)
	manager := campaigningmocks.NewMockCampaignManager(ctrl)
	service := NewCampaignOptimizationService(manager, testConfig(), utils.FixedClock{At: cycleStart})

	done := make(chan struct{})
	manager.EXPECT().OptimizeActiveCampaigns(gomock.Any(), 3).
		DoAndReturn(func(context.Context, int) (*campaigning.BatchResult, error) {
			close(done)
			return &campaigning.BatchResult{}, nil
		})

	require.NoError(t, service.TriggerManualSync(context.Background()))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ciclo manual não executou")
	}
	assert.Eventually(t, func() bool { return service.GetStatus()["last_cycle"] != (*CampaignOptimizationCycle)(nil) }, time.Second, 10*time.Millisecond)
}

func TestCampaignOptimizationService_StartDisabled(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig()
	cfg.CampaignOptimization.Enabled = false
	service := NewCampaignOptimizationService(nil, cfg, utils.SystemClock())

	require.NoError(t, service.Start(context.Background()))
	assert.False(t, service.scheduler.IsRunning())
}
