package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/internal/domain"
	convertingmocks "github.com/vfg2006/campaign-engine/internal/usecases/converting/mocks"
	"github.com/vfg2006/campaign-engine/pkg/utils"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestConversionRetryService_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	retrier := convertingmocks.NewMockConversionRetrier(ctrl)
	service := NewConversionRetryService(retrier, testConfig(), utils.FixedClock{At: cycleStart})

	expected := &domain.ConversionRetryResult{Processed: 3, Sent: 2, Failed: 1}
	retrier.EXPECT().RetryFailed(gomock.Any()).Return(expected, nil)

	result, err := service.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, result)

	status := service.GetStatus()
	assert.Equal(t, expected, status["last_result"])
	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, cycleStart, status["last_sync_completed_at"])
}

func TestConversionRetryService_RunOnce_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	retrier := convertingmocks.NewMockConversionRetrier(ctrl)
	service := NewConversionRetryService(retrier, testConfig(), utils.FixedClock{At: cycleStart})

	retrier.EXPECT().RetryFailed(gomock.Any()).Return(nil, errors.New("conexão recusada"))

	result, err := service.RunOnce(context.Background())

	assert.Nil(t, result)
	assert.EqualError(t, err, "conexão recusada")
	assert.Equal(t, "conexão recusada", service.GetStatus()["last_error"])
}

func TestConversionRetryService_TriggerManualSync(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := gomock.NewController(t)
	retrier := convertingmocks.NewMockConversionRetrier(ctrl)
	service := NewConversionRetryService(retrier, testConfig(), utils.FixedClock{At: cycleStart})

	done := make(chan struct{})
	retrier.EXPECT().RetryFailed(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*domain.ConversionRetryResult, error) {
			defer close(done)
			return &domain.ConversionRetryResult{}, nil
		})

	require.NoError(t, service.TriggerManualSync(context.Background()))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reenvio manual não executou")
	}
	assert.Eventually(t, func() bool { return !service.state.isRunning() }, time.Second, 10*time.Millisecond)
}
