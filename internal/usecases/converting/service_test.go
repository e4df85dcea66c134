package converting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	platformmocks "github.com/vfg2006/campaign-engine/infrastructure/integrator/platform/mocks"
	readmodelmocks "github.com/vfg2006/campaign-engine/infrastructure/readmodel/mocks"
	repomocks "github.com/vfg2006/campaign-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/utils"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

const maxRetriesReason = "Número máximo de tentativas (5) atingido"

type fixture struct {
	conversions *repomocks.MockConversionRepository
	accounts    *readmodelmocks.MockAdAccountReader
	gateway     *platformmocks.MockGateway
	service     *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		conversions: repomocks.NewMockConversionRepository(ctrl),
		accounts:    readmodelmocks.NewMockAdAccountReader(ctrl),
		gateway:     platformmocks.NewMockGateway(ctrl),
	}
	f.service = NewService(f.conversions, f.accounts, f.gateway, utils.FixedClock{At: now}, Options{})
	return f
}

func conversion(id, account string, retries int) *domain.Conversion {
	return &domain.Conversion{
		ID:          id,
		AdAccountID: account,
		Platform:    domain.PlatformFacebook,
		EventName:   "Purchase",
		OrderID:     "order-" + id,
		Value:       150,
		Status:      domain.ConversionFailed,
		RetryCount:  retries,
	}
}

func account(id string, status domain.AdAccountStatus, expiresAt *time.Time) *domain.AdAccount {
	return &domain.AdAccount{ID: id, Platform: domain.PlatformFacebook, Status: status, TokenExpiresAt: expiresAt}
}

func TestService_RetryFailed(t *testing.T) {
	expired := now.Add(-time.Hour)
	valid := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		setup    func(f *fixture)
		expected domain.ConversionRetryResult
	}{
		{
			name: "reenvio com sucesso",
			setup: func(f *fixture) {
				conv := conversion("cv1", "acc1", 2)
				acc := account("acc1", domain.AdAccountStatusActive, &valid)
				f.conversions.EXPECT().ListRetryable(gomock.Any(), 5, now.Add(-5*time.Minute), uint64(100)).
					Return([]*domain.Conversion{conv}, nil)
				f.accounts.EXPECT().GetAdAccountByID(gomock.Any(), "acc1").Return(acc, nil)
				f.gateway.EXPECT().SendConversion(gomock.Any(), acc, conv).Return(`{"events_received":1}`, nil)
				f.conversions.EXPECT().MarkSent(gomock.Any(), "cv1", `{"events_received":1}`, now).Return(true, nil)
				f.conversions.EXPECT().AbandonExhausted(gomock.Any(), 5, maxRetriesReason).Return(int64(0), nil)
			},
			expected: domain.ConversionRetryResult{Processed: 1, Sent: 1},
		},
		{
			name: "falha na plataforma mantém a conversão para nova tentativa",
			setup: func(f *fixture) {
				conv := conversion("cv1", "acc1", 4)
				acc := account("acc1", domain.AdAccountStatusActive, nil)
				f.conversions.EXPECT().ListRetryable(gomock.Any(), 5, gomock.Any(), uint64(100)).
					Return([]*domain.Conversion{conv}, nil)
				f.accounts.EXPECT().GetAdAccountByID(gomock.Any(), "acc1").Return(acc, nil)
				f.gateway.EXPECT().SendConversion(gomock.Any(), acc, conv).Return("", errors.New("HTTP 500"))
				f.conversions.EXPECT().MarkFailed(gomock.Any(), "cv1", "HTTP 500").Return(nil)
				// a quinta falha é abandonada na varredura final
				f.conversions.EXPECT().AbandonExhausted(gomock.Any(), 5, maxRetriesReason).Return(int64(1), nil)
			},
			expected: domain.ConversionRetryResult{Processed: 1, Failed: 1, Exhausted: 1},
		},
		{
			name: "conta inativa e token vencido são abandonados sem envio",
			setup: func(f *fixture) {
				f.conversions.EXPECT().ListRetryable(gomock.Any(), 5, gomock.Any(), uint64(100)).
					Return([]*domain.Conversion{
						conversion("cv1", "acc1", 0),
						conversion("cv2", "acc2", 1),
						conversion("cv3", "acc1", 3),
						conversion("cv4", "acc3", 0),
					}, nil)
				f.accounts.EXPECT().GetAdAccountByID(gomock.Any(), "acc1").
					Return(account("acc1", domain.AdAccountStatusInactive, nil), nil)
				f.accounts.EXPECT().GetAdAccountByID(gomock.Any(), "acc2").
					Return(account("acc2", domain.AdAccountStatusActive, &expired), nil)
				f.accounts.EXPECT().GetAdAccountByID(gomock.Any(), "acc3").Return(nil, nil)
				f.conversions.EXPECT().MarkAbandoned(gomock.Any(), "cv1", "conta de anúncios inativa").Return(nil)
				f.conversions.EXPECT().MarkAbandoned(gomock.Any(), "cv2", "token de acesso expirado").Return(nil)
				f.conversions.EXPECT().MarkAbandoned(gomock.Any(), "cv3", "conta de anúncios inativa").Return(nil)
				f.conversions.EXPECT().MarkAbandoned(gomock.Any(), "cv4", "conta de anúncios não encontrada").Return(nil)
				f.conversions.EXPECT().AbandonExhausted(gomock.Any(), 5, maxRetriesReason).Return(int64(0), nil)
			},
			expected: domain.ConversionRetryResult{Processed: 4, Abandoned: 4},
		},
		{
			name: "conversão já enviada por outra execução não é contada",
			setup: func(f *fixture) {
				conv := conversion("cv1", "acc1", 1)
				acc := account("acc1", domain.AdAccountStatusActive, nil)
				f.conversions.EXPECT().ListRetryable(gomock.Any(), 5, gomock.Any(), uint64(100)).
					Return([]*domain.Conversion{conv}, nil)
				f.accounts.EXPECT().GetAdAccountByID(gomock.Any(), "acc1").Return(acc, nil)
				f.gateway.EXPECT().SendConversion(gomock.Any(), acc, conv).Return("ok", nil)
				f.conversions.EXPECT().MarkSent(gomock.Any(), "cv1", "ok", now).Return(false, nil)
				f.conversions.EXPECT().AbandonExhausted(gomock.Any(), 5, maxRetriesReason).Return(int64(0), nil)
			},
			expected: domain.ConversionRetryResult{Processed: 1},
		},
		{
			name: "nada para reenviar",
			setup: func(f *fixture) {
				f.conversions.EXPECT().ListRetryable(gomock.Any(), 5, gomock.Any(), uint64(100)).Return(nil, nil)
				f.conversions.EXPECT().AbandonExhausted(gomock.Any(), 5, maxRetriesReason).Return(int64(2), nil)
			},
			expected: domain.ConversionRetryResult{Exhausted: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			result, err := f.service.RetryFailed(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.expected, *result)
		})
	}
}

func TestService_RetryFailed_Errors(t *testing.T) {
	t.Run("erro ao listar", func(t *testing.T) {
		f := newFixture(t)
		f.conversions.EXPECT().ListRetryable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("conexão perdida"))

		result, err := f.service.RetryFailed(context.Background())

		assert.Nil(t, result)
		assert.EqualError(t, err, "conexão perdida")
	})

	t.Run("erro ao consultar a conta interrompe o lote", func(t *testing.T) {
		f := newFixture(t)
		f.conversions.EXPECT().ListRetryable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]*domain.Conversion{conversion("cv1", "acc1", 0)}, nil)
		f.accounts.EXPECT().GetAdAccountByID(gomock.Any(), "acc1").Return(nil, errors.New("timeout"))

		result, err := f.service.RetryFailed(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrReadAccount)
		assert.Equal(t, 1, result.Processed)
	})
}

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{MaxRetries: 3}.withDefaults()

	assert.Equal(t, 3, opts.MaxRetries)
	assert.Equal(t, DefaultRetryDelay, opts.RetryDelay)
	assert.Equal(t, uint64(DefaultBatchSize), opts.BatchSize)
}
