package platform_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform/mocks"
	readmodelmocks "github.com/vfg2006/campaign-engine/infrastructure/readmodel/mocks"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/utils"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestGateway_CreateCampaign(t *testing.T) {
	expired := now.Add(-time.Hour)

	tests := []struct {
		name     string
		platform domain.Platform
		setup    func(accounts *readmodelmocks.MockAdAccountReader, adapter *mocks.MockAdapter)
		validate func(t *testing.T, remote *domain.RemoteCampaign, err error)
	}{
		{
			name:     "cria na conta ativa e devolve o id da conta",
			platform: domain.PlatformInstagram,
			setup: func(accounts *readmodelmocks.MockAdAccountReader, adapter *mocks.MockAdapter) {
				account := &domain.AdAccount{ID: "acc1", Status: domain.AdAccountStatusActive}
				accounts.EXPECT().GetAdAccountForPlatform(gomock.Any(), "tenant1", domain.PlatformInstagram).Return(account, nil)
				adapter.EXPECT().CreateCampaign(gomock.Any(), account, gomock.Any()).
					Return(&domain.RemoteCampaign{ExternalCampaignID: "ext1"}, nil)
			},
			validate: func(t *testing.T, remote *domain.RemoteCampaign, err error) {
				require.NoError(t, err)
				assert.Equal(t, "ext1", remote.ExternalCampaignID)
				assert.Equal(t, "acc1", remote.AdAccountID)
			},
		},
		{
			name:     "sem conta cadastrada",
			platform: domain.PlatformGoogle,
			setup: func(accounts *readmodelmocks.MockAdAccountReader, adapter *mocks.MockAdapter) {
				accounts.EXPECT().GetAdAccountForPlatform(gomock.Any(), "tenant1", domain.PlatformGoogle).Return(nil, nil)
			},
			validate: func(t *testing.T, remote *domain.RemoteCampaign, err error) {
				assert.ErrorIs(t, err, platform.ErrAccountNotFound)
				assert.Nil(t, remote)
			},
		},
		{
			name:     "token expirado não chama a rede",
			platform: domain.PlatformGoogle,
			setup: func(accounts *readmodelmocks.MockAdAccountReader, adapter *mocks.MockAdapter) {
				accounts.EXPECT().GetAdAccountForPlatform(gomock.Any(), "tenant1", domain.PlatformGoogle).
					Return(&domain.AdAccount{ID: "acc1", Status: domain.AdAccountStatusActive, TokenExpiresAt: &expired}, nil)
			},
			validate: func(t *testing.T, remote *domain.RemoteCampaign, err error) {
				assert.ErrorIs(t, err, platform.ErrTokenExpired)
			},
		},
		{
			name:     "plataforma sem adaptador",
			platform: domain.PlatformLinkedIn,
			setup:    func(accounts *readmodelmocks.MockAdAccountReader, adapter *mocks.MockAdapter) {},
			validate: func(t *testing.T, remote *domain.RemoteCampaign, err error) {
				assert.ErrorIs(t, err, platform.ErrUnsupportedPlatform)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			accounts := readmodelmocks.NewMockAdAccountReader(ctrl)
			adapter := mocks.NewMockAdapter(ctrl)
			tt.setup(accounts, adapter)

			registry := platform.NewRegistry().
				Register(adapter, domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformGoogle)
			gw := platform.NewGateway(registry, accounts, utils.FixedClock{At: now})

			remote, err := gw.CreateCampaign(context.Background(), platform.CreateRequest{
				Campaign: &domain.Campaign{TenantID: "tenant1"},
				Platform: tt.platform,
			})
			tt.validate(t, remote, err)
		})
	}
}

func TestGateway_PauseResolvesAccountByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := readmodelmocks.NewMockAdAccountReader(ctrl)
	adapter := mocks.NewMockAdapter(ctrl)
	gw := platform.NewGateway(platform.NewRegistry().Register(adapter, domain.PlatformTikTok), accounts, utils.FixedClock{At: now})

	pc := &domain.PlatformCampaign{ID: "pc1", Platform: domain.PlatformTikTok, AdAccountID: "acc9", ExternalCampaignID: "ext"}
	account := &domain.AdAccount{ID: "acc9", Status: domain.AdAccountStatusActive}

	accounts.EXPECT().GetAdAccountByID(gomock.Any(), "acc9").Return(account, nil)
	adapter.EXPECT().Pause(gomock.Any(), account, pc).Return(errors.New("timeout"))

	err := gw.Pause(context.Background(), pc)
	assert.EqualError(t, err, "timeout")

	inactive := &domain.AdAccount{ID: "acc9", Status: domain.AdAccountStatusInactive}
	accounts.EXPECT().GetAdAccountByID(gomock.Any(), "acc9").Return(inactive, nil)
	assert.ErrorIs(t, gw.Pause(context.Background(), pc), platform.ErrAccountInactive)

	assert.ErrorIs(t, gw.Pause(context.Background(), &domain.PlatformCampaign{Platform: domain.PlatformTikTok}), platform.ErrNotMaterialized)
}

func TestRegistry_Platforms(t *testing.T) {
	ctrl := gomock.NewController(t)
	adapter := mocks.NewMockAdapter(ctrl)

	registry := platform.NewRegistry().Register(adapter, domain.PlatformGoogle, domain.PlatformFacebook)

	assert.Equal(t, []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle}, registry.Platforms())
}
