package campaigning

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func draftCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:                 "c1",
		TenantID:           "t1",
		TotalBudget:        1000,
		TargetPlatforms:    []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle},
		AllocationStrategy: domain.AllocationEqual,
		LandingPageURL:     "https://ingressos.exemplo.com/festival?ref=home",
		UTM:                domain.UTMParams{Source: "ads", Medium: "cpc", Campaign: "festival"},
		StartDate:          startDate,
		EndDate:            endDate,
		Status:             domain.CampaignStatusDraft,
	}
}

func approvedCreatives() []*domain.Creative {
	return []*domain.Creative{
		{ID: "cr1", Name: "Banner", ApprovalStatus: domain.ApprovalApproved},
		{ID: "cr2", Name: "Rascunho", ApprovalStatus: domain.ApprovalPending},
	}
}

func TestService_Launch_Preconditions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		code  string
	}{
		{
			name: "campanha já ativa",
			setup: func(f *fixture) {
				c := draftCampaign()
				c.Status = domain.CampaignStatusActive
				f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(c, nil)
			},
			code: apiErrors.ErrInvalidTransition,
		},
		{
			name: "sem criativos aprovados",
			setup: func(f *fixture) {
				f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(draftCampaign(), nil)
				f.creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return([]*domain.Creative{
					{ID: "cr2", ApprovalStatus: domain.ApprovalPending},
					{ID: "cr3", ApprovalStatus: domain.ApprovalRejected},
				}, nil)
			},
			code: apiErrors.ErrNoApprovedCreatives,
		},
		{
			name: "sem segmentação",
			setup: func(f *fixture) {
				f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(draftCampaign(), nil)
				f.creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(approvedCreatives(), nil)
				f.targetings.EXPECT().GetActiveByCampaign(gomock.Any(), "c1").Return(nil, nil)
			},
			code: apiErrors.ErrMissingTargeting,
		},
		{
			name: "estratégia desconhecida",
			setup: func(f *fixture) {
				c := draftCampaign()
				c.AllocationStrategy = "sorteio"
				f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(c, nil)
				f.creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(approvedCreatives(), nil)
				f.targetings.EXPECT().GetActiveByCampaign(gomock.Any(), "c1").Return(&domain.Targeting{ID: "tg1"}, nil)
				f.platformCampaigns.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(nil, nil)
			},
			code: apiErrors.ErrInvalidBudget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			result, err := f.service.Launch(context.Background(), "c1")

			assert.Nil(t, result)
			assertCode(t, err, tt.code)
			assert.Empty(t, f.notifier.types())
		})
	}
}

func TestService_Launch_PartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	campaign := draftCampaign()

	f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(campaign, nil)
	f.creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(approvedCreatives(), nil)
	f.targetings.EXPECT().GetActiveByCampaign(gomock.Any(), "c1").Return(&domain.Targeting{ID: "tg1"}, nil)
	f.platformCampaigns.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(nil, nil)
	statuses := f.recordStatuses(2)

	created := make([]*domain.PlatformCampaign, 0)
	f.platformCampaigns.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pc *domain.PlatformCampaign) error {
			assert.Equal(t, domain.PlatformCampaignPendingCreation, pc.Status)
			created = append(created, pc)
			return nil
		}).Times(2)

	f.gateway.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req platform.CreateRequest) (*domain.RemoteCampaign, error) {
			assert.Equal(t, "cr1", req.Creative.ID)
			// 500 em 10 dias restantes
			assert.Equal(t, 50.0, req.DailyBudget)
			if req.Platform == domain.PlatformGoogle {
				return nil, errors.New("quota excedida")
			}
			return &domain.RemoteCampaign{AdAccountID: "acc1", ExternalCampaignID: "fb-1", ExternalAdID: "fb-ad-1"}, nil
		}).Times(2)
	f.platformCampaigns.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.gateway.EXPECT().Activate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pc *domain.PlatformCampaign) error {
			assert.Equal(t, "fb-1", pc.ExternalCampaignID)
			return nil
		})
	f.platformCampaigns.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), domain.PlatformCampaignFailed, "quota excedida").Return(nil)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *domain.OptimizationLog) (bool, error) {
			assert.Equal(t, domain.OptimizationCampaignLaunched, l.Type)
			assert.NotEmpty(t, l.ID)
			return true, nil
		})

	result, err := f.service.Launch(ctx, "c1")

	require.NoError(t, err)
	assert.Equal(t, []domain.CampaignStatus{domain.CampaignStatusLaunching, domain.CampaignStatusActive}, *statuses)
	require.Len(t, result.PlatformCampaigns, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, domain.PlatformGoogle, result.Failures[0].Platform)

	facebook := created[0]
	assert.Equal(t, domain.PlatformCampaignActive, facebook.Status)
	assert.Equal(t, "acc1", facebook.AdAccountID)
	assert.NotNil(t, facebook.LaunchedAt)
	assert.Equal(t, 500.0, facebook.BudgetAllocated)
	assert.Equal(t, domain.PlatformCampaignFailed, created[1].Status)
	assert.Equal(t, 1000.0, created[0].BudgetAllocated+created[1].BudgetAllocated)

	assert.Equal(t, domain.CampaignStatusActive, campaign.Status)
	assert.Contains(t, campaign.StatusNote, "google/cr1: quota excedida")
	assert.Equal(t, 50.0, campaign.DailyBudget)
	require.NotNil(t, campaign.LaunchedAt)

	tracking, err := url.Parse(campaign.TrackingURL)
	require.NoError(t, err)
	assert.Equal(t, "festival", tracking.Query().Get("utm_campaign"))
	assert.Equal(t, "home", tracking.Query().Get("ref"))

	assert.Equal(t, []domain.NotificationType{domain.NotificationCampaignLaunched}, f.notifier.types())
}

func TestService_Launch_AllPlatformsFail(t *testing.T) {
	f := newFixture(t)
	campaign := draftCampaign()
	campaign.Status = domain.CampaignStatusFailed
	previous := &domain.PlatformCampaign{ID: "old", Platform: domain.PlatformFacebook, Status: domain.PlatformCampaignFailed, ErrorMessage: "token"}

	f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(campaign, nil)
	f.creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(approvedCreatives(), nil)
	f.targetings.EXPECT().GetActiveByCampaign(gomock.Any(), "c1").Return(&domain.Targeting{ID: "tg1"}, nil)
	f.platformCampaigns.EXPECT().ListByCampaign(gomock.Any(), "c1").Return([]*domain.PlatformCampaign{previous}, nil)
	f.platformCampaigns.EXPECT().UpdateStatus(gomock.Any(), "old", domain.PlatformCampaignDeleted, "token").Return(nil)
	statuses := f.recordStatuses(2)

	f.platformCampaigns.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.gateway.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return(nil, platform.ErrAccountInactive).Times(2)
	f.platformCampaigns.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), domain.PlatformCampaignFailed, gomock.Any()).Return(nil).Times(2)

	result, err := f.service.Launch(context.Background(), "c1")

	require.NoError(t, err)
	assert.Len(t, result.Failures, 2)
	assert.Equal(t, []domain.CampaignStatus{domain.CampaignStatusLaunching, domain.CampaignStatusFailed}, *statuses)
	assert.Contains(t, campaign.StatusNote, "facebook/cr1")
	assert.Contains(t, campaign.StatusNote, "google/cr1")
	assert.Empty(t, campaign.TrackingURL)
	assert.Equal(t, []domain.NotificationType{domain.NotificationCampaignFailed}, f.notifier.types())
}

func TestService_Launch_DatabaseErrorLeavesCampaignRelaunchable(t *testing.T) {
	f := newFixture(t)
	campaign := draftCampaign()

	f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(campaign, nil)
	f.creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(approvedCreatives(), nil)
	f.targetings.EXPECT().GetActiveByCampaign(gomock.Any(), "c1").Return(&domain.Targeting{ID: "tg1"}, nil)
	f.platformCampaigns.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(nil, nil)
	statuses := f.recordStatuses(2)
	f.platformCampaigns.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	result, err := f.service.Launch(context.Background(), "c1")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []domain.CampaignStatus{domain.CampaignStatusLaunching, domain.CampaignStatusFailed}, *statuses)
	assert.Equal(t, domain.CampaignStatusFailed, campaign.Status)
	assert.Contains(t, campaign.StatusNote, "db down")
	assert.True(t, campaign.Status.CanTransitionTo(domain.CampaignStatusLaunching))
	assert.Equal(t, []domain.NotificationType{domain.NotificationCampaignFailed}, f.notifier.types())
}

func TestCreativeWeights(t *testing.T) {
	creatives := []*domain.Creative{
		{ID: "a", Variant: domain.VariantA},
		{ID: "b", Variant: domain.VariantB},
		{ID: "n", Variant: domain.VariantNone},
	}

	t.Run("sem teste A/B", func(t *testing.T) {
		weights := creativeWeights(&domain.Campaign{}, creatives)
		assert.Equal(t, map[string]float64{"a": 1, "b": 1, "n": 1}, weights)
	})

	t.Run("divisão 70/30", func(t *testing.T) {
		campaign := &domain.Campaign{ABTest: domain.ABTestConfig{Enabled: true, SplitPercent: 70}}
		weights := creativeWeights(campaign, creatives)
		assert.InDelta(t, 1.4, weights["a"], 1e-9)
		assert.InDelta(t, 0.6, weights["b"], 1e-9)
		assert.Equal(t, 1.0, weights["n"])
	})

	t.Run("só uma variante aprovada", func(t *testing.T) {
		campaign := &domain.Campaign{ABTest: domain.ABTestConfig{Enabled: true, SplitPercent: 70}}
		weights := creativeWeights(campaign, creatives[:1])
		assert.Equal(t, map[string]float64{"a": 1}, weights)
	})
}

func TestBuildTrackingURL(t *testing.T) {
	tests := []struct {
		name     string
		landing  string
		utm      domain.UTMParams
		expected string
	}{
		{
			name:     "sem página de destino",
			landing:  "",
			utm:      domain.UTMParams{Campaign: "x"},
			expected: "",
		},
		{
			name:     "parâmetros completos",
			landing:  "https://site.com/evento",
			utm:      domain.UTMParams{Source: "meta", Medium: "cpc", Campaign: "verao", Content: "video"},
			expected: "https://site.com/evento?utm_campaign=verao&utm_content=video&utm_medium=cpc&utm_source=meta",
		},
		{
			name:     "preserva query existente e ignora vazios",
			landing:  "https://site.com/evento?lote=2",
			utm:      domain.UTMParams{Campaign: "verao"},
			expected: "https://site.com/evento?lote=2&utm_campaign=verao",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildTrackingURL(tt.landing, tt.utm))
		})
	}
}
