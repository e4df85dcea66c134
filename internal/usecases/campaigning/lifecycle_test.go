package campaigning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/insighting"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func activeCampaign() *domain.Campaign {
	c := draftCampaign()
	c.Status = domain.CampaignStatusActive
	return c
}

func materialized(id string, p domain.Platform, status domain.PlatformCampaignStatus) *domain.PlatformCampaign {
	return &domain.PlatformCampaign{
		ID:                 id,
		CampaignID:         "c1",
		Platform:           p,
		ExternalCampaignID: "ext-" + id,
		Status:             status,
	}
}

func TestService_Pause(t *testing.T) {
	f := newFixture(t)
	campaign := activeCampaign()
	pc1 := materialized("pc1", domain.PlatformFacebook, domain.PlatformCampaignActive)
	pc2 := materialized("pc2", domain.PlatformGoogle, domain.PlatformCampaignActive)

	f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(campaign, nil)
	f.platformCampaigns.EXPECT().ListByCampaign(gomock.Any(), "c1", domain.PlatformCampaignActive).
		Return([]*domain.PlatformCampaign{pc1, pc2}, nil)
	f.gateway.EXPECT().Pause(gomock.Any(), pc1).Return(nil)
	f.gateway.EXPECT().Pause(gomock.Any(), pc2).Return(errors.New("rate limit"))
	f.platformCampaigns.EXPECT().UpdateStatus(gomock.Any(), "pc1", domain.PlatformCampaignPaused, "").Return(nil)
	statuses := f.recordStatuses(1)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *domain.OptimizationLog) (bool, error) {
			assert.Equal(t, domain.OptimizationCampaignPaused, l.Type)
			assert.Equal(t, domain.SourceAuto, l.Source)
			assert.Equal(t, 1, l.AfterState["paused"])
			assert.Equal(t, 1, l.AfterState["failed"])
			return true, nil
		})

	paused, err := f.service.Pause(context.Background(), "c1", domain.SourceAuto)

	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusPaused, paused.Status)
	assert.Equal(t, []domain.CampaignStatus{domain.CampaignStatusPaused}, *statuses)
	assert.Equal(t, domain.PlatformCampaignPaused, pc1.Status)
	assert.Equal(t, domain.PlatformCampaignActive, pc2.Status)
	assert.Equal(t, []domain.NotificationType{domain.NotificationCampaignPaused}, f.notifier.types())
}

func TestService_Resume(t *testing.T) {
	t.Run("reativa as pausadas", func(t *testing.T) {
		f := newFixture(t)
		campaign := activeCampaign()
		campaign.Status = domain.CampaignStatusPaused
		pc1 := materialized("pc1", domain.PlatformFacebook, domain.PlatformCampaignPaused)

		f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(campaign, nil)
		f.platformCampaigns.EXPECT().ListByCampaign(gomock.Any(), "c1", domain.PlatformCampaignPaused).
			Return([]*domain.PlatformCampaign{pc1}, nil)
		f.creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(nil, nil)
		f.gateway.EXPECT().Activate(gomock.Any(), pc1).Return(nil)
		f.platformCampaigns.EXPECT().UpdateStatus(gomock.Any(), "pc1", domain.PlatformCampaignActive, "").Return(nil)
		f.recordStatuses(1)
		f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(true, nil)

		resumed, err := f.service.Resume(context.Background(), "c1", "")

		require.NoError(t, err)
		assert.Equal(t, domain.CampaignStatusActive, resumed.Status)
		assert.Equal(t, []domain.NotificationType{domain.NotificationCampaignResumed}, f.notifier.types())
	})

	t.Run("mantém pausadas a variante perdedora e os criativos podados", func(t *testing.T) {
		f := newFixture(t)
		campaign := activeCampaign()
		campaign.Status = domain.CampaignStatusPaused
		campaign.ABTest = domain.ABTestConfig{Enabled: true, Winner: domain.VariantA}

		winnerPC := materialized("pcA", domain.PlatformFacebook, domain.PlatformCampaignPaused)
		winnerPC.Variant, winnerPC.CreativeID = domain.VariantA, "crA"
		loserPC := materialized("pcB", domain.PlatformFacebook, domain.PlatformCampaignPaused)
		loserPC.Variant, loserPC.CreativeID = domain.VariantB, "crB"
		prunedPC := materialized("pcA2", domain.PlatformGoogle, domain.PlatformCampaignPaused)
		prunedPC.Variant, prunedPC.CreativeID = domain.VariantA, "crA2"

		f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(campaign, nil)
		f.platformCampaigns.EXPECT().ListByCampaign(gomock.Any(), "c1", domain.PlatformCampaignPaused).
			Return([]*domain.PlatformCampaign{winnerPC, loserPC, prunedPC}, nil)
		f.creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return([]*domain.Creative{
			{ID: "crA", Variant: domain.VariantA, Status: domain.CreativeStatusActive},
			{ID: "crB", Variant: domain.VariantB, Status: domain.CreativeStatusActive},
			{ID: "crA2", Variant: domain.VariantA, Status: domain.CreativeStatusPaused},
		}, nil)
		f.gateway.EXPECT().Activate(gomock.Any(), winnerPC).Return(nil)
		f.platformCampaigns.EXPECT().UpdateStatus(gomock.Any(), "pcA", domain.PlatformCampaignActive, "").Return(nil)
		f.recordStatuses(1)
		f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, l *domain.OptimizationLog) (bool, error) {
				assert.Equal(t, 1, l.AfterState["activated"])
				return true, nil
			})

		resumed, err := f.service.Resume(context.Background(), "c1", domain.SourceManual)

		require.NoError(t, err)
		assert.Equal(t, domain.CampaignStatusActive, resumed.Status)
		assert.Equal(t, domain.PlatformCampaignActive, winnerPC.Status)
		assert.Equal(t, domain.PlatformCampaignPaused, loserPC.Status)
		assert.Equal(t, domain.PlatformCampaignPaused, prunedPC.Status)
	})

	t.Run("só campanhas pausadas podem ser retomadas", func(t *testing.T) {
		f := newFixture(t)
		f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(activeCampaign(), nil)

		resumed, err := f.service.Resume(context.Background(), "c1", domain.SourceManual)

		assert.Nil(t, resumed)
		assertCode(t, err, apiErrors.ErrInvalidTransition)
	})
}

func TestService_Complete(t *testing.T) {
	f := newFixture(t)
	campaign := activeCampaign()
	active := materialized("pc1", domain.PlatformFacebook, domain.PlatformCampaignActive)
	paused := materialized("pc2", domain.PlatformGoogle, domain.PlatformCampaignPaused)

	f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(campaign, nil)
	f.platformCampaigns.EXPECT().
		ListByCampaign(gomock.Any(), "c1", domain.PlatformCampaignActive, domain.PlatformCampaignPaused).
		Return([]*domain.PlatformCampaign{active, paused}, nil)
	f.gateway.EXPECT().Pause(gomock.Any(), active).Return(errors.New("timeout"))
	f.platformCampaigns.EXPECT().UpdateStatus(gomock.Any(), "pc1", domain.PlatformCampaignEnded, "").Return(nil)
	f.platformCampaigns.EXPECT().UpdateStatus(gomock.Any(), "pc2", domain.PlatformCampaignEnded, "").Return(nil)
	f.syncer.EXPECT().SyncCampaign(gomock.Any(), campaign, insighting.SyncOptions{IncludeStopped: true}).
		DoAndReturn(func(_ context.Context, c *domain.Campaign, _ insighting.SyncOptions) (*insighting.SyncResult, error) {
			c.SpentBudget = 420
			return &insighting.SyncResult{CampaignID: c.ID}, nil
		})
	statuses := f.recordStatuses(1)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *domain.OptimizationLog) (bool, error) {
			assert.Equal(t, domain.OptimizationCampaignCompleted, l.Type)
			assert.Equal(t, 2, l.AfterState["ended"])
			assert.Equal(t, 1, l.AfterState["pause_failed"])
			assert.Equal(t, 420.0, l.AfterState["spent_budget"])
			return true, nil
		})

	completed, err := f.service.Complete(context.Background(), "c1", domain.SourceManual)

	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusCompleted, completed.Status)
	assert.Equal(t, []domain.CampaignStatus{domain.CampaignStatusCompleted}, *statuses)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, now, *completed.CompletedAt)
	assert.Equal(t, domain.PlatformCampaignEnded, active.Status)
	assert.Equal(t, []domain.NotificationType{domain.NotificationCampaignCompleted}, f.notifier.types())
}

func TestService_Complete_StuckInLaunching(t *testing.T) {
	f := newFixture(t)
	campaign := draftCampaign()
	campaign.Status = domain.CampaignStatusLaunching

	f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(campaign, nil)
	f.platformCampaigns.EXPECT().
		ListByCampaign(gomock.Any(), "c1", domain.PlatformCampaignActive, domain.PlatformCampaignPaused).
		Return(nil, nil)
	f.syncer.EXPECT().SyncCampaign(gomock.Any(), campaign, insighting.SyncOptions{IncludeStopped: true}).
		Return(&insighting.SyncResult{CampaignID: "c1"}, nil)
	statuses := f.recordStatuses(1)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(true, nil)

	completed, err := f.service.Complete(context.Background(), "c1", domain.SourceManual)

	require.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusCompleted, completed.Status)
	assert.Equal(t, []domain.CampaignStatus{domain.CampaignStatusCompleted}, *statuses)
}

func TestService_Complete_AlreadyCompleted(t *testing.T) {
	f := newFixture(t)
	campaign := activeCampaign()
	campaign.Status = domain.CampaignStatusCompleted
	f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(campaign, nil)

	completed, err := f.service.Complete(context.Background(), "c1", domain.SourceManual)

	assert.Nil(t, completed)
	assertCode(t, err, apiErrors.ErrInvalidTransition)
}
