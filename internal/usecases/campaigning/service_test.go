package campaigning

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	platformmocks "github.com/vfg2006/campaign-engine/infrastructure/integrator/platform/mocks"
	"github.com/vfg2006/campaign-engine/infrastructure/lock"
	repomocks "github.com/vfg2006/campaign-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-engine/internal/domain"
	insightingmocks "github.com/vfg2006/campaign-engine/internal/usecases/insighting/mocks"
	optimizingmocks "github.com/vfg2006/campaign-engine/internal/usecases/optimizing/mocks"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"github.com/vfg2006/campaign-engine/pkg/utils"
	"go.uber.org/mock/gomock"
)

var (
	now       = time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	startDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	endDate   = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *recordingNotifier) types() []domain.NotificationType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.NotificationType, 0, len(n.sent))
	for _, sent := range n.sent {
		out = append(out, sent.Type)
	}
	return out
}

type fixture struct {
	campaigns         *repomocks.MockCampaignRepository
	platformCampaigns *repomocks.MockPlatformCampaignRepository
	creatives         *repomocks.MockCreativeRepository
	targetings        *repomocks.MockTargetingRepository
	metrics           *repomocks.MockMetricRepository
	logs              *repomocks.MockOptimizationLogRepository
	serviceRequests   *repomocks.MockServiceRequestRepository
	gateway           *platformmocks.MockGateway
	syncer            *insightingmocks.MockSyncer
	planner           *optimizingmocks.MockPlanner
	notifier          *recordingNotifier
	service           *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		campaigns:         repomocks.NewMockCampaignRepository(ctrl),
		platformCampaigns: repomocks.NewMockPlatformCampaignRepository(ctrl),
		creatives:         repomocks.NewMockCreativeRepository(ctrl),
		targetings:        repomocks.NewMockTargetingRepository(ctrl),
		metrics:           repomocks.NewMockMetricRepository(ctrl),
		logs:              repomocks.NewMockOptimizationLogRepository(ctrl),
		serviceRequests:   repomocks.NewMockServiceRequestRepository(ctrl),
		gateway:           platformmocks.NewMockGateway(ctrl),
		syncer:            insightingmocks.NewMockSyncer(ctrl),
		planner:           optimizingmocks.NewMockPlanner(ctrl),
		notifier:          &recordingNotifier{},
	}
	f.service = NewService(
		Repositories{
			Campaigns:         f.campaigns,
			PlatformCampaigns: f.platformCampaigns,
			Creatives:         f.creatives,
			Targetings:        f.targetings,
			Metrics:           f.metrics,
			OptimizationLogs:  f.logs,
			ServiceRequests:   f.serviceRequests,
		},
		f.gateway, f.syncer, f.planner, f.notifier, lock.NewLocalLocker(), utils.FixedClock{At: now},
	)
	return f
}

// recordStatuses captura a sequência de status gravados para a campanha
func (f *fixture) recordStatuses(times int) *[]domain.CampaignStatus {
	statuses := make([]domain.CampaignStatus, 0, times)
	f.campaigns.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *domain.Campaign) error {
			statuses = append(statuses, c.Status)
			return nil
		}).Times(times)
	return &statuses
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var campaignErr *CampaignError
	require.ErrorAs(t, err, &campaignErr)
	assert.Equal(t, code, campaignErr.Code)
}

func validRequest() *domain.CreateCampaignRequest {
	serviceRequestID := "sr1"
	return &domain.CreateCampaignRequest{
		TenantID:         "t1",
		EventID:          "ev1",
		ServiceRequestID: &serviceRequestID,
		Name:             "  Festival de Verão ",
		TotalBudget:      1000,
		TargetPlatforms:  []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle},
		LandingPageURL:   "https://ingressos.exemplo.com/festival",
		StartDate:        startDate,
		EndDate:          time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		Creatives: []domain.CreativeInput{
			{Name: "Banner", Headline: "Garanta já"},
			{Name: "Vídeo", Type: domain.CreativeTypeVideo, ApprovalStatus: domain.ApprovalApproved},
		},
	}
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *domain.CreateCampaignRequest)
		code   string
	}{
		{
			name:   "sem nome",
			mutate: func(req *domain.CreateCampaignRequest) { req.Name = " " },
			code:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "sem plataformas",
			mutate: func(req *domain.CreateCampaignRequest) { req.TargetPlatforms = nil },
			code:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "plataforma desconhecida",
			mutate: func(req *domain.CreateCampaignRequest) { req.TargetPlatforms = []domain.Platform{"orkut"} },
			code:   apiErrors.ErrUnsupportedPlatform,
		},
		{
			name:   "orçamento zerado",
			mutate: func(req *domain.CreateCampaignRequest) { req.TotalBudget = 0 },
			code:   apiErrors.ErrInvalidBudget,
		},
		{
			name: "alocação manual negativa",
			mutate: func(req *domain.CreateCampaignRequest) {
				req.ManualAllocations = map[domain.Platform]float64{domain.PlatformGoogle: -1}
			},
			code: apiErrors.ErrInvalidBudget,
		},
		{
			name:   "data final antes da inicial",
			mutate: func(req *domain.CreateCampaignRequest) { req.EndDate = startDate.AddDate(0, 0, -1) },
			code:   apiErrors.ErrInvalidDateRange,
		},
		{
			name: "métrica do teste A/B inválida",
			mutate: func(req *domain.CreateCampaignRequest) {
				req.ABTest = domain.ABTestConfig{Enabled: true, WinnerMetric: "likes"}
			},
			code: apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(req)

			campaign, err := f.service.Create(context.Background(), req)

			assert.Nil(t, campaign)
			assertCode(t, err, tt.code)
		})
	}
}

func TestService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var saved *domain.Campaign
	f.campaigns.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *domain.Campaign) error {
			saved = c
			return nil
		})
	f.targetings.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tg *domain.Targeting) error {
			assert.Equal(t, saved.ID, tg.CampaignID)
			assert.Equal(t, 18, tg.AgeMin)
			assert.True(t, tg.Active)
			return nil
		})
	f.creatives.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, creatives []*domain.Creative) error {
			require.Len(t, creatives, 2)
			assert.Equal(t, domain.ApprovalPending, creatives[0].ApprovalStatus)
			assert.Equal(t, domain.CreativeTypeImage, creatives[0].Type)
			assert.Equal(t, domain.ApprovalApproved, creatives[1].ApprovalStatus)
			assert.Equal(t, domain.CreativeStatusDraft, creatives[1].Status)
			return nil
		})
	f.serviceRequests.EXPECT().UpdateStatus(gomock.Any(), "sr1", domain.ServiceRequestInProgress).Return(nil)

	campaign, err := f.service.Create(ctx, validRequest())

	require.NoError(t, err)
	assert.Same(t, saved, campaign)
	assert.Equal(t, domain.CampaignStatusDraft, campaign.Status)
	assert.Equal(t, "Festival de Verão", campaign.Name)
	assert.Equal(t, domain.ObjectiveConversions, campaign.Objective)
	assert.Equal(t, domain.AllocationEqual, campaign.AllocationStrategy)
	assert.Equal(t, "BRL", campaign.Currency)
	assert.Equal(t, campaign.ID, campaign.UTM.Campaign)
	assert.Equal(t, 100.0, campaign.DailyBudget)
}

func TestService_Create_ServiceRequestFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)

	f.campaigns.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.targetings.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	f.creatives.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)
	f.serviceRequests.EXPECT().UpdateStatus(gomock.Any(), "sr1", domain.ServiceRequestInProgress).Return(errors.New("timeout"))

	campaign, err := f.service.Create(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotNil(t, campaign)
}

func TestService_Duplicate(t *testing.T) {
	f := newFixture(t)
	launchedAt := now.Add(-48 * time.Hour)
	source := &domain.Campaign{
		ID:              "c1",
		TenantID:        "t1",
		Name:            "Festival",
		TotalBudget:     1000,
		TargetPlatforms: []domain.Platform{domain.PlatformFacebook},
		ABTest:          domain.ABTestConfig{Enabled: true, WinnerMetric: "ctr", Winner: domain.VariantA, WinnerDate: &launchedAt},
		UTM:             domain.UTMParams{Campaign: "c1", Source: "meta"},
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          domain.CampaignStatusCompleted,
		SpentBudget:     990,
		LaunchedAt:      &launchedAt,
		TrackingURL:     "https://x?utm_campaign=c1",
	}

	f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(source, nil)
	f.targetings.EXPECT().GetActiveByCampaign(gomock.Any(), "c1").Return(&domain.Targeting{ID: "tg1", CampaignID: "c1", AgeMin: 25, AgeMax: 40}, nil)
	f.creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return([]*domain.Creative{
		{ID: "cr1", Name: "A", Variant: domain.VariantA, ApprovalStatus: domain.ApprovalApproved, Status: domain.CreativeStatusActive, Impressions: 5000, IsWinner: true},
	}, nil)

	var saved *domain.Campaign
	f.campaigns.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Campaign) error {
		saved = c
		return nil
	})
	f.targetings.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tg *domain.Targeting) error {
		assert.NotEqual(t, "tg1", tg.ID)
		assert.Equal(t, saved.ID, tg.CampaignID)
		assert.Equal(t, 25, tg.AgeMin)
		return nil
	})
	f.creatives.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, creatives []*domain.Creative) error {
		require.Len(t, creatives, 1)
		assert.NotEqual(t, "cr1", creatives[0].ID)
		assert.Equal(t, domain.ApprovalApproved, creatives[0].ApprovalStatus)
		assert.Equal(t, domain.CreativeStatusDraft, creatives[0].Status)
		assert.Zero(t, creatives[0].Impressions)
		assert.False(t, creatives[0].IsWinner)
		return nil
	})

	campaign, err := f.service.Duplicate(context.Background(), "c1")

	require.NoError(t, err)
	assert.NotEqual(t, "c1", campaign.ID)
	assert.Equal(t, "Festival (cópia)", campaign.Name)
	assert.Equal(t, domain.CampaignStatusDraft, campaign.Status)
	assert.Zero(t, campaign.SpentBudget)
	assert.Nil(t, campaign.LaunchedAt)
	assert.Empty(t, campaign.TrackingURL)
	assert.False(t, campaign.ABTest.IsResolved())
	assert.True(t, campaign.ABTest.Enabled)
	assert.Equal(t, campaign.ID, campaign.UTM.Campaign)
	assert.Equal(t, "meta", campaign.UTM.Source)
}

func TestService_Get_NotFound(t *testing.T) {
	f := newFixture(t)
	f.campaigns.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, nil)

	details, err := f.service.Get(context.Background(), "nope")

	assert.Nil(t, details)
	assertCode(t, err, apiErrors.ErrCampaignNotFound)
	assert.True(t, errors.Is(err, ErrCampaignNotFound))
	assert.True(t, IsValidationError(err))
}

func TestService_ListMetrics_InvalidRange(t *testing.T) {
	f := newFixture(t)
	start := endDate
	end := startDate

	metrics, err := f.service.ListMetrics(context.Background(), "c1", domain.MetricFilters{StartDate: &start, EndDate: &end})

	assert.Nil(t, metrics)
	assertCode(t, err, apiErrors.ErrInvalidDateRange)
}

func TestService_ListOptimizationLogs_Limit(t *testing.T) {
	tests := []struct {
		name     string
		limit    uint64
		expected uint64
	}{
		{name: "padrão", limit: 0, expected: 50},
		{name: "dentro do limite", limit: 10, expected: 10},
		{name: "acima do máximo", limit: 10000, expected: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.campaigns.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Campaign{ID: "c1"}, nil)
			f.logs.EXPECT().ListByCampaign(gomock.Any(), "c1", tt.expected).Return([]*domain.OptimizationLog{}, nil)

			logs, err := f.service.ListOptimizationLogs(context.Background(), "c1", tt.limit)

			require.NoError(t, err)
			assert.NotNil(t, logs)
		})
	}
}
