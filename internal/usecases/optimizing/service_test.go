package optimizing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/campaign-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/utils"
	"go.uber.org/mock/gomock"
)

func TestOptimizer_Optimize(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(pcs *repomocks.MockPlatformCampaignRepository, creatives *repomocks.MockCreativeRepository, metrics *repomocks.MockMetricRepository)
		validate func(t *testing.T, plan *Plan, err error)
	}{
		{
			name: "carrega o snapshot e planeja",
			setup: func(pcs *repomocks.MockPlatformCampaignRepository, creatives *repomocks.MockCreativeRepository, metrics *repomocks.MockMetricRepository) {
				pcs.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(nil, nil)
				creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return([]*domain.Creative{
					{ID: "cr1", Status: domain.CreativeStatusActive, Impressions: 2000, Clicks: 40},
					{ID: "cr2", Status: domain.CreativeStatusActive, Impressions: 2000, Clicks: 4},
				}, nil)
				metrics.EXPECT().List(gomock.Any(), "c1", domain.MetricFilters{}).Return(twoDaysOfHistory(), nil)
			},
			validate: func(t *testing.T, plan *Plan, err error) {
				require.NoError(t, err)
				require.Len(t, plan.CreativePauses, 1)
				assert.Equal(t, "cr2", plan.CreativePauses[0].Creative.ID)
			},
		},
		{
			name: "erro ao listar métricas",
			setup: func(pcs *repomocks.MockPlatformCampaignRepository, creatives *repomocks.MockCreativeRepository, metrics *repomocks.MockMetricRepository) {
				pcs.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(nil, nil)
				creatives.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(nil, nil)
				metrics.EXPECT().List(gomock.Any(), "c1", domain.MetricFilters{}).Return(nil, errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, plan *Plan, err error) {
				assert.Error(t, err)
				assert.Nil(t, plan)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			pcs := repomocks.NewMockPlatformCampaignRepository(ctrl)
			creatives := repomocks.NewMockCreativeRepository(ctrl)
			metrics := repomocks.NewMockMetricRepository(ctrl)
			tt.setup(pcs, creatives, metrics)

			optimizer := NewOptimizer(pcs, creatives, metrics, utils.FixedClock{At: now})
			plan, err := optimizer.Optimize(context.Background(), baseCampaign())
			tt.validate(t, plan, err)
		})
	}
}

func TestOptimizer_EvaluateABTest(t *testing.T) {
	ctrl := gomock.NewController(t)
	pcs := repomocks.NewMockPlatformCampaignRepository(ctrl)
	creatives := repomocks.NewMockCreativeRepository(ctrl)
	metrics := repomocks.NewMockMetricRepository(ctrl)
	optimizer := NewOptimizer(pcs, creatives, metrics, utils.FixedClock{At: now})

	disabled := baseCampaign()
	decision, err := optimizer.EvaluateABTest(context.Background(), disabled)
	require.NoError(t, err)
	assert.Nil(t, decision)

	snapshot := abSnapshot("ctr",
		domain.MetricTotals{Impressions: 2000, Clicks: 60},
		domain.MetricTotals{Impressions: 2000, Clicks: 20},
	)
	pcs.EXPECT().ListByCampaign(gomock.Any(), "c1").Return(snapshot.PlatformCampaigns, nil)

	decision, err = optimizer.EvaluateABTest(context.Background(), snapshot.Campaign)
	require.NoError(t, err)
	require.NotNil(t, decision)
	assert.Equal(t, domain.VariantA, decision.Winner)
}
