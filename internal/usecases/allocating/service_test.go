package allocating

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

var approx = cmpopts.EquateApprox(0, 0.011)

func TestAllocate(t *testing.T) {
	tests := []struct {
		name     string
		campaign *domain.Campaign
		history  map[domain.Platform]domain.MetricTotals
		expected map[domain.Platform]float64
		wantErr  error
	}{
		{
			name: "estratégia igual divide meio a meio",
			campaign: &domain.Campaign{
				TotalBudget:        1000,
				TargetPlatforms:    []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle},
				AllocationStrategy: domain.AllocationEqual,
			},
			expected: map[domain.Platform]float64{domain.PlatformFacebook: 500, domain.PlatformGoogle: 500},
		},
		{
			name: "estratégia igual absorve arredondamento",
			campaign: &domain.Campaign{
				TotalBudget:        100,
				TargetPlatforms:    []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle, domain.PlatformTikTok},
				AllocationStrategy: domain.AllocationEqual,
			},
			expected: map[domain.Platform]float64{
				domain.PlatformFacebook: 33.34,
				domain.PlatformGoogle:   33.33,
				domain.PlatformTikTok:   33.33,
			},
		},
		{
			name: "estratégia ponderada normaliza sobre as plataformas escolhidas",
			campaign: &domain.Campaign{
				TotalBudget:        1000,
				TargetPlatforms:    []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle},
				AllocationStrategy: domain.AllocationWeighted,
			},
			expected: map[domain.Platform]float64{domain.PlatformFacebook: 583.33, domain.PlatformGoogle: 416.67},
		},
		{
			name: "performance sem gasto equivale a divisão igual",
			campaign: &domain.Campaign{
				TotalBudget:        1000,
				TargetPlatforms:    []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle},
				AllocationStrategy: domain.AllocationPerformance,
			},
			expected: map[domain.Platform]float64{domain.PlatformFacebook: 500, domain.PlatformGoogle: 500},
		},
		{
			name: "performance aplica piso de 10% para plataforma sem resultado",
			campaign: &domain.Campaign{
				TotalBudget:        1000,
				TargetPlatforms:    []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle},
				AllocationStrategy: domain.AllocationPerformance,
			},
			history: map[domain.Platform]domain.MetricTotals{
				domain.PlatformFacebook: {Spend: 100, Revenue: 400, Conversions: 10, Impressions: 1000, Clicks: 20},
				domain.PlatformGoogle:   {Spend: 100, Impressions: 1000},
			},
			expected: map[domain.Platform]float64{domain.PlatformFacebook: 900, domain.PlatformGoogle: 100},
		},
		{
			name: "manual completa as plataformas sem valor com o restante",
			campaign: &domain.Campaign{
				TotalBudget:        1000,
				TargetPlatforms:    []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle, domain.PlatformTikTok},
				AllocationStrategy: domain.AllocationManual,
				ManualAllocations:  map[domain.Platform]float64{domain.PlatformFacebook: 600},
			},
			expected: map[domain.Platform]float64{
				domain.PlatformFacebook: 600,
				domain.PlatformGoogle:   200,
				domain.PlatformTikTok:   200,
			},
		},
		{
			name: "manual acima do total é reduzido proporcionalmente",
			campaign: &domain.Campaign{
				TotalBudget:        1000,
				TargetPlatforms:    []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle},
				AllocationStrategy: domain.AllocationManual,
				ManualAllocations: map[domain.Platform]float64{
					domain.PlatformFacebook: 1500,
					domain.PlatformGoogle:   500,
				},
			},
			expected: map[domain.Platform]float64{domain.PlatformFacebook: 750, domain.PlatformGoogle: 250},
		},
		{
			name: "plataformas duplicadas contam uma vez",
			campaign: &domain.Campaign{
				TotalBudget:     300,
				TargetPlatforms: []domain.Platform{domain.PlatformGoogle, domain.PlatformGoogle, domain.PlatformTikTok},
			},
			expected: map[domain.Platform]float64{domain.PlatformGoogle: 150, domain.PlatformTikTok: 150},
		},
		{
			name:     "sem plataformas",
			campaign: &domain.Campaign{TotalBudget: 100},
			wantErr:  ErrNoPlatforms,
		},
		{
			name: "estratégia desconhecida",
			campaign: &domain.Campaign{
				TotalBudget:        100,
				TargetPlatforms:    []domain.Platform{domain.PlatformGoogle},
				AllocationStrategy: "random",
			},
			wantErr: ErrUnknownStrategy,
		},
		{
			name: "orçamento negativo",
			campaign: &domain.Campaign{
				TotalBudget:     -1,
				TargetPlatforms: []domain.Platform{domain.PlatformGoogle},
			},
			wantErr: ErrInvalidBudget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(tt.campaign, tt.history)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, got, approx); diff != "" {
				t.Errorf("alocação inesperada (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllocate_PerformancePrefersBetterPlatform(t *testing.T) {
	campaign := &domain.Campaign{
		TotalBudget:        1000,
		TargetPlatforms:    []domain.Platform{domain.PlatformFacebook, domain.PlatformGoogle},
		AllocationStrategy: domain.AllocationPerformance,
	}
	history := map[domain.Platform]domain.MetricTotals{
		// roas=4, conversões/gasto=0.1, ctr=0.02
		domain.PlatformFacebook: {Spend: 100, Revenue: 400, Conversions: 10, Impressions: 1000, Clicks: 20},
		// roas=1, conversões/gasto=0.02, ctr=0.01
		domain.PlatformGoogle: {Spend: 100, Revenue: 100, Conversions: 2, Impressions: 1000, Clicks: 10},
	}

	got, err := Allocate(campaign, history)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, got[domain.PlatformFacebook], got[domain.PlatformGoogle])
	assert.GreaterOrEqual(t, got[domain.PlatformGoogle], 100.0)
	assert.InDelta(t, 1000, got[domain.PlatformFacebook]+got[domain.PlatformGoogle], 0.001)
}

func TestAllocate_SumsToTotal(t *testing.T) {
	platformSets := [][]domain.Platform{
		{domain.PlatformFacebook},
		{domain.PlatformFacebook, domain.PlatformInstagram},
		{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformGoogle},
		{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformGoogle, domain.PlatformTikTok, domain.PlatformLinkedIn},
	}
	strategies := []domain.AllocationStrategy{
		domain.AllocationEqual,
		domain.AllocationWeighted,
		domain.AllocationPerformance,
		domain.AllocationManual,
	}
	totals := []float64{0, 0.07, 1, 99.99, 1000, 12345.67}
	history := map[domain.Platform]domain.MetricTotals{
		domain.PlatformFacebook:  {Spend: 50, Revenue: 10, Conversions: 1, Impressions: 5000, Clicks: 30},
		domain.PlatformInstagram: {Spend: 80, Revenue: 900, Conversions: 20, Impressions: 9000, Clicks: 300},
		domain.PlatformGoogle:    {Spend: 10},
	}

	for _, platforms := range platformSets {
		for _, strategy := range strategies {
			for _, total := range totals {
				campaign := &domain.Campaign{
					TotalBudget:        total,
					TargetPlatforms:    platforms,
					AllocationStrategy: strategy,
					ManualAllocations:  map[domain.Platform]float64{domain.PlatformFacebook: total / 3},
				}

				got, err := Allocate(campaign, history)
				require.NoError(t, err)
				require.Len(t, got, len(platforms))

				var sum float64
				for _, p := range platforms {
					amount, ok := got[p]
					require.True(t, ok, "plataforma %s sem alocação", p)
					assert.GreaterOrEqual(t, amount, 0.0)
					sum += amount
				}
				assert.InDelta(t, total, sum, 0.011, "estratégia %s total %.2f", strategy, total)

				if strategy == domain.AllocationPerformance && total >= 1 {
					for _, p := range platforms {
						assert.GreaterOrEqual(t, got[p], total*PerformanceFloor-0.011)
					}
				}
			}
		}
	}
}

func TestFloorWeights(t *testing.T) {
	weights := FloorWeights(map[string]float64{"a": 100, "b": 1, "c": 0}, []string{"a", "b", "c"}, 0.1)

	assert.InDelta(t, 0.8, weights["a"], 1e-9)
	assert.InDelta(t, 0.1, weights["b"], 1e-9)
	assert.InDelta(t, 0.1, weights["c"], 1e-9)

	equal := FloorWeights(map[string]float64{}, []string{"a", "b"}, 0.1)
	assert.InDelta(t, 0.5, equal["a"], 1e-9)
	assert.InDelta(t, 0.5, equal["b"], 1e-9)
}

func TestPerformanceScore(t *testing.T) {
	assert.Equal(t, 1.0, PerformanceScore(domain.MetricTotals{}))
	assert.InDelta(t, 2.034, PerformanceScore(domain.MetricTotals{Spend: 100, Revenue: 400, Conversions: 10, Impressions: 1000, Clicks: 20}), 1e-9)
}

func TestDailyBudgets(t *testing.T) {
	allocations := map[domain.Platform]float64{domain.PlatformFacebook: 1000, domain.PlatformGoogle: 100}

	assert.Equal(t, map[domain.Platform]float64{domain.PlatformFacebook: 1000, domain.PlatformGoogle: 100}, DailyBudgets(allocations, 0))
	assert.Equal(t, map[domain.Platform]float64{domain.PlatformFacebook: 250, domain.PlatformGoogle: 25}, DailyBudgets(allocations, 4))
	assert.Equal(t, 33.33, DailyBudget(100, 3))
}
