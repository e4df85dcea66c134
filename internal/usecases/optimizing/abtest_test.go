package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

func abSnapshot(metric string, a, b domain.MetricTotals) Snapshot {
	campaign := baseCampaign()
	campaign.ABTest = domain.ABTestConfig{Enabled: true, Variable: "headline", SplitPercent: 50, WinnerMetric: metric}

	return Snapshot{
		Campaign: campaign,
		PlatformCampaigns: []*domain.PlatformCampaign{
			{ID: "pcA1", Variant: domain.VariantA, Status: domain.PlatformCampaignActive, Totals: a},
			{ID: "pcB1", Variant: domain.VariantB, Status: domain.PlatformCampaignActive, Totals: b},
			{ID: "pcB2", Variant: domain.VariantB, Status: domain.PlatformCampaignFailed},
			{ID: "pcX", Variant: domain.VariantNone, Status: domain.PlatformCampaignActive, Totals: domain.MetricTotals{Impressions: 99999}},
		},
	}
}

func TestDecideABTest(t *testing.T) {
	tests := []struct {
		name   string
		metric string
		a      domain.MetricTotals
		b      domain.MetricTotals
		winner domain.Variant
	}{
		{
			name:   "roas maior vence",
			metric: "roas",
			a:      domain.MetricTotals{Impressions: 1000, Spend: 100, Revenue: 300},
			b:      domain.MetricTotals{Impressions: 1500, Spend: 100, Revenue: 200},
			winner: domain.VariantA,
		},
		{
			name:   "métrica padrão é roas",
			metric: "",
			a:      domain.MetricTotals{Impressions: 1000, Spend: 100, Revenue: 100},
			b:      domain.MetricTotals{Impressions: 1000, Spend: 100, Revenue: 200},
			winner: domain.VariantB,
		},
		{
			name:   "ctr maior vence",
			metric: "ctr",
			a:      domain.MetricTotals{Impressions: 1000, Clicks: 10},
			b:      domain.MetricTotals{Impressions: 1000, Clicks: 30},
			winner: domain.VariantB,
		},
		{
			name:   "taxa de conversão maior vence",
			metric: "conversion_rate",
			a:      domain.MetricTotals{Impressions: 1000, Clicks: 100, Conversions: 10},
			b:      domain.MetricTotals{Impressions: 1000, Clicks: 100, Conversions: 5},
			winner: domain.VariantA,
		},
		{
			name:   "mais conversões vence",
			metric: "conversions",
			a:      domain.MetricTotals{Impressions: 1000, Conversions: 3},
			b:      domain.MetricTotals{Impressions: 1000, Conversions: 4},
			winner: domain.VariantB,
		},
		{
			name:   "cpc menor vence",
			metric: "cpc",
			a:      domain.MetricTotals{Impressions: 1000, Clicks: 50, Spend: 100},
			b:      domain.MetricTotals{Impressions: 1000, Clicks: 100, Spend: 100},
			winner: domain.VariantB,
		},
		{
			name:   "cac menor vence",
			metric: "cac",
			a:      domain.MetricTotals{Impressions: 1000, Conversions: 10, Spend: 100},
			b:      domain.MetricTotals{Impressions: 1000, Conversions: 4, Spend: 100},
			winner: domain.VariantA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := DecideABTest(abSnapshot(tt.metric, tt.a, tt.b))
			require.NotNil(t, decision)

			assert.Equal(t, tt.winner, decision.Winner)
			assert.NotEqual(t, decision.Winner, decision.Loser)
			require.Len(t, decision.Boost, 1)
			require.Len(t, decision.Pause, 1)
			assert.Equal(t, tt.winner, decision.Boost[0].Variant)
			assert.Equal(t, decision.Loser, decision.Pause[0].Variant)
		})
	}
}

func TestDecideABTest_Undecided(t *testing.T) {
	enough := domain.MetricTotals{Impressions: 1000, Clicks: 10, Spend: 100, Revenue: 200}

	t.Run("desligado", func(t *testing.T) {
		s := abSnapshot("roas", enough, domain.MetricTotals{Impressions: 1000, Spend: 100, Revenue: 50})
		s.Campaign.ABTest.Enabled = false
		assert.Nil(t, DecideABTest(s))
	})

	t.Run("já resolvido", func(t *testing.T) {
		s := abSnapshot("roas", enough, domain.MetricTotals{Impressions: 1000, Spend: 100, Revenue: 50})
		s.Campaign.ABTest.Winner = domain.VariantB
		assert.Nil(t, DecideABTest(s))
	})

	t.Run("variante com menos de 1000 impressões", func(t *testing.T) {
		s := abSnapshot("roas", enough, domain.MetricTotals{Impressions: 999, Spend: 100, Revenue: 900})
		assert.Nil(t, DecideABTest(s))
	})

	t.Run("empate exato", func(t *testing.T) {
		s := abSnapshot("roas", enough, domain.MetricTotals{Impressions: 5000, Spend: 50, Revenue: 100})
		assert.Nil(t, DecideABTest(s))
	})

	t.Run("cpc sem cliques", func(t *testing.T) {
		s := abSnapshot("cpc", enough, domain.MetricTotals{Impressions: 1000, Spend: 100})
		assert.Nil(t, DecideABTest(s))
	})

	t.Run("métrica desconhecida", func(t *testing.T) {
		s := abSnapshot("likes", enough, enough)
		assert.Nil(t, DecideABTest(s))
	})
}

func TestWinnerLog(t *testing.T) {
	decision := DecideABTest(abSnapshot("roas",
		domain.MetricTotals{Impressions: 1000, Spend: 100, Revenue: 300},
		domain.MetricTotals{Impressions: 1000, Spend: 100, Revenue: 200},
	))
	require.NotNil(t, decision)

	log := WinnerLog("c1", decision)

	assert.Equal(t, domain.OptimizationABTestWinner, log.Type)
	assert.Equal(t, domain.SourceAuto, log.Source)
	assert.Nil(t, log.DedupeKey)
	assert.Contains(t, log.BeforeState, "variant_a")
	assert.Contains(t, log.BeforeState, "variant_b")
	assert.Equal(t, "A", log.AfterState["winner"])
	assert.Equal(t, 3.0, log.AfterState["winner_value"])
}

func TestPendingABDecision(t *testing.T) {
	t.Run("teste ainda sem vencedor", func(t *testing.T) {
		snapshot := abSnapshot("ctr", domain.MetricTotals{}, domain.MetricTotals{})
		assert.Nil(t, PendingABDecision(snapshot))
	})

	t.Run("ações já aplicadas", func(t *testing.T) {
		snapshot := abSnapshot("ctr", domain.MetricTotals{}, domain.MetricTotals{})
		applied := now
		snapshot.Campaign.ABTest.Winner = domain.VariantB
		snapshot.Campaign.ABTest.AppliedAt = &applied
		assert.Nil(t, PendingABDecision(snapshot))
	})

	t.Run("refaz pausa e reforço para o vencedor gravado", func(t *testing.T) {
		// mesmo com a perdedora à frente agora, o vencedor gravado não muda
		snapshot := abSnapshot("ctr",
			domain.MetricTotals{Impressions: 2000, Clicks: 80},
			domain.MetricTotals{Impressions: 2000, Clicks: 20},
		)
		snapshot.Campaign.ABTest.Winner = domain.VariantB

		decision := PendingABDecision(snapshot)

		require.NotNil(t, decision)
		assert.Equal(t, domain.VariantB, decision.Winner)
		assert.Equal(t, domain.VariantA, decision.Loser)
		require.Len(t, decision.Pause, 1)
		assert.Equal(t, "pcA1", decision.Pause[0].ID)
		require.Len(t, decision.Boost, 1)
		assert.Equal(t, "pcB1", decision.Boost[0].ID)
		assert.Equal(t, 1.0, decision.Stats[domain.VariantB].Value)
	})
}
