package optimizing

import (
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

const (
	MinVariantImpressions = 1000
	DefaultWinnerMetric   = "roas"
)

var lowerIsBetter = map[string]bool{
	"cpc": true,
	"cac": true,
}

// IsWinnerMetric informa se a métrica pode decidir um teste A/B
func IsWinnerMetric(metric string) bool {
	switch metric {
	case "roas", "conversion_rate", "ctr", "conversions", "cpc", "cac":
		return true
	}
	return false
}

// DecideABTest compara as variantes A e B pelos totais das suas campanhas de plataforma. Devolve nil
// enquanto o teste não pode ser decidido: desligado, já resolvido, com menos de 1000 impressões em
// alguma variante ou empatado.
func DecideABTest(s Snapshot) *ABDecision {
	ab := s.Campaign.ABTest
	if !ab.Enabled || ab.IsResolved() {
		return nil
	}

	metric := winnerMetric(ab)
	stats := variantStats(s.PlatformCampaigns)

	a, b := stats[domain.VariantA], stats[domain.VariantB]
	if a.Impressions < MinVariantImpressions || b.Impressions < MinVariantImpressions {
		return nil
	}

	var okA, okB bool
	a.Value, okA = metricValue(a, metric)
	b.Value, okB = metricValue(b, metric)
	if !okA || !okB {
		return nil
	}
	stats[domain.VariantA], stats[domain.VariantB] = a, b

	va, vb := utils.RoundWithFourDecimalPlace(a.Value), utils.RoundWithFourDecimalPlace(b.Value)
	if va == vb {
		return nil
	}

	winner, loser := domain.VariantA, domain.VariantB
	if (va < vb) != lowerIsBetter[metric] {
		winner, loser = domain.VariantB, domain.VariantA
	}

	decision := &ABDecision{
		Winner: winner,
		Loser:  loser,
		Metric: metric,
		Stats:  stats,
	}
	decision.collectActions(s.PlatformCampaigns)

	return decision
}

// PendingABDecision refaz as ações de um teste já resolvido que não chegaram ao fim: a perdedora ainda ativa
// volta a ser pausada e a vencedora ativa volta a ser candidata ao reforço. Devolve nil quando não há o que aplicar.
func PendingABDecision(s Snapshot) *ABDecision {
	ab := s.Campaign.ABTest
	if !ab.Enabled || !ab.IsResolved() || ab.IsApplied() {
		return nil
	}

	metric := winnerMetric(ab)
	stats := variantStats(s.PlatformCampaigns)
	for variant, st := range stats {
		st.Value, _ = metricValue(st, metric)
		stats[variant] = st
	}

	decision := &ABDecision{
		Winner: ab.Winner,
		Loser:  ab.Loser(),
		Metric: metric,
		Stats:  stats,
	}
	decision.collectActions(s.PlatformCampaigns)

	return decision
}

func winnerMetric(ab domain.ABTestConfig) string {
	if ab.WinnerMetric == "" {
		return DefaultWinnerMetric
	}
	return ab.WinnerMetric
}

func variantStats(pcs []*domain.PlatformCampaign) map[domain.Variant]VariantStats {
	stats := map[domain.Variant]VariantStats{
		domain.VariantA: {Variant: domain.VariantA},
		domain.VariantB: {Variant: domain.VariantB},
	}
	for _, pc := range pcs {
		st, ok := stats[pc.Variant]
		if !ok {
			continue
		}
		st.Impressions += pc.Totals.Impressions
		st.Clicks += pc.Totals.Clicks
		st.Spend += pc.Totals.Spend
		st.Conversions += pc.Totals.Conversions
		st.Revenue += pc.Totals.Revenue
		stats[pc.Variant] = st
	}
	return stats
}

func (d *ABDecision) collectActions(pcs []*domain.PlatformCampaign) {
	for _, pc := range pcs {
		if pc.Status != domain.PlatformCampaignActive {
			continue
		}
		switch pc.Variant {
		case d.Winner:
			d.Boost = append(d.Boost, pc)
		case d.Loser:
			d.Pause = append(d.Pause, pc)
		}
	}
}

// metricValue calcula a métrica de decisão. Métricas em que menor é melhor exigem denominador positivo,
// senão uma variante sem cliques ou conversões venceria com valor zero.
func metricValue(st VariantStats, metric string) (float64, bool) {
	switch metric {
	case "roas":
		return domain.SafeDivide(st.Revenue, st.Spend), true
	case "conversion_rate":
		return domain.SafeDivide(float64(st.Conversions), float64(st.Clicks)) * 100, true
	case "ctr":
		return domain.SafeDivide(float64(st.Clicks), float64(st.Impressions)) * 100, true
	case "conversions":
		return float64(st.Conversions), true
	case "cpc":
		if st.Clicks == 0 {
			return 0, false
		}
		return domain.SafeDivide(st.Spend, float64(st.Clicks)), true
	case "cac":
		if st.Conversions == 0 {
			return 0, false
		}
		return domain.SafeDivide(st.Spend, float64(st.Conversions)), true
	}
	return 0, false
}

// WinnerLog monta o registro de auditoria da decisão com os números das duas variantes
func WinnerLog(campaignID string, d *ABDecision) *domain.OptimizationLog {
	return &domain.OptimizationLog{
		CampaignID:  campaignID,
		Type:        domain.OptimizationABTestWinner,
		Description: "Variante " + string(d.Winner) + " venceu o teste A/B por " + d.Metric,
		BeforeState: map[string]any{
			"variant_a": d.Stats[domain.VariantA].toMap(),
			"variant_b": d.Stats[domain.VariantB].toMap(),
		},
		AfterState: map[string]any{
			"winner":         string(d.Winner),
			"paused":         len(d.Pause),
			"budget_doubled": len(d.Boost),
			"winner_metric":  d.Metric,
			"winner_value":   d.Stats[d.Winner].Value,
			"loser_value":    d.Stats[d.Loser].Value,
		},
		TriggerMetrics: map[string]any{
			"metric": d.Metric,
		},
		Source: domain.SourceAuto,
	}
}
