package optimizing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/allocating"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

const (
	MinHistoryDays = 2
	thresholdDays  = 3

	minImpressionsForCTR = 5000
	minSpendForROAS      = 50.0

	overpacingFactor  = 1.2
	underpacingFactor = 0.6
	minDaysForUnder   = 3

	minSpendDaysForReallocation = 7
	reallocationFloor           = 0.10
	reallocationMinChange       = 0.10

	minCreativeImpressions = 1000
	creativeCTRRatio       = 0.5

	saturationFrequency = 5.0
	saturationWindow    = 7
	saturationRecent    = 3
	saturationDecline   = 0.20
)

// BuildPlan analisa o snapshot e devolve as mudanças propostas. Com menos de dois dias de histórico
// consolidado o plano é vazio.
func BuildPlan(s Snapshot, now time.Time) *Plan {
	plan := &Plan{CampaignID: s.Campaign.ID}

	aggregated := aggregatedRows(s.Metrics, now)
	if len(aggregated) < MinHistoryDays {
		return plan
	}

	plan.Advisories = append(plan.Advisories, thresholdChecks(s.Campaign, aggregated, now)...)
	if log := pacingCheck(s.Campaign, now); log != nil {
		plan.Advisories = append(plan.Advisories, log)
	}
	plan.BudgetChanges = reallocate(s, now)
	plan.CreativePauses = pruneCreatives(s)
	plan.Advisories = append(plan.Advisories, saturationChecks(s, now)...)

	return plan
}

// aggregatedRows devolve as linhas consolidadas até hoje, ordenadas por data
func aggregatedRows(metrics []*domain.Metric, now time.Time) []*domain.Metric {
	today := domain.TruncateDay(now)
	rows := make([]*domain.Metric, 0)
	for _, m := range metrics {
		if m.IsAggregated() && !m.Date.After(today) {
			rows = append(rows, m)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

func thresholdChecks(c *domain.Campaign, aggregated []*domain.Metric, now time.Time) []*domain.OptimizationLog {
	trailing := aggregated
	if len(trailing) > thresholdDays {
		trailing = trailing[len(trailing)-thresholdDays:]
	}

	var totals domain.MetricTotals
	for _, row := range trailing {
		totals = totals.Add(row.MetricTotals)
	}
	derived := totals.Derive()
	rules := c.OptimizationRules

	trigger := map[string]any{
		"days":        len(trailing),
		"impressions": totals.Impressions,
		"clicks":      totals.Clicks,
		"spend":       totals.Spend,
		"revenue":     totals.Revenue,
		"cpc":         utils.RoundWithFourDecimalPlace(derived.CPC),
		"ctr":         utils.RoundWithFourDecimalPlace(derived.CTR),
		"roas":        utils.RoundWithFourDecimalPlace(derived.ROAS),
	}

	logs := make([]*domain.OptimizationLog, 0)

	if rules.MaxCPC > 0 && derived.CPC > rules.MaxCPC {
		logs = append(logs, advisory(c.ID, nil, domain.OptimizationBidAdjustment,
			fmt.Sprintf("CPC de %.2f acima do máximo de %.2f nos últimos %d dias, reduzir o lance", derived.CPC, rules.MaxCPC, len(trailing)),
			withRule(trigger, "max_cpc", rules.MaxCPC), now))
	}

	if rules.MinCTR > 0 && derived.CTR < rules.MinCTR && totals.Impressions > minImpressionsForCTR {
		logs = append(logs, advisory(c.ID, nil, domain.OptimizationCreativeRefresh,
			fmt.Sprintf("CTR de %.2f%% abaixo do mínimo de %.2f%%, renovar os criativos", derived.CTR, rules.MinCTR),
			withRule(trigger, "min_ctr", rules.MinCTR), now))
	}

	if rules.MinROAS > 0 && derived.ROAS < rules.MinROAS && totals.Spend > minSpendForROAS {
		logs = append(logs, advisory(c.ID, nil, domain.OptimizationBudgetDecrease,
			fmt.Sprintf("ROAS de %.2f abaixo do mínimo de %.2f, reduzir o orçamento", derived.ROAS, rules.MinROAS),
			withRule(trigger, "min_roas", rules.MinROAS), now))
	}

	return logs
}

func withRule(trigger map[string]any, rule string, limit float64) map[string]any {
	out := make(map[string]any, len(trigger)+1)
	for k, v := range trigger {
		out[k] = v
	}
	out[rule] = limit
	return out
}

// Pacing compara a fração gasta com a fração do período decorrida
type Pacing struct {
	Elapsed  int
	Total    int
	Expected float64
	Actual   float64
}

func CalculatePacing(c *domain.Campaign, now time.Time) Pacing {
	total := c.TotalDays()
	elapsed := min(c.ElapsedDays(now), total)
	return Pacing{
		Elapsed:  elapsed,
		Total:    total,
		Expected: domain.SafeDivide(float64(elapsed), float64(total)),
		Actual:   c.SpentFraction(),
	}
}

func pacingCheck(c *domain.Campaign, now time.Time) *domain.OptimizationLog {
	if c.TotalBudget <= 0 {
		return nil
	}

	p := CalculatePacing(c, now)
	trigger := map[string]any{
		"elapsed_days":      p.Elapsed,
		"total_days":        p.Total,
		"expected_fraction": utils.RoundWithFourDecimalPlace(p.Expected),
		"actual_fraction":   utils.RoundWithFourDecimalPlace(p.Actual),
		"spent_budget":      c.SpentBudget,
		"total_budget":      c.TotalBudget,
	}

	switch {
	case p.Actual > overpacingFactor*p.Expected:
		return advisory(c.ID, nil, domain.OptimizationOverpacing,
			fmt.Sprintf("Gasto de %.1f%% do orçamento com %.1f%% do período decorrido", p.Actual*100, p.Expected*100),
			trigger, now)
	case p.Actual < underpacingFactor*p.Expected && p.Elapsed > minDaysForUnder:
		return advisory(c.ID, nil, domain.OptimizationUnderpacing,
			fmt.Sprintf("Gasto de apenas %.1f%% do orçamento com %.1f%% do período decorrido", p.Actual*100, p.Expected*100),
			trigger, now)
	}

	return nil
}

// reallocate redistribui o orçamento restante das campanhas de plataforma pontuáveis pela pontuação de
// performance. Só vale para a estratégia de performance.
func reallocate(s Snapshot, now time.Time) []BudgetChange {
	c := s.Campaign
	if c.AllocationStrategy != domain.AllocationPerformance {
		return nil
	}

	spendDays := spendDaysByPlatformCampaign(s.Metrics)

	candidates := make([]*domain.PlatformCampaign, 0)
	platforms := make(map[domain.Platform]struct{})
	for _, pc := range s.PlatformCampaigns {
		if pc.Status != domain.PlatformCampaignActive || spendDays[pc.ID] < minSpendDaysForReallocation {
			continue
		}
		candidates = append(candidates, pc)
		platforms[pc.Platform] = struct{}{}
	}
	if len(platforms) < 2 {
		return nil
	}

	order := make([]string, 0, len(candidates))
	scores := make(map[string]float64, len(candidates))
	var remaining float64
	for _, pc := range candidates {
		order = append(order, pc.ID)
		scores[pc.ID] = allocating.PerformanceScore(pc.Totals)
		remaining += max(pc.BudgetAllocated-pc.Totals.Spend, 0)
	}

	weights := allocating.FloorWeights(scores, order, reallocationFloor)
	shares := allocating.Distribute(remaining, order, weights)
	days := c.DaysUntilEnd(now)

	changes := make([]BudgetChange, 0)
	for _, pc := range candidates {
		newDaily := allocating.DailyBudget(shares[pc.ID], days)
		if !significantChange(pc.DailyBudget, newDaily) {
			continue
		}

		changes = append(changes, BudgetChange{
			PlatformCampaign: pc,
			NewAllocated:     utils.RoundWithTwoDecimalPlace(pc.Totals.Spend + shares[pc.ID]),
			NewDaily:         newDaily,
			Score:            utils.RoundWithFourDecimalPlace(scores[pc.ID]),
		})
	}

	return changes
}

func significantChange(current, proposed float64) bool {
	if current <= 0 {
		return proposed > 0
	}
	return math.Abs(proposed-current)/current > reallocationMinChange
}

func spendDaysByPlatformCampaign(metrics []*domain.Metric) map[string]int {
	days := make(map[string]int)
	for _, m := range metrics {
		if m.PlatformCampaignID != "" && m.Spend > 0 {
			days[m.PlatformCampaignID]++
		}
	}
	return days
}

// pruneCreatives propõe pausar os criativos ativos com CTR abaixo da metade do melhor
func pruneCreatives(s Snapshot) []CreativePause {
	eligible := make([]*domain.Creative, 0)
	var best float64
	for _, cr := range s.Creatives {
		if cr.Status != domain.CreativeStatusActive || cr.Impressions < minCreativeImpressions {
			continue
		}
		eligible = append(eligible, cr)
		best = max(best, creativeCTR(cr))
	}
	if best <= 0 {
		return nil
	}

	pauses := make([]CreativePause, 0)
	for _, cr := range eligible {
		ctr := creativeCTR(cr)
		if ctr >= best*creativeCTRRatio {
			continue
		}

		active := make([]*domain.PlatformCampaign, 0)
		for _, pc := range s.PlatformCampaigns {
			if pc.CreativeID == cr.ID && pc.Status == domain.PlatformCampaignActive {
				active = append(active, pc)
			}
		}

		pauses = append(pauses, CreativePause{
			Creative:          cr,
			PlatformCampaigns: active,
			CTR:               utils.RoundWithFourDecimalPlace(ctr),
			BestCTR:           utils.RoundWithFourDecimalPlace(best),
		})
	}

	return pauses
}

func creativeCTR(cr *domain.Creative) float64 {
	return domain.SafeDivide(float64(cr.Clicks), float64(cr.Impressions)) * 100
}

// saturationChecks sugere expandir o público quando a frequência passa de 5 e o CTR dos últimos 3 dias
// caiu mais de 20% em relação aos dias anteriores da última semana
func saturationChecks(s Snapshot, now time.Time) []*domain.OptimizationLog {
	today := domain.TruncateDay(now)
	windowStart := today.AddDate(0, 0, -(saturationWindow - 1))
	recentStart := today.AddDate(0, 0, -(saturationRecent - 1))

	logs := make([]*domain.OptimizationLog, 0)
	for _, pc := range s.PlatformCampaigns {
		if pc.Status != domain.PlatformCampaignActive || pc.Frequency <= saturationFrequency {
			continue
		}

		var recent, prior domain.MetricTotals
		for _, m := range s.Metrics {
			if m.PlatformCampaignID != pc.ID || m.Date.Before(windowStart) || m.Date.After(today) {
				continue
			}
			if m.Date.Before(recentStart) {
				prior = prior.Add(m.MetricTotals)
			} else {
				recent = recent.Add(m.MetricTotals)
			}
		}

		priorCTR := prior.Derive().CTR
		recentCTR := recent.Derive().CTR
		if priorCTR <= 0 || recent.Impressions == 0 {
			continue
		}

		decline := (priorCTR - recentCTR) / priorCTR
		if decline <= saturationDecline {
			continue
		}

		id := pc.ID
		logs = append(logs, advisory(s.Campaign.ID, &id, domain.OptimizationAudienceExpansion,
			fmt.Sprintf("Frequência de %.1f em %s com queda de %.1f%% no CTR, expandir o público", pc.Frequency, pc.Platform, decline*100),
			map[string]any{
				"platform":       string(pc.Platform),
				"frequency":      pc.Frequency,
				"recent_ctr":     utils.RoundWithFourDecimalPlace(recentCTR),
				"prior_ctr":      utils.RoundWithFourDecimalPlace(priorCTR),
				"decline_pct":    utils.RoundWithTwoDecimalPlace(decline * 100),
				"recent_days":    saturationRecent,
				"lookback_days":  saturationWindow,
				"impressions_3d": recent.Impressions,
			}, now))
	}

	return logs
}
