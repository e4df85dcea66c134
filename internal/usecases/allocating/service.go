// Package allocating distribui o orçamento total de uma campanha entre as plataformas alvo
package allocating

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

var (
	ErrNoPlatforms     = errors.New("campaign has no target platforms")
	ErrInvalidBudget   = errors.New("campaign total budget must not be negative")
	ErrUnknownStrategy = errors.New("unknown budget allocation strategy")
)

// PerformanceFloor é a fatia mínima de cada plataforma na estratégia de performance
const PerformanceFloor = 0.10

// Pesos padrão da estratégia ponderada, normalizados sobre as plataformas escolhidas
var defaultWeights = map[domain.Platform]float64{
	domain.PlatformFacebook:  0.35,
	domain.PlatformInstagram: 0.30,
	domain.PlatformGoogle:    0.25,
	domain.PlatformTikTok:    0.10,
	domain.PlatformLinkedIn:  0.10,
}

const fallbackWeight = 0.10

// Allocate divide o orçamento total da campanha entre as plataformas alvo conforme a estratégia configurada.
// history traz os totais acumulados por plataforma e só é usado pela estratégia de performance.
func Allocate(campaign *domain.Campaign, history map[domain.Platform]domain.MetricTotals) (map[domain.Platform]float64, error) {
	platforms := uniquePlatforms(campaign.TargetPlatforms)
	if len(platforms) == 0 {
		return nil, ErrNoPlatforms
	}
	if campaign.TotalBudget < 0 {
		return nil, ErrInvalidBudget
	}

	var weights map[domain.Platform]float64

	switch campaign.AllocationStrategy {
	case domain.AllocationEqual, "":
		weights = equalWeights(platforms)
	case domain.AllocationWeighted:
		weights = make(map[domain.Platform]float64, len(platforms))
		for _, p := range platforms {
			w, ok := defaultWeights[p]
			if !ok {
				w = fallbackWeight
			}
			weights[p] = w
		}
	case domain.AllocationPerformance:
		scores := make(map[domain.Platform]float64, len(platforms))
		for _, p := range platforms {
			scores[p] = PerformanceScore(history[p])
		}
		weights = FloorWeights(scores, platforms, PerformanceFloor)
	case domain.AllocationManual:
		weights = manualWeights(campaign.TotalBudget, platforms, campaign.ManualAllocations)
	default:
		return nil, ErrUnknownStrategy
	}

	return Distribute(campaign.TotalBudget, platforms, weights), nil
}

// PerformanceScore pontua o histórico de uma plataforma: roas*0.5 + (conversões/gasto)*0.3 + ctr*0.2.
// Sem gasto ainda, a pontuação é neutra (1.0). O CTR entra como fração de cliques por impressão.
func PerformanceScore(totals domain.MetricTotals) float64 {
	if totals.Spend <= 0 {
		return 1.0
	}

	roas := domain.SafeDivide(totals.Revenue, totals.Spend)
	conversionsPerSpend := domain.SafeDivide(float64(totals.Conversions), totals.Spend)
	ctr := domain.SafeDivide(float64(totals.Clicks), float64(totals.Impressions))

	return roas*0.5 + conversionsPerSpend*0.3 + ctr*0.2
}

// FloorWeights converte pontuações em pesos score/Σscore garantindo que nenhuma chave fique abaixo de floor.
// Chaves presas no piso saem da redistribuição e o restante é repartido proporcionalmente às pontuações.
func FloorWeights[K comparable](scores map[K]float64, order []K, floor float64) map[K]float64 {
	weights := make(map[K]float64, len(order))
	if len(order) == 0 {
		return weights
	}

	if floor*float64(len(order)) >= 1 {
		for _, k := range order {
			weights[k] = 1 / float64(len(order))
		}
		return weights
	}

	floored := make(map[K]bool, len(order))
	for {
		remaining := 1 - floor*float64(len(floored))

		var sum float64
		for _, k := range order {
			if !floored[k] {
				sum += max(scores[k], 0)
			}
		}

		changed := false
		for _, k := range order {
			if floored[k] {
				weights[k] = floor
				continue
			}

			var w float64
			if sum > 0 {
				w = remaining * max(scores[k], 0) / sum
			} else {
				w = remaining / float64(len(order)-len(floored))
			}

			if w < floor {
				floored[k] = true
				changed = true
			}
			weights[k] = w
		}

		if !changed {
			return weights
		}
	}
}

// Distribute reparte total pelos pesos arredondando em centavos. A sobra de arredondamento vai para a maior fatia,
// então a soma é sempre exatamente total.
func Distribute[K comparable](total float64, platforms []K, weights map[K]float64) map[K]float64 {
	result := make(map[K]float64, len(platforms))
	if len(platforms) == 0 {
		return result
	}

	var sumWeights float64
	for _, p := range platforms {
		sumWeights += max(weights[p], 0)
	}
	if sumWeights <= 0 {
		weights = equalWeights(platforms)
		sumWeights = 1
	}

	totalDec := decimal.NewFromFloat(total).Round(2)
	shares := make(map[K]decimal.Decimal, len(platforms))
	allocated := decimal.Zero
	largest := platforms[0]

	for _, p := range platforms {
		share := totalDec.Mul(decimal.NewFromFloat(max(weights[p], 0) / sumWeights)).Round(2)
		if share.IsNegative() {
			share = decimal.Zero
		}
		shares[p] = share
		allocated = allocated.Add(share)

		if share.GreaterThan(shares[largest]) {
			largest = p
		}
	}

	if drift := totalDec.Sub(allocated); !drift.IsZero() {
		adjusted := shares[largest].Add(drift)
		if adjusted.IsNegative() {
			adjusted = decimal.Zero
		}
		shares[largest] = adjusted
	}

	for p, share := range shares {
		result[p] = share.InexactFloat64()
	}

	return result
}

// DailyBudgets divide cada alocação pelos dias restantes, no mínimo 1
func DailyBudgets(allocations map[domain.Platform]float64, daysUntilEnd int) map[domain.Platform]float64 {
	days := decimal.NewFromInt(int64(max(1, daysUntilEnd)))

	daily := make(map[domain.Platform]float64, len(allocations))
	for p, amount := range allocations {
		daily[p] = decimal.NewFromFloat(amount).Div(days).Round(2).InexactFloat64()
	}

	return daily
}

// DailyBudget divide um único valor pelos dias restantes, no mínimo 1
func DailyBudget(amount float64, daysUntilEnd int) float64 {
	return decimal.NewFromFloat(amount).Div(decimal.NewFromInt(int64(max(1, daysUntilEnd)))).Round(2).InexactFloat64()
}

func manualWeights(total float64, platforms []domain.Platform, overrides map[domain.Platform]float64) map[domain.Platform]float64 {
	weights := make(map[domain.Platform]float64, len(platforms))

	var overridden float64
	missing := make([]domain.Platform, 0, len(platforms))
	for _, p := range platforms {
		amount, ok := overrides[p]
		if !ok {
			missing = append(missing, p)
			continue
		}
		amount = max(amount, 0)
		weights[p] = amount
		overridden += amount
	}

	remainder := max(total-overridden, 0)
	for _, p := range missing {
		weights[p] = remainder / float64(len(missing))
	}

	return weights
}

func equalWeights[K comparable](platforms []K) map[K]float64 {
	weights := make(map[K]float64, len(platforms))
	for _, p := range platforms {
		weights[p] = 1
	}
	return weights
}

func uniquePlatforms(platforms []domain.Platform) []domain.Platform {
	seen := make(map[domain.Platform]struct{}, len(platforms))
	unique := make([]domain.Platform, 0, len(platforms))
	for _, p := range platforms {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}
