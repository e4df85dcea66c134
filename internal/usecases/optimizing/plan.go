package optimizing

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/campaign-engine/internal/domain"
)

// BudgetChange é uma realocação proposta para uma campanha de plataforma
type BudgetChange struct {
	PlatformCampaign *domain.PlatformCampaign
	NewAllocated     float64
	NewDaily         float64
	Score            float64
}

// CreativePause é um criativo com CTR muito abaixo do melhor, junto das campanhas de plataforma ativas que o veiculam
type CreativePause struct {
	Creative          *domain.Creative
	PlatformCampaigns []*domain.PlatformCampaign
	CTR               float64
	BestCTR           float64
}

// Plan são as mudanças propostas por uma passada de otimização. Quem aplica é o gerenciador de ciclo de vida.
type Plan struct {
	CampaignID     string
	Advisories     []*domain.OptimizationLog
	BudgetChanges  []BudgetChange
	CreativePauses []CreativePause
}

func (p *Plan) IsEmpty() bool {
	return p == nil || (len(p.Advisories) == 0 && len(p.BudgetChanges) == 0 && len(p.CreativePauses) == 0)
}

// VariantStats são os totais de uma variante do teste A/B e o valor da métrica de decisão
type VariantStats struct {
	Variant     domain.Variant `json:"variant"`
	Impressions int64          `json:"impressions"`
	Clicks      int64          `json:"clicks"`
	Spend       float64        `json:"spend"`
	Conversions int64          `json:"conversions"`
	Revenue     float64        `json:"revenue"`
	Value       float64        `json:"value"`
}

func (v VariantStats) toMap() map[string]any {
	return map[string]any{
		"variant":     string(v.Variant),
		"impressions": v.Impressions,
		"clicks":      v.Clicks,
		"spend":       v.Spend,
		"conversions": v.Conversions,
		"revenue":     v.Revenue,
		"value":       v.Value,
	}
}

// ABDecision é o resultado de um teste A/B resolvido
type ABDecision struct {
	Winner domain.Variant
	Loser  domain.Variant
	Metric string
	Stats  map[domain.Variant]VariantStats
	// Pause são as campanhas de plataforma ativas da variante perdedora
	Pause []*domain.PlatformCampaign
	// Boost são as campanhas de plataforma ativas da variante vencedora, que dobram o orçamento diário
	Boost []*domain.PlatformCampaign
}

// Snapshot reúne o estado de uma campanha usado para planejar
type Snapshot struct {
	Campaign          *domain.Campaign
	PlatformCampaigns []*domain.PlatformCampaign
	Creatives         []*domain.Creative
	Metrics           []*domain.Metric
}

// Planner propõe mudanças para uma campanha sem aplicá-las
//
//go:generate mockgen -source=plan.go -destination=mocks/planner_mock.go -package=mocks
type Planner interface {
	Optimize(ctx context.Context, campaign *domain.Campaign) (*Plan, error)
	EvaluateABTest(ctx context.Context, campaign *domain.Campaign) (*ABDecision, error)
}

// DedupeKey identifica um aviso do dia, para que reexecuções no mesmo dia não dupliquem registros
func DedupeKey(campaignID string, kind domain.OptimizationType, subject string, day time.Time) string {
	if subject == "" {
		return fmt.Sprintf("%s:%s:%s", campaignID, kind, day.Format(time.DateOnly))
	}
	return fmt.Sprintf("%s:%s:%s:%s", campaignID, kind, subject, day.Format(time.DateOnly))
}

func advisory(campaignID string, platformCampaignID *string, kind domain.OptimizationType, description string, trigger map[string]any, now time.Time) *domain.OptimizationLog {
	subject := ""
	if platformCampaignID != nil {
		subject = *platformCampaignID
	}
	key := DedupeKey(campaignID, kind, subject, now)

	return &domain.OptimizationLog{
		CampaignID:         campaignID,
		PlatformCampaignID: platformCampaignID,
		Type:               kind,
		Description:        description,
		TriggerMetrics:     trigger,
		Source:             domain.SourceAuto,
		DedupeKey:          &key,
	}
}
