package domain

import "time"

type OptimizationType string

const (
	OptimizationBidAdjustment      OptimizationType = "bid_adjustment"
	OptimizationCreativeRefresh    OptimizationType = "creative_refresh"
	OptimizationBudgetDecrease     OptimizationType = "budget_decrease"
	OptimizationOverpacing         OptimizationType = "overpacing"
	OptimizationUnderpacing        OptimizationType = "underpacing"
	OptimizationBudgetReallocation OptimizationType = "budget_reallocation"
	OptimizationCreativePaused     OptimizationType = "creative_paused"
	OptimizationAudienceExpansion  OptimizationType = "audience_expansion"
	OptimizationABTestWinner       OptimizationType = "ab_test_winner"
	OptimizationABTestBoost        OptimizationType = "ab_test_boost"
	OptimizationCampaignLaunched   OptimizationType = "campaign_launched"
	OptimizationCampaignPaused     OptimizationType = "campaign_paused"
	OptimizationCampaignResumed    OptimizationType = "campaign_resumed"
	OptimizationCampaignCompleted  OptimizationType = "campaign_completed"
)

type OptimizationSource string

const (
	SourceAuto        OptimizationSource = "auto"
	SourceManual      OptimizationSource = "manual"
	SourceAISuggested OptimizationSource = "ai_suggested"
)

// OptimizationLog é o registro de auditoria de uma ação de otimização. Nunca é alterado ou removido.
type OptimizationLog struct {
	ID                 string             `json:"id"`
	CampaignID         string             `json:"campaign_id"`
	PlatformCampaignID *string            `json:"platform_campaign_id"`
	Type               OptimizationType   `json:"type"`
	Description        string             `json:"description"`
	BeforeState        map[string]any     `json:"before_state"`
	AfterState         map[string]any     `json:"after_state"`
	TriggerMetrics     map[string]any     `json:"trigger_metrics"`
	Source             OptimizationSource `json:"source"`
	DedupeKey          *string            `json:"-"`
	CreatedAt          time.Time          `json:"created_at"`
}
