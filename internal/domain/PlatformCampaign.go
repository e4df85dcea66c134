package domain

import "time"

type Variant string

const (
	VariantNone Variant = ""
	VariantA    Variant = "A"
	VariantB    Variant = "B"
)

type PlatformCampaignStatus string

const (
	PlatformCampaignPendingCreation PlatformCampaignStatus = "pending_creation"
	PlatformCampaignActive          PlatformCampaignStatus = "active"
	PlatformCampaignPaused          PlatformCampaignStatus = "paused"
	PlatformCampaignFailed          PlatformCampaignStatus = "failed"
	PlatformCampaignEnded           PlatformCampaignStatus = "ended"
	PlatformCampaignDeleted         PlatformCampaignStatus = "deleted"
)

// PlatformCampaign é a materialização de uma campanha em uma plataforma de anúncios
type PlatformCampaign struct {
	ID                 string                 `json:"id"`
	CampaignID         string                 `json:"campaign_id"`
	CreativeID         string                 `json:"creative_id"`
	Platform           Platform               `json:"platform"`
	AdAccountID        string                 `json:"ad_account_id"`
	ExternalCampaignID string                 `json:"external_campaign_id"`
	ExternalAdSetID    string                 `json:"external_ad_set_id"`
	ExternalCreativeID string                 `json:"external_creative_id"`
	ExternalAdID       string                 `json:"external_ad_id"`
	Variant            Variant                `json:"variant"`
	BudgetAllocated    float64                `json:"budget_allocated"`
	DailyBudget        float64                `json:"daily_budget"`
	Status             PlatformCampaignStatus `json:"status"`
	Totals             MetricTotals           `json:"totals"`
	Derived            DerivedMetrics         `json:"derived"`
	Frequency          float64                `json:"frequency"`
	LaunchedAt         *time.Time             `json:"launched_at"`
	LastSyncedAt       *time.Time             `json:"last_synced_at"`
	ErrorMessage       string                 `json:"error_message"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// IsMaterialized indica se a campanha já existe na plataforma remota
func (pc *PlatformCampaign) IsMaterialized() bool {
	return pc.ExternalCampaignID != ""
}

// RemoteCampaign são os identificadores devolvidos pela plataforma após a criação da hierarquia remota
type RemoteCampaign struct {
	AdAccountID        string
	ExternalCampaignID string
	ExternalAdSetID    string
	ExternalCreativeID string
	ExternalAdID       string
}
