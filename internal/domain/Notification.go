package domain

import "time"

type NotificationType string

const (
	NotificationCampaignLaunched  NotificationType = "campaign_launched"
	NotificationCampaignFailed    NotificationType = "campaign_failed"
	NotificationCampaignPaused    NotificationType = "campaign_paused"
	NotificationCampaignResumed   NotificationType = "campaign_resumed"
	NotificationCampaignCompleted NotificationType = "campaign_completed"
	NotificationBudgetThreshold   NotificationType = "budget_threshold_reached"
	NotificationBudgetExhausted   NotificationType = "budget_exhausted"
	NotificationABTestWinner      NotificationType = "ab_test_winner"
)

type Notification struct {
	Type       NotificationType `json:"type"`
	TenantID   string           `json:"tenant_id"`
	CampaignID string           `json:"campaign_id"`
	Message    string           `json:"message"`
	Payload    map[string]any   `json:"payload,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
