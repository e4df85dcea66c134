package domain

import "time"

type ConversionStatus string

const (
	ConversionPending   ConversionStatus = "pending"
	ConversionSent      ConversionStatus = "sent"
	ConversionFailed    ConversionStatus = "failed"
	ConversionAbandoned ConversionStatus = "abandoned"
)

// Conversion é uma tentativa de entrega de um evento de compra à API de conversões de uma plataforma
type Conversion struct {
	ID               string           `json:"id"`
	TenantID         string           `json:"tenant_id"`
	CampaignID       *string          `json:"campaign_id"`
	AdAccountID      string           `json:"ad_account_id"`
	Platform         Platform         `json:"platform"`
	EventName        string           `json:"event_name"`
	EventID          string           `json:"event_id"`
	OrderID          string           `json:"order_id"`
	Value            float64          `json:"value"`
	Currency         string           `json:"currency"`
	Payload          map[string]any   `json:"payload"`
	Status           ConversionStatus `json:"status"`
	RetryCount       int              `json:"retry_count"`
	ErrorMessage     string           `json:"error_message"`
	PlatformResponse string           `json:"platform_response"`
	SentAt           *time.Time       `json:"sent_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type ConversionRetryResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Abandoned int `json:"abandoned"`
	Exhausted int `json:"exhausted"`
}
