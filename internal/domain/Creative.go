package domain

import "time"

type CreativeType string

const (
	CreativeTypeImage    CreativeType = "image"
	CreativeTypeVideo    CreativeType = "video"
	CreativeTypeCarousel CreativeType = "carousel"
)

type CreativeStatus string

const (
	CreativeStatusDraft  CreativeStatus = "draft"
	CreativeStatusActive CreativeStatus = "active"
	CreativeStatusPaused CreativeStatus = "paused"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type Creative struct {
	ID             string         `json:"id"`
	CampaignID     string         `json:"campaign_id"`
	Name           string         `json:"name"`
	Type           CreativeType   `json:"type"`
	Headline       string         `json:"headline"`
	Body           string         `json:"body"`
	MediaURL       string         `json:"media_url"`
	CallToAction   string         `json:"call_to_action"`
	Variant        Variant        `json:"variant"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	Status         CreativeStatus `json:"status"`
	Impressions    int64          `json:"impressions"`
	Clicks         int64          `json:"clicks"`
	CTR            float64        `json:"ctr"`
	Spend          float64        `json:"spend"`
	Conversions    int64          `json:"conversions"`
	IsWinner       bool           `json:"is_winner"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (c *Creative) IsApproved() bool {
	return c.ApprovalStatus == ApprovalApproved
}

// CreativeInput é um criativo enviado junto da criação da campanha
type CreativeInput struct {
	Name         string       `json:"name"`
	Type         CreativeType `json:"type"`
	Headline     string       `json:"headline"`
	Body         string       `json:"body"`
	MediaURL     string       `json:"media_url"`
	CallToAction string       `json:"call_to_action"`
	Variant      Variant      `json:"variant"`

	// ApprovalStatus vem preenchido quando o criativo já foi revisado na origem
	ApprovalStatus ApprovalStatus `json:"approval_status"`
}
