package domain

import (
	"time"
)

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

// AdAccount é a visão de saúde de uma conta de anúncios mantida pelo subsistema de rastreamento
type AdAccount struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenant_id"`
	Platform       Platform        `json:"platform"`
	ExternalID     string          `json:"external_id"`
	Name           string          `json:"name"`
	Status         AdAccountStatus `json:"status"`
	AccessToken    string          `json:"-"`
	PixelID        string          `json:"pixel_id"`
	TokenExpiresAt *time.Time      `json:"token_expires_at"`
}

func (a *AdAccount) IsActive() bool {
	return a.Status == AdAccountStatusActive
}

// IsTokenExpired indica se o token de acesso expirou no instante informado
func (a *AdAccount) IsTokenExpired(now time.Time) bool {
	return a.TokenExpiresAt != nil && !a.TokenExpiresAt.After(now)
}
