package campaigning

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de campanhas
var (
	// Erros de validação
	ErrCampaignIDRequired  = errors.New("campaign ID is required")
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrInvalidCampaign     = errors.New("invalid campaign data")
	ErrInvalidTransition   = errors.New("campaign status transition not allowed")
	ErrNoApprovedCreatives = errors.New("campaign has no approved creatives")
	ErrMissingTargeting    = errors.New("campaign has no active targeting")
	ErrInvalidAllocation   = errors.New("invalid budget allocation")
	ErrInvalidDateRange    = errors.New("invalid date range")

	// Erros de serviços externos
	ErrLaunchFailed = errors.New("campaign failed to launch on every platform")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")

	ErrGenerateID = errors.New("error generating ID")
)

// CampaignError é um erro com contexto adicional para campanhas
type CampaignError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	CampaignID string // ID da campanha envolvida (quando aplicável)
	Details    string // Detalhes adicionais
}

// Error implementa a interface error
func (e *CampaignError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *CampaignError) Unwrap() error {
	return e.Err
}

// NewCampaignError cria um novo CampaignError
func NewCampaignError(err error, code string, details string) *CampaignError {
	return &CampaignError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewCampaignErrorWithID cria um novo CampaignError com ID da campanha
func NewCampaignErrorWithID(err error, code string, campaignID string, details string) *CampaignError {
	return &CampaignError{
		Err:        err,
		Code:       code,
		CampaignID: campaignID,
		Details:    details,
	}
}
