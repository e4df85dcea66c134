package insighting

import (
	"context"

	"github.com/vfg2006/campaign-engine/internal/domain"
)

// SyncOptions ajusta o alcance de uma sincronização
type SyncOptions struct {
	// IncludeStopped sincroniza também as campanhas de plataforma pausadas e encerradas, usado na conclusão
	IncludeStopped bool
}

// SyncResult resume uma sincronização de campanha
type SyncResult struct {
	CampaignID        string `json:"campaign_id"`
	PlatformCampaigns int    `json:"platform_campaigns"`
	Synced            int    `json:"synced"`
	Failed            int    `json:"failed"`
	Rows              int    `json:"rows"`
	AggregatedRows    int    `json:"aggregated_rows"`
	ReconciledDays    int    `json:"reconciled_days"`
}

// Syncer sincroniza, consolida e reconcilia as métricas de uma campanha
//
//go:generate mockgen -source=interfaces.go -destination=mocks/insighting_mock.go -package=mocks
type Syncer interface {
	SyncCampaign(ctx context.Context, campaign *domain.Campaign, opts SyncOptions) (*SyncResult, error)
}
