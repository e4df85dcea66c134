// Package platform define a fronteira com as redes de anúncios: um adaptador por rede,
// escolhido pelo registro e acessado pelos casos de uso através do Gateway
package platform

import (
	"context"
	"errors"
	"time"

	"github.com/vfg2006/campaign-engine/internal/domain"
)

var (
	ErrUnsupportedPlatform = errors.New("plataforma não suportada")
	ErrAccountNotFound     = errors.New("conta de anúncios não encontrada")
	ErrAccountInactive     = errors.New("conta de anúncios inativa")
	ErrTokenExpired        = errors.New("token de acesso expirado")
	ErrNotMaterialized     = errors.New("campanha ainda não existe na plataforma")
)

// CreateRequest reúne o que uma rede precisa para montar a hierarquia remota
// (campanha, conjunto de anúncios, criativo e anúncio)
type CreateRequest struct {
	Campaign    *domain.Campaign
	Targeting   *domain.Targeting
	Creative    *domain.Creative
	Platform    domain.Platform
	Variant     domain.Variant
	DailyBudget float64
}

//go:generate mockgen -source=adapter.go -destination=mocks/adapter_mock.go -package=mocks
type Adapter interface {
	// CreateCampaign cria a hierarquia remota pausada
	CreateCampaign(ctx context.Context, account *domain.AdAccount, req CreateRequest) (*domain.RemoteCampaign, error)
	Activate(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign) error
	Pause(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign) error
	UpdateBudget(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, dailyBudget float64) error
	// FetchInsights devolve uma linha por dia. Em caso de falha pode devolver as linhas já lidas junto do erro.
	FetchInsights(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, from, to time.Time) ([]domain.InsightRow, error)
	// SendConversion entrega o evento à API de conversões e devolve a resposta bruta da plataforma
	SendConversion(ctx context.Context, account *domain.AdAccount, conv *domain.Conversion) (string, error)
}

// DateRange formata as datas do intervalo no padrão aceito pelas APIs
func DateRange(from, to time.Time) (string, string) {
	return from.Format(time.DateOnly), to.Format(time.DateOnly)
}
