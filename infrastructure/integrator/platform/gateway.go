package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/campaign-engine/infrastructure/readmodel"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

// Gateway resolve a conta e o adaptador de cada chamada. A exclusão mútua por PlatformCampaign
// fica a cargo de quem chama.
//
//go:generate mockgen -source=gateway.go -destination=mocks/gateway_mock.go -package=mocks
type Gateway interface {
	CreateCampaign(ctx context.Context, req CreateRequest) (*domain.RemoteCampaign, error)
	Activate(ctx context.Context, pc *domain.PlatformCampaign) error
	Pause(ctx context.Context, pc *domain.PlatformCampaign) error
	UpdateBudget(ctx context.Context, pc *domain.PlatformCampaign, dailyBudget float64) error
	FetchInsights(ctx context.Context, pc *domain.PlatformCampaign, from, to time.Time) ([]domain.InsightRow, error)
	SendConversion(ctx context.Context, account *domain.AdAccount, conv *domain.Conversion) (string, error)
}

type gateway struct {
	registry *Registry
	accounts readmodel.AdAccountReader
	clock    utils.Clock
}

func NewGateway(registry *Registry, accounts readmodel.AdAccountReader, clock utils.Clock) Gateway {
	return &gateway{
		registry: registry,
		accounts: accounts,
		clock:    clock,
	}
}

func (g *gateway) CreateCampaign(ctx context.Context, req CreateRequest) (*domain.RemoteCampaign, error) {
	adapter, err := g.registry.Adapter(req.Platform)
	if err != nil {
		return nil, err
	}

	account, err := g.accounts.GetAdAccountForPlatform(ctx, req.Campaign.TenantID, req.Platform)
	if err != nil {
		return nil, err
	}
	if err := g.checkAccount(account); err != nil {
		return nil, fmt.Errorf("%w: tenant %s plataforma %s", err, req.Campaign.TenantID, req.Platform)
	}

	remote, err := adapter.CreateCampaign(ctx, account, req)
	if err != nil {
		return nil, err
	}
	remote.AdAccountID = account.ID

	return remote, nil
}

func (g *gateway) Activate(ctx context.Context, pc *domain.PlatformCampaign) error {
	adapter, account, err := g.resolve(ctx, pc)
	if err != nil {
		return err
	}
	return adapter.Activate(ctx, account, pc)
}

func (g *gateway) Pause(ctx context.Context, pc *domain.PlatformCampaign) error {
	adapter, account, err := g.resolve(ctx, pc)
	if err != nil {
		return err
	}
	return adapter.Pause(ctx, account, pc)
}

func (g *gateway) UpdateBudget(ctx context.Context, pc *domain.PlatformCampaign, dailyBudget float64) error {
	adapter, account, err := g.resolve(ctx, pc)
	if err != nil {
		return err
	}
	return adapter.UpdateBudget(ctx, account, pc, dailyBudget)
}

func (g *gateway) FetchInsights(ctx context.Context, pc *domain.PlatformCampaign, from, to time.Time) ([]domain.InsightRow, error) {
	adapter, account, err := g.resolve(ctx, pc)
	if err != nil {
		return nil, err
	}
	return adapter.FetchInsights(ctx, account, pc, from, to)
}

func (g *gateway) SendConversion(ctx context.Context, account *domain.AdAccount, conv *domain.Conversion) (string, error) {
	adapter, err := g.registry.Adapter(conv.Platform)
	if err != nil {
		return "", err
	}
	return adapter.SendConversion(ctx, account, conv)
}

func (g *gateway) resolve(ctx context.Context, pc *domain.PlatformCampaign) (Adapter, *domain.AdAccount, error) {
	if !pc.IsMaterialized() {
		return nil, nil, ErrNotMaterialized
	}

	adapter, err := g.registry.Adapter(pc.Platform)
	if err != nil {
		return nil, nil, err
	}

	account, err := g.accounts.GetAdAccountByID(ctx, pc.AdAccountID)
	if err != nil {
		return nil, nil, err
	}
	if err := g.checkAccount(account); err != nil {
		return nil, nil, fmt.Errorf("%w: conta %s", err, pc.AdAccountID)
	}

	return adapter, account, nil
}

func (g *gateway) checkAccount(account *domain.AdAccount) error {
	switch {
	case account == nil:
		return ErrAccountNotFound
	case !account.IsActive():
		return ErrAccountInactive
	case account.IsTokenExpired(g.clock.Now()):
		return ErrTokenExpired
	}
	return nil
}
