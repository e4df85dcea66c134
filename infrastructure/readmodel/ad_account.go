package readmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

//go:generate mockgen -source=ad_account.go -destination=mocks/ad_account_mock.go -package=mocks

// AdAccountReader consulta a saúde das contas de anúncios (ativa e validade do token)
type AdAccountReader interface {
	GetAdAccountByID(ctx context.Context, id string) (*domain.AdAccount, error)
	GetAdAccountForPlatform(ctx context.Context, tenantID string, platform domain.Platform) (*domain.AdAccount, error)
}

type adAccountReader struct {
	pool *pgxpool.Pool
}

func NewAdAccountReader(pool *pgxpool.Pool) AdAccountReader {
	return &adAccountReader{pool: pool}
}

var adAccountColumns = []string{
	"a.id",
	"a.tenant_id",
	"a.platform",
	"a.external_id",
	"a.name",
	"a.status",
	"COALESCE(a.access_token, '')",
	"COALESCE(a.pixel_id, '')",
	"a.token_expires_at",
}

func (r *adAccountReader) GetAdAccountByID(ctx context.Context, id string) (*domain.AdAccount, error) {
	return r.getAdAccount(ctx, squirrel.Eq{"a.id": id})
}

// GetAdAccountForPlatform devolve a conta ativa do tenant na rede. Instagram usa a conta do Facebook.
func (r *adAccountReader) GetAdAccountForPlatform(ctx context.Context, tenantID string, platform domain.Platform) (*domain.AdAccount, error) {
	if platform == domain.PlatformInstagram {
		platform = domain.PlatformFacebook
	}

	return r.getAdAccount(ctx, squirrel.Eq{
		"a.tenant_id": tenantID,
		"a.platform":  platform,
		"a.status":    domain.AdAccountStatusActive,
	})
}

func (r *adAccountReader) getAdAccount(ctx context.Context, where squirrel.Eq) (*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select(adAccountColumns...).
		From("ad_accounts a").
		Where(where).
		OrderBy("a.updated_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var acc domain.AdAccount
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&acc.ID,
		&acc.TenantID,
		&acc.Platform,
		&acc.ExternalID,
		&acc.Name,
		&acc.Status,
		&acc.AccessToken,
		&acc.PixelID,
		&acc.TokenExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar conta de anúncios: %w", err)
	}

	return &acc, nil
}
