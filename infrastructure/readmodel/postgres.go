// Package readmodel lê as visões mantidas pelos subsistemas de ingressos e rastreamento:
// pedidos atribuídos e saúde das contas de anúncios
package readmodel

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vfg2006/campaign-engine/internal/config"
)

// NewPool cria o pool pgx para o banco de leitura e valida a conexão
func NewPool(ctx context.Context, cfg config.ReadModel) (*pgxpool.Pool, error) {
	poolConf, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolConf.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConf)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
