package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/config"
)

// NewClient cria o cliente Redis a partir da URL configurada e valida a conexão
func NewClient(ctx context.Context, cfg config.Redis) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao interpretar REDIS_URL: %w", err)
	}

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("erro ao conectar ao Redis: %w", err)
	}

	logrus.WithField("addr", opts.Addr).Info("Conexão com Redis estabelecida com sucesso")
	return client, nil
}
