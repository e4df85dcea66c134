// Package lock serializa as operações sobre uma mesma campanha de plataforma
package lock

import (
	"context"
	"errors"
	"fmt"
)

var ErrLockTimeout = errors.New("timeout aguardando lock")

// Locker obtém um escopo de exclusão mútua por chave. release deve ser chamado exatamente uma vez.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// PlatformCampaignKey é a chave de exclusão das operações sobre uma campanha de plataforma
func PlatformCampaignKey(platformCampaignID string) string {
	return fmt.Sprintf("platform_campaign:%s", platformCampaignID)
}

// WithLock executa fn segurando o lock da chave
func WithLock(ctx context.Context, locker Locker, key string, fn func() error) error {
	release, err := locker.Lock(ctx, key)
	if err != nil {
		return fmt.Errorf("erro ao obter lock %s: %w", key, err)
	}
	defer release()

	return fn()
}
