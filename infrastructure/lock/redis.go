package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "campaign-engine:lock:"

// Só remove a chave se o token ainda for nosso
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker é um lock distribuído com SET NX PX, para vários workers concorrentes
type RedisLocker struct {
	client        *goredis.Client
	ttl           time.Duration
	retryInterval time.Duration
}

func NewRedisLocker(client *goredis.Client, ttl, retryInterval time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	if retryInterval <= 0 {
		retryInterval = 200 * time.Millisecond
	}

	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		retryInterval: retryInterval,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.New().String()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrLockTimeout
			}
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}

	return func() {
		// O contexto da operação pode já ter expirado, a liberação usa um próprio
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("Erro ao liberar lock no Redis")
		}
	}, nil
}
