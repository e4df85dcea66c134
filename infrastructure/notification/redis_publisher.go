package notification

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const publishTimeout = 3 * time.Second

// Publisher é o subconjunto do cliente Redis usado para publicar
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *goredis.IntCmd
}

// RedisNotifier publica os avisos em um canal Redis consumido pelo serviço de webhooks/e-mail
type RedisNotifier struct {
	client  Publisher
	channel string
}

func NewRedisNotifier(client Publisher, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) Notify(ctx context.Context, notification domain.Notification) {
	if notification.OccurredAt.IsZero() {
		notification.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(notification)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"type":        notification.Type,
			"campaign_id": notification.CampaignID,
			"error":       err.Error(),
		}).Warn("Erro ao serializar notificação")
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.client.Publish(publishCtx, n.channel, string(data)).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"type":        notification.Type,
			"campaign_id": notification.CampaignID,
			"channel":     n.channel,
			"error":       err.Error(),
		}).Warn("Erro ao publicar notificação")
		return
	}

	logrus.WithFields(logrus.Fields{
		"type":        notification.Type,
		"campaign_id": notification.CampaignID,
	}).Debug("Notificação publicada")
}
