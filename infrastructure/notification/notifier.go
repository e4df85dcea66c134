// Package notification publica eventos de campanha sem nunca falhar a operação que os origina
package notification

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

// Notifier é o destino dos avisos de lançamento, pausa, conclusão e orçamento. Erros são apenas logados.
type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification)
}

// LogNotifier apenas registra o aviso no log, usado quando não há Redis configurado
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(_ context.Context, notification domain.Notification) {
	logrus.WithFields(logrus.Fields{
		"type":        notification.Type,
		"tenant_id":   notification.TenantID,
		"campaign_id": notification.CampaignID,
	}).Info(notification.Message)
}

// NopNotifier descarta os avisos, usado com NOTIFICATION_ENABLED=false
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, domain.Notification) {}
