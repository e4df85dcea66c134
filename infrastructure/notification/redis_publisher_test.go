package notification

import (
	"context"
	"errors"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

type fakePublisher struct {
	channel string
	message any
	err     error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message any) *goredis.IntCmd {
	f.channel = channel
	f.message = message
	cmd := goredis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func TestRedisNotifier_Notify(t *testing.T) {
	publisher := &fakePublisher{}
	notifier := NewRedisNotifier(publisher, "campaign-events")

	notifier.Notify(context.Background(), domain.Notification{
		Type:       domain.NotificationCampaignLaunched,
		TenantID:   "t1",
		CampaignID: "c1",
		Message:    "Campanha lançada",
	})

	assert.Equal(t, "campaign-events", publisher.channel)
	raw, ok := publisher.message.(string)
	require.True(t, ok)

	var decoded domain.Notification
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, domain.NotificationCampaignLaunched, decoded.Type)
	assert.Equal(t, "c1", decoded.CampaignID)
	assert.False(t, decoded.OccurredAt.IsZero())
}

func TestRedisNotifier_NotifyNeverPanicsOnError(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("redis fora do ar")}
	notifier := NewRedisNotifier(publisher, "campaign-events")

	assert.NotPanics(t, func() {
		notifier.Notify(context.Background(), domain.Notification{Type: domain.NotificationBudgetThreshold})
	})
}
