package meta

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/campaign-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"go.uber.org/mock/gomock"
)

var account = &domain.AdAccount{ID: "acc1", ExternalID: "999", AccessToken: "tok", PixelID: "px1", Status: domain.AdAccountStatusActive}

func createRequest() platform.CreateRequest {
	return platform.CreateRequest{
		Campaign: &domain.Campaign{
			ID:          "cmp1",
			Name:        "Show",
			Objective:   domain.ObjectiveConversions,
			TrackingURL: "https://evento.com/?utm_source=meta",
			StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		Targeting:   domain.DefaultTargeting("cmp1", domain.AudienceHints{Locations: []string{"BR"}}),
		Creative:    &domain.Creative{Name: "c1", Headline: "Ingressos", Body: "Garanta já"},
		Platform:    domain.PlatformInstagram,
		Variant:     domain.VariantA,
		DailyBudget: 33.33,
	}
}

func TestMetaIntegrator_CreateCampaign(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(client)

	gomock.InOrder(
		client.EXPECT().CreateObject(gomock.Any(), "tok", "act_999", "campaigns", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string, params url.Values) (string, error) {
				assert.Equal(t, "OUTCOME_SALES", params.Get("objective"))
				assert.Equal(t, metadomain.StatusPaused, params.Get("status"))
				assert.Equal(t, "Show - instagram - A", params.Get("name"))
				return "c1", nil
			}),
		client.EXPECT().CreateObject(gomock.Any(), "tok", "act_999", "adsets", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string, params url.Values) (string, error) {
				assert.Equal(t, "3333", params.Get("daily_budget"))
				assert.Equal(t, "c1", params.Get("campaign_id"))
				assert.Contains(t, params.Get("targeting"), "\"instagram\"")
				assert.Contains(t, params.Get("promoted_object"), "px1")
				return "as1", nil
			}),
		client.EXPECT().CreateObject(gomock.Any(), "tok", "act_999", "adcreatives", gomock.Any()).Return("cr1", nil),
		client.EXPECT().CreateObject(gomock.Any(), "tok", "act_999", "ads", gomock.Any()).Return("ad1", nil),
	)

	remote, err := integrator.CreateCampaign(context.Background(), account, createRequest())

	require.NoError(t, err)
	assert.Equal(t, &domain.RemoteCampaign{
		ExternalCampaignID: "c1",
		ExternalAdSetID:    "as1",
		ExternalCreativeID: "cr1",
		ExternalAdID:       "ad1",
	}, remote)
}

func TestMetaIntegrator_CreateCampaign_PartialHierarchy(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(client)

	client.EXPECT().CreateObject(gomock.Any(), "tok", "act_999", "campaigns", gomock.Any()).Return("c1", nil)
	client.EXPECT().CreateObject(gomock.Any(), "tok", "act_999", "adsets", gomock.Any()).Return("", errors.New("invalid targeting"))

	remote, err := integrator.CreateCampaign(context.Background(), account, createRequest())

	assert.ErrorContains(t, err, "invalid targeting")
	require.NotNil(t, remote)
	assert.Equal(t, "c1", remote.ExternalCampaignID)
}

func TestMetaIntegrator_ActivateAndBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(client)

	pc := &domain.PlatformCampaign{ExternalCampaignID: "c1", ExternalAdSetID: "as1", ExternalAdID: "ad1"}

	gomock.InOrder(
		client.EXPECT().UpdateObject(gomock.Any(), "tok", "ad1", gomock.Any()).Return(nil),
		client.EXPECT().UpdateObject(gomock.Any(), "tok", "as1", gomock.Any()).Return(nil),
		client.EXPECT().UpdateObject(gomock.Any(), "tok", "c1", gomock.Any()).Return(nil),
	)
	require.NoError(t, integrator.Activate(context.Background(), account, pc))

	client.EXPECT().UpdateObject(gomock.Any(), "tok", "as1", url.Values{"daily_budget": {"5000"}}).Return(nil)
	require.NoError(t, integrator.UpdateBudget(context.Background(), account, pc, 50))

	assert.ErrorIs(t, integrator.UpdateBudget(context.Background(), account, &domain.PlatformCampaign{}, 10), platform.ErrNotMaterialized)
}

func TestMetaIntegrator_FetchInsights(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(client)

	pc := &domain.PlatformCampaign{ID: "pc1", ExternalCampaignID: "c1"}
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	client.EXPECT().GetInsights(gomock.Any(), "tok", "c1", "2026-03-01", "2026-03-02").Return([]metadomain.Insight{
		{
			DateStart:    "2026-03-01",
			Impressions:  "1000",
			Clicks:       "20",
			Spend:        "12.50",
			Frequency:    "1.4",
			Actions:      []metadomain.Action{{ActionType: "purchase", Value: "3"}, {ActionType: "link_click", Value: "18"}},
			ActionValues: []metadomain.Action{{ActionType: "purchase", Value: "300.5"}},
		},
		{DateStart: "inválida"},
	}, errors.New("page 2 failed"))

	rows, err := integrator.FetchInsights(context.Background(), account, pc, from, to)

	assert.ErrorContains(t, err, "page 2 failed")
	require.Len(t, rows, 1)
	assert.Equal(t, from, rows[0].Date)
	assert.Equal(t, int64(1000), rows[0].Impressions)
	assert.Equal(t, int64(3), rows[0].Conversions)
	assert.InDelta(t, 300.5, rows[0].Revenue, 1e-9)
	assert.InDelta(t, 1.4, rows[0].Frequency, 1e-9)
}

func TestMetaIntegrator_SendConversion(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(client)

	conv := &domain.Conversion{ID: "cv1", EventName: "Purchase", Value: 120, Currency: "BRL", OrderID: "o1",
		Payload: map[string]any{"em": "hash"}}

	client.EXPECT().SendEvents(gomock.Any(), "tok", "px1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, events []metadomain.ServerEvent) ([]byte, error) {
			require.Len(t, events, 1)
			assert.Equal(t, "cv1", events[0].EventID)
			assert.Equal(t, "hash", events[0].UserData["em"])
			return []byte(`{"events_received":1}`), nil
		})

	resp, err := integrator.SendConversion(context.Background(), account, conv)
	require.NoError(t, err)
	assert.Equal(t, `{"events_received":1}`, resp)

	_, err = integrator.SendConversion(context.Background(), &domain.AdAccount{}, conv)
	assert.Error(t, err)
}
