package tiktok

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

var account = &domain.AdAccount{ID: "acc1", ExternalID: "adv1", AccessToken: "tok", PixelID: "px1"}

func newTestIntegrator(t *testing.T, handler http.HandlerFunc) *TikTokIntegrator {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(config.TikTok{URL: server.URL})
}

func TestTikTokIntegrator_CreateCampaign(t *testing.T) {
	integrator := newTestIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get("Access-Token"))
		switch r.URL.Path {
		case "/campaign/create/":
			_, _ = w.Write([]byte(`{"code":0,"message":"OK","data":{"campaign_id":"c1"}}`))
		case "/adgroup/create/":
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), `"budget":40`)
			assert.Contains(t, string(body), `"AGE_25_34"`)
			_, _ = w.Write([]byte(`{"code":0,"message":"OK","data":{"adgroup_id":"g1"}}`))
		case "/ad/create/":
			_, _ = w.Write([]byte(`{"code":0,"message":"OK","data":{"ad_ids":["a1"]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	remote, err := integrator.CreateCampaign(context.Background(), account, platform.CreateRequest{
		Campaign:    &domain.Campaign{Name: "Show", Objective: domain.ObjectiveTraffic},
		Targeting:   &domain.Targeting{AgeMin: 25, AgeMax: 30, Genders: []string{"all"}},
		Creative:    &domain.Creative{Name: "c1", Type: domain.CreativeTypeVideo},
		Platform:    domain.PlatformTikTok,
		DailyBudget: 40,
	})

	require.NoError(t, err)
	assert.Equal(t, &domain.RemoteCampaign{
		ExternalCampaignID: "c1",
		ExternalAdSetID:    "g1",
		ExternalCreativeID: "a1",
		ExternalAdID:       "a1",
	}, remote)
}

func TestTikTokIntegrator_EnvelopeErrors(t *testing.T) {
	code := `{"code":40105,"message":"Access token is invalid"}`
	integrator := newTestIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(code))
	})
	pc := &domain.PlatformCampaign{ExternalCampaignID: "c1", ExternalAdSetID: "g1"}

	assert.ErrorIs(t, integrator.Pause(context.Background(), account, pc), platform.ErrTokenExpired)

	code = `{"code":40002,"message":"budget too low"}`
	err := integrator.UpdateBudget(context.Background(), account, pc, 1)
	assert.ErrorContains(t, err, "budget too low")
	assert.NotErrorIs(t, err, platform.ErrTokenExpired)
}

func TestTikTokIntegrator_FetchInsightsPaginates(t *testing.T) {
	integrator := newTestIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/report/integrated/get/", r.URL.Path)
		if r.URL.Query().Get("page") == "1" {
			_, _ = w.Write([]byte(`{"code":0,"data":{"list":[{"dimensions":{"stat_time_day":"2026-03-01 00:00:00"},"metrics":{"spend":"10.5","impressions":"900","clicks":"30","conversion":"2","frequency":"1.2"}}],"page_info":{"page":1,"total_page":2}}}`))
			return
		}
		_, _ = w.Write([]byte(`{"code":0,"data":{"list":[{"dimensions":{"stat_time_day":"2026-03-02 00:00:00"},"metrics":{"impressions":"100"}}],"page_info":{"page":2,"total_page":2}}}`))
	})

	rows, err := integrator.FetchInsights(context.Background(), account, &domain.PlatformCampaign{ExternalCampaignID: "c1"},
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.InDelta(t, 10.5, rows[0].Spend, 1e-9)
	assert.Equal(t, int64(2), rows[0].Conversions)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), rows[1].Date)
}

func TestAgeGroups(t *testing.T) {
	assert.Equal(t, []string{"AGE_18_24", "AGE_25_34", "AGE_35_44", "AGE_45_54", "AGE_55_100"}, ageGroups(18, 65))
	assert.Equal(t, []string{"AGE_25_34"}, ageGroups(26, 30))
}
