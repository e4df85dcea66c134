package google

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

var account = &domain.AdAccount{ID: "acc1", ExternalID: "123-456-7890", AccessToken: "tok"}

func newTestIntegrator(t *testing.T, handler http.HandlerFunc) *GoogleIntegrator {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(config.Google{URL: server.URL, DeveloperToken: "dev"})
}

func TestGoogleIntegrator_CreateCampaign(t *testing.T) {
	var paths []string
	integrator := newTestIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "dev", r.Header.Get("developer-token"))
		paths = append(paths, r.URL.Path)

		switch {
		case strings.HasSuffix(r.URL.Path, "campaignBudgets:mutate"):
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), `"amountMicros":"25000000"`)
			_, _ = w.Write([]byte(`{"results":[{"resourceName":"customers/1234567890/campaignBudgets/11"}]}`))
		case strings.HasSuffix(r.URL.Path, "campaigns:mutate"):
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), `"status":"PAUSED"`)
			assert.Contains(t, string(body), `"maximizeConversions":{}`)
			_, _ = w.Write([]byte(`{"results":[{"resourceName":"customers/1234567890/campaigns/22"}]}`))
		case strings.HasSuffix(r.URL.Path, "adGroups:mutate"):
			_, _ = w.Write([]byte(`{"results":[{"resourceName":"customers/1234567890/adGroups/33"}]}`))
		case strings.HasSuffix(r.URL.Path, "adGroupAds:mutate"):
			_, _ = w.Write([]byte(`{"results":[{"resourceName":"customers/1234567890/adGroupAds/33~44"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	remote, err := integrator.CreateCampaign(context.Background(), account, platform.CreateRequest{
		Campaign: &domain.Campaign{
			ID: "cmp1", Name: "Show", Objective: domain.ObjectiveConversions,
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		Creative:    &domain.Creative{Name: "c1", Headline: "h", Body: "b"},
		Platform:    domain.PlatformGoogle,
		DailyBudget: 25,
	})

	require.NoError(t, err)
	assert.Equal(t, "22", remote.ExternalCampaignID)
	assert.Equal(t, "33", remote.ExternalAdSetID)
	assert.Equal(t, "33~44", remote.ExternalAdID)
	assert.Equal(t, "/customers/1234567890/campaignBudgets:mutate", paths[0])
	assert.Len(t, paths, 4)
}

func TestGoogleIntegrator_FetchInsights(t *testing.T) {
	integrator := newTestIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "pageToken") {
			assert.Contains(t, string(body), "campaign.id = 22")
			assert.Contains(t, string(body), "BETWEEN '2026-03-01' AND '2026-03-02'")
			_, _ = w.Write([]byte(`{"results":[{"segments":{"date":"2026-03-01"},"metrics":{"impressions":"1000","clicks":"50","costMicros":"12500000","conversions":2.0,"conversionsValue":240.5}}],"nextPageToken":"p2"}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"segments":{"date":"2026-03-02"},"metrics":{"impressions":"10"}}]}`))
	})

	rows, err := integrator.FetchInsights(context.Background(), account, &domain.PlatformCampaign{ExternalCampaignID: "22"},
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1000), rows[0].Impressions)
	assert.InDelta(t, 12.5, rows[0].Spend, 1e-9)
	assert.Equal(t, int64(2), rows[0].Conversions)
	assert.InDelta(t, 240.5, rows[0].Revenue, 1e-9)
	assert.Equal(t, int64(10), rows[1].Impressions)
}

func TestGoogleIntegrator_UnauthorizedIsTokenExpired(t *testing.T) {
	integrator := newTestIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"status":"UNAUTHENTICATED"}}`))
	})

	err := integrator.Pause(context.Background(), account, &domain.PlatformCampaign{ExternalCampaignID: "22"})
	assert.ErrorIs(t, err, platform.ErrTokenExpired)
}

func TestGoogleIntegrator_SendConversionRequiresGclid(t *testing.T) {
	integrator := New(config.Google{URL: "http://localhost"})

	_, err := integrator.SendConversion(context.Background(), account, &domain.Conversion{ID: "cv1", Payload: map[string]any{}})
	assert.ErrorContains(t, err, "gclid")
}
