package metaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/internal/config"
)

func TestMetaClient_CreateObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v22.0/act_1/campaigns", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "tok", r.PostForm.Get("access_token"))
		assert.Equal(t, "Show", r.PostForm.Get("name"))
		_, _ = w.Write([]byte(`{"id":"123"}`))
	}))
	defer server.Close()

	client := NewClient(config.Meta{URL: server.URL + "/v22.0"})

	id, err := client.CreateObject(context.Background(), "tok", "act_1", "campaigns", url.Values{"name": {"Show"}})
	require.NoError(t, err)
	assert.Equal(t, "123", id)
}

func TestMetaClient_ExpiredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Session has expired","type":"OAuthException","code":190}}`))
	}))
	defer server.Close()

	client := NewClient(config.Meta{URL: server.URL})

	err := client.UpdateObject(context.Background(), "tok", "c1", url.Values{"status": {"PAUSED"}})
	assert.ErrorIs(t, err, platform.ErrTokenExpired)
}

func TestMetaClient_GetInsightsFollowsPaging(t *testing.T) {
	var server *httptest.Server
	calls := 0
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("after") == "" {
			assert.Equal(t, "1", r.URL.Query().Get("time_increment"))
			_, _ = w.Write([]byte(`{"data":[{"date_start":"2026-03-01","impressions":"10"}],"paging":{"next":"` + server.URL + `/c1/insights?after=abc"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"date_start":"2026-03-02","impressions":"20"}],"paging":{}}`))
	}))
	defer server.Close()

	client := NewClient(config.Meta{URL: server.URL})

	insights, err := client.GetInsights(context.Background(), "tok", "c1", "2026-03-01", "2026-03-02")
	require.NoError(t, err)
	assert.Len(t, insights, 2)
	assert.Equal(t, 2, calls)
}

func TestMetaClient_GetInsightsPartialOnFailure(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("after") == "" {
			_, _ = w.Write([]byte(`{"data":[{"date_start":"2026-03-01"}],"paging":{"next":"` + server.URL + `/c1/insights?after=abc"}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(config.Meta{URL: server.URL})

	insights, err := client.GetInsights(context.Background(), "tok", "c1", "2026-03-01", "2026-03-02")
	assert.Error(t, err)
	assert.Len(t, insights, 1)
}
