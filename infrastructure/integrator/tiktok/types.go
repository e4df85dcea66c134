package tiktok

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// Códigos de erro de autenticação da Business API
var tokenErrorCodes = map[int]struct{}{
	40100: {},
	40104: {},
	40105: {},
}

var errEmptyResponse = errors.New("tiktok: resposta sem dados")

type envelope struct {
	Code      int                 `json:"code"`
	Message   string              `json:"message"`
	RequestID string              `json:"request_id"`
	Data      jsoniter.RawMessage `json:"data"`
}

type campaignCreated struct {
	CampaignID string `json:"campaign_id"`
}

type adGroupCreated struct {
	AdGroupID string `json:"adgroup_id"`
}

type adCreated struct {
	AdIDs []string `json:"ad_ids"`
}

type reportData struct {
	List     []reportRow `json:"list"`
	PageInfo struct {
		Page      int `json:"page"`
		TotalPage int `json:"total_page"`
	} `json:"page_info"`
}

type reportRow struct {
	Dimensions struct {
		StatTimeDay string `json:"stat_time_day"`
	} `json:"dimensions"`
	Metrics struct {
		Spend              string `json:"spend"`
		Impressions        string `json:"impressions"`
		Reach              string `json:"reach"`
		Clicks             string `json:"clicks"`
		Conversion         string `json:"conversion"`
		Frequency          string `json:"frequency"`
		TotalPurchaseValue string `json:"total_complete_payment_value"`
		VideoPlayActions   string `json:"video_play_actions"`
	} `json:"metrics"`
}

type eventRequest struct {
	EventSource   string  `json:"event_source"`
	EventSourceID string  `json:"event_source_id"`
	Data          []event `json:"data"`
}

type event struct {
	Event      string          `json:"event"`
	EventTime  int64           `json:"event_time"`
	EventID    string          `json:"event_id"`
	User       map[string]any  `json:"user,omitempty"`
	Properties eventProperties `json:"properties"`
}

type eventProperties struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
	OrderID  string  `json:"order_id,omitempty"`
}
