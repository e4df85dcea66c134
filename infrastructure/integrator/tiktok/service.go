// Package tiktok integra a TikTok Business API
package tiktok

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	network       = "tiktok"
	statusEnable  = "ENABLE"
	statusDisable = "DISABLE"
	reportPageMax = 50
)

type TikTokIntegrator struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg config.TikTok) *TikTokIntegrator {
	return &TikTokIntegrator{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		httpClient: utils.NewHTTPClient(cfg.Timeout),
	}
}

var _ platform.Adapter = (*TikTokIntegrator)(nil)

func (s *TikTokIntegrator) CreateCampaign(ctx context.Context, account *domain.AdAccount, req platform.CreateRequest) (*domain.RemoteCampaign, error) {
	name := fmt.Sprintf("%s - tiktok", req.Campaign.Name)
	if req.Variant != domain.VariantNone {
		name = fmt.Sprintf("%s - %s", name, req.Variant)
	}
	objective, goal := objective(req.Campaign.Objective)

	var created campaignCreated
	err := s.post(ctx, account, "/campaign/create/", map[string]any{
		"advertiser_id":    account.ExternalID,
		"campaign_name":    name,
		"objective_type":   objective,
		"budget_mode":      "BUDGET_MODE_INFINITE",
		"operation_status": statusDisable,
	}, &created)
	if err != nil {
		return nil, err
	}
	remote := &domain.RemoteCampaign{ExternalCampaignID: created.CampaignID}

	adGroup := map[string]any{
		"advertiser_id":       account.ExternalID,
		"campaign_id":         created.CampaignID,
		"adgroup_name":        name,
		"placement_type":      "PLACEMENT_TYPE_AUTOMATIC",
		"budget_mode":         "BUDGET_MODE_DAY",
		"budget":              utils.RoundWithTwoDecimalPlace(req.DailyBudget),
		"schedule_type":       "SCHEDULE_START_END",
		"schedule_start_time": req.Campaign.StartDate.UTC().Format(time.DateTime),
		"schedule_end_time":   req.Campaign.EndDate.UTC().Format(time.DateTime),
		"optimization_goal":   goal,
		"billing_event":       "CPM",
		"operation_status":    statusDisable,
	}
	if account.PixelID != "" && req.Campaign.Objective == domain.ObjectiveConversions {
		adGroup["pixel_id"] = account.PixelID
		adGroup["optimization_event"] = "COMPLETE_PAYMENT"
	}
	if t := req.Targeting; t != nil {
		adGroup["location_ids"] = t.Locations
		adGroup["age_groups"] = ageGroups(t.AgeMin, t.AgeMax)
		adGroup["gender"] = gender(t.Genders)
		if len(t.Languages) > 0 {
			adGroup["languages"] = t.Languages
		}
		if len(t.CustomAudienceIDs) > 0 {
			adGroup["audience_ids"] = t.CustomAudienceIDs
		}
	}

	var group adGroupCreated
	if err := s.post(ctx, account, "/adgroup/create/", adGroup, &group); err != nil {
		return remote, err
	}
	remote.ExternalAdSetID = group.AdGroupID

	landing := req.Campaign.TrackingURL
	if landing == "" {
		landing = req.Campaign.LandingPageURL
	}

	var ads adCreated
	err = s.post(ctx, account, "/ad/create/", map[string]any{
		"advertiser_id": account.ExternalID,
		"adgroup_id":    group.AdGroupID,
		"creatives": []map[string]any{{
			"ad_name":          req.Creative.Name,
			"ad_text":          req.Creative.Body,
			"display_name":     req.Campaign.Name,
			"landing_page_url": landing,
			"call_to_action":   "BOOK_NOW",
			"ad_format":        adFormat(req.Creative.Type),
			"operation_status": statusDisable,
		}},
	}, &ads)
	if err != nil {
		return remote, err
	}
	if len(ads.AdIDs) == 0 {
		return remote, errEmptyResponse
	}
	remote.ExternalAdID = ads.AdIDs[0]
	remote.ExternalCreativeID = ads.AdIDs[0]

	logrus.WithFields(logrus.Fields{
		"campaign_id":          req.Campaign.ID,
		"advertiser_id":        account.ExternalID,
		"external_campaign_id": remote.ExternalCampaignID,
	}).Debug("tiktok: hierarquia criada")

	return remote, nil
}

func (s *TikTokIntegrator) Activate(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign) error {
	return s.setStatus(ctx, account, pc, statusEnable)
}

func (s *TikTokIntegrator) Pause(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign) error {
	return s.setStatus(ctx, account, pc, statusDisable)
}

func (s *TikTokIntegrator) UpdateBudget(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, dailyBudget float64) error {
	if pc.ExternalAdSetID == "" {
		return platform.ErrNotMaterialized
	}

	return s.post(ctx, account, "/adgroup/budget/update/", map[string]any{
		"advertiser_id": account.ExternalID,
		"budget": []map[string]any{{
			"adgroup_id": pc.ExternalAdSetID,
			"budget":     utils.RoundWithTwoDecimalPlace(dailyBudget),
		}},
	}, nil)
}

func (s *TikTokIntegrator) FetchInsights(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, from, to time.Time) ([]domain.InsightRow, error) {
	since, until := platform.DateRange(from, to)
	rows := make([]domain.InsightRow, 0)

	for page := 1; page <= reportPageMax; page++ {
		params := url.Values{}
		params.Set("advertiser_id", account.ExternalID)
		params.Set("report_type", "BASIC")
		params.Set("data_level", "AUCTION_CAMPAIGN")
		params.Set("dimensions", `["campaign_id","stat_time_day"]`)
		params.Set("metrics", `["spend","impressions","reach","clicks","conversion","frequency","total_complete_payment_value","video_play_actions"]`)
		params.Set("filtering", fmt.Sprintf(`[{"field_name":"campaign_ids","filter_type":"IN","filter_value":"[\"%s\"]"}]`, pc.ExternalCampaignID))
		params.Set("start_date", since)
		params.Set("end_date", until)
		params.Set("page", strconv.Itoa(page))
		params.Set("page_size", "100")

		var report reportData
		if err := s.get(ctx, account, "/report/integrated/get/?"+params.Encode(), &report); err != nil {
			return rows, err
		}

		for _, r := range report.List {
			date, err := time.Parse(time.DateTime, r.Dimensions.StatTimeDay)
			if err != nil {
				logrus.WithField("stat_time_day", r.Dimensions.StatTimeDay).Warn("tiktok: linha de relatório ignorada")
				continue
			}
			rows = append(rows, domain.InsightRow{
				Date: domain.TruncateDay(date),
				MetricTotals: domain.MetricTotals{
					Impressions: parseInt(r.Metrics.Impressions),
					Reach:       parseInt(r.Metrics.Reach),
					Clicks:      parseInt(r.Metrics.Clicks),
					Spend:       parseFloat(r.Metrics.Spend),
					Conversions: parseInt(r.Metrics.Conversion),
					Revenue:     parseFloat(r.Metrics.TotalPurchaseValue),
					VideoViews:  parseInt(r.Metrics.VideoPlayActions),
				},
				Frequency: parseFloat(r.Metrics.Frequency),
			})
		}

		if report.PageInfo.TotalPage <= page {
			break
		}
	}

	return rows, nil
}

func (s *TikTokIntegrator) SendConversion(ctx context.Context, account *domain.AdAccount, conv *domain.Conversion) (string, error) {
	if account.PixelID == "" {
		return "", fmt.Errorf("tiktok: conta %s sem pixel configurado", account.ID)
	}

	user, _ := conv.Payload["user_data"].(map[string]any)
	body, err := json.Marshal(eventRequest{
		EventSource:   "web",
		EventSourceID: account.PixelID,
		Data: []event{{
			Event:     eventName(conv.EventName),
			EventTime: conv.CreatedAt.Unix(),
			EventID:   conv.ID,
			User:      user,
			Properties: eventProperties{
				Value:    conv.Value,
				Currency: conv.Currency,
				OrderID:  conv.OrderID,
			},
		}},
	})
	if err != nil {
		return "", err
	}

	resp, err := s.do(ctx, account, http.MethodPost, "/event/track/", body)
	if err != nil {
		return "", err
	}
	if _, err := decode(resp, nil); err != nil {
		return "", err
	}

	return string(resp), nil
}

func (s *TikTokIntegrator) setStatus(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, status string) error {
	if pc.ExternalAdSetID != "" {
		err := s.post(ctx, account, "/adgroup/status/update/", map[string]any{
			"advertiser_id":    account.ExternalID,
			"adgroup_ids":      []string{pc.ExternalAdSetID},
			"operation_status": status,
		}, nil)
		if err != nil {
			return err
		}
	}

	return s.post(ctx, account, "/campaign/status/update/", map[string]any{
		"advertiser_id":    account.ExternalID,
		"campaign_ids":     []string{pc.ExternalCampaignID},
		"operation_status": status,
	}, nil)
}

func (s *TikTokIntegrator) post(ctx context.Context, account *domain.AdAccount, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := s.do(ctx, account, http.MethodPost, path, body)
	if err != nil {
		return err
	}

	_, err = decode(resp, out)
	return err
}

func (s *TikTokIntegrator) get(ctx context.Context, account *domain.AdAccount, path string, out any) error {
	resp, err := s.do(ctx, account, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	_, err = decode(resp, out)
	return err
}

func (s *TikTokIntegrator) do(ctx context.Context, account *domain.AdAccount, method, path string, body []byte) ([]byte, error) {
	resp, err := utils.MakeRequest(ctx, s.httpClient, method, s.baseURL+path, body, map[string]string{
		"Access-Token": account.AccessToken,
	})
	if err != nil {
		return nil, platform.ClassifyHTTPError(network, err)
	}
	return resp, nil
}

// decode lê o envelope da Business API. Erros chegam com HTTP 200 e code diferente de zero.
func decode(body []byte, out any) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("tiktok: erro ao decodificar resposta: %w", err)
	}

	if env.Code != 0 {
		if _, ok := tokenErrorCodes[env.Code]; ok {
			return &env, fmt.Errorf("tiktok: %w: %s", platform.ErrTokenExpired, env.Message)
		}
		return &env, fmt.Errorf("tiktok: code=%d %s (request_id=%s)", env.Code, env.Message, env.RequestID)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &env, fmt.Errorf("tiktok: erro ao decodificar dados: %w", err)
		}
	}

	return &env, nil
}

func objective(o domain.CampaignObjective) (string, string) {
	switch o {
	case domain.ObjectiveConversions:
		return "WEB_CONVERSIONS", "CONVERT"
	case domain.ObjectiveAwareness:
		return "REACH", "REACH"
	case domain.ObjectiveEngagement:
		return "VIDEO_VIEWS", "ENGAGED_VIEW"
	case domain.ObjectiveLeads:
		return "LEAD_GENERATION", "LEAD_GENERATION"
	}
	return "TRAFFIC", "CLICK"
}

func adFormat(t domain.CreativeType) string {
	switch t {
	case domain.CreativeTypeVideo:
		return "SINGLE_VIDEO"
	case domain.CreativeTypeCarousel:
		return "CAROUSEL_ADS"
	}
	return "SINGLE_IMAGE"
}

func eventName(name string) string {
	if name == "" || strings.EqualFold(name, "purchase") {
		return "CompletePayment"
	}
	return name
}

// ageGroups converte a faixa etária nos grupos fixos da TikTok
func ageGroups(minAge, maxAge int) []string {
	groups := []struct {
		name     string
		from, to int
	}{
		{"AGE_18_24", 18, 24},
		{"AGE_25_34", 25, 34},
		{"AGE_35_44", 35, 44},
		{"AGE_45_54", 45, 54},
		{"AGE_55_100", 55, 100},
	}

	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if g.to >= minAge && g.from <= maxAge {
			out = append(out, g.name)
		}
	}
	return out
}

func gender(genders []string) string {
	if len(genders) == 1 {
		switch genders[0] {
		case "male":
			return "GENDER_MALE"
		case "female":
			return "GENDER_FEMALE"
		}
	}
	return "GENDER_UNLIMITED"
}

func parseInt(value string) int64 {
	v, _ := strconv.ParseInt(value, 10, 64)
	return v
}

func parseFloat(value string) float64 {
	v, _ := strconv.ParseFloat(value, 64)
	return v
}
