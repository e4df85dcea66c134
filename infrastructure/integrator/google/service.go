// Package google integra a Google Ads REST API
package google

import (
	"context"
	"fmt"
	"net/http"
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
	statusEnabled = "ENABLED"
	statusPaused  = "PAUSED"
	network       = "google"
	microsPerUnit = 1_000_000
)

type GoogleIntegrator struct {
	baseURL        string
	developerToken string
	httpClient     *http.Client
}

func New(cfg config.Google) *GoogleIntegrator {
	return &GoogleIntegrator{
		baseURL:        strings.TrimRight(cfg.URL, "/"),
		developerToken: cfg.DeveloperToken,
		httpClient:     utils.NewHTTPClient(cfg.Timeout),
	}
}

var _ platform.Adapter = (*GoogleIntegrator)(nil)

func (g *GoogleIntegrator) CreateCampaign(ctx context.Context, account *domain.AdAccount, req platform.CreateRequest) (*domain.RemoteCampaign, error) {
	name := fmt.Sprintf("%s - google", req.Campaign.Name)
	if req.Variant != domain.VariantNone {
		name = fmt.Sprintf("%s - %s", name, req.Variant)
	}

	shared := false
	budgetResource, err := g.mutate(ctx, account, "campaignBudgets", operation{Create: campaignBudget{
		Name:             fmt.Sprintf("%s - %s", name, req.Campaign.ID),
		AmountMicros:     toMicros(req.DailyBudget),
		DeliveryMethod:   "STANDARD",
		ExplicitlyShared: &shared,
	}})
	if err != nil {
		return nil, err
	}

	c := campaign{
		Name:                   name,
		Status:                 statusPaused,
		AdvertisingChannelType: channelType(req.Campaign.Objective),
		CampaignBudget:         budgetResource,
		StartDate:              req.Campaign.StartDate.Format(time.DateOnly),
		EndDate:                req.Campaign.EndDate.Format(time.DateOnly),
	}
	if req.Campaign.Objective == domain.ObjectiveConversions {
		c.MaximizeConversions = &struct{}{}
	} else {
		c.TargetSpend = &struct{}{}
	}

	campaignResource, err := g.mutate(ctx, account, "campaigns", operation{Create: c})
	if err != nil {
		return nil, err
	}
	remote := &domain.RemoteCampaign{ExternalCampaignID: resourceID(campaignResource)}

	adGroupResource, err := g.mutate(ctx, account, "adGroups", operation{Create: adGroup{
		Name:     name,
		Campaign: campaignResource,
		Status:   statusPaused,
		Type:     adGroupType(c.AdvertisingChannelType),
	}})
	if err != nil {
		return remote, err
	}
	remote.ExternalAdSetID = resourceID(adGroupResource)

	adResource, err := g.mutate(ctx, account, "adGroupAds", operation{Create: adGroupAd{
		AdGroup: adGroupResource,
		Status:  statusEnabled,
		Ad:      newAd(req),
	}})
	if err != nil {
		return remote, err
	}
	remote.ExternalAdID = resourceID(adResource)
	remote.ExternalCreativeID = remote.ExternalAdID

	logrus.WithFields(logrus.Fields{
		"campaign_id":          req.Campaign.ID,
		"customer_id":          customerID(account),
		"external_campaign_id": remote.ExternalCampaignID,
	}).Debug("google: hierarquia criada")

	return remote, nil
}

func (g *GoogleIntegrator) Activate(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign) error {
	return g.setStatus(ctx, account, pc, statusEnabled)
}

func (g *GoogleIntegrator) Pause(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign) error {
	return g.setStatus(ctx, account, pc, statusPaused)
}

// UpdateBudget localiza o orçamento da campanha e altera o valor diário
func (g *GoogleIntegrator) UpdateBudget(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, dailyBudget float64) error {
	rows, _, err := g.search(ctx, account, fmt.Sprintf(
		"SELECT campaign.campaign_budget FROM campaign WHERE campaign.id = %s", pc.ExternalCampaignID), "")
	if err != nil {
		return err
	}
	if len(rows) == 0 || rows[0].Campaign.CampaignBudget == "" {
		return fmt.Errorf("google: orçamento da campanha %s não encontrado", pc.ExternalCampaignID)
	}

	_, err = g.mutate(ctx, account, "campaignBudgets", operation{
		Update: campaignBudget{
			ResourceName: rows[0].Campaign.CampaignBudget,
			AmountMicros: toMicros(dailyBudget),
		},
		UpdateMask: "amount_micros",
	})
	return err
}

func (g *GoogleIntegrator) FetchInsights(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, from, to time.Time) ([]domain.InsightRow, error) {
	since, until := platform.DateRange(from, to)
	query := fmt.Sprintf(
		"SELECT segments.date, metrics.impressions, metrics.clicks, metrics.cost_micros, metrics.conversions, "+
			"metrics.conversions_value, metrics.video_views FROM campaign "+
			"WHERE campaign.id = %s AND segments.date BETWEEN '%s' AND '%s'",
		pc.ExternalCampaignID, since, until,
	)

	rows := make([]domain.InsightRow, 0)
	pageToken := ""
	for {
		results, next, err := g.search(ctx, account, query, pageToken)
		if err != nil {
			return rows, err
		}

		for _, r := range results {
			date, err := time.Parse(time.DateOnly, r.Segments.Date)
			if err != nil {
				logrus.WithField("date", r.Segments.Date).Warn("google: linha de métrica ignorada")
				continue
			}
			rows = append(rows, domain.InsightRow{
				Date: domain.TruncateDay(date),
				MetricTotals: domain.MetricTotals{
					Impressions: r.Metrics.Impressions,
					Clicks:      r.Metrics.Clicks,
					Spend:       float64(r.Metrics.CostMicros) / microsPerUnit,
					Conversions: int64(r.Metrics.Conversions + 0.5),
					Revenue:     r.Metrics.ConversionsValue,
					VideoViews:  r.Metrics.VideoViews,
				},
			})
		}

		if next == "" {
			return rows, nil
		}
		pageToken = next
	}
}

// SendConversion envia a conversão offline por clique. O payload precisa trazer gclid e conversion_action.
func (g *GoogleIntegrator) SendConversion(ctx context.Context, account *domain.AdAccount, conv *domain.Conversion) (string, error) {
	gclid, _ := conv.Payload["gclid"].(string)
	action, _ := conv.Payload["conversion_action"].(string)
	if gclid == "" || action == "" {
		return "", fmt.Errorf("google: conversão %s sem gclid ou conversion_action", conv.ID)
	}

	body, err := json.Marshal(uploadClickConversionsRequest{
		Conversions: []clickConversion{{
			Gclid:              gclid,
			ConversionAction:   action,
			ConversionDateTime: conv.CreatedAt.UTC().Format("2006-01-02 15:04:05-07:00"),
			ConversionValue:    conv.Value,
			CurrencyCode:       conv.Currency,
			OrderID:            conv.OrderID,
		}},
		PartialFailure: true,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/customers/%s:uploadClickConversions", g.baseURL, customerID(account))
	resp, err := utils.MakeRequest(ctx, g.httpClient, http.MethodPost, url, body, g.headers(account))
	if err != nil {
		return "", platform.ClassifyHTTPError(network, err)
	}

	return string(resp), nil
}

func (g *GoogleIntegrator) setStatus(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, status string) error {
	cid := customerID(account)

	if pc.ExternalAdSetID != "" {
		_, err := g.mutate(ctx, account, "adGroups", operation{
			Update:     adGroup{ResourceName: fmt.Sprintf("customers/%s/adGroups/%s", cid, pc.ExternalAdSetID), Status: status},
			UpdateMask: "status",
		})
		if err != nil {
			return err
		}
	}

	_, err := g.mutate(ctx, account, "campaigns", operation{
		Update:     campaign{ResourceName: fmt.Sprintf("customers/%s/campaigns/%s", cid, pc.ExternalCampaignID), Status: status},
		UpdateMask: "status",
	})
	return err
}

func (g *GoogleIntegrator) mutate(ctx context.Context, account *domain.AdAccount, resource string, op operation) (string, error) {
	body, err := json.Marshal(mutateRequest{Operations: []operation{op}})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/customers/%s/%s:mutate", g.baseURL, customerID(account), resource)
	resp, err := utils.MakeRequest(ctx, g.httpClient, http.MethodPost, url, body, g.headers(account))
	if err != nil {
		return "", platform.ClassifyHTTPError(network, err)
	}

	var result mutateResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", fmt.Errorf("google: erro ao decodificar mutate de %s: %w", resource, err)
	}
	if len(result.Results) == 0 {
		return "", fmt.Errorf("google: mutate de %s sem resultado", resource)
	}

	return result.Results[0].ResourceName, nil
}

func (g *GoogleIntegrator) search(ctx context.Context, account *domain.AdAccount, query, pageToken string) ([]searchRow, string, error) {
	body, err := json.Marshal(searchRequest{Query: query, PageToken: pageToken})
	if err != nil {
		return nil, "", err
	}

	url := fmt.Sprintf("%s/customers/%s/googleAds:search", g.baseURL, customerID(account))
	resp, err := utils.MakeRequest(ctx, g.httpClient, http.MethodPost, url, body, g.headers(account))
	if err != nil {
		return nil, "", platform.ClassifyHTTPError(network, err)
	}

	var result searchResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, "", fmt.Errorf("google: erro ao decodificar busca: %w", err)
	}

	return result.Results, result.NextPageToken, nil
}

func (g *GoogleIntegrator) headers(account *domain.AdAccount) map[string]string {
	return map[string]string{
		"Authorization":   "Bearer " + account.AccessToken,
		"developer-token": g.developerToken,
	}
}

func newAd(req platform.CreateRequest) *ad {
	finalURL := req.Campaign.TrackingURL
	if finalURL == "" {
		finalURL = req.Campaign.LandingPageURL
	}

	return &ad{
		Name:      req.Creative.Name,
		FinalURLs: []string{finalURL},
		ResponsiveDisplayAd: &responsiveDisplayAd{
			Headlines:        []textAsset{{Text: req.Creative.Headline}},
			LongHeadline:     textAsset{Text: req.Creative.Headline},
			Descriptions:     []textAsset{{Text: req.Creative.Body}},
			BusinessName:     req.Campaign.Name,
			CallToActionText: req.Creative.CallToAction,
		},
	}
}

func channelType(o domain.CampaignObjective) string {
	if o == domain.ObjectiveAwareness {
		return "VIDEO"
	}
	return "DISPLAY"
}

func adGroupType(channel string) string {
	if channel == "VIDEO" {
		return "VIDEO_RESPONSIVE"
	}
	return "DISPLAY_STANDARD"
}

func customerID(account *domain.AdAccount) string {
	return strings.ReplaceAll(account.ExternalID, "-", "")
}

// resourceID extrai o id final de um resource name (customers/1/campaigns/2 -> 2)
func resourceID(resourceName string) string {
	if i := strings.LastIndex(resourceName, "/"); i >= 0 {
		return resourceName[i+1:]
	}
	return resourceName
}

func toMicros(amount float64) int64 {
	return int64(utils.RoundWithTwoDecimalPlace(amount)*microsPerUnit + 0.5)
}
