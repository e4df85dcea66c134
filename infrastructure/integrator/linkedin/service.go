// Package linkedin integra a LinkedIn Marketing API (endpoints /rest versionados)
package linkedin

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
	network      = "linkedin"
	statusActive = "ACTIVE"
	statusPaused = "PAUSED"

	campaignGroupURN = "urn:li:sponsoredCampaignGroup:"
	campaignURN      = "urn:li:sponsoredCampaign:"
	accountURN       = "urn:li:sponsoredAccount:"
)

// LinkedInIntegrator mapeia grupo de campanhas para a campanha remota, campanha para o conjunto
// de anúncios e creative para o anúncio
type LinkedInIntegrator struct {
	baseURL    string
	version    string
	httpClient *http.Client
}

func New(cfg config.LinkedIn) *LinkedInIntegrator {
	return &LinkedInIntegrator{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		version:    cfg.Version,
		httpClient: utils.NewHTTPClient(cfg.Timeout),
	}
}

var _ platform.Adapter = (*LinkedInIntegrator)(nil)

func (s *LinkedInIntegrator) CreateCampaign(ctx context.Context, account *domain.AdAccount, req platform.CreateRequest) (*domain.RemoteCampaign, error) {
	name := fmt.Sprintf("%s - linkedin", req.Campaign.Name)
	if req.Variant != domain.VariantNone {
		name = fmt.Sprintf("%s - %s", name, req.Variant)
	}
	schedule := runSchedule{Start: req.Campaign.StartDate.UnixMilli(), End: req.Campaign.EndDate.UnixMilli()}

	groupID, err := s.create(ctx, account, fmt.Sprintf("/adAccounts/%s/adCampaignGroups", account.ExternalID), campaignGroup{
		Account:     accountURN + account.ExternalID,
		Name:        name,
		Status:      statusPaused,
		RunSchedule: schedule,
	})
	if err != nil {
		return nil, err
	}
	remote := &domain.RemoteCampaign{ExternalCampaignID: groupID}

	currency := req.Campaign.Currency
	if currency == "" {
		currency = "BRL"
	}

	campaignID, err := s.create(ctx, account, fmt.Sprintf("/adAccounts/%s/adCampaigns", account.ExternalID), adCampaign{
		Account:           accountURN + account.ExternalID,
		CampaignGroup:     campaignGroupURN + groupID,
		Name:              name,
		Type:              "SPONSORED_UPDATES",
		CostType:          "CPM",
		ObjectiveType:     objective(req.Campaign.Objective),
		DailyBudget:       money{Amount: amount(req.DailyBudget), CurrencyCode: currency},
		Locale:            locale{Country: "BR", Language: "pt"},
		RunSchedule:       schedule,
		Status:            statusPaused,
		TargetingCriteria: newTargeting(req.Targeting),
	})
	if err != nil {
		return remote, err
	}
	remote.ExternalAdSetID = campaignID

	landing := req.Campaign.TrackingURL
	if landing == "" {
		landing = req.Campaign.LandingPageURL
	}

	creativeID, err := s.create(ctx, account, fmt.Sprintf("/adAccounts/%s/creatives", account.ExternalID), creative{
		Campaign:       campaignURN + campaignID,
		IntendedStatus: statusPaused,
		Name:           req.Creative.Name,
		InlineContent: inlineContent{Post: post{
			Commentary: req.Creative.Body,
			Content: postContent{Article: article{
				Source:    landing,
				Title:     req.Creative.Headline,
				Thumbnail: req.Creative.MediaURL,
			}},
		}},
	})
	if err != nil {
		return remote, err
	}
	remote.ExternalCreativeID = creativeID
	remote.ExternalAdID = creativeID

	logrus.WithFields(logrus.Fields{
		"campaign_id":          req.Campaign.ID,
		"ad_account":           account.ExternalID,
		"external_campaign_id": groupID,
	}).Debug("linkedin: hierarquia criada")

	return remote, nil
}

func (s *LinkedInIntegrator) Activate(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign) error {
	return s.setStatus(ctx, account, pc, statusActive)
}

func (s *LinkedInIntegrator) Pause(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign) error {
	return s.setStatus(ctx, account, pc, statusPaused)
}

func (s *LinkedInIntegrator) UpdateBudget(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, dailyBudget float64) error {
	if pc.ExternalAdSetID == "" {
		return platform.ErrNotMaterialized
	}

	return s.patch(ctx, account, fmt.Sprintf("/adAccounts/%s/adCampaigns/%s", account.ExternalID, pc.ExternalAdSetID), map[string]any{
		"dailyBudget": money{Amount: amount(dailyBudget), CurrencyCode: "BRL"},
	})
}

func (s *LinkedInIntegrator) FetchInsights(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, from, to time.Time) ([]domain.InsightRow, error) {
	if pc.ExternalAdSetID == "" {
		return nil, platform.ErrNotMaterialized
	}

	// A API Rest.li não aceita dateRange e List() codificados pelo url.Values
	query := fmt.Sprintf(
		"q=analytics&pivot=CAMPAIGN&timeGranularity=DAILY&dateRange=(start:(year:%d,month:%d,day:%d),end:(year:%d,month:%d,day:%d))&campaigns=List(%s)&fields=%s",
		from.Year(), int(from.Month()), from.Day(),
		to.Year(), int(to.Month()), to.Day(),
		url.QueryEscape(campaignURN+pc.ExternalAdSetID),
		"dateRange,impressions,clicks,costInLocalCurrency,externalWebsiteConversions,conversionValueInLocalCurrency,approximateMemberReach,videoViews",
	)

	resp, err := utils.MakeRequest(ctx, s.httpClient, http.MethodGet, s.baseURL+"/adAnalytics?"+query, nil, s.headers(account))
	if err != nil {
		return nil, platform.ClassifyHTTPError(network, err)
	}

	var analytics analyticsResponse
	if err := json.Unmarshal(resp, &analytics); err != nil {
		return nil, fmt.Errorf("linkedin: erro ao decodificar analytics: %w", err)
	}

	rows := make([]domain.InsightRow, 0, len(analytics.Elements))
	for _, e := range analytics.Elements {
		start := e.DateRange.Start
		rows = append(rows, domain.InsightRow{
			Date: time.Date(start.Year, time.Month(start.Month), start.Day, 0, 0, 0, 0, time.UTC),
			MetricTotals: domain.MetricTotals{
				Impressions: e.Impressions,
				Reach:       e.ApproximateMemberReach,
				Clicks:      e.Clicks,
				Spend:       parseFloat(e.CostInLocalCurrency),
				Conversions: e.ExternalWebsiteConversions,
				Revenue:     parseFloat(e.ConversionValueInLocalCurrency),
				VideoViews:  e.VideoViews,
			},
		})
	}

	return rows, nil
}

// SendConversion usa a Conversions API. O payload precisa trazer conversion_id e o e-mail em sha256.
func (s *LinkedInIntegrator) SendConversion(ctx context.Context, account *domain.AdAccount, conv *domain.Conversion) (string, error) {
	conversionID, _ := conv.Payload["conversion_id"].(string)
	email, _ := conv.Payload["sha256_email"].(string)
	if conversionID == "" || email == "" {
		return "", fmt.Errorf("linkedin: conversão %s sem conversion_id ou sha256_email", conv.ID)
	}

	body, err := json.Marshal(conversionEvent{
		Conversion:           "urn:lla:llaPartnerConversion:" + conversionID,
		ConversionHappenedAt: conv.CreatedAt.UnixMilli(),
		ConversionValue:      money{Amount: amount(conv.Value), CurrencyCode: conv.Currency},
		EventID:              conv.ID,
		User:                 user{UserIDs: []userID{{IDType: "SHA256_EMAIL", IDValue: email}}},
	})
	if err != nil {
		return "", err
	}

	resp, err := utils.DoRequest(ctx, s.httpClient, http.MethodPost, s.baseURL+"/conversionEvents", body, s.headers(account))
	if err != nil {
		return "", platform.ClassifyHTTPError(network, err)
	}

	return fmt.Sprintf("status=%d id=%s", resp.StatusCode, resp.Header.Get("x-restli-id")), nil
}

func (s *LinkedInIntegrator) setStatus(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, status string) error {
	if pc.ExternalAdSetID != "" {
		err := s.patch(ctx, account, fmt.Sprintf("/adAccounts/%s/adCampaigns/%s", account.ExternalID, pc.ExternalAdSetID), map[string]any{
			"status": status,
		})
		if err != nil {
			return err
		}
	}

	return s.patch(ctx, account, fmt.Sprintf("/adAccounts/%s/adCampaignGroups/%s", account.ExternalID, pc.ExternalCampaignID), map[string]any{
		"status": status,
	})
}

// create envia o POST e lê o id gerado do cabeçalho x-restli-id
func (s *LinkedInIntegrator) create(ctx context.Context, account *domain.AdAccount, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err := utils.DoRequest(ctx, s.httpClient, http.MethodPost, s.baseURL+path, body, s.headers(account))
	if err != nil {
		return "", platform.ClassifyHTTPError(network, err)
	}

	id := resp.Header.Get("x-restli-id")
	if id == "" {
		return "", fmt.Errorf("linkedin: resposta sem x-restli-id em %s", path)
	}

	return lastSegment(id), nil
}

func (s *LinkedInIntegrator) patch(ctx context.Context, account *domain.AdAccount, path string, set map[string]any) error {
	var update partialUpdate
	update.Patch.Set = set

	body, err := json.Marshal(update)
	if err != nil {
		return err
	}

	headers := s.headers(account)
	headers["X-RestLi-Method"] = "PARTIAL_UPDATE"

	_, err = utils.MakeRequest(ctx, s.httpClient, http.MethodPost, s.baseURL+path, body, headers)
	return platform.ClassifyHTTPError(network, err)
}

func (s *LinkedInIntegrator) headers(account *domain.AdAccount) map[string]string {
	return map[string]string{
		"Authorization":             "Bearer " + account.AccessToken,
		"LinkedIn-Version":          s.version,
		"X-Restli-Protocol-Version": "2.0.0",
	}
}

func newTargeting(t *domain.Targeting) targetingCriteria {
	locations := []string{"urn:li:geo:106057199"}
	if t != nil && len(t.Locations) > 0 {
		locations = make([]string, 0, len(t.Locations))
		for _, l := range t.Locations {
			if strings.HasPrefix(l, "urn:") {
				locations = append(locations, l)
			}
		}
		if len(locations) == 0 {
			locations = []string{"urn:li:geo:106057199"}
		}
	}

	include := []map[string]map[string][]string{
		{"or": {"urn:li:adTargetingFacet:locations": locations}},
	}
	if t != nil && len(t.Interests) > 0 {
		include = append(include, map[string]map[string][]string{
			"or": {"urn:li:adTargetingFacet:interests": t.Interests},
		})
	}

	return targetingCriteria{Include: targetingInclude{And: include}}
}

func objective(o domain.CampaignObjective) string {
	switch o {
	case domain.ObjectiveConversions:
		return "WEBSITE_CONVERSION"
	case domain.ObjectiveAwareness:
		return "BRAND_AWARENESS"
	case domain.ObjectiveEngagement:
		return "ENGAGEMENT"
	case domain.ObjectiveLeads:
		return "LEAD_GENERATION"
	}
	return "WEBSITE_VISIT"
}

func amount(value float64) string {
	return strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(value), 'f', 2, 64)
}

func lastSegment(urn string) string {
	if i := strings.LastIndex(urn, ":"); i >= 0 {
		return urn[i+1:]
	}
	return urn
}

func parseFloat(value string) float64 {
	v, _ := strconv.ParseFloat(value, 64)
	return v
}
