package meta

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MetaIntegrator atende Facebook e Instagram pelo Graph API
type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{Client: client}
}

var _ platform.Adapter = (*MetaIntegrator)(nil)

func (s *MetaIntegrator) CreateCampaign(ctx context.Context, account *domain.AdAccount, req platform.CreateRequest) (*domain.RemoteCampaign, error) {
	actID := "act_" + account.ExternalID
	objective, optimizationGoal := metadomain.Objective(req.Campaign.Objective)
	name := remoteName(req)

	campaignParams := url.Values{}
	campaignParams.Set("name", name)
	campaignParams.Set("objective", objective)
	campaignParams.Set("status", metadomain.StatusPaused)
	campaignParams.Set("special_ad_categories", "[]")

	campaignID, err := s.Client.CreateObject(ctx, account.AccessToken, actID, "campaigns", campaignParams)
	if err != nil {
		return nil, fmt.Errorf("meta: erro ao criar campanha: %w", err)
	}
	remote := &domain.RemoteCampaign{ExternalCampaignID: campaignID}

	targeting, err := json.Marshal(metadomain.NewTargeting(req.Targeting, req.Platform))
	if err != nil {
		return remote, fmt.Errorf("meta: erro ao serializar segmentação: %w", err)
	}

	adSetParams := url.Values{}
	adSetParams.Set("name", name)
	adSetParams.Set("campaign_id", campaignID)
	adSetParams.Set("daily_budget", metadomain.Budget(req.DailyBudget))
	adSetParams.Set("billing_event", "IMPRESSIONS")
	adSetParams.Set("optimization_goal", optimizationGoal)
	adSetParams.Set("bid_strategy", "LOWEST_COST_WITHOUT_CAP")
	adSetParams.Set("targeting", string(targeting))
	adSetParams.Set("start_time", req.Campaign.StartDate.Format(time.RFC3339))
	adSetParams.Set("end_time", req.Campaign.EndDate.Format(time.RFC3339))
	adSetParams.Set("status", metadomain.StatusPaused)
	if account.PixelID != "" && req.Campaign.Objective == domain.ObjectiveConversions {
		adSetParams.Set("promoted_object", fmt.Sprintf("{\"pixel_id\":\"%s\",\"custom_event_type\":\"PURCHASE\"}", account.PixelID))
	}

	remote.ExternalAdSetID, err = s.Client.CreateObject(ctx, account.AccessToken, actID, "adsets", adSetParams)
	if err != nil {
		return remote, fmt.Errorf("meta: erro ao criar conjunto de anúncios: %w", err)
	}

	spec, err := json.Marshal(metadomain.ObjectStorySpec{
		LinkData: metadomain.LinkData{
			Link:         landingURL(req.Campaign),
			Message:      req.Creative.Body,
			Name:         req.Creative.Headline,
			Picture:      req.Creative.MediaURL,
			CallToAction: metadomain.CallToAction{Type: callToAction(req.Creative.CallToAction)},
		},
	})
	if err != nil {
		return remote, fmt.Errorf("meta: erro ao serializar criativo: %w", err)
	}

	creativeParams := url.Values{}
	creativeParams.Set("name", req.Creative.Name)
	creativeParams.Set("object_story_spec", string(spec))

	remote.ExternalCreativeID, err = s.Client.CreateObject(ctx, account.AccessToken, actID, "adcreatives", creativeParams)
	if err != nil {
		return remote, fmt.Errorf("meta: erro ao criar criativo: %w", err)
	}

	adParams := url.Values{}
	adParams.Set("name", name)
	adParams.Set("adset_id", remote.ExternalAdSetID)
	adParams.Set("creative", fmt.Sprintf("{\"creative_id\":\"%s\"}", remote.ExternalCreativeID))
	adParams.Set("status", metadomain.StatusPaused)

	remote.ExternalAdID, err = s.Client.CreateObject(ctx, account.AccessToken, actID, "ads", adParams)
	if err != nil {
		return remote, fmt.Errorf("meta: erro ao criar anúncio: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id":          req.Campaign.ID,
		"platform":             req.Platform,
		"external_campaign_id": campaignID,
	}).Debug("meta: hierarquia criada")

	return remote, nil
}

// Activate ativa anúncio, conjunto e campanha, nessa ordem
func (s *MetaIntegrator) Activate(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign) error {
	return s.setStatus(ctx, account, pc, metadomain.StatusActive)
}

func (s *MetaIntegrator) Pause(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign) error {
	params := url.Values{}
	params.Set("status", metadomain.StatusPaused)
	return s.Client.UpdateObject(ctx, account.AccessToken, pc.ExternalCampaignID, params)
}

func (s *MetaIntegrator) UpdateBudget(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, dailyBudget float64) error {
	if pc.ExternalAdSetID == "" {
		return platform.ErrNotMaterialized
	}

	params := url.Values{}
	params.Set("daily_budget", metadomain.Budget(dailyBudget))
	return s.Client.UpdateObject(ctx, account.AccessToken, pc.ExternalAdSetID, params)
}

func (s *MetaIntegrator) FetchInsights(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, from, to time.Time) ([]domain.InsightRow, error) {
	since, until := platform.DateRange(from, to)

	insights, fetchErr := s.Client.GetInsights(ctx, account.AccessToken, pc.ExternalCampaignID, since, until)

	rows := make([]domain.InsightRow, 0, len(insights))
	for _, insight := range insights {
		row, err := insight.ToInsightRow()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"platform_campaign_id": pc.ID,
				"date_start":           insight.DateStart,
			}).WithError(err).Warn("meta: linha de insight ignorada")
			continue
		}
		rows = append(rows, row)
	}

	return rows, fetchErr
}

func (s *MetaIntegrator) SendConversion(ctx context.Context, account *domain.AdAccount, conv *domain.Conversion) (string, error) {
	if account.PixelID == "" {
		return "", errors.New("meta: conta sem pixel configurado")
	}

	event := metadomain.ServerEvent{
		EventName:    conv.EventName,
		EventTime:    conv.CreatedAt.Unix(),
		EventID:      conv.ID,
		ActionSource: "website",
		UserData:     userData(conv.Payload),
		CustomData: metadomain.CustomData{
			Value:    conv.Value,
			Currency: conv.Currency,
			OrderID:  conv.OrderID,
		},
	}

	body, err := s.Client.SendEvents(ctx, account.AccessToken, account.PixelID, []metadomain.ServerEvent{event})
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (s *MetaIntegrator) setStatus(ctx context.Context, account *domain.AdAccount, pc *domain.PlatformCampaign, status string) error {
	params := url.Values{}
	params.Set("status", status)

	for _, id := range []string{pc.ExternalAdID, pc.ExternalAdSetID, pc.ExternalCampaignID} {
		if id == "" {
			continue
		}
		if err := s.Client.UpdateObject(ctx, account.AccessToken, id, params); err != nil {
			return err
		}
	}

	return nil
}

func remoteName(req platform.CreateRequest) string {
	name := fmt.Sprintf("%s - %s", req.Campaign.Name, req.Platform)
	if req.Variant != domain.VariantNone {
		name = fmt.Sprintf("%s - %s", name, req.Variant)
	}
	return name
}

func landingURL(c *domain.Campaign) string {
	if c.TrackingURL != "" {
		return c.TrackingURL
	}
	return c.LandingPageURL
}

func callToAction(cta string) string {
	if cta == "" {
		return "BUY_TICKETS"
	}
	return cta
}

func userData(payload map[string]any) map[string]any {
	data := make(map[string]any)
	if payload == nil {
		return data
	}
	if ud, ok := payload["user_data"].(map[string]any); ok {
		return ud
	}
	for _, key := range []string{"em", "ph", "fn", "ln", "client_ip_address", "client_user_agent", "fbc", "fbp"} {
		if v, ok := payload[key]; ok {
			data[key] = v
		}
	}
	return data
}
