package metadomain

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

// Tipos de ação contabilizados como compra
var purchaseActionTypes = map[string]struct{}{
	"purchase":                             {},
	"offsite_conversion.fb_pixel_purchase": {},
	"omni_purchase":                        {},
}

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type InsightResponse struct {
	Data   []Insight `json:"data"`
	Paging Paging    `json:"paging"`
}

// Insight é uma linha diária do endpoint /insights. Os números chegam como texto.
type Insight struct {
	CampaignID       string   `json:"campaign_id"`
	DateStart        string   `json:"date_start"`
	DateStop         string   `json:"date_stop"`
	Impressions      string   `json:"impressions"`
	Reach            string   `json:"reach"`
	Clicks           string   `json:"clicks"`
	Spend            string   `json:"spend"`
	Frequency        string   `json:"frequency"`
	Actions          []Action `json:"actions"`
	ActionValues     []Action `json:"action_values"`
	VideoPlayActions []Action `json:"video_play_actions"`
}

func (i *Insight) ToInsightRow() (domain.InsightRow, error) {
	date, err := time.Parse(time.DateOnly, i.DateStart)
	if err != nil {
		return domain.InsightRow{}, err
	}

	return domain.InsightRow{
		Date: domain.TruncateDay(date),
		MetricTotals: domain.MetricTotals{
			Impressions: parseInt(i.Impressions),
			Reach:       parseInt(i.Reach),
			Clicks:      parseInt(i.Clicks),
			Spend:       parseFloat(i.Spend),
			Conversions: int64(sumActions(i.Actions, purchaseActionTypes)),
			Revenue:     sumActions(i.ActionValues, purchaseActionTypes),
			VideoViews:  int64(sumActions(i.VideoPlayActions, nil)),
		},
		Frequency: parseFloat(i.Frequency),
	}, nil
}

// sumActions soma os valores das ações filtradas. Filtro nil soma todas.
func sumActions(actions []Action, filter map[string]struct{}) float64 {
	var total float64
	for _, action := range actions {
		if filter != nil {
			if _, ok := filter[action.ActionType]; !ok {
				continue
			}
		}
		total += parseFloat(action.Value)
	}
	return total
}

func parseInt(value string) int64 {
	if value == "" {
		return 0
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithField("value", value).Warn("meta: valor inteiro inválido no insight")
		return 0
	}
	return v
}

func parseFloat(value string) float64 {
	if value == "" {
		return 0
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithField("value", value).Warn("meta: valor decimal inválido no insight")
		return 0
	}
	return v
}
