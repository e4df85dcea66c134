package domain

import (
	"math"
	"time"
)

// MetricTotals são os campos brutos somáveis de métricas
type MetricTotals struct {
	Impressions  int64   `json:"impressions"`
	Reach        int64   `json:"reach"`
	Clicks       int64   `json:"clicks"`
	Spend        float64 `json:"spend"`
	Conversions  int64   `json:"conversions"`
	Revenue      float64 `json:"revenue"`
	TicketsSold  int64   `json:"tickets_sold"`
	NewCustomers int64   `json:"new_customers"`
	VideoViews   int64   `json:"video_views"`
}

// Add soma os campos brutos de outro total
func (t MetricTotals) Add(other MetricTotals) MetricTotals {
	return MetricTotals{
		Impressions:  t.Impressions + other.Impressions,
		Reach:        t.Reach + other.Reach,
		Clicks:       t.Clicks + other.Clicks,
		Spend:        t.Spend + other.Spend,
		Conversions:  t.Conversions + other.Conversions,
		Revenue:      t.Revenue + other.Revenue,
		TicketsSold:  t.TicketsSold + other.TicketsSold,
		NewCustomers: t.NewCustomers + other.NewCustomers,
		VideoViews:   t.VideoViews + other.VideoViews,
	}
}

type DerivedMetrics struct {
	CTR  float64 `json:"ctr"`
	CPC  float64 `json:"cpc"`
	CPM  float64 `json:"cpm"`
	ROAS float64 `json:"roas"`
	CAC  float64 `json:"cac"`
}

// Derive calcula as razões a partir dos totais. Denominador zero resulta em 0.
func (t MetricTotals) Derive() DerivedMetrics {
	return DerivedMetrics{
		CTR:  SafeDivide(float64(t.Clicks), float64(t.Impressions)) * 100,
		CPC:  SafeDivide(t.Spend, float64(t.Clicks)),
		CPM:  SafeDivide(t.Spend, float64(t.Impressions)) * 1000,
		ROAS: SafeDivide(t.Revenue, t.Spend),
		CAC:  SafeDivide(t.Spend, float64(t.Conversions)),
	}
}

// AverageFrequency retorna impressões por pessoa alcançada
func (t MetricTotals) AverageFrequency() float64 {
	return SafeDivide(float64(t.Impressions), float64(t.Reach))
}

// SafeDivide retorna 0 quando o denominador é zero ou o resultado não é finito
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

// Metric é uma linha diária de métricas de uma campanha em uma plataforma, ou a linha consolidada
type Metric struct {
	ID                 int64     `json:"id"`
	CampaignID         string    `json:"campaign_id"`
	PlatformCampaignID string    `json:"platform_campaign_id"`
	Platform           Platform  `json:"platform"`
	Variant            Variant   `json:"variant"`
	Date               time.Time `json:"date"`
	MetricTotals
	DerivedMetrics
	Frequency float64   `json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMetric monta uma linha com as razões calculadas no momento da escrita
func NewMetric(campaignID, platformCampaignID string, platform Platform, variant Variant, date time.Time, totals MetricTotals, frequency float64) *Metric {
	return &Metric{
		CampaignID:         campaignID,
		PlatformCampaignID: platformCampaignID,
		Platform:           platform,
		Variant:            variant,
		Date:               TruncateDay(date),
		MetricTotals:       totals,
		DerivedMetrics:     totals.Derive(),
		Frequency:          frequency,
	}
}

func (m *Metric) IsAggregated() bool {
	return m.Platform == PlatformAggregated
}

// InsightRow é uma linha diária devolvida pelo adaptador da plataforma
type InsightRow struct {
	Date time.Time
	MetricTotals
	Frequency float64
}

type MetricFilters struct {
	StartDate          *time.Time
	EndDate            *time.Time
	Platform           *Platform
	PlatformCampaignID *string
	ExcludeAggregated  bool
}

// TruncateDay zera o horário mantendo a data em UTC
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
