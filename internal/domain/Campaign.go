package domain

import (
	"time"
)

type CampaignStatus string

const (
	CampaignStatusDraft      CampaignStatus = "draft"
	CampaignStatusLaunching  CampaignStatus = "launching"
	CampaignStatusActive     CampaignStatus = "active"
	CampaignStatusPaused     CampaignStatus = "paused"
	CampaignStatusOptimizing CampaignStatus = "optimizing"
	CampaignStatusCompleted  CampaignStatus = "completed"
	CampaignStatusFailed     CampaignStatus = "failed"
)

type CampaignObjective string

const (
	ObjectiveConversions CampaignObjective = "conversions"
	ObjectiveTraffic     CampaignObjective = "traffic"
	ObjectiveAwareness   CampaignObjective = "awareness"
	ObjectiveEngagement  CampaignObjective = "engagement"
	ObjectiveLeads       CampaignObjective = "leads"
)

func (o CampaignObjective) IsValid() bool {
	switch o {
	case ObjectiveConversions, ObjectiveTraffic, ObjectiveAwareness, ObjectiveEngagement, ObjectiveLeads:
		return true
	}
	return false
}

type AllocationStrategy string

const (
	AllocationEqual       AllocationStrategy = "equal"
	AllocationWeighted    AllocationStrategy = "weighted"
	AllocationPerformance AllocationStrategy = "performance"
	AllocationManual      AllocationStrategy = "manual"
)

func (s AllocationStrategy) IsValid() bool {
	switch s {
	case AllocationEqual, AllocationWeighted, AllocationPerformance, AllocationManual:
		return true
	}
	return false
}

// OptimizationRules guarda os limites de performance. Zero desabilita a regra.
type OptimizationRules struct {
	MaxCPC  float64 `json:"max_cpc"`
	MinCTR  float64 `json:"min_ctr"`
	MinROAS float64 `json:"min_roas"`
}

type ABTestConfig struct {
	Enabled      bool       `json:"enabled"`
	Variable     string     `json:"variable"`
	SplitPercent int        `json:"split_percent"`
	WinnerMetric string     `json:"winner_metric"`
	Winner       Variant    `json:"winner,omitempty"`
	WinnerDate   *time.Time `json:"winner_date,omitempty"`
	AppliedAt    *time.Time `json:"applied_at,omitempty"`
}

// IsResolved indica se o teste A/B já tem um vencedor definido
func (a ABTestConfig) IsResolved() bool {
	return a.Winner != VariantNone
}

// IsApplied indica se a pausa da perdedora e o reforço da vencedora já foram concluídos
func (a ABTestConfig) IsApplied() bool {
	return a.IsResolved() && a.AppliedAt != nil
}

// Loser é a variante oposta à vencedora, ou nenhuma enquanto o teste não foi resolvido
func (a ABTestConfig) Loser() Variant {
	switch a.Winner {
	case VariantA:
		return VariantB
	case VariantB:
		return VariantA
	}
	return VariantNone
}

type RetargetingConfig struct {
	Enabled      bool     `json:"enabled"`
	AudienceIDs  []string `json:"audience_ids"`
	LookbackDays int      `json:"lookback_days"`
}

type UTMParams struct {
	Source   string `json:"utm_source"`
	Medium   string `json:"utm_medium"`
	Campaign string `json:"utm_campaign"`
	Content  string `json:"utm_content"`
}

type Campaign struct {
	ID                  string               `json:"id"`
	TenantID            string               `json:"tenant_id"`
	EventID             string               `json:"event_id"`
	ServiceRequestID    *string              `json:"service_request_id"`
	Name                string               `json:"name"`
	Objective           CampaignObjective    `json:"objective"`
	TotalBudget         float64              `json:"total_budget"`
	DailyBudget         float64              `json:"daily_budget"`
	SpentBudget         float64              `json:"spent_budget"`
	Currency            string               `json:"currency"`
	TargetPlatforms     []Platform           `json:"target_platforms"`
	AllocationStrategy  AllocationStrategy   `json:"budget_allocation"`
	ManualAllocations   map[Platform]float64 `json:"manual_allocations,omitempty"`
	AutoOptimize        bool                 `json:"auto_optimize"`
	OptimizationRules   OptimizationRules    `json:"optimization_rules"`
	ABTest              ABTestConfig         `json:"ab_test"`
	Retargeting         RetargetingConfig    `json:"retargeting"`
	UTM                 UTMParams            `json:"utm"`
	LandingPageURL      string               `json:"landing_page_url"`
	TrackingURL         string               `json:"tracking_url"`
	StartDate           time.Time            `json:"start_date"`
	EndDate             time.Time            `json:"end_date"`
	Status              CampaignStatus       `json:"status"`
	StatusNote          string               `json:"status_note"`
	BudgetWarningSentAt *time.Time           `json:"budget_warning_sent_at"`
	Totals              MetricTotals         `json:"totals"`
	Derived             DerivedMetrics       `json:"derived"`
	LaunchedAt          *time.Time           `json:"launched_at"`
	CompletedAt         *time.Time           `json:"completed_at"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// SpentFraction retorna a fração do orçamento total já gasta
func (c *Campaign) SpentFraction() float64 {
	return SafeDivide(c.SpentBudget, c.TotalBudget)
}

// DaysUntilEnd retorna os dias inteiros restantes até a data final, nunca negativo
func (c *Campaign) DaysUntilEnd(now time.Time) int {
	days := DaysBetween(now, c.EndDate)
	if days < 0 {
		return 0
	}
	return days
}

// TotalDays retorna a duração total da campanha em dias, no mínimo 1
func (c *Campaign) TotalDays() int {
	days := DaysBetween(c.StartDate, c.EndDate)
	if days < 1 {
		return 1
	}
	return days
}

// ElapsedDays retorna os dias decorridos desde o início, nunca negativo
func (c *Campaign) ElapsedDays(now time.Time) int {
	days := DaysBetween(c.StartDate, now)
	if days < 0 {
		return 0
	}
	return days
}

func (c *Campaign) HasPlatform(p Platform) bool {
	for _, target := range c.TargetPlatforms {
		if target == p {
			return true
		}
	}
	return false
}

// DaysBetween conta os dias de calendário entre duas datas, ignorando o horário
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusDraft:      {CampaignStatusLaunching, CampaignStatusCompleted},
	CampaignStatusLaunching:  {CampaignStatusActive, CampaignStatusFailed, CampaignStatusCompleted},
	CampaignStatusActive:     {CampaignStatusPaused, CampaignStatusOptimizing, CampaignStatusCompleted},
	CampaignStatusPaused:     {CampaignStatusActive, CampaignStatusOptimizing, CampaignStatusCompleted},
	CampaignStatusOptimizing: {CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted},
	CampaignStatusFailed:     {CampaignStatusLaunching, CampaignStatusCompleted},
	CampaignStatusCompleted:  {},
}

// CanTransitionTo informa se a máquina de estados permite ir de s para next
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	for _, allowed := range campaignTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s CampaignStatus) IsTerminal() bool {
	return s == CampaignStatusCompleted
}

// CreateCampaignRequest é a entrada para criação de uma campanha a partir de uma solicitação de serviço
type CreateCampaignRequest struct {
	TenantID           string               `json:"tenant_id"`
	EventID            string               `json:"event_id"`
	ServiceRequestID   *string              `json:"service_request_id"`
	Name               string               `json:"name"`
	Objective          CampaignObjective    `json:"objective"`
	TotalBudget        float64              `json:"total_budget"`
	Currency           string               `json:"currency"`
	TargetPlatforms    []Platform           `json:"target_platforms"`
	AllocationStrategy AllocationStrategy   `json:"budget_allocation"`
	ManualAllocations  map[Platform]float64 `json:"manual_allocations"`
	AutoOptimize       bool                 `json:"auto_optimize"`
	OptimizationRules  OptimizationRules    `json:"optimization_rules"`
	ABTest             ABTestConfig         `json:"ab_test"`
	Retargeting        RetargetingConfig    `json:"retargeting"`
	UTM                UTMParams            `json:"utm"`
	LandingPageURL     string               `json:"landing_page_url"`
	StartDate          time.Time            `json:"start_date"`
	EndDate            time.Time            `json:"end_date"`
	Audience           AudienceHints        `json:"audience"`
	Creatives          []CreativeInput      `json:"creatives"`
}
