package metadomain

import (
	"strconv"

	"github.com/vfg2006/campaign-engine/internal/domain"
)

const (
	StatusActive = "ACTIVE"
	StatusPaused = "PAUSED"
)

// CreatedObject é a resposta de criação de qualquer nó da hierarquia (campanha, ad set, criativo, anúncio)
type CreatedObject struct {
	ID string `json:"id"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Mapeamento do objetivo da campanha para o objetivo ODAX e a meta de otimização do ad set
var objectiveMapping = map[domain.CampaignObjective][2]string{
	domain.ObjectiveConversions: {"OUTCOME_SALES", "OFFSITE_CONVERSIONS"},
	domain.ObjectiveTraffic:     {"OUTCOME_TRAFFIC", "LINK_CLICKS"},
	domain.ObjectiveAwareness:   {"OUTCOME_AWARENESS", "REACH"},
	domain.ObjectiveEngagement:  {"OUTCOME_ENGAGEMENT", "POST_ENGAGEMENT"},
	domain.ObjectiveLeads:       {"OUTCOME_LEADS", "LEAD_GENERATION"},
}

// Objective devolve o objetivo do Meta e a meta de otimização correspondente
func Objective(o domain.CampaignObjective) (string, string) {
	if m, ok := objectiveMapping[o]; ok {
		return m[0], m[1]
	}
	return "OUTCOME_TRAFFIC", "LINK_CLICKS"
}

// Budget converte o valor em moeda para a menor unidade aceita pela API (centavos)
func Budget(amount float64) string {
	return strconv.FormatInt(int64(amount*100+0.5), 10)
}

// PublisherPlatforms restringe a entrega à rede escolhida
func PublisherPlatforms(p domain.Platform) []string {
	if p == domain.PlatformInstagram {
		return []string{"instagram"}
	}
	return []string{"facebook"}
}

type Targeting struct {
	AgeMin             int               `json:"age_min,omitempty"`
	AgeMax             int               `json:"age_max,omitempty"`
	Genders            []int             `json:"genders,omitempty"`
	GeoLocations       GeoLocations      `json:"geo_locations"`
	Interests          []TargetingEntity `json:"interests,omitempty"`
	Locales            []string          `json:"locales,omitempty"`
	CustomAudiences    []TargetingEntity `json:"custom_audiences,omitempty"`
	PublisherPlatforms []string          `json:"publisher_platforms"`
}

type GeoLocations struct {
	Countries []string `json:"countries"`
}

type TargetingEntity struct {
	ID string `json:"id"`
}

// NewTargeting converte a segmentação da campanha no formato do Graph API
func NewTargeting(t *domain.Targeting, p domain.Platform) Targeting {
	target := Targeting{PublisherPlatforms: PublisherPlatforms(p)}
	if t == nil {
		target.GeoLocations.Countries = []string{"BR"}
		return target
	}

	target.AgeMin = t.AgeMin
	target.AgeMax = t.AgeMax
	target.Locales = t.Languages
	target.GeoLocations.Countries = t.Locations
	if len(target.GeoLocations.Countries) == 0 {
		target.GeoLocations.Countries = []string{"BR"}
	}

	for _, g := range t.Genders {
		switch g {
		case "male":
			target.Genders = append(target.Genders, 1)
		case "female":
			target.Genders = append(target.Genders, 2)
		}
	}
	for _, id := range t.Interests {
		target.Interests = append(target.Interests, TargetingEntity{ID: id})
	}
	for _, id := range t.CustomAudienceIDs {
		target.CustomAudiences = append(target.CustomAudiences, TargetingEntity{ID: id})
	}

	return target
}

type ObjectStorySpec struct {
	PageID   string   `json:"page_id,omitempty"`
	LinkData LinkData `json:"link_data"`
}

type LinkData struct {
	Link         string       `json:"link"`
	Message      string       `json:"message,omitempty"`
	Name         string       `json:"name,omitempty"`
	Picture      string       `json:"picture,omitempty"`
	CallToAction CallToAction `json:"call_to_action"`
}

type CallToAction struct {
	Type string `json:"type"`
}
