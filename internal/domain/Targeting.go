package domain

import "time"

type Targeting struct {
	ID                string    `json:"id"`
	CampaignID        string    `json:"campaign_id"`
	AgeMin            int       `json:"age_min"`
	AgeMax            int       `json:"age_max"`
	Genders           []string  `json:"genders"`
	Locations         []string  `json:"locations"`
	Interests         []string  `json:"interests"`
	Languages         []string  `json:"languages"`
	Placements        []string  `json:"placements"`
	CustomAudienceIDs []string  `json:"custom_audience_ids"`
	Lookalike         bool      `json:"lookalike"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AudienceHints são as pistas de público enviadas na solicitação de campanha
type AudienceHints struct {
	AgeMin    int      `json:"age_min"`
	AgeMax    int      `json:"age_max"`
	Genders   []string `json:"genders"`
	Locations []string `json:"locations"`
	Interests []string `json:"interests"`
	Languages []string `json:"languages"`
}

const (
	defaultAgeMin = 18
	defaultAgeMax = 65
)

// DefaultTargeting monta a segmentação padrão de uma campanha a partir das pistas de público
func DefaultTargeting(campaignID string, hints AudienceHints) *Targeting {
	t := &Targeting{
		CampaignID: campaignID,
		AgeMin:     hints.AgeMin,
		AgeMax:     hints.AgeMax,
		Genders:    hints.Genders,
		Locations:  hints.Locations,
		Interests:  hints.Interests,
		Languages:  hints.Languages,
		Placements: []string{"automatic"},
		Active:     true,
	}

	if t.AgeMin <= 0 {
		t.AgeMin = defaultAgeMin
	}
	if t.AgeMax <= 0 || t.AgeMax < t.AgeMin {
		t.AgeMax = defaultAgeMax
	}
	if len(t.Genders) == 0 {
		t.Genders = []string{"all"}
	}

	return t
}
