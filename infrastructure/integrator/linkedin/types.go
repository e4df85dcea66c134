package linkedin

type money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type runSchedule struct {
	Start int64 `json:"start"`
	End   int64 `json:"end,omitempty"`
}

type campaignGroup struct {
	Account     string      `json:"account"`
	Name        string      `json:"name"`
	Status      string      `json:"status"`
	RunSchedule runSchedule `json:"runSchedule"`
}

type adCampaign struct {
	Account                string            `json:"account"`
	CampaignGroup          string            `json:"campaignGroup"`
	Name                   string            `json:"name"`
	Type                   string            `json:"type"`
	CostType               string            `json:"costType"`
	ObjectiveType          string            `json:"objectiveType"`
	DailyBudget            money             `json:"dailyBudget"`
	Locale                 locale            `json:"locale"`
	RunSchedule            runSchedule       `json:"runSchedule"`
	Status                 string            `json:"status"`
	OffsiteDeliveryEnabled bool              `json:"offsiteDeliveryEnabled"`
	TargetingCriteria      targetingCriteria `json:"targetingCriteria"`
}

type locale struct {
	Country  string `json:"country"`
	Language string `json:"language"`
}

type targetingCriteria struct {
	Include targetingInclude `json:"include"`
}

type targetingInclude struct {
	And []map[string]map[string][]string `json:"and"`
}

type creative struct {
	Campaign       string        `json:"campaign"`
	IntendedStatus string        `json:"intendedStatus"`
	Name           string        `json:"name"`
	InlineContent  inlineContent `json:"inlineContent"`
}

type inlineContent struct {
	Post post `json:"post"`
}

type post struct {
	Commentary string      `json:"commentary"`
	Content    postContent `json:"content"`
}

type postContent struct {
	Article article `json:"article"`
}

type article struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type partialUpdate struct {
	Patch struct {
		Set map[string]any `json:"$set"`
	} `json:"patch"`
}

type analyticsResponse struct {
	Elements []analyticsElement `json:"elements"`
}

type analyticsElement struct {
	DateRange struct {
		Start struct {
			Year  int `json:"year"`
			Month int `json:"month"`
			Day   int `json:"day"`
		} `json:"start"`
	} `json:"dateRange"`
	Impressions                    int64  `json:"impressions"`
	Clicks                         int64  `json:"clicks"`
	CostInLocalCurrency            string `json:"costInLocalCurrency"`
	ExternalWebsiteConversions     int64  `json:"externalWebsiteConversions"`
	ConversionValueInLocalCurrency string `json:"conversionValueInLocalCurrency"`
	ApproximateMemberReach         int64  `json:"approximateMemberReach"`
	VideoViews                     int64  `json:"videoViews"`
}

type conversionEvent struct {
	Conversion           string `json:"conversion"`
	ConversionHappenedAt int64  `json:"conversionHappenedAt"`
	ConversionValue      money  `json:"conversionValue"`
	EventID              string `json:"eventId"`
	User                 user   `json:"user"`
}

type user struct {
	UserIDs []userID `json:"userIds"`
}

type userID struct {
	IDType  string `json:"idType"`
	IDValue string `json:"idValue"`
}
