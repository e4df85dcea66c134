package google

type mutateRequest struct {
	Operations []operation `json:"operations"`
}

type operation struct {
	Create     any    `json:"create,omitempty"`
	Update     any    `json:"update,omitempty"`
	UpdateMask string `json:"updateMask,omitempty"`
}

type mutateResponse struct {
	Results []struct {
		ResourceName string `json:"resourceName"`
	} `json:"results"`
}

type campaignBudget struct {
	ResourceName     string `json:"resourceName,omitempty"`
	Name             string `json:"name,omitempty"`
	AmountMicros     int64  `json:"amountMicros,string"`
	DeliveryMethod   string `json:"deliveryMethod,omitempty"`
	ExplicitlyShared *bool  `json:"explicitlyShared,omitempty"`
}

type campaign struct {
	ResourceName           string    `json:"resourceName,omitempty"`
	Name                   string    `json:"name,omitempty"`
	Status                 string    `json:"status,omitempty"`
	AdvertisingChannelType string    `json:"advertisingChannelType,omitempty"`
	CampaignBudget         string    `json:"campaignBudget,omitempty"`
	StartDate              string    `json:"startDate,omitempty"`
	EndDate                string    `json:"endDate,omitempty"`
	MaximizeConversions    *struct{} `json:"maximizeConversions,omitempty"`
	TargetSpend            *struct{} `json:"targetSpend,omitempty"`
}

type adGroup struct {
	ResourceName string `json:"resourceName,omitempty"`
	Name         string `json:"name,omitempty"`
	Campaign     string `json:"campaign,omitempty"`
	Status       string `json:"status,omitempty"`
	Type         string `json:"type,omitempty"`
}

type adGroupAd struct {
	ResourceName string `json:"resourceName,omitempty"`
	AdGroup      string `json:"adGroup,omitempty"`
	Status       string `json:"status,omitempty"`
	Ad           *ad    `json:"ad,omitempty"`
}

type ad struct {
	Name                string               `json:"name"`
	FinalURLs           []string             `json:"finalUrls"`
	ResponsiveDisplayAd *responsiveDisplayAd `json:"responsiveDisplayAd,omitempty"`
}

type responsiveDisplayAd struct {
	Headlines        []textAsset `json:"headlines"`
	LongHeadline     textAsset   `json:"longHeadline"`
	Descriptions     []textAsset `json:"descriptions"`
	BusinessName     string      `json:"businessName"`
	CallToActionText string      `json:"callToActionText,omitempty"`
}

type textAsset struct {
	Text string `json:"text"`
}

type searchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type searchResponse struct {
	Results       []searchRow `json:"results"`
	NextPageToken string      `json:"nextPageToken"`
}

type searchRow struct {
	Campaign struct {
		CampaignBudget string `json:"campaignBudget"`
	} `json:"campaign"`
	Segments struct {
		Date string `json:"date"`
	} `json:"segments"`
	Metrics struct {
		Impressions      int64   `json:"impressions,string"`
		Clicks           int64   `json:"clicks,string"`
		CostMicros       int64   `json:"costMicros,string"`
		Conversions      float64 `json:"conversions"`
		ConversionsValue float64 `json:"conversionsValue"`
		VideoViews       int64   `json:"videoViews,string"`
	} `json:"metrics"`
}

type uploadClickConversionsRequest struct {
	Conversions    []clickConversion `json:"conversions"`
	PartialFailure bool              `json:"partialFailure"`
}

type clickConversion struct {
	Gclid              string  `json:"gclid,omitempty"`
	ConversionAction   string  `json:"conversionAction"`
	ConversionDateTime string  `json:"conversionDateTime"`
	ConversionValue    float64 `json:"conversionValue"`
	CurrencyCode       string  `json:"currencyCode"`
	OrderID            string  `json:"orderId,omitempty"`
}
