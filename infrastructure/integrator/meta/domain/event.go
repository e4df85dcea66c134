package metadomain

// ServerEvent é um evento da Conversions API
type ServerEvent struct {
	EventName    string         `json:"event_name"`
	EventTime    int64          `json:"event_time"`
	EventID      string         `json:"event_id"`
	ActionSource string         `json:"action_source"`
	UserData     map[string]any `json:"user_data"`
	CustomData   CustomData     `json:"custom_data"`
}

type CustomData struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
	OrderID  string  `json:"order_id,omitempty"`
}

type EventsResponse struct {
	EventsReceived int    `json:"events_received"`
	FBTraceID      string `json:"fbtrace_id"`
}
