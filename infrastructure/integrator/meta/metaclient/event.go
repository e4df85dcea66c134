package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/campaign-engine/infrastructure/integrator/meta/domain"
)

// SendEvents envia eventos para a Conversions API do pixel e devolve a resposta bruta
func (c *MetaClient) SendEvents(ctx context.Context, token, pixelID string, events []metadomain.ServerEvent) ([]byte, error) {
	data, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar eventos: %w", err)
	}

	params := url.Values{}
	params.Set("data", string(data))

	return c.post(ctx, token, fmt.Sprintf("%s/events", pixelID), params)
}
