package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/campaign-engine/infrastructure/integrator/meta/domain"
)

const insightFields = "campaign_id,impressions,reach,clicks,spend,frequency,actions,action_values,video_play_actions"

// GetInsights percorre todas as páginas de insights diários do objeto. Em caso de falha devolve o que já foi lido.
func (c *MetaClient) GetInsights(ctx context.Context, token, objectID, since, until string) ([]metadomain.Insight, error) {
	params := url.Values{}
	params.Add("fields", insightFields)
	params.Add("time_increment", "1")
	params.Add("time_range", fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", since, until))
	params.Add("limit", "100")
	params.Add("access_token", token)

	next := fmt.Sprintf("%s/%s/insights?%s", c.baseURL, objectID, params.Encode())
	insights := make([]metadomain.Insight, 0)

	for next != "" {
		body, err := c.get(ctx, next)
		if err != nil {
			return insights, err
		}

		var response metadomain.InsightResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return insights, fmt.Errorf("erro ao decodificar insights: %w", err)
		}

		insights = append(insights, response.Data...)
		next = response.Paging.Next
	}

	return insights, nil
}
