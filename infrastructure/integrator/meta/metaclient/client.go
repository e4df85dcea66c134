package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=../mocks/client_mock.go -package=mocks
type Client interface {
	CreateObject(ctx context.Context, token, parentID, edge string, params url.Values) (string, error)
	UpdateObject(ctx context.Context, token, objectID string, params url.Values) error
	GetInsights(ctx context.Context, token, objectID, since, until string) ([]metadomain.Insight, error)
	SendEvents(ctx context.Context, token, pixelID string, events []metadomain.ServerEvent) ([]byte, error)
}

type MetaClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.Meta) Client {
	return &MetaClient{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		httpClient: utils.NewHTTPClient(cfg.Timeout),
	}
}

// CreateObject cria um nó filho (ex.: act_123/campaigns) e devolve o id gerado
func (c *MetaClient) CreateObject(ctx context.Context, token, parentID, edge string, params url.Values) (string, error) {
	body, err := c.post(ctx, token, fmt.Sprintf("%s/%s", parentID, edge), params)
	if err != nil {
		return "", err
	}

	var created metadomain.CreatedObject
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta de criação: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("meta: resposta sem id ao criar %s", edge)
	}

	return created.ID, nil
}

// UpdateObject altera campos de um nó existente (status, daily_budget)
func (c *MetaClient) UpdateObject(ctx context.Context, token, objectID string, params url.Values) error {
	_, err := c.post(ctx, token, objectID, params)
	return err
}

func (c *MetaClient) post(ctx context.Context, token, path string, params url.Values) ([]byte, error) {
	form := url.Values{}
	for k, v := range params {
		form[k] = v
	}
	form.Set("access_token", token)

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, path)
	body, err := utils.MakeRequest(ctx, c.httpClient, http.MethodPost, endpoint, []byte(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	if err != nil {
		return nil, handleError(body, err)
	}

	return body, nil
}

func (c *MetaClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	body, err := utils.MakeRequest(ctx, c.httpClient, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, handleError(body, err)
	}
	return body, nil
}

// handleError traduz o corpo de erro do Graph API. Token expirado vira platform.ErrTokenExpired.
func handleError(body []byte, err error) error {
	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	var errorResp metadomain.ErrorResponse
	if parseErr := json.Unmarshal(body, &errorResp); parseErr != nil || errorResp.Error.Message == "" {
		return fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", httpErr.StatusCode, string(body))
	}

	if errorResp.IsTokenExpired() {
		logrus.Warnf("Token expirado detectado pela API Meta. Código: %d, Subcódigo: %d",
			errorResp.Error.Code, errorResp.Error.ErrorSubcode)
		return fmt.Errorf("%w: %s", platform.ErrTokenExpired, errorResp.String())
	}

	return errors.New(errorResp.String())
}
