package platform

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vfg2006/campaign-engine/pkg/utils"
)

// ClassifyHTTPError marca respostas 401 como token expirado e anexa o corpo da resposta ao erro
func ClassifyHTTPError(network string, err error) error {
	if err == nil {
		return nil
	}

	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		return fmt.Errorf("%s: %w", network, err)
	}

	if httpErr.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w: %s", network, ErrTokenExpired, truncate(httpErr.Body))
	}

	return fmt.Errorf("%s: status %d: %s", network, httpErr.StatusCode, truncate(httpErr.Body))
}

func truncate(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
