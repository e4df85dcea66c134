package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// HTTPError representa uma resposta com status fora da faixa 2xx
type HTTPError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("erro na requisição: %s status: %d", e.URL, e.StatusCode)
}

// NewHTTPClient cria um cliente HTTP com timeout limitado
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Response é o resultado bruto de uma chamada HTTP
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// MakeRequest executa a requisição e devolve o corpo. Status fora de 2xx vira *HTTPError com o corpo preservado.
func MakeRequest(ctx context.Context, client *http.Client, method, url string, body []byte, headers map[string]string) ([]byte, error) {
	resp, err := DoRequest(ctx, client, method, url, body, headers)
	if resp == nil {
		return nil, err
	}
	return resp.Body, err
}

// DoRequest é como MakeRequest, mas preserva status e cabeçalhos da resposta
func DoRequest(ctx context.Context, client *http.Client, method, url string, body []byte, headers map[string]string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao fazer a requisição: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &HTTPError{URL: req.URL.Redacted(), StatusCode: resp.StatusCode, Body: data}
	}

	return out, nil
}
