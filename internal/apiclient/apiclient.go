package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	myErr "storefront/internal/types/errors"
)

// Client JSON-клиент удалённого API магазина
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

// Do выполняет запрос и декодирует JSON-ответ в out при любом статусе.
// Возвращает код ответа; ошибка транспорта оборачивает ErrRemoteAPI,
// ошибка разбора тела - ErrBadResponse.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) (int, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Warnw("remote API request failed", "method", method, "path", path, "err", err)
		return 0, fmt.Errorf("%w: %v", myErr.ErrRemoteAPI, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", myErr.ErrRemoteAPI, err)
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			c.Logger.Warnw("failed to decode remote API response",
				"method", method,
				"path", path,
				"status", resp.StatusCode,
				"err", err,
			)
			return resp.StatusCode, fmt.Errorf("%w: %v", myErr.ErrBadResponse, err)
		}
	}

	return resp.StatusCode, nil
}

// IsSuccess 2xx
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
