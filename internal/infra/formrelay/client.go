package formrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	repo "velour/internal/repository"

	"github.com/go-faster/errors"
)

// 外部のフォーム送信サービスへJSONでPOSTする
type Client struct {
	endpoint string
	http     *http.Client
}

// DI（endpointが空なら送信時にErrRelayNotConfigured）
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) Send(ctx context.Context, payload any) error {
	if c.endpoint == "" {
		return repo.ErrRelayNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "post form")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	//エラー本文に {"error": "..."} があればそれを使う（無ければ空）
	msg := ""
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
		msg = eb.Error
	}
	return &repo.RelayError{Status: resp.StatusCode, Message: msg}
}
