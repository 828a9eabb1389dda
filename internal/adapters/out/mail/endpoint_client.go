// internal/adapters/out/mail/endpoint_client.go
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// EndpointClient は外部のメール送信 API（EMAIL_API_ENDPOINT）に JSON を POST します。
type EndpointClient struct {
	url    string
	client *http.Client
}

// endpointPayload はサイトのフロントが送っていた形式と同じ
type endpointPayload struct {
	To          string       `json:"to"`
	From        string       `json:"from,omitempty"`
	FromName    string       `json:"fromName,omitempty"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
	TextContent string       `json:"textContent,omitempty"`
	Template    TemplateName `json:"template,omitempty"`
	Data        any          `json:"data,omitempty"`
}

// url example:
// - https://us-central1-xxxx.cloudfunctions.net/sendEmail
// - http://localhost:5001/api/send-email
func NewEndpointClient(url string, client *http.Client) *EndpointClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &EndpointClient{url: strings.TrimSpace(url), client: client}
}

func (c *EndpointClient) Send(ctx context.Context, e Email) error {
	if c == nil || c.url == "" {
		return fmt.Errorf("email endpoint url is empty")
	}
	if strings.TrimSpace(e.To) == "" {
		return ErrEmptyTo
	}

	b, err := json.Marshal(endpointPayload{
		To:          strings.TrimSpace(e.To),
		From:        e.From,
		FromName:    e.FromName,
		Subject:     e.Subject,
		HTMLContent: e.HTML,
		TextContent: e.Text,
		Template:    e.Template,
		Data:        e.Meta,
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 1<<20))
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	return fmt.Errorf("email service error status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
}
