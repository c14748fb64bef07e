package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"stremini.backend/internal/domain/repositories"
	"stremini.backend/pkg/logger"
)

// DefaultEndpoint is the REST send endpoint of the email provider
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Client posts templated emails to the provider's REST API. Safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

var _ repositories.EmailSender = (*Client)(nil)

func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send delivers one email. A non-2xx reply is returned as an error together with its status.
func (c *Client) Send(ctx context.Context, serviceID, templateID string, variables map[string]string, creds repositories.EmailCredentials) (int, error) {
	body, err := json.Marshal(sendRequest{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         creds.PublicKey,
		AccessToken:    creds.PrivateKey,
		TemplateParams: variables,
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("email send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Warn(ctx, "Email provider rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("template_id", templateID),
		)
		return resp.StatusCode, fmt.Errorf("email provider returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return resp.StatusCode, nil
}
