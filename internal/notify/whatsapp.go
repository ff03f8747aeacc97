// Package notify delivers post-registration WhatsApp messages through an
// outbound gateway. Delivery is best effort: the dispatcher logs failures
// and never reports them back to the submission path.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WhatsAppClient sends messages via a Fonnte-style HTTP gateway. The API
// token is held server-side and attached as the Authorization header.
type WhatsAppClient struct {
	httpClient  *http.Client
	apiURL      string
	token       string
	countryCode string
}

// NewWhatsAppClient constructs a WhatsAppClient for the given gateway.
func NewWhatsAppClient(apiURL, token, countryCode string, timeout time.Duration) *WhatsAppClient {
	return &WhatsAppClient{
		httpClient:  &http.Client{Timeout: timeout},
		apiURL:      apiURL,
		token:       token,
		countryCode: countryCode,
	}
}

// CountryCode returns the configured country code for target formatting.
func (c *WhatsAppClient) CountryCode() string {
	return c.countryCode
}

type sendPayload struct {
	CountryCode string `json:"countryCode"`
	Target      string `json:"target"`
	Message     string `json:"message"`
}

// Send posts one message to the gateway. No delivery confirmation is
// awaited beyond the HTTP status.
func (c *WhatsAppClient) Send(ctx context.Context, target, message string) error {
	body, err := json.Marshal(sendPayload{
		CountryCode: c.countryCode,
		Target:      target,
		Message:     message,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return nil
}
