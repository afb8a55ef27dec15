package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const brevoAPIURL = "https://api.brevo.com/v3/smtp/email"

// ErrNoAPIKey is returned before any network call when the Brevo key is
// not configured. The reminder batch records it as a per-user failure.
var ErrNoAPIKey = errors.New("BREVO_API_KEY is not configured. Please add it to your .env file")

// Client sends transactional email through the Brevo HTTP API. One
// outbound POST per Send call; retries are the caller's concern and the
// reminder pipeline performs none.
type Client struct {
	apiKey      string
	senderName  string
	senderEmail string

	baseURL string
	http    *http.Client
}

func NewClient(apiKey, senderName, senderEmail string) *Client {
	return &Client{
		apiKey:      apiKey,
		senderName:  senderName,
		senderEmail: senderEmail,
		baseURL:     brevoAPIURL,
		http:        &http.Client{Timeout: 30 * time.Second},
	}
}

type sendRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

type party struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Send delivers one email and returns the provider-assigned message id.
func (c *Client) Send(ctx context.Context, toEmail, toName, subject, htmlContent string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(sendRequest{
		Sender:      party{Email: c.senderEmail, Name: c.senderName},
		To:          []party{{Email: toEmail, Name: toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send email request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
			return "", fmt.Errorf("brevo: %s", apiErr.Message)
		}
		return "", fmt.Errorf("brevo: unexpected status %d", resp.StatusCode)
	}

	var out sendResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return out.MessageID, nil
}
