package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultSendGridEndpoint is the public SendGrid API host.
	DefaultSendGridEndpoint = "https://api.sendgrid.com"

	// placeholderAPIKey ships in .env.example; treat it as unset.
	placeholderAPIKey = "SG.your_actual_sendgrid_api_key_here"

	maxErrorBody = 2048
)

// SendGridClient sends mail through the SendGrid v3 Web API
type SendGridClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

type SendGridOption func(*SendGridClient)

// WithEndpoint overrides the API host, e.g. for a sandbox or a test server.
func WithEndpoint(endpoint string) SendGridOption {
	return func(c *SendGridClient) {
		if endpoint != "" {
			c.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

func WithHTTPClient(client *http.Client) SendGridOption {
	return func(c *SendGridClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func NewSendGridClient(apiKey string, opts ...SendGridOption) *SendGridClient {
	c := &SendGridClient{
		apiKey:     strings.TrimSpace(apiKey),
		endpoint:   DefaultSendGridEndpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridPersonalization struct {
	To      []sendGridAddress `json:"to"`
	Subject string            `json:"subject"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPayload struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	ReplyTo          *sendGridAddress          `json:"reply_to,omitempty"`
	Content          []sendGridContent         `json:"content"`
}

func newSendGridPayload(msg *Message) sendGridPayload {
	p := sendGridPayload{
		Personalizations: []sendGridPersonalization{{
			To:      []sendGridAddress{{Email: msg.To.Email, Name: msg.To.Name}},
			Subject: msg.Subject,
		}},
		From: sendGridAddress{Email: msg.From.Email, Name: msg.From.Name},
	}
	if msg.ReplyTo != nil {
		p.ReplyTo = &sendGridAddress{Email: msg.ReplyTo.Email, Name: msg.ReplyTo.Name}
	}
	// SendGrid rejects content arrays where text/html precedes text/plain.
	if msg.Text != "" {
		p.Content = append(p.Content, sendGridContent{Type: "text/plain", Value: msg.Text})
	}
	if msg.HTML != "" {
		p.Content = append(p.Content, sendGridContent{Type: "text/html", Value: msg.HTML})
	}
	return p
}

// Send posts msg to /v3/mail/send. Any non-2xx answer becomes a *ProviderError.
func (c *SendGridClient) Send(ctx context.Context, msg *Message) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	if err := msg.validate(); err != nil {
		return err
	}

	body, err := json.Marshal(newSendGridPayload(msg))
	if err != nil {
		return fmt.Errorf("failed to encode sendgrid payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sendgrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ProviderError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(errBody)),
		}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// IsConfigured checks that an API key other than the sample placeholder is set
func (c *SendGridClient) IsConfigured() bool {
	return c.apiKey != "" && c.apiKey != placeholderAPIKey
}

func (c *SendGridClient) Name() string {
	return "SendGrid"
}
