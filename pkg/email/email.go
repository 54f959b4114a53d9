package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"colchester-plumber-api/config"
)

var (
	// ErrNotConfigured is returned by Send when credentials are missing.
	ErrNotConfigured = errors.New("email sender not configured")
	// ErrInvalidAddress is returned when a recipient cannot be parsed.
	ErrInvalidAddress = errors.New("invalid email address")
)

// Address is a mailbox with an optional display name.
type Address struct {
	Email string
	Name  string
}

func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return (&mail.Address{Name: a.Name, Address: a.Email}).String()
}

func (a Address) validate() error {
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, a.Email)
	}
	return nil
}

// Message is one outbound email with parallel HTML and plaintext bodies.
type Message struct {
	To      Address
	From    Address
	ReplyTo *Address
	Subject string
	HTML    string
	Text    string
}

func (m *Message) validate() error {
	if err := m.To.validate(); err != nil {
		return err
	}
	if m.ReplyTo != nil {
		return m.ReplyTo.validate()
	}
	return nil
}

// Sender delivers a Message through some provider.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
	// IsConfigured reports whether the sender has the credentials it needs.
	IsConfigured() bool
	Name() string
}

// ProviderError is returned when the provider refuses or cannot be reached.
// StatusCode is zero for transport failures.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	default:
		return e.Provider + " request failed"
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Unauthorized reports whether the provider rejected our credentials.
func (e *ProviderError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// NewSender builds the sender selected by cfg.EmailDriver
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.EmailDriver {
	case config.EmailDriverSendGrid, "":
		return NewSendGridClient(cfg.SendGridAPIKey,
			WithEndpoint(cfg.SendGridEndpoint),
			WithHTTPClient(&http.Client{Timeout: cfg.EmailHTTPTimeout}),
		), nil
	case config.EmailDriverSMTP:
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}), nil
	case config.EmailDriverLog:
		return NewLogSender(), nil
	default:
		return nil, fmt.Errorf("unknown email driver %q", cfg.EmailDriver)
	}
}
