package domain

import "context"

// QuoteRequest is one contact-form submission. It lives for a single request
// and is never stored.
type QuoteRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,mailbox"`
	Phone    string `json:"phone" validate:"required"`
	Postcode string `json:"postcode,omitempty"`
	Issue    string `json:"issue" validate:"required"`
}

// QuoteUsecase defines the interface for quote-request operations
type QuoteUsecase interface {
	// SubmitQuote validates the request, notifies the business and sends the
	// customer a best-effort auto-reply.
	SubmitQuote(ctx context.Context, req *QuoteRequest) error
}
