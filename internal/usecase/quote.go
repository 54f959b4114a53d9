package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"colchester-plumber-api/internal/domain"
	"colchester-plumber-api/pkg/apperror"
	"colchester-plumber-api/pkg/email"
	"colchester-plumber-api/pkg/logger"
	"colchester-plumber-api/pkg/metrics"
	"colchester-plumber-api/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// MsgNotConfigured is returned when the active sender has no credentials.
const MsgNotConfigured = "Email service not configured"

// QuoteSettings is everything the quote flow needs besides the sender.
type QuoteSettings struct {
	From          email.Address
	BusinessInbox email.Address
	Branding      email.Branding
	Location      *time.Location   // timestamps in the notification; UTC if nil
	Now           func() time.Time // defaults to time.Now
}

type quoteUsecase struct {
	sender    email.Sender
	templates *email.Templates
	validate  *validator.Validate
	settings  QuoteSettings
}

// NewQuoteUsecase creates a new quote usecase
func NewQuoteUsecase(sender email.Sender, templates *email.Templates, validate *validator.Validate, settings QuoteSettings) domain.QuoteUsecase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &quoteUsecase{
		sender:    sender,
		templates: templates,
		validate:  validate,
		settings:  settings,
	}
}

// SubmitQuote validates the request, sends the business notification and then
// the auto-reply. Only the notification can fail the request.
func (uc *quoteUsecase) SubmitQuote(ctx context.Context, req *domain.QuoteRequest) (err error) {
	defer func() {
		metrics.QuoteRequests.WithLabelValues(resultLabel(err)).Inc()
	}()

	q := normalize(req)
	if err := uc.validate.Struct(q); err != nil {
		return apperror.Validation(validation.Summarize(err))
	}

	if !uc.sender.IsConfigured() {
		logger.Log.ErrorContext(ctx, "Email provider credentials missing", "provider", uc.sender.Name())
		return apperror.Configuration(MsgNotConfigured, nil)
	}

	details := email.QuoteDetails{
		Name:      q.Name,
		Email:     q.Email,
		Phone:     q.Phone,
		Postcode:  q.Postcode,
		Issue:     q.Issue,
		Submitted: uc.settings.Now().In(uc.settings.Location),
	}

	notification, err := uc.templates.QuoteNotification(details, uc.settings.Branding, uc.settings.From, uc.settings.BusinessInbox)
	if err != nil {
		return apperror.Internal(err)
	}

	err = uc.sender.Send(ctx, notification)
	metrics.RecordEmail(metrics.KindBusinessNotification, err)
	if err != nil {
		return uc.providerFailure(ctx, "business notification", err)
	}
	logger.Log.InfoContext(ctx, "Business notification email sent", "provider", uc.sender.Name())

	uc.sendAutoReply(ctx, details)
	return nil
}

// sendAutoReply never fails the request: the lead already reached the business.
func (uc *quoteUsecase) sendAutoReply(ctx context.Context, details email.QuoteDetails) {
	reply, err := uc.templates.AutoReply(details, uc.settings.Branding, uc.settings.From)
	if err != nil {
		logger.Log.ErrorContext(ctx, "Auto-reply could not be rendered", "error", err)
		metrics.RecordEmail(metrics.KindAutoReply, err)
		return
	}

	err = uc.sender.Send(ctx, reply)
	metrics.RecordEmail(metrics.KindAutoReply, err)
	if err != nil {
		logger.Log.WarnContext(ctx, "Auto-reply failed", "provider", uc.sender.Name(), "error", err)
		return
	}
	logger.Log.InfoContext(ctx, "Auto-reply email sent", "provider", uc.sender.Name())
}

func (uc *quoteUsecase) providerFailure(ctx context.Context, what string, err error) error {
	switch {
	case errors.Is(err, email.ErrInvalidAddress):
		logger.Log.WarnContext(ctx, "Provider refused recipient for "+what, "error", err)
		return apperror.Validation(validation.MsgInvalidEmail)
	case errors.Is(err, email.ErrNotConfigured):
		logger.Log.ErrorContext(ctx, "Email provider credentials missing", "provider", uc.sender.Name())
		return apperror.Configuration(MsgNotConfigured, err)
	}

	var provErr *email.ProviderError
	if !errors.As(err, &provErr) {
		logger.Log.ErrorContext(ctx, "Failed to send "+what, "error", err)
		return apperror.Internal(err)
	}

	logger.Log.ErrorContext(ctx, "Failed to send "+what,
		"provider", provErr.Provider,
		"status", provErr.StatusCode,
		"error", err,
	)
	if provErr.Unauthorized() {
		logger.Log.ErrorContext(ctx, "Provider rejected the API key: it is invalid, expired or revoked", "provider", provErr.Provider)
	}
	return apperror.Provider(err)
}

func normalize(req *domain.QuoteRequest) domain.QuoteRequest {
	if req == nil {
		return domain.QuoteRequest{}
	}
	return domain.QuoteRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Postcode: strings.TrimSpace(req.Postcode),
		Issue:    strings.TrimSpace(req.Issue),
	}
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return apperror.From(err).Kind.String()
}
