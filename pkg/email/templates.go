package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// AutoReplySubject is the fixed subject of the customer auto-reply.
const AutoReplySubject = "Thank you for your enquiry - Colchester Plumber"

// timestampLayout matches en-GB locale output, e.g. 19/10/2026, 14:05:09.
const timestampLayout = "02/01/2006, 15:04:05"

// Branding is the business identity printed in both emails.
type Branding struct {
	BusinessName string
	Phone        string
	WhatsApp     string // E.164, e.g. +441206123456
	WebsiteName  string
}

// QuoteDetails is the submitted form plus the time it was received.
type QuoteDetails struct {
	Name      string
	Email     string
	Phone     string
	Postcode  string
	Issue     string
	Submitted time.Time
}

// templateData is what the templates see. Links are pre-built as
// template.URL so html/template does not reject the tel: scheme.
type templateData struct {
	Quote             QuoteDetails
	Brand             Branding
	SubmittedAt       string
	MailtoHref        htmltemplate.URL
	CustomerPhoneHref htmltemplate.URL
	BusinessPhoneHref htmltemplate.URL
	WhatsAppHref      htmltemplate.URL
}

func newTemplateData(q QuoteDetails, b Branding) templateData {
	return templateData{
		Quote:             q,
		Brand:             b,
		SubmittedAt:       q.Submitted.Format(timestampLayout),
		MailtoHref:        htmltemplate.URL("mailto:" + q.Email),
		CustomerPhoneHref: htmltemplate.URL("tel:" + dialable(q.Phone)),
		BusinessPhoneHref: htmltemplate.URL("tel:" + dialable(b.Phone)),
		WhatsAppHref:      htmltemplate.URL("https://wa.me/" + strings.TrimPrefix(dialable(b.WhatsApp), "+")),
	}
}

// dialable keeps only '+' and digits.
func dialable(phone string) string {
	return strings.Map(func(r rune) rune {
		if r == '+' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, phone)
}

// Templates renders the quote notification and the auto-reply
type Templates struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func LoadTemplates() (*Templates, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html email templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text email templates: %w", err)
	}
	return &Templates{html: html, text: text}, nil
}

// MustLoadTemplates panics if the embedded templates are broken.
func MustLoadTemplates() *Templates {
	t, err := LoadTemplates()
	if err != nil {
		panic(err)
	}
	return t
}

// QuoteNotification builds the email that tells the business about a new lead.
// Replies go straight to the customer.
func (t *Templates) QuoteNotification(q QuoteDetails, b Branding, from, to Address) (*Message, error) {
	html, text, err := t.render("quote_notification", newTemplateData(q, b))
	if err != nil {
		return nil, err
	}
	return &Message{
		To:      to,
		From:    Address{Email: from.Email, Name: b.WebsiteName},
		ReplyTo: &Address{Email: q.Email, Name: q.Name},
		Subject: "New Quote Request from " + q.Name,
		HTML:    html,
		Text:    text,
	}, nil
}

// AutoReply builds the courtesy email sent back to the customer.
func (t *Templates) AutoReply(q QuoteDetails, b Branding, from Address) (*Message, error) {
	html, text, err := t.render("auto_reply", newTemplateData(q, b))
	if err != nil {
		return nil, err
	}
	return &Message{
		To:      Address{Email: q.Email, Name: q.Name},
		From:    Address{Email: from.Email, Name: b.BusinessName},
		Subject: AutoReplySubject,
		HTML:    html,
		Text:    text,
	}, nil
}

func (t *Templates) render(name string, data templateData) (string, string, error) {
	var html, text bytes.Buffer
	if err := t.html.ExecuteTemplate(&html, name+".html.tmpl", data); err != nil {
		return "", "", fmt.Errorf("failed to execute %s html template: %w", name, err)
	}
	if err := t.text.ExecuteTemplate(&text, name+".txt.tmpl", data); err != nil {
		return "", "", fmt.Errorf("failed to execute %s text template: %w", name, err)
	}
	return html.String(), text.String(), nil
}
