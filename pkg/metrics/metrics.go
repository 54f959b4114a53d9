package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Email kinds and outcomes used as label values.
const (
	KindBusinessNotification = "business_notification"
	KindAutoReply            = "auto_reply"

	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// QuoteEmails counts outbound quote emails by kind and outcome.
var QuoteEmails = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "plumber",
	Name:      "quote_emails_total",
	Help:      "Outbound quote-request emails by kind and outcome.",
}, []string{"kind", "outcome"})

// QuoteRequests counts handled quote submissions by result (e.g. ok, validation, provider).
var QuoteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "plumber",
	Name:      "quote_requests_total",
	Help:      "Quote-request submissions by result.",
}, []string{"result"})

// RecordEmail increments QuoteEmails for one send attempt.
func RecordEmail(kind string, err error) {
	outcome := OutcomeSent
	if err != nil {
		outcome = OutcomeFailed
	}
	QuoteEmails.WithLabelValues(kind, outcome).Inc()
}
