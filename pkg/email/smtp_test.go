package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSenderSend(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
	)
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "apikey", Password: "secret"})
	s.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	}

	require.NoError(t, s.Send(context.Background(), sampleMessage()))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@colchester-plumber.co.uk", gotFrom)
	assert.Equal(t, []string{"bookings@colchester-plumber.co.uk"}, gotTo)
	assert.Contains(t, gotMsg, `Reply-To: "Jo" <jo@example.com>`)
	assert.Contains(t, gotMsg, "Content-Type: multipart/alternative; boundary=")
	assert.Less(t, strings.Index(gotMsg, "text/plain"), strings.Index(gotMsg, "text/html"))
}

func TestSMTPSenderFailureIsProviderError(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "u", Password: "p"})
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("535 authentication failed")
	}

	err := s.Send(context.Background(), sampleMessage())

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "SMTP", provErr.Provider)
}

func TestSMTPSenderIsConfigured(t *testing.T) {
	assert.False(t, NewSMTPSender(SMTPConfig{Host: "smtp.example.com"}).IsConfigured())
	assert.True(t, NewSMTPSender(SMTPConfig{Host: "h", Username: "u", Password: "p"}).IsConfigured())
}

func TestBuildMIMEEncodesSubject(t *testing.T) {
	msg := sampleMessage()
	msg.Subject = "Thank you – Colchester"

	raw, err := buildMIME(msg, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, string(raw), "Subject: =?utf-8?q?")
	assert.Contains(t, string(raw), "Date: Fri, 02 Jan 2026 03:04:05 +0000")
}

func TestLogSender(t *testing.T) {
	s := NewLogSender()
	assert.True(t, s.IsConfigured())
	assert.NoError(t, s.Send(context.Background(), sampleMessage()))

	assert.Equal(t, "abc...", preview("abcdef", 3))
	assert.Equal(t, "abc", preview("abc", 3))
}
