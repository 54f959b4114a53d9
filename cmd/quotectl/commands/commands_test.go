package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"colchester-plumber-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSendTest(t *testing.T) {
	var got domain.QuoteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Quote request submitted successfully"}`))
	}))
	defer srv.Close()

	out, err := run(t, "send-test", "--url", srv.URL, "--name", "Jo")
	require.NoError(t, err)

	assert.Contains(t, out, "Email API test successful")
	assert.Equal(t, "Jo", got.Name)
	assert.Equal(t, "test@example.com", got.Email)
	assert.Equal(t, "CO1 1AA", got.Postcode)
}

func TestSendTestReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Email service temporarily unavailable"}`))
	}))
	defer srv.Close()

	_, err := run(t, "send-test", "--url", srv.URL)

	assert.ErrorContains(t, err, "503")
}

func TestPreview(t *testing.T) {
	t.Setenv("EMAIL_DRIVER", "log")

	out, err := run(t, "preview", "autoreply")
	require.NoError(t, err)
	assert.Contains(t, out, "Subject: Thank you for your enquiry - Colchester Plumber")
	assert.Contains(t, out, "Thank you for your enquiry, Test User!")

	out, err = run(t, "preview", "notification", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "Subject: New Quote Request from Test User")
	assert.Contains(t, out, "Reply-To:")
	assert.Contains(t, out, "<h2")
}

func TestPreviewUnknownKind(t *testing.T) {
	t.Setenv("EMAIL_DRIVER", "log")

	_, err := run(t, "preview", "invoice")

	assert.ErrorContains(t, err, "unknown email")
}
