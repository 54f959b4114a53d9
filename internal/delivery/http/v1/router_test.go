package v1_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"colchester-plumber-api/config"
	v1 "colchester-plumber-api/internal/delivery/http/v1"
	"colchester-plumber-api/internal/usecase"
	"colchester-plumber-api/pkg/email"
	"colchester-plumber-api/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const joQuote = `{"name":"Jo","email":"jo@example.com","phone":"01206000000","postcode":"CO1 1AA","issue":"Leaking tap"}`

// fakeSendGrid records mail/send calls and answers with the next status in line.
type fakeSendGrid struct {
	mu       sync.Mutex
	statuses []int
	subjects []string
	srv      *httptest.Server
}

func newFakeSendGrid(t *testing.T, statuses ...int) *fakeSendGrid {
	f := &fakeSendGrid{statuses: statuses}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Personalizations []struct {
				Subject string `json:"subject"`
			} `json:"personalizations"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)

		f.mu.Lock()
		defer f.mu.Unlock()
		if len(payload.Personalizations) > 0 {
			f.subjects = append(f.subjects, payload.Personalizations[0].Subject)
		}
		status := http.StatusAccepted
		if len(f.statuses) > 0 {
			status, f.statuses = f.statuses[0], f.statuses[1:]
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeSendGrid) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.subjects...)
}

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowedOrigins: []string{"*"},
		EmailDriver:        config.EmailDriverSendGrid,
		FromEmail:          "noreply@colchester-plumber.co.uk",
		BusinessEmail:      "bookings@colchester-plumber.co.uk",
		BusinessName:       "Colchester Plumbing & Heating Co.",
		BusinessPhone:      "01279 249046",
		BusinessWhatsApp:   "+441206123456",
		WebsiteName:        "Colchester Plumber Website",
	}
}

func newTestRouter(t *testing.T, apiKey string, provider *fakeSendGrid) *gin.Engine {
	t.Helper()
	cfg := testConfig()

	endpoint := "http://127.0.0.1:1"
	if provider != nil {
		endpoint = provider.srv.URL
	}
	sender := email.NewSendGridClient(apiKey, email.WithEndpoint(endpoint))

	quoteUC := usecase.NewQuoteUsecase(sender, email.MustLoadTemplates(), validation.New(), usecase.QuoteSettings{
		From:          email.Address{Email: cfg.FromEmail},
		BusinessInbox: email.Address{Email: cfg.BusinessEmail},
		Branding: email.Branding{
			BusinessName: cfg.BusinessName,
			Phone:        cfg.BusinessPhone,
			WhatsApp:     cfg.BusinessWhatsApp,
			WebsiteName:  cfg.WebsiteName,
		},
		Now: func() time.Time { return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC) },
	})
	healthUC := usecase.NewHealthUsecase(sender, usecase.HealthSettings{EmailDriver: cfg.EmailDriver})

	return v1.NewRouter(v1.RouterDeps{
		QuoteUC:  quoteUC,
		HealthUC: healthUC,
		Config:   cfg,
	})
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://colchester-plumber.co.uk")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func TestSendEmailSuccess(t *testing.T) {
	provider := newFakeSendGrid(t)
	r := newTestRouter(t, "SG.key", provider)

	w := do(r, http.MethodPost, "/api/send-email", joQuote)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Quote request submitted successfully", body["message"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.Equal(t, []string{
		"New Quote Request from Jo",
		"Thank you for your enquiry - Colchester Plumber",
	}, provider.calls())
}

func TestSendEmailAutoReplyFailureStillSucceeds(t *testing.T) {
	provider := newFakeSendGrid(t, http.StatusAccepted, http.StatusBadRequest)
	r := newTestRouter(t, "SG.key", provider)

	w := do(r, http.MethodPost, "/api/send-email", joQuote)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
	assert.Len(t, provider.calls(), 2)
}

func TestSendEmailProviderFailure(t *testing.T) {
	provider := newFakeSendGrid(t, http.StatusInternalServerError)
	r := newTestRouter(t, "SG.key", provider)

	w := do(r, http.MethodPost, "/api/send-email", joQuote)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Email service temporarily unavailable", body["error"])
	assert.NotEmpty(t, body["message"])
	assert.Len(t, provider.calls(), 1)
}

func TestSendEmailProviderUnreachable(t *testing.T) {
	r := newTestRouter(t, "SG.key", nil)

	w := do(r, http.MethodPost, "/api/send-email", joQuote)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSendEmailNotConfigured(t *testing.T) {
	provider := newFakeSendGrid(t)
	r := newTestRouter(t, "", provider)

	w := do(r, http.MethodPost, "/api/send-email", joQuote)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Email service not configured", decode(t, w)["error"])
	assert.Empty(t, provider.calls())
}

func TestSendEmailValidation(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"missing issue":  {`{"name":"Jo","email":"jo@example.com","phone":"01206000000"}`, "Missing required fields"},
		"missing name":   {`{"email":"jo@example.com","phone":"01206000000","issue":"Leak"}`, "Missing required fields"},
		"empty body":     {"", "Missing required fields"},
		"empty object":   {`{}`, "Missing required fields"},
		"bad email":      {`{"name":"Jo","email":"not-an-email","phone":"01206000000","issue":"Leak"}`, "Invalid email format"},
		"nbsp in email":  {`{"name":"Jo","email":"jo\u00a0bloggs@example.com","phone":"01206000000","issue":"Leak"}`, "Invalid email format"},
		"u2028 in email": {`{"name":"Jo","email":"jo\u2028x@example.com","phone":"01206000000","issue":"Leak"}`, "Invalid email format"},
		"malformed json": {`{"name":`, "Invalid request data"},
		"wrong type":     {`{"name":42,"email":"jo@example.com","phone":"1","issue":"x"}`, "Invalid request data"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			provider := newFakeSendGrid(t)
			r := newTestRouter(t, "SG.key", provider)

			w := do(r, http.MethodPost, "/api/send-email", tc.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, decode(t, w)["error"])
			assert.Empty(t, provider.calls())
		})
	}
}

func TestSendEmailPreflight(t *testing.T) {
	provider := newFakeSendGrid(t)
	r := newTestRouter(t, "", provider)

	w := do(r, http.MethodOptions, "/api/send-email", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "https://colchester-plumber.co.uk", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Empty(t, provider.calls())
}

func TestSendEmailMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t, "SG.key", newFakeSendGrid(t))

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		w := do(r, method, "/api/send-email", "")

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, "Method not allowed", decode(t, w)["error"], method)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, "SG.key", nil)

	w := do(r, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "GET", body["method"])
	env, ok := body["environment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, env["hasApiKey"])
	assert.Equal(t, "sendgrid", env["emailDriver"])
}

func TestHealthAnswersAnyMethod(t *testing.T) {
	r := newTestRouter(t, "SG.key", nil)

	w := do(r, http.MethodPost, "/api/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "POST", body["method"])
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, "SG.key", nil)

	w := do(r, http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decode(t, w)["error"])
}
