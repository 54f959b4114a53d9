package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"colchester-plumber-api/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	t.Run("unwraps a wrapped AppError", func(t *testing.T) {
		inner := apperror.Validation("Missing required fields")
		got := apperror.From(fmt.Errorf("submit quote: %w", inner))

		assert.Same(t, inner, got)
		assert.Equal(t, http.StatusBadRequest, got.Code)
		assert.Equal(t, apperror.KindValidation, got.Kind)
	})

	t.Run("falls back to the generic internal error", func(t *testing.T) {
		cause := errors.New("boom")
		got := apperror.From(cause)

		assert.Equal(t, http.StatusInternalServerError, got.Code)
		assert.Equal(t, apperror.KindUnknown, got.Kind)
		assert.Equal(t, "Failed to process request", got.Message)
		assert.ErrorIs(t, got, cause)
	})
}

func TestProvider(t *testing.T) {
	cause := errors.New("sendgrid: 502")
	err := apperror.Provider(cause)

	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
	assert.Equal(t, "Email service temporarily unavailable", err.Error())
	assert.NotEmpty(t, err.Detail)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "provider", err.Kind.String())
}

func TestConfiguration(t *testing.T) {
	err := apperror.Configuration("Email service not configured", nil)

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, apperror.KindConfiguration, err.Kind)
	assert.Empty(t, err.Detail)
}

func TestCallerErrorsAreValidationKind(t *testing.T) {
	for _, err := range []*apperror.AppError{
		apperror.BadRequest("Invalid request data"),
		apperror.MethodNotAllowed(),
		apperror.TooManyRequests("Too many requests"),
	} {
		assert.Equal(t, apperror.KindValidation, err.Kind, err.Message)
		assert.Less(t, err.Code, http.StatusInternalServerError, err.Message)
	}
}
