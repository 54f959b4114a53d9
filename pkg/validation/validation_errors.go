package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Messages returned to the caller for failed quote validation.
const (
	MsgMissingFields = "Missing required fields"
	MsgInvalidEmail  = "Invalid email format"
)

// Summarize collapses validator.ValidationErrors into the single message the
// client sees. Missing fields win over malformed ones so the caller fixes the
// form top-down.
func Summarize(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msg := ""
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			return MsgMissingFields
		case "mailbox", "email":
			msg = MsgInvalidEmail
		default:
			if msg == "" {
				msg = fieldMessage(e)
			}
		}
	}
	return msg
}

// fieldMessage formats a rule we have no dedicated copy for
func fieldMessage(e validator.FieldError) string {
	return "Invalid value for " + e.Field()
}
