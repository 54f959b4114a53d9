package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Loose mailbox check: something@something.tld with no whitespace.
	// Whitespace covers \v, Unicode separators (NBSP, U+2028, U+3000) and the BOM.
	mailboxRegex = regexp.MustCompile(`^[^\s\x{0B}\p{Z}\x{FEFF}@]+@[^\s\x{0B}\p{Z}\x{FEFF}@]+\.[^\s\x{0B}\p{Z}\x{FEFF}@]+$`)
)

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("mailbox", Mailbox)
}

// Mailbox validates the basic local@domain.tld shape
func Mailbox(fl validator.FieldLevel) bool {
	return IsMailbox(fl.Field().String())
}

// IsMailbox reports whether s looks like an email address
func IsMailbox(s string) bool {
	return mailboxRegex.MatchString(s)
}
