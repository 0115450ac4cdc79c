package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidLength indicates phone number length is not 10 digits
	ErrInvalidLength = errors.New("phone number must be exactly 10 digits")

	// ErrInvalidFormat indicates phone number contains invalid characters
	ErrInvalidFormat = errors.New("phone number can only contain digits")

	// ErrEmptyPhone indicates phone number is empty
	ErrEmptyPhone = errors.New("phone number cannot be empty")
)

// phoneRegex matches digits only
var phoneRegex = regexp.MustCompile(`^\d+$`)

// PhoneValidator handles phone number normalization and validation
type PhoneValidator struct{}

// NewPhoneValidator creates a new phone validator instance
func NewPhoneValidator() *PhoneValidator {
	return &PhoneValidator{}
}

// Normalize strips spaces, dashes and parentheses from a phone number and
// rewrites a +233 country prefix to local 0-prefixed form. It does not
// reject; callers that need a reachable number run Validate afterwards.
func (v *PhoneValidator) Normalize(phone string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	if strings.HasPrefix(cleaned, "+233") {
		cleaned = "0" + cleaned[4:]
	}
	return cleaned
}

// Validate checks a normalized Ghanaian phone number: 10 digits starting
// with 0
func (v *PhoneValidator) Validate(phone string) error {
	cleaned := v.Normalize(phone)

	if cleaned == "" {
		return ErrEmptyPhone
	}

	if !phoneRegex.MatchString(cleaned) {
		return ErrInvalidFormat
	}

	if len(cleaned) != 10 || !strings.HasPrefix(cleaned, "0") {
		return ErrInvalidLength
	}

	return nil
}

// IsValid returns true if the phone number passes validation
func (v *PhoneValidator) IsValid(phone string) bool {
	return v.Validate(phone) == nil
}
