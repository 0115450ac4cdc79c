package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStatus indicates a requested status transition is outside the
	// domain's allow-list or the target status is not a recognized value.
	ErrInvalidStatus = errors.New("invalid status transition")

	// ErrMissingPaymentReference indicates an electronic payment method was
	// chosen without a gateway transaction reference.
	ErrMissingPaymentReference = errors.New("payment_reference is required for electronic payments")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrVerificationFailed indicates the payment gateway did not confirm the
	// transaction as successful.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrGatewayNotConfigured indicates the gateway secret key is absent.
	ErrGatewayNotConfigured = errors.New("payment gateway not configured: missing secret key")
)

// ValidationError describes a single malformed input field.
// Validators fail fast: the first invalid field aborts the request.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// GatewayError describes a rejection reported by the payment gateway.
type GatewayError struct {
	Operation string
	Message   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %s", e.Operation, e.Message)
}

// PersistenceError wraps a backend write failure. The backend-provided
// detail is surfaced verbatim; there is no automatic retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
