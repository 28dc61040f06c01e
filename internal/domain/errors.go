package domain

import (
	"errors"
	"fmt"
)

// Category sentinels. Handlers classify with errors.Is and map them to HTTP
// status codes; everything unclassified becomes a 500.
var (
	ErrValidation      = errors.New("invalid request")
	ErrUnauthenticated = errors.New("user authentication required")
	ErrNotFound        = errors.New("not found")
)

// Specific errors wrap their category so callers can match either way.
var (
	ErrMerchantAccountIDFormat = fmt.Errorf("%w: merchant account id must start with %q", ErrValidation, MerchantAccountPrefix)
	ErrPaymentTokenRequired    = fmt.Errorf("%w: payment token required for electronic payments", ErrValidation)
	ErrAmountInvalid           = fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	ErrMerchantLinkNotFound    = categorized("No merchant account found for user", ErrNotFound)
)

// categorizedError matches its category via errors.Is without the category
// text leaking into the message handlers surface.
type categorizedError struct {
	message  string
	category error
}

func categorized(message string, category error) error {
	return &categorizedError{message: message, category: category}
}

func (e *categorizedError) Error() string { return e.message }
func (e *categorizedError) Unwrap() error { return e.category }

// ProcessingError is a payment the processor rejected or failed. Message
// carries the processor-supplied detail when the processor gave one.
type ProcessingError struct {
	Message string
	Err     error
}

func (e *ProcessingError) Error() string {
	if e.Message != "" {
		return "payment processing failed: " + e.Message
	}
	return "payment processing failed"
}

func (e *ProcessingError) Unwrap() error { return e.Err }
