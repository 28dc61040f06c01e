package processor

import (
	"context"
	"encoding/json"
	"fmt"
)

// Processor is the surface of the external payment processor the service
// depends on. The HTTP client implements it; tests substitute fakes.
type Processor interface {
	// GetAccount fetches a merchant account by id, acting on behalf of that
	// account.
	GetAccount(ctx context.Context, accountID string) (*Account, error)

	// CreatePaymentRequest submits a tokenized payment on behalf of the given
	// merchant account.
	CreatePaymentRequest(ctx context.Context, req *PaymentRequest, onBehalfOf string) (*PaymentRequestResponse, error)
}

// Account is a processor merchant account.
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status,omitempty"`
}

// PaymentRequest is the processor payment-request payload. Amount is in
// minor units.
type PaymentRequest struct {
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	PaymentToken string `json:"paymentToken"`
	Description  string `json:"description,omitempty"`
}

// PaymentRequestResponse is the processor's answer to a payment request.
// Raw keeps the unmodified response body for pass-through callers.
type PaymentRequestResponse struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// APIError is a non-2xx processor response. Message is the processor-supplied
// detail when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gettrx: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gettrx: status %d", e.StatusCode)
}
