package domain

import (
	"fmt"
	"time"
)

type PaymentMethod string
type PaymentStatus string

const (
	MethodCard PaymentMethod = "card"
	MethodACH  PaymentMethod = "ach"
)

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Electronic reports whether the method is settled through the processor.
// Anything else (cash, check, ...) is recorded without an external call.
func (m PaymentMethod) Electronic() bool {
	return m == MethodCard || m == MethodACH
}

// Payment is a single rent payment record. It is created exactly once per
// accepted submission and never updated afterwards.
//
// Invariant: ProcessorPaymentID is non-nil iff Status is completed. Only a
// successful processor response carries an id, and only then is the payment
// complete.
type Payment struct {
	ID            string        `json:"id" db:"id"`
	UserID        string        `json:"userId" db:"user_id"`
	TenantID      string        `json:"tenantId" db:"tenant_id"`
	PropertyID    string        `json:"propertyId" db:"property_id"`
	AmountMinor   int64         `json:"amountMinor" db:"amount_minor"`
	Amount        float64       `json:"amount" db:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method"`
	Description   string        `json:"description,omitempty" db:"description"`
	DueDate       string        `json:"dueDate,omitempty" db:"due_date"`
	PaymentDate   string        `json:"paymentDate,omitempty" db:"payment_date"`

	Status             PaymentStatus `json:"status" db:"status"`
	ProcessorPaymentID *string       `json:"processorPaymentId,omitempty" db:"processor_payment_id"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SubmitPaymentRequest is the body of POST /api/payments/process.
// Amount is in processor minor units (cents).
type SubmitPaymentRequest struct {
	TenantID      string        `json:"tenantId"`
	PropertyID    string        `json:"propertyId"`
	Amount        int64         `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Description   string        `json:"description,omitempty"`
	DueDate       string        `json:"dueDate,omitempty"`
	PaymentDate   string        `json:"paymentDate,omitempty"`
	PaymentToken  string        `json:"paymentToken,omitempty"`
}

func (r *SubmitPaymentRequest) Validate() error {
	if r.Amount <= 0 {
		return ErrAmountInvalid
	}
	if r.PaymentMethod == "" {
		return fmt.Errorf("%w: paymentMethod is required", ErrValidation)
	}
	if r.PaymentMethod.Electronic() && r.PaymentToken == "" {
		return ErrPaymentTokenRequired
	}
	return nil
}
