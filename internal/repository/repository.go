package repository

import (
	"context"

	"rentpay-service/internal/domain"
)

// MerchantLinkRepository stores the user -> merchant account mapping.
// One link per user; Upsert replaces any previous link.
type MerchantLinkRepository interface {
	Upsert(ctx context.Context, link *domain.MerchantLink) error
	// GetByUserID returns domain.ErrMerchantLinkNotFound when the user has
	// no linked account.
	GetByUserID(ctx context.Context, userID string) (*domain.MerchantLink, error)
}

// PaymentRepository stores payment records. Records are insert-only.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	// ListByUserID returns the user's payments newest first. Payments with
	// equal timestamps keep their insertion order.
	ListByUserID(ctx context.Context, userID string) ([]*domain.Payment, error)
}
