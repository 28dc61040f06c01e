package usecase

import (
	"context"
	"fmt"
	"time"

	"rentpay-service/internal/domain"
	"rentpay-service/internal/repository"

	"go.uber.org/zap"
)

// HistoryUsecase answers payment history queries.
type HistoryUsecase struct {
	payments repository.PaymentRepository
	logger   *zap.Logger
}

func NewHistoryUsecase(payments repository.PaymentRepository, logger *zap.Logger) *HistoryUsecase {
	return &HistoryUsecase{payments: payments, logger: logger}
}

// GetHistory returns the user's payments newest first. When the user has no
// payments it returns fixed sample records instead of an empty list, with the
// second return value set so callers can tell the fabricated data apart from
// real payments.
func (uc *HistoryUsecase) GetHistory(ctx context.Context, userID string) ([]*domain.Payment, bool, error) {
	payments, err := uc.payments.ListByUserID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list payments: %w", err)
	}

	if len(payments) > 0 {
		return payments, false, nil
	}

	uc.logger.Debug("no payments found, returning demo history",
		zap.String("user_id", userID))
	return demoPayments(userID), true, nil
}

// demoPayments is the presentation fallback for empty histories. The ids are
// fixed and recognizable, and the demo flag accompanies them all the way to
// the HTTP response.
func demoPayments(userID string) []*domain.Payment {
	now := time.Now().UTC()
	demoProcessorID := "px_demo_1"

	return []*domain.Payment{
		{
			ID:                 "pay_demo_1",
			UserID:             userID,
			TenantID:           "tenant_demo_1",
			PropertyID:         "prop_demo_1",
			AmountMinor:        120000,
			Amount:             1200,
			PaymentMethod:      domain.MethodCard,
			Description:        "Rent payment for 123 Main St, Apt 1",
			Status:             domain.PaymentStatusCompleted,
			ProcessorPaymentID: &demoProcessorID,
			CreatedAt:          now.AddDate(0, 0, -5),
		},
		{
			ID:            "pay_demo_2",
			UserID:        userID,
			TenantID:      "tenant_demo_2",
			PropertyID:    "prop_demo_2",
			AmountMinor:   95000,
			Amount:        950,
			PaymentMethod: domain.MethodACH,
			Description:   "Rent payment for 456 Oak Ave, Unit 2B",
			Status:        domain.PaymentStatusPending,
			CreatedAt:     now.AddDate(0, 0, -10),
		},
	}
}
