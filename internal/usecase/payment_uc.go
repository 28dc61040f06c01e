package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentpay-service/internal/domain"
	"rentpay-service/internal/processor"
	"rentpay-service/internal/repository"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// PaymentUsecase resolves the caller's merchant account, validates the
// submission, and for electronic methods routes the payment through the
// processor before recording it.
type PaymentUsecase struct {
	links                  repository.MerchantLinkRepository
	payments               repository.PaymentRepository
	gettrx                 processor.Processor
	defaultMerchantAccount string
	logger                 *zap.Logger
}

func NewPaymentUsecase(
	links repository.MerchantLinkRepository,
	payments repository.PaymentRepository,
	gettrx processor.Processor,
	defaultMerchantAccount string,
	logger *zap.Logger,
) *PaymentUsecase {
	return &PaymentUsecase{
		links:                  links,
		payments:               payments,
		gettrx:                 gettrx,
		defaultMerchantAccount: defaultMerchantAccount,
		logger:                 logger,
	}
}

// SubmitPayment processes a single rent payment. Card and ACH payments are
// submitted to the processor on behalf of the resolved merchant account; a
// processor rejection surfaces as *domain.ProcessingError and nothing is
// recorded. The record is stored only after a definitive processor answer.
func (uc *PaymentUsecase) SubmitPayment(ctx context.Context, userID string, req *domain.SubmitPaymentRequest) (*domain.Payment, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	merchantAccountID, err := uc.resolveMerchantAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Rent payment for %s", req.PropertyID)
	}

	status := domain.PaymentStatusPending
	var processorPaymentID *string

	if req.PaymentMethod.Electronic() {
		resp, err := uc.gettrx.CreatePaymentRequest(ctx, &processor.PaymentRequest{
			Amount:       req.Amount,
			Currency:     "usd",
			PaymentToken: req.PaymentToken,
			Description:  description,
		}, merchantAccountID)
		if err != nil {
			uc.logger.Error("gettrx payment request failed",
				zap.String("user_id", userID),
				zap.String("merchant_account_id", merchantAccountID),
				zap.Int64("amount_minor", req.Amount),
				zap.Error(err))

			var apiErr *processor.APIError
			var message string
			if errors.As(err, &apiErr) {
				message = apiErr.Message
			}
			return nil, &domain.ProcessingError{Message: message, Err: err}
		}

		if resp.ID != "" {
			processorPaymentID = &resp.ID
			status = domain.PaymentStatusCompleted
		}

		uc.logger.Info("gettrx payment request accepted",
			zap.String("user_id", userID),
			zap.String("processor_payment_id", resp.ID),
			zap.Int64("amount_minor", req.Amount))
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:                 newPaymentID(),
		UserID:             userID,
		TenantID:           req.TenantID,
		PropertyID:         req.PropertyID,
		AmountMinor:        req.Amount,
		Amount:             float64(req.Amount) / 100,
		PaymentMethod:      req.PaymentMethod,
		Description:        req.Description,
		DueDate:            req.DueDate,
		PaymentDate:        req.PaymentDate,
		Status:             status,
		ProcessorPaymentID: processorPaymentID,
		CreatedAt:          now,
	}

	if err := uc.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	uc.logger.Info("payment record created",
		zap.String("payment_id", payment.ID),
		zap.String("user_id", userID),
		zap.String("status", string(payment.Status)))

	return payment, nil
}

// resolveMerchantAccount looks up the caller's linked account and falls back
// to the shared test account when none exists. Missing merchant setup never
// blocks a payment; the fallback is logged so it shows up in monitoring. A
// store failure is not "not linked" and aborts the payment instead.
func (uc *PaymentUsecase) resolveMerchantAccount(ctx context.Context, userID string) (string, error) {
	link, err := uc.links.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("no merchant account configured, using default test account",
				zap.String("user_id", userID),
				zap.String("merchant_account_id", uc.defaultMerchantAccount))
			return uc.defaultMerchantAccount, nil
		}
		return "", fmt.Errorf("failed to load merchant link: %w", err)
	}
	return link.MerchantAccountID, nil
}

func newPaymentID() string {
	return "pay_" + ulid.Make().String()
}
