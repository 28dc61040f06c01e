package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rentpay-service/internal/domain"
	"rentpay-service/internal/processor"
	"rentpay-service/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDefaultMerchant = "acm_default_test"

type paymentFixture struct {
	uc       *PaymentUsecase
	links    *repository.MemoryMerchantLinkRepository
	payments *repository.MemoryPaymentRepository
	gettrx   *fakeProcessor
}

func newPaymentFixture(gettrx *fakeProcessor) *paymentFixture {
	links := repository.NewMemoryMerchantLinkRepository()
	payments := repository.NewMemoryPaymentRepository()

	return &paymentFixture{
		uc:       NewPaymentUsecase(links, payments, gettrx, testDefaultMerchant, zap.NewNop()),
		links:    links,
		payments: payments,
		gettrx:   gettrx,
	}
}

func succeedWith(id string) *fakeProcessor {
	return &fakeProcessor{
		createPaymentFn: func(_ context.Context, _ *processor.PaymentRequest, _ string) (*processor.PaymentRequestResponse, error) {
			return &processor.PaymentRequestResponse{ID: id, Status: "succeeded"}, nil
		},
	}
}

func TestSubmitPaymentCardSuccess(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(succeedWith("px_1"))

	// Scenario: linked merchant, card payment of 5000 minor units.
	require.NoError(t, f.links.Upsert(ctx, &domain.MerchantLink{
		UserID:            "u1",
		MerchantAccountID: "acm_test123",
	}))

	payment, err := f.uc.SubmitPayment(ctx, "u1", &domain.SubmitPaymentRequest{
		TenantID:      "t1",
		PropertyID:    "prop_1",
		Amount:        5000,
		PaymentMethod: domain.MethodCard,
		PaymentToken:  "tok_x",
	})
	require.NoError(t, err)

	require.Equal(t, domain.PaymentStatusCompleted, payment.Status)
	require.NotNil(t, payment.ProcessorPaymentID)
	require.Equal(t, "px_1", *payment.ProcessorPaymentID)
	require.Equal(t, int64(5000), payment.AmountMinor)
	require.Equal(t, float64(50), payment.Amount)
	require.True(t, strings.HasPrefix(payment.ID, "pay_"))

	// The linked account was used as the on-behalf-of context.
	require.Equal(t, "acm_test123", f.gettrx.lastOnBehalfOf)
	require.Equal(t, "usd", f.gettrx.lastPaymentRequest.Currency)
	require.Equal(t, "tok_x", f.gettrx.lastPaymentRequest.PaymentToken)

	stored, err := f.payments.ListByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, payment.ID, stored[0].ID)
}

func TestSubmitPaymentAmountConversion(t *testing.T) {
	f := newPaymentFixture(succeedWith("px_1"))

	payment, err := f.uc.SubmitPayment(context.Background(), "u1", &domain.SubmitPaymentRequest{
		Amount:        1200,
		PaymentMethod: domain.MethodCard,
		PaymentToken:  "tok_x",
	})
	require.NoError(t, err)
	require.Equal(t, float64(12), payment.Amount)
}

func TestSubmitPaymentUnauthenticated(t *testing.T) {
	f := newPaymentFixture(&fakeProcessor{})

	_, err := f.uc.SubmitPayment(context.Background(), "", &domain.SubmitPaymentRequest{
		Amount:        5000,
		PaymentMethod: domain.MethodCard,
		PaymentToken:  "tok_x",
	})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSubmitPaymentCardWithoutToken(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(&fakeProcessor{})

	_, err := f.uc.SubmitPayment(ctx, "u1", &domain.SubmitPaymentRequest{
		Amount:        5000,
		PaymentMethod: domain.MethodCard,
	})
	require.ErrorIs(t, err, domain.ErrPaymentTokenRequired)

	// No processor call, no record.
	require.Zero(t, f.gettrx.createPaymentCalls)
	stored, err := f.payments.ListByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestSubmitPaymentCashSkipsProcessor(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(&fakeProcessor{})

	payment, err := f.uc.SubmitPayment(ctx, "u1", &domain.SubmitPaymentRequest{
		Amount:        5000,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	require.Equal(t, domain.PaymentStatusPending, payment.Status)
	require.Nil(t, payment.ProcessorPaymentID)
	require.Zero(t, f.gettrx.createPaymentCalls)
}

func TestSubmitPaymentProcessorRejection(t *testing.T) {
	ctx := context.Background()
	gettrx := &fakeProcessor{
		createPaymentFn: func(context.Context, *processor.PaymentRequest, string) (*processor.PaymentRequestResponse, error) {
			return nil, &processor.APIError{StatusCode: 402, Message: "card declined"}
		},
	}
	f := newPaymentFixture(gettrx)

	_, err := f.uc.SubmitPayment(ctx, "u1", &domain.SubmitPaymentRequest{
		Amount:        5000,
		PaymentMethod: domain.MethodCard,
		PaymentToken:  "tok_bad",
	})

	var procErr *domain.ProcessingError
	require.ErrorAs(t, err, &procErr)
	require.Equal(t, "card declined", procErr.Message)

	// A rejected electronic payment leaves no record behind.
	stored, err := f.payments.ListByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestSubmitPaymentFallsBackToDefaultMerchant(t *testing.T) {
	f := newPaymentFixture(succeedWith("px_2"))

	_, err := f.uc.SubmitPayment(context.Background(), "unlinked", &domain.SubmitPaymentRequest{
		Amount:        5000,
		PaymentMethod: domain.MethodCard,
		PaymentToken:  "tok_x",
	})
	require.NoError(t, err)
	require.Equal(t, testDefaultMerchant, f.gettrx.lastOnBehalfOf)
}

func TestSubmitPaymentLinkStoreFailure(t *testing.T) {
	ctx := context.Background()
	gettrx := succeedWith("px_never")
	payments := repository.NewMemoryPaymentRepository()
	links := &failingLinkRepository{err: errors.New("pgx: connection refused")}
	uc := NewPaymentUsecase(links, payments, gettrx, testDefaultMerchant, zap.NewNop())

	_, err := uc.SubmitPayment(ctx, "u1", &domain.SubmitPaymentRequest{
		Amount:        5000,
		PaymentMethod: domain.MethodCard,
		PaymentToken:  "tok_x",
	})

	// A store outage is not "not linked": the payment must not run against
	// the default test merchant account.
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrNotFound)
	require.Zero(t, gettrx.createPaymentCalls)

	stored, listErr := payments.ListByUserID(ctx, "u1")
	require.NoError(t, listErr)
	require.Empty(t, stored)
}

func TestSubmitPaymentDefaultDescription(t *testing.T) {
	f := newPaymentFixture(succeedWith("px_3"))

	_, err := f.uc.SubmitPayment(context.Background(), "u1", &domain.SubmitPaymentRequest{
		PropertyID:    "prop_9",
		Amount:        5000,
		PaymentMethod: domain.MethodCard,
		PaymentToken:  "tok_x",
	})
	require.NoError(t, err)
	require.Equal(t, "Rent payment for prop_9", f.gettrx.lastPaymentRequest.Description)
}

func TestSubmitPaymentSuccessWithoutProcessorID(t *testing.T) {
	gettrx := &fakeProcessor{
		createPaymentFn: func(context.Context, *processor.PaymentRequest, string) (*processor.PaymentRequestResponse, error) {
			return &processor.PaymentRequestResponse{Status: "accepted"}, nil
		},
	}
	f := newPaymentFixture(gettrx)

	payment, err := f.uc.SubmitPayment(context.Background(), "u1", &domain.SubmitPaymentRequest{
		Amount:        5000,
		PaymentMethod: domain.MethodCard,
		PaymentToken:  "tok_x",
	})
	require.NoError(t, err)

	// Completed requires a processor id; without one the record stays pending.
	require.Equal(t, domain.PaymentStatusPending, payment.Status)
	require.Nil(t, payment.ProcessorPaymentID)
}
