package usecase

import (
	"context"
	"errors"

	"rentpay-service/internal/domain"
	"rentpay-service/internal/processor"
	"rentpay-service/internal/repository"
)

// fakeProcessor records calls and delegates to optional stubs. The zero
// value answers every call with an error.
type fakeProcessor struct {
	getAccountFn    func(ctx context.Context, accountID string) (*processor.Account, error)
	createPaymentFn func(ctx context.Context, req *processor.PaymentRequest, onBehalfOf string) (*processor.PaymentRequestResponse, error)

	getAccountCalls    int
	createPaymentCalls int
	lastOnBehalfOf     string
	lastPaymentRequest *processor.PaymentRequest
}

var _ processor.Processor = (*fakeProcessor)(nil)

func (f *fakeProcessor) GetAccount(ctx context.Context, accountID string) (*processor.Account, error) {
	f.getAccountCalls++
	if f.getAccountFn == nil {
		return nil, errors.New("fakeProcessor: GetAccount not stubbed")
	}
	return f.getAccountFn(ctx, accountID)
}

func (f *fakeProcessor) CreatePaymentRequest(ctx context.Context, req *processor.PaymentRequest, onBehalfOf string) (*processor.PaymentRequestResponse, error) {
	f.createPaymentCalls++
	f.lastOnBehalfOf = onBehalfOf
	f.lastPaymentRequest = req
	if f.createPaymentFn == nil {
		return nil, errors.New("fakeProcessor: CreatePaymentRequest not stubbed")
	}
	return f.createPaymentFn(ctx, req, onBehalfOf)
}

// failingLinkRepository simulates a merchant-link store outage: every read
// fails with an error that is not the not-found sentinel.
type failingLinkRepository struct {
	err error
}

var _ repository.MerchantLinkRepository = (*failingLinkRepository)(nil)

func (r *failingLinkRepository) Upsert(context.Context, *domain.MerchantLink) error {
	return r.err
}

func (r *failingLinkRepository) GetByUserID(context.Context, string) (*domain.MerchantLink, error) {
	return nil, r.err
}
