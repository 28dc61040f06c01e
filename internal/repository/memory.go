package repository

import (
	"context"
	"sort"
	"sync"

	"rentpay-service/internal/domain"
)

// MemoryMerchantLinkRepository is a process-lifetime merchant link store.
type MemoryMerchantLinkRepository struct {
	mu    sync.RWMutex
	links map[string]domain.MerchantLink
}

var _ MerchantLinkRepository = (*MemoryMerchantLinkRepository)(nil)

func NewMemoryMerchantLinkRepository() *MemoryMerchantLinkRepository {
	return &MemoryMerchantLinkRepository{
		links: make(map[string]domain.MerchantLink),
	}
}

func (r *MemoryMerchantLinkRepository) Upsert(_ context.Context, link *domain.MerchantLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link.UserID] = *link
	return nil
}

func (r *MemoryMerchantLinkRepository) GetByUserID(_ context.Context, userID string) (*domain.MerchantLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.links[userID]
	if !ok {
		return nil, domain.ErrMerchantLinkNotFound
	}
	return &link, nil
}

// MemoryPaymentRepository is a process-lifetime payment store. Payments are
// held in insertion order so that equal-timestamp records list stably.
type MemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments []domain.Payment
}

var _ PaymentRepository = (*MemoryPaymentRepository)(nil)

func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{}
}

func (r *MemoryPaymentRepository) Create(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *MemoryPaymentRepository) ListByUserID(_ context.Context, userID string) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Payment
	for i := range r.payments {
		if r.payments[i].UserID == userID {
			p := r.payments[i]
			out = append(out, &p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
