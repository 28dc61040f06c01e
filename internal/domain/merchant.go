package domain

import (
	"strings"
	"time"
)

// MerchantAccountPrefix is the id format the processor issues for merchant
// accounts. Anything else is rejected before we touch the network.
const MerchantAccountPrefix = "acm_"

// MerchantLink ties a user to the processor merchant account their rent
// payments are settled to. At most one link per user; relinking replaces the
// previous link.
type MerchantLink struct {
	UserID            string    `json:"userId" db:"user_id"`
	MerchantAccountID string    `json:"merchantAccountId" db:"merchant_account_id"`
	SetupAt           time.Time `json:"setupAt" db:"setup_at"`
}

// SetupMerchantRequest is the body of POST /api/payments/setup-merchant.
type SetupMerchantRequest struct {
	MerchantAccountID string `json:"merchantAccountId"`
}

func (r *SetupMerchantRequest) Validate() error {
	return ValidateMerchantAccountID(r.MerchantAccountID)
}

func ValidateMerchantAccountID(id string) error {
	if id == "" || !strings.HasPrefix(id, MerchantAccountPrefix) {
		return ErrMerchantAccountIDFormat
	}
	return nil
}
