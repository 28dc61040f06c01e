package usecase

import (
	"context"
	"fmt"
	"time"

	"rentpay-service/internal/cache"
	"rentpay-service/internal/domain"
	"rentpay-service/internal/processor"
	"rentpay-service/internal/repository"

	"go.uber.org/zap"
)

// MerchantUsecase links users to their processor merchant accounts.
type MerchantUsecase struct {
	links         repository.MerchantLinkRepository
	gettrx        processor.Processor
	verifyEnabled bool
	verified      *cache.VerificationCache
	logger        *zap.Logger
}

func NewMerchantUsecase(
	links repository.MerchantLinkRepository,
	gettrx processor.Processor,
	verifyEnabled bool,
	verified *cache.VerificationCache,
	logger *zap.Logger,
) *MerchantUsecase {
	return &MerchantUsecase{
		links:         links,
		gettrx:        gettrx,
		verifyEnabled: verifyEnabled,
		verified:      verified,
		logger:        logger,
	}
}

// LinkMerchantAccount registers a merchant account for a user, replacing any
// previous link. The account id is checked against the processor when
// credentials are configured, but a failed check never blocks the link.
func (uc *MerchantUsecase) LinkMerchantAccount(ctx context.Context, userID, merchantAccountID string) (*domain.MerchantLink, error) {
	if err := domain.ValidateMerchantAccountID(merchantAccountID); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	uc.logger.Info("linking merchant account",
		zap.String("user_id", userID),
		zap.String("merchant_account_id", merchantAccountID))

	uc.verifyAccount(ctx, merchantAccountID)

	link := &domain.MerchantLink{
		UserID:            userID,
		MerchantAccountID: merchantAccountID,
		SetupAt:           time.Now().UTC(),
	}

	if err := uc.links.Upsert(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to save merchant link: %w", err)
	}

	uc.logger.Info("merchant account linked",
		zap.String("user_id", userID),
		zap.String("merchant_account_id", merchantAccountID))

	return link, nil
}

// verifyAccount is a best-effort existence check against the processor.
// Verification failures are logged and swallowed so merchant onboarding is
// never blocked on processor availability.
func (uc *MerchantUsecase) verifyAccount(ctx context.Context, merchantAccountID string) {
	if !uc.verifyEnabled {
		return
	}

	if uc.verified.IsVerified(ctx, merchantAccountID) {
		uc.logger.Debug("merchant account verification cached",
			zap.String("merchant_account_id", merchantAccountID))
		return
	}

	if _, err := uc.gettrx.GetAccount(ctx, merchantAccountID); err != nil {
		uc.logger.Warn("merchant account verification failed, linking anyway",
			zap.String("merchant_account_id", merchantAccountID),
			zap.Error(err))
		return
	}

	uc.verified.MarkVerified(ctx, merchantAccountID)
	uc.logger.Info("merchant account verified with gettrx",
		zap.String("merchant_account_id", merchantAccountID))
}

// GetMerchantAccount returns the user's current merchant link.
func (uc *MerchantUsecase) GetMerchantAccount(ctx context.Context, userID string) (*domain.MerchantLink, error) {
	return uc.links.GetByUserID(ctx, userID)
}
