package handler

import (
	"encoding/json"
	"net/http"

	"rentpay-service/internal/auth"
	"rentpay-service/internal/domain"
	"rentpay-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MerchantHandler struct {
	merchantUC *usecase.MerchantUsecase
	logger     *zap.Logger
	devMode    bool
}

func NewMerchantHandler(merchantUC *usecase.MerchantUsecase, logger *zap.Logger, devMode bool) *MerchantHandler {
	return &MerchantHandler{
		merchantUC: merchantUC,
		logger:     logger,
		devMode:    devMode,
	}
}

// SetupMerchant handles POST /api/payments/setup-merchant.
func (h *MerchantHandler) SetupMerchant(w http.ResponseWriter, r *http.Request) {
	var req domain.SetupMerchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	userID := auth.UserID(r.Context())

	link, err := h.merchantUC.LinkMerchantAccount(r.Context(), userID, req.MerchantAccountID)
	if err != nil {
		h.logger.Error("merchant setup failed",
			zap.String("user_id", userID),
			zap.Error(err))
		writeDomainError(w, err, h.devMode)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"message":           "Merchant account linked successfully",
		"merchantAccountId": link.MerchantAccountID,
		"userId":            link.UserID,
	})
}

// GetMerchant handles GET /api/payments/merchant/{userID}.
func (h *MerchantHandler) GetMerchant(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	link, err := h.merchantUC.GetMerchantAccount(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, h.devMode)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"merchantAccountId": link.MerchantAccountID,
		"setupAt":           link.SetupAt,
	})
}

// LegacySetup handles POST /api/merchant-accounts/setup, the older setup
// endpoint kept for backward compatibility. It runs through the same linking
// service as the current endpoint.
func (h *MerchantHandler) LegacySetup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID string `json:"accountId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	userID := auth.UserID(r.Context())

	link, err := h.merchantUC.LinkMerchantAccount(r.Context(), userID, req.AccountID)
	if err != nil {
		h.logger.Error("legacy merchant setup failed",
			zap.String("user_id", userID),
			zap.Error(err))
		writeDomainError(w, err, h.devMode)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Merchant account saved successfully",
		"accountId": link.MerchantAccountID,
	})
}
