package handler

import (
	"encoding/json"
	"net/http"

	"rentpay-service/internal/auth"
	"rentpay-service/internal/domain"
	"rentpay-service/internal/processor"
	"rentpay-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentUC *usecase.PaymentUsecase
	historyUC *usecase.HistoryUsecase
	gettrx    processor.Processor
	logger    *zap.Logger
	devMode   bool
}

func NewPaymentHandler(
	paymentUC *usecase.PaymentUsecase,
	historyUC *usecase.HistoryUsecase,
	gettrx processor.Processor,
	logger *zap.Logger,
	devMode bool,
) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
		historyUC: historyUC,
		gettrx:    gettrx,
		logger:    logger,
		devMode:   devMode,
	}
}

// ProcessPayment handles POST /api/payments/process.
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	userID := auth.UserID(r.Context())

	payment, err := h.paymentUC.SubmitPayment(r.Context(), userID, &req)
	if err != nil {
		h.logger.Error("payment submission failed",
			zap.String("user_id", userID),
			zap.Error(err))
		writeDomainError(w, err, h.devMode)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Payment processed successfully",
		"payment": payment,
	})
}

// GetHistory handles GET /api/payments/history/{userID}. The demo flag marks
// responses built from sample records rather than real payments.
func (h *PaymentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	payments, demo, err := h.historyUC.GetHistory(r.Context(), userID)
	if err != nil {
		h.logger.Error("history query failed",
			zap.String("user_id", userID),
			zap.Error(err))
		writeDomainError(w, err, h.devMode)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"payments": payments,
		"count":    len(payments),
		"demo":     demo,
	})
}

// LegacyPaymentRequest handles POST /api/payments/v1/payment-requests, the
// pre-merchant-resolution pass-through kept for backward compatibility. The
// caller supplies the on-behalf-of account itself and gets the processor's
// raw response body back.
func (h *PaymentHandler) LegacyPaymentRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount       int64  `json:"amount"`
		Currency     string `json:"currency"`
		PaymentToken string `json:"payment_token"`
		OnBehalfOf   string `json:"on_behalf_of"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	resp, err := h.gettrx.CreatePaymentRequest(r.Context(), &processor.PaymentRequest{
		Amount:       req.Amount,
		Currency:     req.Currency,
		PaymentToken: req.PaymentToken,
	}, req.OnBehalfOf)
	if err != nil {
		h.logger.Error("legacy payment request failed",
			zap.Error(err))
		detail := ""
		if h.devMode {
			detail = err.Error()
		}
		writeError(w, http.StatusInternalServerError, "Payment processing failed", detail)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if len(resp.Raw) > 0 {
		_, _ = w.Write(resp.Raw)
		return
	}
	_ = json.NewEncoder(w).Encode(resp)
}
