package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentpay-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message, detail string) {
	payload := map[string]any{
		"success": false,
		"message": message,
	}
	if detail != "" {
		payload["details"] = detail
	}
	writeJSON(w, statusCode, payload)
}

// writeDomainError maps the service error taxonomy to HTTP statuses:
// validation 400, missing identity 401, missing resource 404, processor
// rejection 400 with processor detail, everything else a generic 500 whose
// detail is exposed only in development.
func writeDomainError(w http.ResponseWriter, err error, devMode bool) {
	var procErr *domain.ProcessingError

	switch {
	case errors.As(err, &procErr):
		writeError(w, http.StatusBadRequest, "Payment processing failed", procErr.Message)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "User authentication required", "")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "")
	default:
		detail := ""
		if devMode {
			detail = err.Error()
		}
		writeError(w, http.StatusInternalServerError, "Internal server error", detail)
	}
}
