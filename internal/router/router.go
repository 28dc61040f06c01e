package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rentpay-service/config"
	"rentpay-service/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func SetupRoutes(
	merchantHandler *handler.MerchantHandler,
	paymentHandler *handler.PaymentHandler,
	identity func(http.Handler) http.Handler,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(RecovererMiddleware(logger, cfg.IsDevelopment()))
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Server.Env,
		})
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(identity)

		r.Get("/test", testEndpoint("Server is working with routes!", cfg.Server.Env))

		r.Route("/payments", func(r chi.Router) {
			r.Get("/test", testEndpoint("Payments API is working!", cfg.Server.Env))
			r.Post("/setup-merchant", merchantHandler.SetupMerchant)
			r.Get("/merchant/{userID}", merchantHandler.GetMerchant)
			r.Post("/process", paymentHandler.ProcessPayment)
			r.Get("/history/{userID}", paymentHandler.GetHistory)
			r.Post("/v1/payment-requests", paymentHandler.LegacyPaymentRequest)
		})

		r.Route("/merchant-accounts", func(r chi.Router) {
			r.Get("/test", testEndpoint("Merchants API is working!", cfg.Server.Env))
			r.Post("/setup", merchantHandler.LegacySetup)
		})
	})

	return r
}

func testEndpoint(message, env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":     message,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": env,
		})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// LoggerMiddleware logs HTTP requests
func LoggerMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr))
		})
	}
}

// RecovererMiddleware turns panics into JSON 500 responses. Panic detail is
// exposed only in development.
func RecovererMiddleware(logger *zap.Logger, devMode bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"))

					payload := map[string]any{
						"success": false,
						"message": "Internal server error",
					}
					if devMode {
						payload["details"] = fmt.Sprint(rec)
					}
					writeJSON(w, http.StatusInternalServerError, payload)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
