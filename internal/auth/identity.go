// Package auth resolves the caller identity for each request. The core
// services only see the resolved user id; how it was resolved is pluggable.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey struct{}

var userIDKey contextKey

// Resolver extracts the caller identity from an inbound request.
type Resolver interface {
	Resolve(r *http.Request) (string, error)
}

// StaticResolver attaches a fixed user id to every request. Development only;
// it stands in for a real upstream authentication layer.
type StaticResolver struct {
	UserID string
}

func (s StaticResolver) Resolve(*http.Request) (string, error) {
	return s.UserID, nil
}

// JWTResolver reads the user id from the subject claim of an HS256-signed
// bearer token.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (j *JWTResolver) Resolve(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", errors.New("missing bearer token")
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, prefix), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("token has no subject")
	}

	return subject, nil
}

// Middleware attaches the resolved identity to the request context. A request
// that cannot be resolved still proceeds; operations that require a caller
// reject it at the service boundary.
func Middleware(resolver Resolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := resolver.Resolve(r)
			if err != nil {
				logger.Debug("could not resolve caller identity",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the caller identity, or "" when the request carried none.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
