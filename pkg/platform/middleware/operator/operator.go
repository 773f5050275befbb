// Package operator authenticates mutating calls. The engine does not manage
// operator identities itself: it only verifies that the surrounding system
// handed the caller a signed token, and makes the token subject available as
// the authorization context for audit.
package operator

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"edumatch/pkg/requestcontext"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims the engine requires from operator tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// RequireOperator validates the Bearer token on mutating endpoints and
// injects the operator subject into the request context.
func RequireOperator(signingKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				unauthorized(w, "operator token required")
				return
			}

			subject, err := ValidateToken(tokenString, signingKey)
			if err != nil {
				logger.WarnContext(ctx, "operator token rejected",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				unauthorized(w, "invalid operator token")
				return
			}

			ctx = requestcontext.WithActorID(ctx, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateToken checks signature, algorithm, and expiry, returning the token
// subject.
func ValidateToken(tokenString, signingKey string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(signingKey), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return claims.Subject, nil
}

// IssueToken mints an operator token. Exposed for ops tooling and tests.
func IssueToken(signingKey, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = fmt.Fprintf(w, `{"error":"unauthorized","error_description":%q}`, detail)
}
