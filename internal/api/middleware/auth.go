package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/DesdeChaves/valcoin-memoria/internal/api/shared"
	"github.com/DesdeChaves/valcoin-memoria/internal/platform/logger"
)

// Authentication failure modes surfaced to callers of Verify.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// AuthMiddleware provides JWT bearer authentication for routes. Tokens
// are HMAC-signed, with the learner's UUID carried in the subject claim.
type AuthMiddleware struct {
	jwtSecret []byte
}

// NewAuthMiddleware creates a new AuthMiddleware with the given signing secret.
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	if jwtSecret == "" {
		// ALLOW-PANIC: Constructor enforcing required dependency.
		panic("jwtSecret cannot be empty for AuthMiddleware")
	}
	return &AuthMiddleware{
		jwtSecret: []byte(jwtSecret),
	}
}

// Authenticate validates JWT tokens from the Authorization header and
// adds the learner ID to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		learnerID, err := m.Verify(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, ErrInvalidToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				log := logger.FromContext(r.Context())
				log.Error("failed to validate token", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.LearnerIDContextKey, learnerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Verify parses and validates a signed token, returning the learner ID
// carried in its subject claim.
func (m *AuthMiddleware) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.jwtSecret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	learnerID, err := uuid.Parse(claims.Subject)
	if err != nil || learnerID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a valid learner ID", ErrInvalidToken)
	}

	return learnerID, nil
}

// Sign issues a signed token for the given learner. The server never
// mints tokens itself; tests use this to exercise Authenticate.
func (m *AuthMiddleware) Sign(learnerID uuid.UUID, lifetime time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   learnerID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// GetLearnerID extracts the learner ID from the request context.
// Returns the learner ID and a boolean indicating if it was found.
func GetLearnerID(r *http.Request) (uuid.UUID, bool) {
	learnerID, ok := r.Context().Value(shared.LearnerIDContextKey).(uuid.UUID)
	return learnerID, ok
}
