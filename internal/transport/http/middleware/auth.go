package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/evently/event-actions-service/internal/transport/http/response"
)

type ctxKey string

const (
	ctxUserID ctxKey = "user_id"
	ctxRole   ctxKey = "role"
)

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	secret []byte
	issuer string
}

func NewAuth(secret, issuer string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret), issuer: issuer}
}

// Require rejects requests without a valid bearer token.
func (a *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, role, err := a.parse(r)
		if err != nil {
			response.Fail(
				w,
				http.StatusUnauthorized,
				"unauthorized",
				"unauthorized",
				map[string]string{"reason": err.Error()},
				response.RequestIDFromRequest(r),
			)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), uid, role)))
	})
}

// Optional attaches identity when a valid token is present and lets
// anonymous or bad-token requests through as anonymous. Action
// evaluation is viewer-sensitive but never viewer-gated.
func (a *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(r.Header.Get("Authorization")) == "" {
			next.ServeHTTP(w, r)
			return
		}
		uid, role, err := a.parse(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), uid, role)))
	})
}

func (a *AuthMiddleware) parse(r *http.Request) (string, string, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(h, "Bearer ") {
		return "", "", errors.New("missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil {
		return "", "", err
	}
	if !tok.Valid {
		return "", "", errors.New("invalid token")
	}

	if a.issuer != "" && claims.Issuer != a.issuer {
		return "", "", errors.New("invalid issuer")
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return "", "", errors.New("missing uid")
	}
	role := strings.TrimSpace(claims.Role)
	if role == "" {
		role = "user"
	}
	return claims.UserID, role, nil
}

func withIdentity(ctx context.Context, uid, role string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, uid)
	return context.WithValue(ctx, ctxRole, role)
}

func UserID(r *http.Request) string {
	if v, ok := r.Context().Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func Role(r *http.Request) string {
	if v, ok := r.Context().Value(ctxRole).(string); ok {
		return v
	}
	return ""
}
