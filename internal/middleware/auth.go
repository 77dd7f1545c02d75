package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/swasthikkulal/pigmy-backend/internal/response"
	"github.com/swasthikkulal/pigmy-backend/internal/token"
)

type Middleware struct {
	Tokens          *token.Issuer
	ResponseHandler response.ResponseHandler
}

func NewMiddleware(tokens *token.Issuer, rh response.ResponseHandler) *Middleware {
	return &Middleware{Tokens: tokens, ResponseHandler: rh}
}

type claimsKey struct{}

// RequireRole verifies the bearer token and gates the route group on the
// allowed roles. The decoded claims are placed on the request context.
func (m *Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "missing Authorization header")
				return
			}

			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid Authorization header")
				return
			}

			claims, err := m.Tokens.Validate(parts[1])
			if err != nil {
				m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			if _, ok := allowed[claims.Role]; !ok {
				m.ResponseHandler.WriteError(w, r, http.StatusForbidden, "forbidden", "insufficient role for this resource")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Caller returns the authenticated claims, or nil on unauthenticated routes.
func Caller(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*token.Claims)
	return claims
}
