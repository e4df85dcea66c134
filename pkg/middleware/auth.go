package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// publicPaths não exigem token
var publicPaths = map[string]bool{
	"/healthcheck": true,
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Cabeçalho Authorization é obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token Bearer é obrigatório", nil)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				code := authenticating.CodeFor(err)
				message := "Token inválido"
				if code == apiErrors.ErrExpiredToken {
					message = "Token expirado"
				}
				apiErrors.WriteError(w, code, message, nil)
				return
			}

			if actor := actorFromContext(r.Context()); actor != nil {
				actor.userID = claims.UserID
				actor.tenantID = claims.TenantID
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext devolve o operador autenticado da requisição
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok
}
