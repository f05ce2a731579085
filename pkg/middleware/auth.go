package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/fb-insights-api/pkg/apiErrors"
	"github.com/vfg2006/fb-insights-api/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// publicPaths não exigem bearer; o callback do OAuth identifica o usuário pelo state
var publicPaths = map[string]bool{
	"/healthcheck":                true,
	"/v1/facebook/oauth/callback": true,
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
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Header Authorization é obrigatório", nil)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token do tipo Bearer é obrigatório", nil)
				return
			}

			claims, err := authService.ValidateToken(authHeader)
			if err != nil {
				code := apiErrors.ErrInvalidToken
				var authErr *authenticating.AuthError
				if errors.As(err, &authErr) {
					code = authErr.Code
				}
				log.ForContext(r.Context()).WithError(err).Warn("auth: token rejeitado")
				apiErrors.WriteError(w, code, "Token inválido", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// ClaimsFromContext retorna o principal autenticado da requisição
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok && claims != nil
}

// AdminOnly restringe a rota a principais com is_admin
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !claims.IsAdmin {
				log.ForContext(r.Context()).WithField("user_id", claims.UserID).Warn("auth: acesso negado a rota administrativa")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithClaims injeta o principal no contexto
func WithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, ContextKeyUser, claims)
}
