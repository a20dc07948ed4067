package middleware

import (
	"context"
	"net/http"
	"strings"

	"roulette_client/internal/config"
	"roulette_client/pkg/token"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// Auth Проверка access-токена из заголовка Authorization.
// Идентификатор пользователя кладется в контекст запроса
func Auth(cfg config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "authorization required", http.StatusUnauthorized)
				return
			}

			claims, err := token.VerifyToken(strings.TrimPrefix(header, "Bearer "), cfg.AccessTokenSecretKey())
			if err != nil || len(claims.ID) == 0 {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext Идентификатор пользователя из контекста запроса
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
