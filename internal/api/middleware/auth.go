package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/InternHub-Service/internal/api/handlers"
	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/pkg/jwtauth"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
)

// TokenParser разбирает access токен
type TokenParser interface {
	Parse(token string) (*jwtauth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ActorResolver сверяет пользователя из токена с БД
type ActorResolver interface {
	Resolve(ctx context.Context, actor domain.Actor) (domain.Actor, error)
}

// Auth проверяет заголовок Authorization: Bearer <jwt>
// и кладет ID пользователя и роль в контекст запроса
func Auth(parser TokenParser, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				handlers.RespondUnauthorized(w, "missing bearer token")
				return
			}

			claims, err := parser.Parse(strings.TrimSpace(token))
			if err != nil {
				log.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, domain.Role(claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ResolveStaff перечитывает роль администратора из БД
// Удаленный или пониженный админ получает 403 даже с живым токеном
// Должен стоять после Auth и перед RequireRoles
func ResolveStaff(resolver ActorResolver, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "missing bearer token")
				return
			}

			resolved, err := resolver.Resolve(r.Context(), actor)
			if err != nil {
				log.Warn("%s %s - Staff access rejected for user=%d: %v", r.Method, r.URL.Path, actor.UserID, err)
				handlers.RespondForbidden(w, "access denied")
				return
			}

			ctx := WithUser(r.Context(), resolved.UserID, resolved.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles пропускает только пользователей с одной из ролей
// Должен стоять после Auth
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "missing bearer token")
				return
			}

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			handlers.RespondForbidden(w, "access denied")
		})
	}
}

// WithUser кладет пользователя в контекст
func WithUser(ctx context.Context, userID int64, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok && userID > 0
}

// GetRole извлекает роль пользователя из контекста
func GetRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(roleKey).(domain.Role)
	return role, ok && role != ""
}

// GetActor собирает domain.Actor из контекста
// Отрасли industry_admin подгружаются сервисами из БД
func GetActor(ctx context.Context) (domain.Actor, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	role, ok := GetRole(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, Role: role}, true
}
