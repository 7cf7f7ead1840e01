package auth

import (
	"LinkHub-Backend/internal/domain"
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ContextKey тип для ключей контекста
type ContextKey string

// SessionUserKey ключ для пользователя сессии в контексте
const SessionUserKey ContextKey = "session_user"

// Middleware JWT middleware для HTTP обработчиков
type Middleware struct {
	jwtService *JWTService
	log        *zap.Logger
}

// NewMiddleware создает новый JWT middleware
func NewMiddleware(jwtService *JWTService, log *zap.Logger) *Middleware {
	return &Middleware{
		jwtService: jwtService,
		log:        log,
	}
}

// RequireAuth пропускает только запросы с валидным Bearer токеном
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ExtractTokenFromBearer(r.Header.Get("Authorization"))
		if tokenString == "" {
			m.log.Debug("missing or malformed authorization header")
			unauthorized(w, "authorization required")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.log.Debug("invalid token", zap.Error(err))
			if errors.Is(err, ErrExpiredToken) {
				unauthorized(w, "token expired")
			} else {
				unauthorized(w, "invalid token")
			}
			return
		}

		user := claims.SessionUser()
		m.log.Debug("authenticated user",
			zap.String("user_id", user.ID),
			zap.String("plan", string(user.Plan)))

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// OptionalAuth добавляет пользователя в контекст, если токен валиден,
// и пропускает запрос дальше в любом случае
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ExtractTokenFromBearer(r.Header.Get("Authorization"))
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.log.Debug("optional auth: invalid token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.SessionUser())))
	})
}

// WithUser кладет пользователя сессии в контекст
func WithUser(ctx context.Context, user domain.SessionUser) context.Context {
	return context.WithValue(ctx, SessionUserKey, user)
}

// CurrentUser возвращает пользователя сессии, если запрос аутентифицирован
func CurrentUser(ctx context.Context) (domain.SessionUser, bool) {
	user, ok := ctx.Value(SessionUserKey).(domain.SessionUser)
	return user, ok && user.ID != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"})
}
