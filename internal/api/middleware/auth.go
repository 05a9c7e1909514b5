package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
)

// UserIDHeader заголовок с ID аутентифицированного пользователя (проставляется gateway)
const UserIDHeader = "X-User-ID"

const msgUnauthorized = "требуется заголовок X-User-ID с корректным ID пользователя"

type userIDKey struct{}

// Auth пропускает только запросы с корректным X-User-ID и кладёт ID в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}

// WithUserID кладёт ID пользователя в контекст (для тестов хендлеров)
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}
