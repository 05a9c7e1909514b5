package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RateLimit ограничивает запросы на пользователя (или IP, если пользователь неизвестен).
// Ошибки хранилища лимитов не блокируют запрос.
func RateLimit(limiter Limiter, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, remaining, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Warn("RateLimit: limiter unavailable, allowing request: key=%s, error=%v", key, err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limiter.Limit(), 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				log.Warn("%s %s - Rate limit exceeded: key=%s", r.Method, r.URL.Path, key)
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return fmt.Sprintf("user:%d", userID)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
