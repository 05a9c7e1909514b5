package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// Limiter ограничитель запросов с фиксированным окном на Redis (INCR + EXPIRE)
type Limiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
}

// New создает ограничитель: не более limit запросов на ключ за window
func New(client redis.Cmdable, limit int, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		limit:  int64(limit),
		window: window,
	}
}

// Allow учитывает запрос по ключу и сообщает, укладывается ли он в лимит.
// При ошибке Redis возвращает allowed=true вместе с ошибкой: ограничитель не должен
// блокировать бронирования, когда Redis недоступен.
func (l *Limiter) Allow(ctx context.Context, key string) (allowed bool, remaining int64, err error) {
	redisKey := keyPrefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, 0, fmt.Errorf("ratelimit: incr %s: %w", redisKey, err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return true, l.limit - count, fmt.Errorf("ratelimit: expire %s: %w", redisKey, err)
		}
	}

	remaining = l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining, nil
}

// Limit максимальное количество запросов в окне
func (l *Limiter) Limit() int64 {
	return l.limit
}
