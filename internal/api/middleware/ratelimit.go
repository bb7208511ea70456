package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
)

// Counter счётчик запросов в фиксированном окне
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// fixedWindowScript INCR и TTL окна при первом попадании
var fixedWindowScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RedisCounter Counter поверх redis
type RedisCounter struct {
	client redis.Scripter
}

// NewRedisCounter создает счётчик поверх клиента redis
func NewRedisCounter(client redis.Scripter) *RedisCounter {
	return &RedisCounter{client: client}
}

// Incr увеличивает счётчик ключа и возвращает новое значение
func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	return fixedWindowScript.Run(ctx, c.client, []string{key}, window.Milliseconds()).Int64()
}

// Limit параметры ограничения частоты запросов
type Limit struct {
	Prefix  string
	Max     int
	Window  time.Duration
	Message string
	// TrustProxy адрес клиента берётся из заголовков, добавленных обратным прокси
	TrustProxy bool
}

// RateLimit ограничивает число запросов с одного адреса за окно.
// При ошибке счётчика запрос пропускается.
func RateLimit(counter Counter, limit Limit, logger Logger) mux.MiddlewareFunc {
	retryAfter := strconv.Itoa(int(limit.Window.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limit.Prefix + ":" + ClientIP(r, limit.TrustProxy)

			count, err := counter.Incr(r.Context(), key, limit.Window)
			if err != nil {
				logger.Warn("RateLimit: counter unavailable key=%s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit.Max) {
				w.Header().Set("Retry-After", retryAfter)
				handlers.RespondTooManyRequests(w, limit.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP адрес клиента.
// Без доверенного прокси заголовки игнорируются: их выставляет сам клиент.
// За прокси берётся последний адрес X-Forwarded-For (его дописал прокси), затем X-Real-IP.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
