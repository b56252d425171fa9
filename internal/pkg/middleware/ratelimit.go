package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/cache"
)

// RateLimiter limita las peticiones por IP usando un contador en Redis con
// expiración. Envuelve al router completo.
func RateLimiter(client cache.Client, limit int, duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, _ := net.SplitHostPort(r.RemoteAddr)
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.GetInt(ctx, key)
			if err == cache.ErrCacheMiss {
				client.Set(ctx, key, 1, duration)
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			} else if err != nil {
				// Redis caído: el limitador abre el paso en lugar de tumbar
				// todo el tráfico.
				next.ServeHTTP(w, r)
				return
			}

			if count >= limit {
				http.Error(w, "Límite de peticiones excedido", http.StatusTooManyRequests)
				return
			}

			client.Incr(ctx, key)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
			next.ServeHTTP(w, r)
		})
	}
}
