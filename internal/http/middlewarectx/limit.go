package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/novelamania/internal/http/response"
)

// clientIdleTTL через столько неактивный клиент забывается вместе со своим лимитом.
const clientIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters хранит отдельный rate.Limiter на каждый адрес клиента.
type clientLimiters struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	clients   map[string]*clientLimiter
}

func newClientLimiters(rps float64, burst int, idle time.Duration) *clientLimiters {
	return &clientLimiters{
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    idle,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

func (c *clientLimiters) allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= c.idle {
		for k, cl := range c.clients {
			if now.Sub(cl.lastSeen) >= c.idle {
				delete(c.clients, k)
			}
		}
		c.lastSweep = now
	}

	cl, ok := c.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(c.rps, c.burst)}
		c.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

func (c *clientLimiters) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

// clientKey адрес клиента без порта. За прокси RemoteAddr заполняет middleware.RealIP.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit ограничивает частоту запросов к обёрнутым маршрутам: rps в секунду
// с допустимым всплеском burst для каждого адреса клиента отдельно.
func RateLimit(log *slog.Logger, rps float64, burst int) func(http.Handler) http.Handler {
	return rateLimit(log, newClientLimiters(rps, burst, clientIdleTTL))
}

func rateLimit(log *slog.Logger, limiters *clientLimiters) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			if !limiters.allow(key) {
				log.Warn("too many requests",
					slog.String("path", r.URL.Path),
					slog.String("client", key),
				)
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
