package main

import (
	"net"
	"net/http"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

// keyedLimiter mantém um token bucket por cliente em um cache LRU.
// A evicção natural do LRU substitui a limpeza periódica por TTL: clientes
// inativos saem do cache quando novos entram.
type keyedLimiter struct {
	cache *lru.Cache
	rps   rate.Limit
	burst int
}

func newKeyedLimiter(rps float64, burst, maxClients int) *keyedLimiter {
	c, _ := lru.New(maxClients)
	return &keyedLimiter{cache: c, rps: rate.Limit(rps), burst: burst}
}

func (k *keyedLimiter) allow(key string) bool {
	if v, ok := k.cache.Get(key); ok {
		return v.(*rate.Limiter).Allow()
	}
	// corrida eventual entre goroutines só cria um bucket que o Add descarta
	lim := rate.NewLimiter(k.rps, k.burst)
	k.cache.Add(key, lim)
	return lim.Allow()
}

// clientKey extrai a chave do cliente: primeiro IP do X-Forwarded-For
// (quando confiável), senão o host do RemoteAddr.
func clientKey(r *http.Request, trustXFF bool) string {
	if trustXFF {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

func rateLimitMiddleware(k *keyedLimiter, trustXFF bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !k.allow(clientKey(r, trustXFF)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
