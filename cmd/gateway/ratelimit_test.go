package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedLimiter_BurstThenDeny(t *testing.T) {
	k := newKeyedLimiter(0.01, 2, 16)

	require.True(t, k.allow("10.0.0.1"))
	require.True(t, k.allow("10.0.0.1"))
	require.False(t, k.allow("10.0.0.1"))

	// outra chave tem bucket próprio
	require.True(t, k.allow("10.0.0.2"))
}

func TestClientKey_PrefersXFFWhenTrusted(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.RemoteAddr = "10.0.0.9:5555"
	r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")

	require.Equal(t, "1.2.3.4", clientKey(r, true))
	require.Equal(t, "10.0.0.9", clientKey(r, false))
}

func TestRateLimitMiddleware_Rejects429(t *testing.T) {
	k := newKeyedLimiter(0.01, 1, 16)
	h := rateLimitMiddleware(k, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, r)
	require.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r)
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
	require.Equal(t, "1", w2.Header().Get("Retry-After"))
}
