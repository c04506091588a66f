package kit

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestIPRateLimiter_LimitsPerIP(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	h := l.Middleware(okHandler())

	do := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/products", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, do("10.0.0.1:1000").Code)
	require.Equal(t, http.StatusOK, do("10.0.0.1:1001").Code)

	w := do("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000").Code, "other clients are unaffected")

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1003").Code, "window slides")
}

func TestIPRateLimiter_ForwardedFor(t *testing.T) {
	l := NewIPRateLimiter(1, time.Minute)
	h := l.Middleware(okHandler())

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:" + strconv.Itoa(1000+i)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}

func TestIPRateLimiter_ZeroLimitDisables(t *testing.T) {
	h := NewIPRateLimiter(0, time.Minute).Middleware(okHandler())
	for range 5 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestMetricsAuth(t *testing.T) {
	h := MetricsAuth("s3cret")(okHandler())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusForbidden},
		{"wrong", "Bearer nope", http.StatusForbidden},
		{"ok", "Bearer s3cret", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}

	w := httptest.NewRecorder()
	MetricsAuth("")(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
