package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounterStore struct {
	counts map[string]int64
	err    error
}

func (s *stubCounterStore) IncrWithWindow(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], nil
}

func loginPolicy(ipLimit, emailLimit int) AuthRateLimitPolicy {
	return NewAuthRateLimitPolicy("login", time.Minute, ipLimit, emailLimit)
}

func postLogin(handler http.Handler, ip, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimitKeysAndBodyReplay(t *testing.T) {
	store := &stubCounterStore{}
	var downstreamBody string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		downstreamBody = string(raw)
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthRateLimit(loginPolicy(20, 5), store, nil)(next)

	body := `{"email":"Admin@Streetside.Test","password":"pw"}`
	rec := postLogin(handler, "203.0.113.9", body)
	require.Equal(t, http.StatusOK, rec.Code)

	// The peek must not consume the body the login handler decodes.
	assert.Equal(t, body, downstreamBody)

	// Counters key on the client IP and on a hash of the lowercased email,
	// never the raw address.
	sum := sha256.Sum256([]byte("admin@streetside.test"))
	assert.Contains(t, store.counts, "rl:ip:login:203.0.113.9")
	assert.Contains(t, store.counts, "rl:email:login:"+hex.EncodeToString(sum[:]))
	assert.Len(t, store.counts, 2)
}

func TestAuthRateLimitBlocksOverEmailLimit(t *testing.T) {
	store := &stubCounterStore{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthRateLimit(loginPolicy(0, 2), store, nil)(next)

	body := `{"email":"admin@streetside.test","password":"pw"}`
	for i := 0; i < 2; i++ {
		rec := postLogin(handler, "203.0.113.9", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := postLogin(handler, "203.0.113.9", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rate limit exceeded", resp["error"])
}

func TestAuthRateLimitPerIPLimit(t *testing.T) {
	store := &stubCounterStore{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthRateLimit(loginPolicy(1, 0), store, nil)(next)

	require.Equal(t, http.StatusOK, postLogin(handler, "198.51.100.7", "{}").Code)
	assert.Equal(t, http.StatusTooManyRequests, postLogin(handler, "198.51.100.7", "{}").Code)

	// A different client address keeps its own counter.
	assert.Equal(t, http.StatusOK, postLogin(handler, "198.51.100.8", "{}").Code)
}

func TestAuthRateLimitNilStorePassesThrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthRateLimit(loginPolicy(1, 1), nil, nil)(next)

	for i := 0; i < 5; i++ {
		rec := postLogin(handler, "203.0.113.9", "{}")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.True(t, called)
}

func TestAuthRateLimitCapsBodyPeek(t *testing.T) {
	store := &stubCounterStore{}
	var downstreamLen int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		downstreamLen = len(raw)
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthRateLimit(loginPolicy(0, 5), store, nil)(next)

	oversized := `{"email":"` + strings.Repeat("a", maxPeekBodyBytes) + `@x.test"}`
	rec := postLogin(handler, "203.0.113.9", oversized)
	require.Equal(t, http.StatusOK, rec.Code)

	// The peek reads at most the cap and hands the truncated body on; the
	// login handler's decoder rejects it from there.
	assert.Equal(t, maxPeekBodyBytes, downstreamLen)
}
