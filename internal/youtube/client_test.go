package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/tendant/learning-tracks/internal/config"
	"github.com/tendant/learning-tracks/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := New(config.YouTubeConfig{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		Timeout:   2 * time.Second,
		RateLimit: 100,
		RateBurst: 1,
	})
	return client, &calls
}

func TestResolve_Success(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "abc123", r.URL.Query().Get("id"))
		assert.Equal(t, "snippet,contentDetails", r.URL.Query().Get("part"))
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Empty(t, r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [{
				"id": "abc123",
				"snippet": {"title": "Intro to Go", "description": "Goroutines and channels"},
				"contentDetails": {"duration": "PT1H30M45S"}
			}]
		}`))
	})

	video, err := client.Resolve(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, &VideoData{
		VideoID:     "abc123",
		Title:       "Intro to Go",
		Description: "Goroutines and channels",
		Duration:    5445,
	}, video)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"empty items", http.StatusOK, `{"items": []}`, domain.ErrVideoNotFound},
		{"missing snippet", http.StatusOK, `{"items": [{"contentDetails": {"duration": "PT1S"}}]}`, domain.ErrVideoNotFound},
		{"missing content details", http.StatusOK, `{"items": [{"snippet": {"title": "x"}}]}`, domain.ErrVideoNotFound},
		{"http not found", http.StatusNotFound, `{}`, domain.ErrVideoNotFound},
		{"quota", http.StatusForbidden,
			`{"error": {"code": 403, "message": "quota", "errors": [{"reason": "quotaExceeded"}]}}`,
			domain.ErrQuotaExceeded},
		{"rate limit reason", http.StatusForbidden,
			`{"error": {"code": 403, "message": "slow down", "errors": [{"reason": "rateLimitExceeded"}]}}`,
			domain.ErrRateLimitExceeded},
		{"too many requests", http.StatusTooManyRequests, ``, domain.ErrRateLimitExceeded},
		{"bad key", http.StatusBadRequest,
			`{"error": {"code": 400, "message": "API key not valid", "errors": [{"reason": "keyInvalid"}]}}`,
			domain.ErrExternalUnavailable},
		{"server error", http.StatusInternalServerError, `oops`, domain.ErrExternalUnavailable},
		{"undecodable body", http.StatusOK, `{"items": [`, domain.ErrExternalUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			video, err := client.Resolve(context.Background(), "missing")
			assert.Nil(t, video)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls), "exactly one outbound call")
		})
	}
}

func TestResolve_QuotaIsExternalUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"errors": [{"reason": "quotaExceeded"}]}}`))
	})

	_, err := client.Resolve(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrExternalUnavailable)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, IsThrottled(err))
}

func TestResolve_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := New(config.YouTubeConfig{APIKey: "k", BaseURL: server.URL, RateLimit: 100},
		WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))

	_, err := client.Resolve(context.Background(), "slow")
	assert.ErrorIs(t, err, domain.ErrExternalUnavailable)
}

func TestResolve_TransportErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(config.YouTubeConfig{APIKey: "SECRET-API-KEY", BaseURL: server.URL, RateLimit: 100, Timeout: time.Second})

	_, err := client.Resolve(context.Background(), "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalUnavailable)
	assert.NotContains(t, err.Error(), "SECRET-API-KEY")
	assert.NotContains(t, err.Error(), server.URL)
}

func TestResolve_LimiterCancelled(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	client.limiter = rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, client.limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Resolve(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrExternalUnavailable)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}
