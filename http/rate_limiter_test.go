package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestRateLimiter_AllowAndRefill(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("10.0.0.1") || !limiter.Allow("10.0.0.1") {
		t.Fatalf("expected the first two requests to pass")
	}
	if limiter.Allow("10.0.0.1") {
		t.Errorf("expected the third request to be limited")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Errorf("expected another client to have its own bucket")
	}
	if wait := limiter.RetryAfter("10.0.0.1"); wait != time.Minute {
		t.Errorf("expected a one minute wait, got %v", wait)
	}

	now = now.Add(time.Minute)
	if !limiter.Allow("10.0.0.1") {
		t.Errorf("expected the bucket to refill after the window")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Stop()
	limiter.Stop()

	now := time.Now()
	limiter.now = func() time.Time { return now }
	limiter.Allow("10.0.0.1")

	now = now.Add(2 * bucketCleanupThreshold)
	limiter.cleanup()

	if len(limiter.clients) != 0 {
		t.Errorf("expected stale buckets to be removed, got %d", len(limiter.clients))
	}
}

func TestRouter_RateLimited(t *testing.T) {
	logger := log.New(io.Discard)
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	router := NewRouter(newTestWealthHandler(), newTestPortfolioHandler(), limiter, logger)

	body := `{"monthly_amount": 1000, "annual_rate": 10, "years": 1}`

	first := httptest.NewRecorder()
	router.ServeHTTP(first, postJSON("/wealth/sip", body))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, postJSON("/wealth/sip", body))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Errorf("expected a Retry-After header")
	}

	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if health.Code != http.StatusOK {
		t.Errorf("expected healthz to bypass the limiter, got %d", health.Code)
	}
}
