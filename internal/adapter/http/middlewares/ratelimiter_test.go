package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/quotes", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func limitedRequest(r *gin.Engine, authorization, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("same credential exhausts its bucket", func(t *testing.T) {
		r := newLimitedRouter(NewRateLimiter(rate.Limit(1), 1))

		if code := limitedRequest(r, "Bearer token-a", ""); code != http.StatusOK {
			t.Fatalf("expected 200 for first request, got %d", code)
		}
		if code := limitedRequest(r, "Bearer token-a", ""); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 for second request, got %d", code)
		}
	})

	t.Run("distinct credentials get independent buckets", func(t *testing.T) {
		r := newLimitedRouter(NewRateLimiter(rate.Limit(1), 1))

		if code := limitedRequest(r, "Bearer token-a", ""); code != http.StatusOK {
			t.Fatalf("expected 200 for first caller, got %d", code)
		}
		if code := limitedRequest(r, "Bearer token-b", ""); code != http.StatusOK {
			t.Fatalf("expected 200 for second caller, got %d", code)
		}
	})

	t.Run("anonymous requests are keyed by client ip", func(t *testing.T) {
		r := newLimitedRouter(NewRateLimiter(rate.Limit(1), 1))

		if code := limitedRequest(r, "", "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("expected 200 for first ip, got %d", code)
		}
		if code := limitedRequest(r, "", "10.0.0.1:1234"); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 for repeated ip, got %d", code)
		}
		if code := limitedRequest(r, "", "10.0.0.2:1234"); code != http.StatusOK {
			t.Fatalf("expected 200 for a different ip, got %d", code)
		}
	})
}

func TestRateLimiterPrunesIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)

	rl.getLimiter("stale-caller")
	rl.limiters["stale-caller"].lastSeen = time.Now().Add(-2 * limiterIdleTTL)
	rl.lastPrune = time.Now().Add(-2 * limiterIdleTTL)

	rl.getLimiter("active-caller")

	if _, exists := rl.limiters["stale-caller"]; exists {
		t.Fatal("expected idle bucket to be pruned")
	}
	if _, exists := rl.limiters["active-caller"]; !exists {
		t.Fatal("expected active bucket to remain")
	}
}
