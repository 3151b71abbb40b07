package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bazaar/internal/http/handlers"
)

// burst hits return 429
func TestRateLimits(t *testing.T) {
	cl := newClient(t, handlers.Options{})

	// availability allows 15 per window
	for i := 0; i < 16; i++ {
		resp := cl.get("/api/v1/availability?productId=1")
		if i < 15 && resp.StatusCode == http.StatusTooManyRequests {
			t.Fatalf("hit rate limit too early at %d", i)
		}
		if i == 15 && resp.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after limit, got %d", resp.StatusCode)
		}
	}

	// search allows 30 per minute
	for i := 0; i < 31; i++ {
		resp := cl.get("/search?q=rice")
		if i < 30 && resp.StatusCode == http.StatusTooManyRequests {
			t.Fatalf("search limit too early at %d", i)
		}
		if i == 30 && resp.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after search limit, got %d", resp.StatusCode)
		}
	}
}

func TestGlobalRateLimit(t *testing.T) {
	cl := newClient(t, handlers.Options{RateLimit: 3})
	// the priming request already used one
	cl.get("/")
	cl.get("/")
	if resp := cl.get("/"); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 past the global budget, got %d", resp.StatusCode)
	}
}

// oversized POST rejected with 413
func TestBodySizeLimit(t *testing.T) {
	cl := newClient(t, handlers.Options{})

	// Oversized body (>1MiB)
	oversize := bytes.Repeat([]byte("A"), (1<<20)+10)
	req := httptest.NewRequest("POST", "/cart", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: cl.csrf})
	resp, err := cl.app.Test(req, -1)
	// Fiber returns an error instead of a response when body too large; treat that as pass
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 413 for oversize, got %d body=%s", resp.StatusCode, string(b))
	}
}
