package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestLimitAllowsBurstThenRejects(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	var rejected bool
	for i := 0; i < 30; i++ {
		r := httptest.NewRequest("GET", "/health", nil)
		r.RemoteAddr = "203.0.113.5:1234"
		w := httptest.NewRecorder()
		handler(w, r, nil)
		if i < 20 && w.Code != http.StatusOK {
			t.Fatalf("request %d within burst rejected with %d", i, w.Code)
		}
		if w.Code == http.StatusTooManyRequests {
			rejected = true
		}
	}
	if !rejected {
		t.Fatal("no request beyond the burst was rejected")
	}
}

func TestLimitIsPerIP(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	// Exhaust one IP's burst.
	for i := 0; i < 25; i++ {
		r := httptest.NewRequest("GET", "/health", nil)
		r.RemoteAddr = "203.0.113.1:1000"
		handler(httptest.NewRecorder(), r, nil)
	}

	r := httptest.NewRequest("GET", "/health", nil)
	r.RemoteAddr = "203.0.113.2:1000"
	w := httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fresh IP rejected with %d", w.Code)
	}
}
