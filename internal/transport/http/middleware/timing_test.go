package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestTiming_NonDev_NoDelay(t *testing.T) {
	t.Parallel()

	h := Timing("prod", zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	start := time.Now()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("downstream status must pass through, got %d", rec.Code)
	}
	if elapsed := time.Since(start); elapsed >= devDelayMin {
		t.Fatalf("non-dev request should not be delayed, took %v", elapsed)
	}
}

func TestTiming_Dev_DelaysWithinBounds(t *testing.T) {
	t.Parallel()

	h := Timing("dev", zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	start := time.Now()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	elapsed := time.Since(start)

	if elapsed < devDelayMin {
		t.Fatalf("dev request returned too fast: %v", elapsed)
	}
	if elapsed > devDelayMin+devDelaySpan*time.Millisecond+100*time.Millisecond {
		t.Fatalf("dev delay out of bounds: %v", elapsed)
	}
}

func TestTiming_PreservesBody(t *testing.T) {
	t.Parallel()

	h := Timing("prod", zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Body.String() != "payload" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
