package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"profanity/internal/platform/net/middleware"
)

func TestAccessLogZerolog_PassesResponseThrough(t *testing.T) {
	for _, slow := range []time.Duration{0, time.Nanosecond} {
		mw := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slow})
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("fu"))
			_, _ = w.Write([]byte("dge"))
		})

		rr := httptest.NewRecorder()
		mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/profanity/censor", nil))

		if rr.Code != http.StatusCreated || rr.Body.String() != "fudge" {
			t.Fatalf("slow=%v: got %d %q", slow, rr.Code, rr.Body.String())
		}
	}
}

func TestAccessLogZerolog_SkipAndServerErrors(t *testing.T) {
	skipped := 0
	mw := middleware.AccessLogZerolog(middleware.AccessLogOptions{
		Skip: func(r *http.Request) bool {
			if r.URL.Path == "/meta/health" {
				skipped++
				return true
			}
			return false
		},
	})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/meta/health", "/boom"} {
		rr := httptest.NewRecorder()
		mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if path == "/boom" && rr.Code != http.StatusInternalServerError {
			t.Fatalf("%s: status %d", path, rr.Code)
		}
		if path == "/meta/health" && rr.Body.String() != "ok" {
			t.Fatalf("skipped request must still be served")
		}
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
}
