package fred

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	xhttp "MacroBoard/pkg/http"
	xlogger "MacroBoard/pkg/logger"
)

type noopMetrics struct{}

func (noopMetrics) RecordFetchAttempt(string, string)  {}
func (noopMetrics) RecordError(string)                 {}
func (noopMetrics) RecordSeriesLatest(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)      {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

const sampleCSV = "DATE,DGS10\n2025-05-30,4.18\n2025-06-02,4.22\n"

func TestFetchFirstURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" || r.Header.Get("User-Agent") == "Go-http-client/1.1" {
			t.Error("request carried no browser User-Agent")
		}
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), testLogger(t), noopMetrics{},
		WithTemplates([]string{srv.URL + "/series/%[1]s.csv"}),
		WithRetryDelay(time.Millisecond),
	)

	obs, err := c.Fetch(context.Background(), "DGS10")
	if err != nil {
		t.Fatal(err)
	}
	if len(obs) != 2 || obs[1].Value != 4.22 {
		t.Errorf("obs = %+v", obs)
	}
}

func TestFetchFallsBackToSecondURL(t *testing.T) {
	var primaryHits int32
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&primaryHits, 1)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer primary.Close()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer fallback.Close()

	c := New(xhttp.NewClient(), testLogger(t), noopMetrics{},
		WithTemplates([]string{
			primary.URL + "/%[1]s.csv",
			fallback.URL + "/%[1]s.csv",
		}),
		WithAttempts(2),
		WithRetryDelay(time.Millisecond),
	)

	obs, err := c.Fetch(context.Background(), "DGS10")
	if err != nil {
		t.Fatal(err)
	}
	if len(obs) != 2 {
		t.Errorf("got %d observations via fallback, want 2", len(obs))
	}
	if got := atomic.LoadInt32(&primaryHits); got != 2 {
		t.Errorf("primary URL tried %d times, want the full 2 attempts", got)
	}
}

func TestFetchRetriesSameURL(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), testLogger(t), noopMetrics{},
		WithTemplates([]string{srv.URL + "/%[1]s.csv"}),
		WithAttempts(2),
		WithRetryDelay(time.Millisecond),
	)

	if _, err := c.Fetch(context.Background(), "DGS10"); err != nil {
		t.Fatalf("second attempt should have recovered: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("server hit %d times, want 2", got)
	}
}

func TestFetchAllURLsExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), testLogger(t), noopMetrics{},
		WithTemplates([]string{srv.URL + "/%[1]s.csv"}),
		WithAttempts(2),
		WithRetryDelay(time.Millisecond),
	)

	if _, err := c.Fetch(context.Background(), "DGS10"); err == nil {
		t.Fatal("exhausted URLs must surface an error")
	}
}

func TestFetchHonorsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), testLogger(t), noopMetrics{},
		WithTemplates([]string{srv.URL + "/%[1]s.csv"}),
		WithAttempts(3),
		WithRetryDelay(time.Hour), // only a cancel can end the wait
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Fetch(ctx, "DGS10")
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("fetch did not respect context cancellation")
	}
}
