package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"MacroBoard/internal/domain/models"
	"MacroBoard/internal/usecase"
	"MacroBoard/pkg/cache"
	"MacroBoard/pkg/config"
	xlogger "MacroBoard/pkg/logger"
	"MacroBoard/pkg/xlsx"

	"github.com/labstack/echo/v4"
)

type stubSource struct {
	calls int32
	fetch func(id string) ([]models.Observation, error)
}

func (s *stubSource) Fetch(_ context.Context, id string) ([]models.Observation, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.fetch(id)
}

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

func testThresholds() config.Thresholds {
	return config.Thresholds{
		Y10GreenMax: 0.045, Y10YellowMax: 0.050,
		TIPSGreenMax: 0.020, TIPSYellowMax: 0.025,
		TP10GreenMax: 0.005, TP10YellowMax: 0.010,
		DXYGreenMax: 102, DXYYellowMax: 106,
		PMIGreenMin: 50, PMIYellowMin: 47,
		HYOASGreenMaxBps: 400, HYOASYellowMaxBps: 500,
		CurveGreenMinBps: 0, CurveYellowMinBps: -50,
		WTIGreenMin: 70, WTIYellowMin: 60,
	}
}

func newTestServer(t *testing.T, src *stubSource, cacheSvc cache.Service) *echo.Echo {
	t.Helper()
	collector := usecase.NewSeriesCollector(src, nil,
		[]string{models.SeriesY10, models.SeriesY2},
		false, cacheSvc, time.Minute, 2, testLogger(t), noopMetrics{})
	builder := usecase.NewDashboardBuilder(collector, testThresholds(), noopMetrics{})

	e := echo.New()
	NewDashboardEchoHandler(testLogger(t), builder).RegisterRoutes(e)
	return e
}

func healthySource() *stubSource {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return &stubSource{fetch: func(id string) ([]models.Observation, error) {
		v := 4.20
		if id == models.SeriesY2 {
			v = 3.90
		}
		return []models.Observation{{Date: day, Name: id, Value: v}}, nil
	}}
}

func TestDashboardEndpoint(t *testing.T) {
	e := newTestServer(t, healthySource(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("http status = %d, want 200", rec.Code)
	}
	if cc := rec.Header().Get(echo.HeaderCacheControl); !strings.Contains(cc, "max-age=60") {
		t.Errorf("Cache-Control = %q", cc)
	}

	var resp struct {
		Status int `json:"status"`
		Data   struct {
			Tiles   []json.RawMessage  `json:"tiles"`
			Signals []models.SignalRow `json:"signals"`
			AsOf    time.Time          `json:"as_of"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("envelope status = %d, want 200", resp.Status)
	}
	if len(resp.Data.Tiles) != 10 {
		t.Errorf("got %d tiles, want 10", len(resp.Data.Tiles))
	}
	if len(resp.Data.Signals) == 0 {
		t.Error("no signal rows in response")
	}
	// Tiles with missing inputs must encode as null, not NaN.
	if strings.Contains(rec.Body.String(), "NaN") {
		t.Error("response body leaks NaN")
	}
}

func TestDashboardEndpointNoData(t *testing.T) {
	src := &stubSource{fetch: func(string) ([]models.Observation, error) {
		return nil, errors.New("all upstreams down")
	}}
	e := newTestServer(t, src, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp struct {
		Status int `json:"status"`
		Data   []struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusServiceUnavailable {
		t.Errorf("envelope status = %d, want 503", resp.Status)
	}
	if len(resp.Data) != 1 || resp.Data[0].Code != "ERR_NO_DATA" {
		t.Errorf("error payload = %+v, want ERR_NO_DATA", resp.Data)
	}
	if !strings.Contains(resp.Data[0].Message, "refresh") {
		t.Errorf("message = %q, want the user-facing refresh hint", resp.Data[0].Message)
	}
}

func TestDashboardForceBypassesCache(t *testing.T) {
	src := healthySource()
	mem := cache.NewMemoryCache()
	defer mem.Close()
	e := newTestServer(t, src, mem)

	do := func(path string) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: http status %d", path, rec.Code)
		}
	}

	do("/api/dashboard")
	do("/api/dashboard")
	if got := atomic.LoadInt32(&src.calls); got != 2 {
		t.Fatalf("source calls after two cached renders = %d, want 2", got)
	}

	do("/api/dashboard?force=true")
	if got := atomic.LoadInt32(&src.calls); got != 4 {
		t.Errorf("source calls after forced render = %d, want 4", got)
	}
}

func TestExportEndpoint(t *testing.T) {
	e := newTestServer(t, healthySource(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/export?filename=board.xlsx", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("http status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, `"board.xlsx"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}

	rows, err := xlsx.Read(rec.Body.Bytes(), usecase.SheetSignals)
	if err != nil {
		t.Fatalf("exported blob is not a readable workbook: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("signals sheet has %d rows, want header plus data", len(rows))
	}
}

func TestExportFilenameTooLong(t *testing.T) {
	e := newTestServer(t, healthySource(), nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/export?filename="+strings.Repeat("x", 80), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Errorf("envelope status = %d, want 400 for an over-long filename", resp.Status)
	}
}
