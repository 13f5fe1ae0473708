package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, r *Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestCacheObserver_Counts(t *testing.T) {
	r := NewRegistry()
	o := CacheObserver{R: r}
	o.Hit("top_restaurants")
	o.Hit("top_restaurants")
	o.Miss("top_restaurants")
	o.Computed("top_restaurants", 10*time.Millisecond)
	o.StoreError("top_restaurants")

	body := scrape(t, r)
	for _, want := range []string{
		`orderpulse_cache_hits_total{op="top_restaurants"} 2`,
		`orderpulse_cache_misses_total{op="top_restaurants"} 1`,
		`orderpulse_cache_computations_total{op="top_restaurants"} 1`,
		`orderpulse_cache_store_errors_total{op="top_restaurants"} 1`,
		`orderpulse_cache_compute_seconds_count{op="top_restaurants"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in:\n%s", want, body)
		}
	}
}

func TestHandler_ExposesRequestMetrics(t *testing.T) {
	r := NewRegistry()
	r.ObserveRequest("GET", "/api/restaurants", 200, 5*time.Millisecond)

	body := scrape(t, r)
	if !strings.Contains(body, `orderpulse_http_requests_total{method="GET",route="/api/restaurants",status="200"} 1`) {
		t.Fatalf("metric not exposed:\n%s", body)
	}
}
