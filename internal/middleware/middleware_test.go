package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/orderpulse/internal/domain/dto"
	"github.com/guttosm/orderpulse/internal/metrics"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 200 {
		t.Fatalf("code=%d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestRequestID_ReusesValidIncomingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(200, c.GetString(RequestIDKey)) })

	cases := []struct {
		name, in string
		reused   bool
	}{
		{"valid uuid", "6f1c1a2e-8a4b-4a57-9d65-3c3c6b1f2a10", true},
		{"garbage", "not-a-uuid", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tc.in)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			got := w.Header().Get(RequestIDHeader)
			if (got == tc.in) != tc.reused || w.Body.String() != got {
				t.Fatalf("header=%q body=%q reused=%v", got, w.Body.String(), tc.reused)
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/", func(c *gin.Context) { _ = c.Error(assertErr{}) })
	r.GET("/bind", func(c *gin.Context) { _ = c.Error(assertErr{}).SetType(gin.ErrorTypeBind) })
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(assertErr{})
		c.String(http.StatusTeapot, "tea")
	})

	cases := []struct {
		path string
		code int
	}{
		{"/", http.StatusInternalServerError},
		{"/bind", http.StatusBadRequest},
		{"/written", http.StatusTeapot},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.code {
			t.Fatalf("%s: code=%d, want %d", tc.path, w.Code, tc.code)
		}
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Success || resp.Message != "Internal server error" {
		t.Fatalf("unexpected body %s (%v)", w.Body.String(), err)
	}
	if strings.Contains(resp.ErrorDetails, "boom") {
		t.Fatalf("panic value leaked to client: %q", resp.ErrorDetails)
	}
}

func TestRateLimiter(t *testing.T) {
	cases := []struct {
		name   string
		reqs   int
		lim    int
		expect int
	}{
		{name: "within limit", reqs: 2, lim: 3, expect: http.StatusOK},
		{name: "at limit", reqs: 3, lim: 3, expect: http.StatusOK},
		{name: "exceed limit", reqs: 5, lim: 3, expect: http.StatusTooManyRequests},
		{name: "disabled", reqs: 5, lim: 0, expect: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RateLimiter(tc.lim, time.Minute))
			r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
			var last int
			for i := 0; i < tc.reqs; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
				last = w.Code
			}
			if last != tc.expect {
				t.Fatalf("expected %d, got %d", tc.expect, last)
			}
		})
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := &rateLimiter{clients: map[string]*client{}, limit: 1, window: time.Minute, now: func() time.Time { return now }}

	if !rl.allow("1.2.3.4") || rl.allow("1.2.3.4") {
		t.Fatalf("expected first request allowed and second rejected")
	}
	if !rl.allow("5.6.7.8") {
		t.Fatalf("clients must be limited independently")
	}
	now = now.Add(time.Minute)
	if !rl.allow("1.2.3.4") {
		t.Fatalf("expected allowance after the window")
	}
	if _, ok := rl.clients["5.6.7.8"]; ok {
		t.Fatalf("expired client not swept")
	}
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/err", func(c *gin.Context) {
		AbortWithError(c, http.StatusBadRequest, "bad stuff", assertErr{})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content-type set")
	}
	if !strings.Contains(w.Body.String(), `"error_details":"boom"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestTimeout_SetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/", func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))
	if w.Code != http.StatusNoContent {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := metrics.NewRegistry()
	r := gin.New()
	r.Use(Metrics(reg))
	r.GET("/api/restaurants/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/restaurants/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	w := httptest.NewRecorder()
	reg.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	for _, want := range []string{
		`route="/api/restaurants/:id",status="200"`,
		`route="unmatched",status="404"`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("missing %s in metrics:\n%s", want, body)
		}
	}
}
