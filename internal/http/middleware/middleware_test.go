package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/live-scores-service/internal/metrics"
	"github.com/preston-bernstein/live-scores-service/internal/testutil"
)

func TestLoggingMiddlewareLogsAndRecords(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()

	var seenID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rr := testutil.Serve(LoggingMiddleware(logger, rec, next), http.MethodGet, "/matches/2", nil)

	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if seenID == "" || rr.Header().Get(HeaderRequestID) != seenID {
		t.Fatalf("expected handler and header to share request id, got %q vs %q", seenID, rr.Header().Get(HeaderRequestID))
	}
	if got := rec.HTTPRequests("/matches/{id}"); got != 1 {
		t.Fatalf("expected one request recorded for /matches/{id}, got %d", got)
	}
	for _, want := range []string{"status_code=418", "path=/matches/2", "request complete"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %q in log, got %s", want, buf.String())
		}
	}
}

func TestLoggingMiddlewareRequestIDHandling(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "missing header mints id"},
		{name: "valid id is kept", incoming: "client-id-1", keep: true},
		{name: "spaces are rejected", incoming: "bad id"},
		{name: "overlong id is rejected", incoming: strings.Repeat("a", 65)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if test.incoming != "" {
				req.Header.Set(HeaderRequestID, test.incoming)
			}
			rr := testutil.ServeRequest(LoggingMiddleware(nil, nil, http.NotFoundHandler()), req)

			got := rr.Header().Get(HeaderRequestID)
			if got == "" {
				t.Fatalf("expected a request id header")
			}
			if (got == test.incoming) != test.keep {
				t.Fatalf("incoming %q produced %q, keep=%v", test.incoming, got, test.keep)
			}
		})
	}
}

func TestLoggingMiddlewareUsesForwardedFor(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")

	testutil.ServeRequest(LoggingMiddleware(logger, nil, http.NotFoundHandler()), req)

	if !strings.Contains(buf.String(), "client_ip=198.51.100.1") {
		t.Fatalf("expected first forwarded address in log, got %s", buf.String())
	}
}

func TestResponseWriterTracksStatus(t *testing.T) {
	w := &responseWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	w.WriteHeader(http.StatusAccepted)
	if w.status != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", w.status)
	}
	if _, _, err := w.Hijack(); err == nil {
		t.Fatalf("expected hijack error for recorder")
	}
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"/matches":        "/matches",
		"/matches/":       "/matches",
		"/matches/3":      "/matches/{id}",
		"/matches/stream": "/matches/stream",
		"/health":         "/health",
		"/ready":          "/ready",
		"/admin/reset":    "/admin/reset",
		"/wp-login.php":   "other",
	}
	for in, want := range tests {
		if got := normalizePath(in); got != want {
			t.Fatalf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRequestIDContext(t *testing.T) {
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %q", got)
	}
	ctx := withRequestID(context.Background(), "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %q", got)
	}
	if a, b := newRequestID(), newRequestID(); a == "" || a == b {
		t.Fatalf("expected distinct generated ids, got %q and %q", a, b)
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := LoggingMiddleware(logger, metrics.NewRecorder(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/matches", nil))
	}
}
