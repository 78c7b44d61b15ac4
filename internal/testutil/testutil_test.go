package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/scheduler"
)

func TestFixturesHelper(t *testing.T) {
	m := SampleMatch(7)
	if m.ID != 7 || m.Validate() != nil {
		t.Fatalf("unexpected match fixture %+v", m)
	}
	tennis := SampleTennisMatch(8, "40", "AD")
	if err := tennis.Validate(); err != nil {
		t.Fatalf("expected valid tennis fixture, got %v", err)
	}
	tennis.Points[0] = "love"
	if matches.TennisPoints[0] != "0" {
		t.Fatalf("expected fixture to copy the point sequence")
	}
}

func TestServiceHelper(t *testing.T) {
	svc, st := NewServiceWithMatches(matches.DefaultSeed())
	if len(svc.Matches()) != 3 || st.Len() != 3 {
		t.Fatalf("expected seeded service and store")
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestHTTPHelperErrorFormatting(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.WriteHeader(http.StatusBadRequest)
	rr.WriteString(strings.Repeat("x", 600))

	if err := statusError(rr, http.StatusOK); err == nil {
		t.Fatalf("expected status error")
	} else if !strings.Contains(err.Error(), "body=") {
		t.Fatalf("expected body snippet in error, got %v", err)
	}

	rr = httptest.NewRecorder()
	rr.WriteHeader(http.StatusOK)
	if err := statusError(rr, http.StatusOK); err != nil {
		t.Fatalf("expected nil error when status matches, got %v", err)
	}

	rr = httptest.NewRecorder()
	rr.WriteString(`{"ok":true}`)
	if err := decodeJSONBody(rr, &map[string]any{}); err != nil {
		t.Fatalf("expected decode success, got %v", err)
	}
	rr = httptest.NewRecorder()
	rr.WriteString("not-json")
	var dest map[string]any
	if err := decodeJSONBody(rr, &dest); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestServerStubs(t *testing.T) {
	sched := &StubScheduler{Err: errors.New("stop"), StatusVal: scheduler.Status{Runs: 2}}
	sched.Start(context.Background())
	if err := sched.Stop(context.Background()); !errors.Is(err, sched.Err) {
		t.Fatalf("expected stop error")
	}
	if sched.StartCalls != 1 || sched.StopCalls != 1 || sched.Status().Runs != 2 {
		t.Fatalf("unexpected scheduler stub state %+v", sched)
	}

	srv := &StubHTTPServer{ListenErr: http.ErrServerClosed}
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected configured listen error, got %v", err)
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
	if srv.Addr() != ":0" || srv.Handler() == nil {
		t.Fatalf("expected default addr and handler")
	}
	if srv.ListenCalls != 1 || srv.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", srv)
	}

	blocking := &StubHTTPServer{Unblock: make(chan struct{})}
	done := make(chan error, 1)
	go func() { done <- blocking.Shutdown(context.Background()) }()
	close(blocking.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err after unblock, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	timedOut := &StubHTTPServer{Unblock: make(chan struct{})}
	if err := timedOut.Shutdown(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error while blocked, got %v", err)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}
