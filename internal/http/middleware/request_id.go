package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
)

// HeaderRequestID carries the request ID in and out of the service.
const HeaderRequestID = "X-Request-ID"

var (
	validRequestID = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	requestSeq     atomic.Uint64
)

type ctxKeyRequestID struct{}

// RequestIDFromContext returns the ID attached by LoggingMiddleware, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}

// ClientIP prefers the first X-Forwarded-For hop over RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if hops := r.Header.Get("X-Forwarded-For"); hops != "" {
		first, _, _ := strings.Cut(hops, ",")
		return strings.TrimSpace(first)
	}
	return r.RemoteAddr
}

// requestIDFor keeps a well-formed client ID and mints one otherwise.
func requestIDFor(r *http.Request) string {
	if id := r.Header.Get(HeaderRequestID); validRequestID.MatchString(id) {
		return id
	}
	return newRequestID()
}

func newRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "req-" + strconv.FormatUint(requestSeq.Add(1), 36)
	}
	return hex.EncodeToString(b[:])
}
