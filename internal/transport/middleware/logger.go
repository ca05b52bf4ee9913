package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/pollution-reporter/pkg/ctxutil"
)

type accessEntryKey struct{}

// accessEntry collects request attributes that are only known further down
// the chain, such as the authenticated account.
type accessEntry struct {
	caller ctxutil.Caller
}

func setLoggedAccount(ctx context.Context, c ctxutil.Caller) {
	if e, ok := ctx.Value(accessEntryKey{}).(*accessEntry); ok {
		e.caller = c
	}
}

// Logger returns middleware that logs each HTTP request with method, path,
// status code, duration, and context identifiers (request_id, account_id).
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			entry := &accessEntry{}
			r = r.WithContext(context.WithValue(r.Context(), accessEntryKey{}, entry))

			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if c, ok := ctxutil.CallerFromCtx(r.Context()); ok {
				entry.caller = c
			}
			if entry.caller.AccountID.String() != "00000000-0000-0000-0000-000000000000" {
				attrs = append(attrs,
					slog.String("account_id", entry.caller.AccountID.String()),
					slog.String("role", entry.caller.Role))
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
