// Package reqlog assigns each request an ID and logs it once the response
// has been written.
package reqlog

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const Header = "X-Request-ID"

func New(log *slog.Logger, next http.Handler) *Logger {
	return &Logger{
		Log:  log,
		Next: next,
	}
}

type Logger struct {
	Log  *slog.Logger
	Next http.Handler
}

type requestIDContextKey int

const requestIDKey requestIDContextKey = 0

func GetRequestID(r *http.Request) (id string, ok bool) {
	id, ok = r.Context().Value(requestIDKey).(string)
	return
}

func (l *Logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Keep the caller's ID if it is a UUID, so requests can be traced across services.
	id := r.Header.Get(Header)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	w.Header().Set(Header, id)
	r = r.WithContext(context.WithValue(r.Context(), requestIDKey, id))

	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	l.Next.ServeHTTP(sw, r)

	l.Log.Info("request",
		slog.String("requestID", id),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", sw.status),
		slog.Duration("duration", time.Since(start)))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
