package completion

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"regexp"
	"time"
)

const maxDumpBytes = 4096

var authorizationHeader = regexp.MustCompile(`(?i)Authorization:\s*Bearer\s+\S+`)

func newLoggingTransport(log *slog.Logger, next http.RoundTripper) http.RoundTripper {
	return loggingTransport{
		log:  log,
		next: next,
	}
}

// loggingTransport dumps outbound requests and their responses at debug level.
type loggingTransport struct {
	log  *slog.Logger
	next http.RoundTripper
}

func (t loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.log.Enabled(req.Context(), slog.LevelDebug) {
		return t.next.RoundTrip(req)
	}
	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		t.log.Debug("completion request", slog.String("url", req.URL.String()), slog.String("dump", redact(dump)))
	}
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.log.Debug("completion request failed", slog.String("url", req.URL.String()), slog.Any("error", err))
		return resp, err
	}
	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		t.log.Debug("completion response",
			slog.String("url", req.URL.String()),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)),
			slog.String("dump", truncate(dump)))
	}
	return resp, nil
}

func redact(dump []byte) string {
	return string(authorizationHeader.ReplaceAll(dump, []byte("Authorization: Bearer ***REDACTED***")))
}

func truncate(dump []byte) string {
	if len(dump) > maxDumpBytes {
		return string(dump[:maxDumpBytes]) + "\n... (truncated)"
	}
	return string(dump)
}
