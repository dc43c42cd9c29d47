package middleware

import (
	"fmt"
	"net/http"
	"time"

	"pets-api/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger es chimw.RequestLogger con salida a nuestro logger.
// Va antes de chimw.Recoverer para que los panics lleguen por LogEntry.Panic.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&logFormatter{log: log})
}

type logFormatter struct {
	log logger.Logger
}

func (f *logFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	return &logEntry{
		log: f.log,
		fields: map[string]any{
			"request_id":  chimw.GetReqID(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"remote_addr": r.RemoteAddr,
		},
	}
}

type logEntry struct {
	log    logger.Logger
	fields map[string]any
}

func (e *logEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ any) {
	if status == 0 {
		status = http.StatusOK
	}

	fields := e.with(map[string]any{
		"status":      status,
		"bytes":       bytes,
		"duration_ms": elapsed.Milliseconds(),
	})
	if status >= http.StatusInternalServerError {
		e.log.Warn("http request", fields)
		return
	}
	e.log.Info("http request", fields)
}

func (e *logEntry) Panic(v any, stack []byte) {
	e.log.Error("panic recovered", e.with(map[string]any{
		"panic": fmt.Sprint(v),
		"stack": string(stack),
	}))
}

func (e *logEntry) with(extra map[string]any) map[string]any {
	out := make(map[string]any, len(e.fields)+len(extra))
	for k, v := range e.fields {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
