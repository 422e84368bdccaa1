package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"realestate-api/utils"
)

type ctxKey int

const loggerKey ctxKey = iota

// LoggerMiddleware tags every request with a trace id and logs its start
// and outcome. A valid UUID in X-Trace-ID is reused.
func LoggerMiddleware(logger *utils.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("X-Trace-ID")
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}

			reqLogger := logger.With("trace_id", traceID)
			httpLogger := reqLogger.With("http_method", r.Method, "http_path", r.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Header().Set("X-Trace-ID", traceID)
			start := time.Now()

			httpLogger.Debug("[api] Request started")

			ctx := context.WithValue(r.Context(), loggerKey, reqLogger)
			next.ServeHTTP(ww, r.WithContext(ctx))

			httpLogger.Info("[api] Request finished: status %d, %d bytes in %dms",
				ww.Status(), ww.BytesWritten(), time.Since(start).Milliseconds())
		})
	}
}

// loggerFrom returns the request-scoped logger, or fallback outside a request.
func loggerFrom(ctx context.Context, fallback *utils.Logger) *utils.Logger {
	if l, ok := ctx.Value(loggerKey).(*utils.Logger); ok {
		return l
	}
	return fallback
}
