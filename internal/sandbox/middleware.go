package sandbox

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

// RequestIDFromContext extracts the request id stamped by tagRequest.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// tagRequest assigns every request a req_ id, echoed in the X-Request-ID
// header and threaded through context so mutations can stamp their audit
// entries with it.
func tagRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestID()
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe wraps the response writer once per request and feeds the request
// log line and the Prometheus series from the same measurement.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		s.metrics.requests.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
		s.metrics.durations.WithLabelValues(r.Method).Observe(elapsed.Seconds())
		s.logger.Info("request",
			"request_id", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"elapsed", elapsed.Round(time.Microsecond).String(),
		)
	})
}

// statusWriter records the status code for the observation above.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
