// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"time"
)

// HTTPRecorder receives one observation per completed request.
type HTTPRecorder interface {
	RecordHTTPRequest(endpoint, method string, status int, duration time.Duration)
}

// WithMetrics records the request under the route pattern endpoint, so
// path values do not inflate label cardinality.
func WithMetrics(rec HTTPRecorder, endpoint string, next http.HandlerFunc) http.HandlerFunc {
	if rec == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)
		next(rw, r)
		rec.RecordHTTPRequest(endpoint, r.Method, rw.statusCode, time.Since(start))
	}
}
