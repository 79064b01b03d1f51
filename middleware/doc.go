// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/ranks", middleware.WithLogging(handler))

Logs completion with method, path, status, client IP, request ID and
duration_ms. 5xx responses log at ERROR.

# Request IDs and Tracing

	handler := middleware.RequestID(middleware.Tracing("rate-anything")(mux))

RequestID reuses X-Request-ID or generates a UUID. Tracing starts an
OpenTelemetry server span per request.

# Metrics

	mux.HandleFunc(pattern, middleware.WithMetrics(m, pattern, h))

The route pattern, not the raw path, is the endpoint label.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers Content-Type, X-Request-ID.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
