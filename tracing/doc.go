// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tracing sets up OpenTelemetry export over OTLP (HTTP or gRPC).
package tracing
