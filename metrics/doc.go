// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters and histograms for votes,
// collaborator failures and HTTP traffic.
package metrics
