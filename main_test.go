// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestServe_DrainsInFlightRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(entered)
			<-release
			w.Write([]byte("done"))
		}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan error, 1)
	go func() {
		served <- serve(ctx, server, ln, 5*time.Second)
	}()

	type result struct {
		status int
		body   string
		err    error
	}
	resp := make(chan result, 1)
	go func() {
		r, err := http.Get("http://" + ln.Addr().String() + "/api/rate/Tokyo")
		if err != nil {
			resp <- result{err: err}
			return
		}
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)
		resp <- result{status: r.StatusCode, body: string(body)}
	}()

	<-entered
	cancel()

	select {
	case err := <-served:
		t.Fatalf("serve returned before the in-flight request finished: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)

	select {
	case err := <-served:
		if err != nil {
			t.Errorf("serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the request finished")
	}

	got := <-resp
	if got.err != nil {
		t.Fatalf("request failed: %v", got.err)
	}
	if got.status != http.StatusOK || got.body != "done" {
		t.Errorf("Expected 200 'done', got %d %q", got.status, got.body)
	}
}

func TestServe_ListenerError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ln.Close()

	err = serve(context.Background(), &http.Server{}, ln, time.Second)
	if err == nil {
		t.Error("Expected an error from a closed listener")
	}
}
