// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil holds test doubles shared across packages.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Call is one request seen by a Worker.
type Call struct {
	Method string
	Path   string
	Body   string
}

// ReplyFunc decides status and body for a request.
type ReplyFunc func(r *http.Request) (int, string)

// Worker is an httptest stand-in for the activation key Worker.
type Worker struct {
	*httptest.Server
	mu    sync.Mutex
	calls []Call
}

// NewWorker starts a Worker that is closed when the test ends.
func NewWorker(t testing.TB, reply ReplyFunc) *Worker {
	t.Helper()
	w := &Worker{}
	w.Server = httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.mu.Lock()
		w.calls = append(w.calls, Call{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		w.mu.Unlock()
		status, text := reply(r)
		rw.WriteHeader(status)
		_, _ = io.WriteString(rw, text)
	}))
	t.Cleanup(w.Close)
	return w
}

// Reply always answers with status and body.
func Reply(status int, body string) ReplyFunc {
	return func(*http.Request) (int, string) { return status, body }
}

// Calls returns a copy of the requests received so far.
func (w *Worker) Calls() []Call {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Call(nil), w.calls...)
}
