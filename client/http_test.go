// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method      string
	path        string
	contentType string
	body        string
}

// newWorker starts a test server that records the last request and answers
// with status and reply.
func newWorker(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		got.method = r.Method
		got.path = r.URL.Path
		got.contentType = r.Header.Get("Content-Type")
		got.body = string(data)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestVerify_SendsExactBody(t *testing.T) {
	srv, got := newWorker(t, http.StatusOK, `{"key":"KEY123"}`)
	c := New(Config{BaseURL: srv.URL + "/", Admin: "adm"})

	resp, err := c.Verify(context.Background(), "KEY123", "MACHINE456")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, PathVerify, got.path)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, `{"key":"KEY123","machine_id":"MACHINE456"}`, got.body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"key":"KEY123"}`, resp.Text())
	assert.Equal(t, OutcomeSuccess, resp.Outcome())
}

func TestTable_SendsAdmin(t *testing.T) {
	srv, got := newWorker(t, http.StatusNoContent, "")
	c := New(Config{BaseURL: srv.URL, Admin: "adm"})

	resp, err := c.Table(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, PathTable, got.path)
	assert.JSONEq(t, `{"admin":"adm"}`, got.body)
	assert.Equal(t, OutcomeInfo, resp.Outcome())
}

func TestAdd_OptionalExpiry(t *testing.T) {
	srv, got := newWorker(t, http.StatusCreated, "Activation key added")
	c := New(Config{BaseURL: srv.URL, Admin: "adm"})

	_, err := c.Add(context.Background(), "user@example.com", "KEY1", "")
	require.NoError(t, err)
	assert.Equal(t, PathAdd, got.path)
	assert.JSONEq(t, `{"activation_key":"KEY1","user_email":"user@example.com","admin":"adm"}`, got.body)

	_, err = c.Add(context.Background(), "user@example.com", "KEY1", "2030-01-01")
	require.NoError(t, err)
	assert.JSONEq(t, `{"activation_key":"KEY1","user_email":"user@example.com","expires":"2030-01-01","admin":"adm"}`, got.body)
}

func TestDelete_SpecifyKeyOnlyWhenGiven(t *testing.T) {
	srv, got := newWorker(t, http.StatusOK, "removed")
	c := New(Config{BaseURL: srv.URL, Admin: "adm"})

	_, err := c.Delete(context.Background(), "user@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, PathDelete, got.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.body), &body))
	_, present := body["specify_key"]
	assert.False(t, present, "specify_key must be absent: %s", got.body)
	assert.Equal(t, "user@example.com", body["user_email"])
	assert.Equal(t, "adm", body["admin"])

	_, err = c.Delete(context.Background(), "user@example.com", "KEY9")
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_email":"user@example.com","specify_key":"KEY9","admin":"adm"}`, got.body)
}

func TestBuyLink_GetWithoutBody(t *testing.T) {
	srv, got := newWorker(t, http.StatusOK, `{"link":"https://shop.example/buy"}`)
	c := New(Config{BaseURL: srv.URL})

	resp, err := c.BuyLink(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, PathWhereBuy, got.path)
	assert.Empty(t, got.body)
	assert.Empty(t, got.contentType)

	link, err := ParseBuyLink(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/buy", link)
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url, Admin: "adm"})
	resp, err := c.Table(context.Background())
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestDo_NonSuccessIsNotAnError(t *testing.T) {
	srv, _ := newWorker(t, http.StatusForbidden, "Unauthorized")
	c := New(Config{BaseURL: srv.URL, Admin: "wrong"})

	resp, err := c.Table(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, OutcomeError, resp.Outcome())
	assert.Equal(t, "Unauthorized", resp.Text())
}

func TestClassify(t *testing.T) {
	cases := map[int]Outcome{
		200: OutcomeSuccess,
		201: OutcomeSuccess,
		204: OutcomeInfo,
		409: OutcomeConflict,
		400: OutcomeError,
		403: OutcomeError,
		404: OutcomeError,
		500: OutcomeError,
	}
	for code, want := range cases {
		assert.Equal(t, want, Classify(code), "status %d", code)
	}
	assert.Equal(t, "conflict", OutcomeConflict.String())
	assert.Equal(t, "error", Outcome(42).String())
}

func TestParseBuyLink_Errors(t *testing.T) {
	_, err := ParseBuyLink([]byte(`{}`))
	assert.ErrorIs(t, err, ErrNoLink)

	_, err = ParseBuyLink([]byte(`not json`))
	assert.Error(t, err)
}

func TestMockClient_OverwriteAndDelegate(t *testing.T) {
	base := NewMockClient(nil, MockClientOverwrites{
		Table: func(ctx context.Context) (*Response, error) {
			return &Response{StatusCode: 200, Body: []byte("base")}, nil
		},
	})
	m := NewMockClient(base, MockClientOverwrites{
		Verify: func(ctx context.Context, key, machineID string) (*Response, error) {
			return &Response{StatusCode: 404, Body: []byte(key + "/" + machineID)}, nil
		},
	})

	resp, err := m.Table(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "base", resp.Text())

	resp, err = m.Verify(context.Background(), "k", "m")
	require.NoError(t, err)
	assert.Equal(t, "k/m", resp.Text())

	assert.Panics(t, func() { _, _ = m.Add(context.Background(), "e", "k", "") })
}
