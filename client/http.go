// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/toeirei/keyworker/internal/logging"
)

// Config holds what an HTTPClient needs. HTTPClient defaults to a client
// without a timeout.
type Config struct {
	BaseURL    string
	Admin      string
	UserAgent  string
	HTTPClient *http.Client
}

// HTTPClient is the Client backed by the Worker's HTTP API.
type HTTPClient struct {
	baseURL   string
	admin     string
	userAgent string
	http      *http.Client
}

var _ Client = (*HTTPClient)(nil)

func New(cfg Config) *HTTPClient {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "keyworker"
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		admin:     cfg.Admin,
		userAgent: ua,
		http:      hc,
	}
}

func (c *HTTPClient) Table(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodPost, PathTable, TableRequest{Admin: c.admin})
}

func (c *HTTPClient) Add(ctx context.Context, email, key, expires string) (*Response, error) {
	return c.do(ctx, http.MethodPost, PathAdd, AddRequest{
		ActivationKey: key,
		UserEmail:     email,
		Expires:       expires,
		Admin:         c.admin,
	})
}

func (c *HTTPClient) Verify(ctx context.Context, key, machineID string) (*Response, error) {
	return c.do(ctx, http.MethodPost, PathVerify, VerifyRequest{Key: key, MachineID: machineID})
}

func (c *HTTPClient) Delete(ctx context.Context, email, specifyKey string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, PathDelete, DeleteRequest{
		UserEmail:  email,
		SpecifyKey: specifyKey,
		Admin:      c.admin,
	})
}

func (c *HTTPClient) BuyLink(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, PathWhereBuy, nil)
}

// do issues one request. body is JSON encoded when non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (*Response, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not encode %s body: %w", path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("could not initialize request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)

	logging.Debugf("%s %s%s", method, c.baseURL, path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read %s response: %w", path, err)
	}
	logging.Debugf("%s %s -> %d (%d bytes)", method, path, resp.StatusCode, len(data))

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}
