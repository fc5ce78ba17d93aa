// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Worker endpoints.
const (
	PathTable    = "/api/table"
	PathAdd      = "/api/add"
	PathVerify   = "/api/verify"
	PathDelete   = "/api/delete"
	PathWhereBuy = "/where-buy"
)

type Client interface {
	// Table lists every activation key. Requires the admin credential.
	Table(ctx context.Context) (*Response, error)

	// Add creates an activation key for email. An empty expires lets the
	// Worker pick its default.
	Add(ctx context.Context, email, key, expires string) (*Response, error)

	// Verify checks a key against a machine id, binding it on first use.
	Verify(ctx context.Context, key, machineID string) (*Response, error)

	// Delete removes all keys of email, or only specifyKey when non-empty.
	Delete(ctx context.Context, email, specifyKey string) (*Response, error)

	// BuyLink fetches the public purchase link.
	BuyLink(ctx context.Context) (*Response, error)
}

// Response is what the Worker answered. Non-2xx statuses are not errors.
type Response struct {
	StatusCode int
	Body       []byte
}

// Outcome is the console category of a response.
func (r *Response) Outcome() Outcome {
	return Classify(r.StatusCode)
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

type Outcome int

const (
	OutcomeError Outcome = iota
	OutcomeSuccess
	OutcomeInfo
	OutcomeConflict
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInfo:
		return "info"
	case OutcomeConflict:
		return "conflict"
	default:
		return "error"
	}
}

// Classify maps a Worker status code onto an Outcome.
func Classify(status int) Outcome {
	switch status {
	case http.StatusOK, http.StatusCreated:
		return OutcomeSuccess
	case http.StatusNoContent:
		return OutcomeInfo
	case http.StatusConflict:
		return OutcomeConflict
	default:
		return OutcomeError
	}
}

// Request bodies, field order matches what the Worker documents.

type TableRequest struct {
	Admin string `json:"admin"`
}

type AddRequest struct {
	ActivationKey string `json:"activation_key"`
	UserEmail     string `json:"user_email"`
	Expires       string `json:"expires,omitempty"`
	Admin         string `json:"admin"`
}

type VerifyRequest struct {
	Key       string `json:"key"`
	MachineID string `json:"machine_id"`
}

type DeleteRequest struct {
	UserEmail  string `json:"user_email"`
	SpecifyKey string `json:"specify_key,omitempty"`
	Admin      string `json:"admin"`
}

// ErrNoLink is returned by ParseBuyLink when the payload carries no link.
var ErrNoLink = errors.New("response has no link")

// ParseBuyLink extracts the link from a /where-buy response body.
func ParseBuyLink(body []byte) (string, error) {
	var payload struct {
		Link string `json:"link"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if payload.Link == "" {
		return "", ErrNoLink
	}
	return payload.Link, nil
}
