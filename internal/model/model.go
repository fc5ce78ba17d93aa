// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the plain data types shared between the CLI and the
// local request journal.
package model // import "github.com/toeirei/keyworker/internal/model"

import "time"

// Actions recorded in the request journal.
const (
	ActionTable   = "table"
	ActionAdd     = "add"
	ActionVerify  = "verify"
	ActionDelete  = "delete"
	ActionBuyLink = "buy-url"
)

// RequestLogEntry is one request the CLI sent to the Worker.
type RequestLogEntry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Username   string    `json:"username"`    // OS user that ran the command.
	Action     string    `json:"action"`      // One of the Action* constants.
	Target     string    `json:"target"`      // Email and/or key the request was about.
	StatusCode int       `json:"status_code"` // 0 when the request never got an answer.
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"` // Transport error, if any.
}
