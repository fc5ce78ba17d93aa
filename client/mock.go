// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import "context"

type MockClient struct {
	BaseClient Client
	Overwrites MockClientOverwrites
}

type MockClientOverwrites struct {
	Table   func(ctx context.Context) (*Response, error)
	Add     func(ctx context.Context, email, key, expires string) (*Response, error)
	Verify  func(ctx context.Context, key, machineID string) (*Response, error)
	Delete  func(ctx context.Context, email, specifyKey string) (*Response, error)
	BuyLink func(ctx context.Context) (*Response, error)
}

var _ Client = (*MockClient)(nil)

// client := NewMockClient(nil, MockClientOverwrites{ /* overwrite Client methods here... */ })
func NewMockClient(base Client, overwrites MockClientOverwrites) *MockClient {
	return &MockClient{
		BaseClient: base,
		Overwrites: overwrites,
	}
}

func (m *MockClient) Table(ctx context.Context) (*Response, error) {
	if m.Overwrites.Table != nil {
		return m.Overwrites.Table(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.Table(ctx)
	}
	panic("MockClient.Table not implemented")
}

func (m *MockClient) Add(ctx context.Context, email, key, expires string) (*Response, error) {
	if m.Overwrites.Add != nil {
		return m.Overwrites.Add(ctx, email, key, expires)
	} else if m.BaseClient != nil {
		return m.BaseClient.Add(ctx, email, key, expires)
	}
	panic("MockClient.Add not implemented")
}

func (m *MockClient) Verify(ctx context.Context, key, machineID string) (*Response, error) {
	if m.Overwrites.Verify != nil {
		return m.Overwrites.Verify(ctx, key, machineID)
	} else if m.BaseClient != nil {
		return m.BaseClient.Verify(ctx, key, machineID)
	}
	panic("MockClient.Verify not implemented")
}

func (m *MockClient) Delete(ctx context.Context, email, specifyKey string) (*Response, error) {
	if m.Overwrites.Delete != nil {
		return m.Overwrites.Delete(ctx, email, specifyKey)
	} else if m.BaseClient != nil {
		return m.BaseClient.Delete(ctx, email, specifyKey)
	}
	panic("MockClient.Delete not implemented")
}

func (m *MockClient) BuyLink(ctx context.Context) (*Response, error) {
	if m.Overwrites.BuyLink != nil {
		return m.Overwrites.BuyLink(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.BuyLink(ctx)
	}
	panic("MockClient.BuyLink not implemented")
}
