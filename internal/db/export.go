// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/keyworker/internal/model"
)

// Export writes the whole journal, oldest first, as zstd-compressed JSON and
// returns the number of entries written.
func (s *Store) Export(ctx context.Context, w io.Writer) (int, error) {
	entries, err := s.List(ctx, 0)
	if err != nil {
		return 0, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return 0, fmt.Errorf("could not create zstd writer: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(entries); err != nil {
		_ = zw.Close()
		return 0, fmt.Errorf("could not encode journal: %w", err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("could not flush zstd writer: %w", err)
	}
	return len(entries), nil
}

// ReadExport decodes a file produced by Export.
func ReadExport(r io.Reader) ([]model.RequestLogEntry, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zr.Close()

	var entries []model.RequestLogEntry
	if err := json.NewDecoder(zr).Decode(&entries); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	return entries, nil
}
