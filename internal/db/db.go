// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

package db // import "github.com/toeirei/keyworker/internal/db"

import (
	"context"
	"database/sql"
	"fmt"
	"os/user"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/toeirei/keyworker/internal/logging"
	"github.com/toeirei/keyworker/internal/model"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// RequestLogModel maps request_log.
type RequestLogModel struct {
	bun.BaseModel `bun:"table:request_log"`
	ID            int64     `bun:"id,pk,autoincrement"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	Username      string    `bun:"username"`
	Action        string    `bun:"action,notnull"`
	Target        string    `bun:"target"`
	StatusCode    int       `bun:"status_code"`
	Outcome       string    `bun:"outcome"`
	ErrorText     string    `bun:"error_text"`
}

// Store is the request journal.
type Store struct {
	bun *bun.DB
}

// driverName maps a configured database type to its database/sql driver.
func driverName(dbType string) (string, error) {
	switch dbType {
	case "sqlite", "":
		return "sqlite", nil
	case "postgres":
		// The pgx stdlib registers driver name "pgx".
		return "pgx", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported database type: '%s'", dbType)
	}
}

// createBunDB constructs a *bun.DB for the provided *sql.DB and dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// Open connects to the journal and creates its table if needed.
func Open(ctx context.Context, dbType, dsn string) (*Store, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	if driver == "sqlite" && dsn == ":memory:" {
		sqlDB.SetMaxOpenConns(1)
	}

	bdb := createBunDB(sqlDB, dbType)
	if _, err := bdb.NewCreateTable().Model((*RequestLogModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = bdb.Close()
		return nil, fmt.Errorf("failed to create request_log: %w", err)
	}
	logging.Debugf("db: journal opened (%s)", driver)
	return &Store{bun: bdb}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.bun.Close()
}

// Record appends e. Missing timestamp and username are filled in.
func (s *Store) Record(ctx context.Context, e model.RequestLogEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Username == "" {
		e.Username = currentUsername()
	}
	m := RequestLogModel{
		CreatedAt:  e.Timestamp,
		Username:   e.Username,
		Action:     e.Action,
		Target:     e.Target,
		StatusCode: e.StatusCode,
		Outcome:    e.Outcome,
		ErrorText:  e.Error,
	}
	_, err := s.bun.NewInsert().Model(&m).Exec(ctx)
	return err
}

// List returns the newest entries first. limit <= 0 returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]model.RequestLogEntry, error) {
	var rows []RequestLogModel
	q := s.bun.NewSelect().Model(&rows).OrderExpr("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.RequestLogEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.RequestLogEntry{
			ID:         r.ID,
			Timestamp:  r.CreatedAt,
			Username:   r.Username,
			Action:     r.Action,
			Target:     r.Target,
			StatusCode: r.StatusCode,
			Outcome:    r.Outcome,
			Error:      r.ErrorText,
		})
	}
	return out, nil
}

// currentUsername returns the OS user without a Windows domain prefix.
func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	if parts := strings.Split(u.Username, `\`); len(parts) > 1 {
		return parts[1]
	}
	return u.Username
}
