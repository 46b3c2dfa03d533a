// Package store provides SQL persistence for the storefront: the record
// source behind every table and product page.
//
// SQLite (pure Go) is the default. A postgres:// DSN switches to Postgres
// through pgx; queries are written once with ? placeholders and rebound.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup by ID matches no row.
var ErrNotFound = errors.New("not found")

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

func (d dialect) String() string {
	if d == dialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// Store handles persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db      *sql.DB
	dialect dialect
	mu      sync.RWMutex // Protects all database operations
}

// IsPostgres reports whether dsn selects the Postgres backend.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open creates a new Store for dsn and creates tables if they don't exist.
//
//	""  or ":memory:"     shared-cache in-memory SQLite
//	"postgres://..."      Postgres
//	anything else         SQLite file, WAL mode
func Open(dsn string) (*Store, error) {
	if IsPostgres(dsn) {
		return openPostgres(dsn)
	}
	return openSQLite(dsn)
}

func openSQLite(dbPath string) (*Store, error) {
	memory := dbPath == "" || dbPath == ":memory:"

	connStr := dbPath
	if memory {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if memory {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if !memory {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	return newStore(db, dialectSQLite)
}

func openPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return newStore(db, dialectPostgres)
}

func newStore(db *sql.DB, d dialect) (*Store, error) {
	s := &Store{db: db, dialect: d}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

// Backend names the SQL backend in use ("sqlite" or "postgres").
func (s *Store) Backend() string { return s.dialect.String() }

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	serialType, floatType, intType := "INTEGER PRIMARY KEY AUTOINCREMENT", "REAL", "INTEGER"
	if s.dialect == dialectPostgres {
		serialType, floatType, intType = "BIGSERIAL PRIMARY KEY", "DOUBLE PRECISION", "BIGINT"
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id ` + serialType + `,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price ` + floatType + ` NOT NULL DEFAULT 0,
			original_price ` + floatType + ` NOT NULL DEFAULT 0,
			stock ` + intType + ` NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			features TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
		`CREATE TABLE IF NOT EXISTS product_tags (
			product_id ` + intType + ` NOT NULL,
			position ` + intType + ` NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (product_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_product_tags_tag ON product_tags(tag)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id ` + serialType + `,
			reference TEXT NOT NULL UNIQUE,
			customer TEXT NOT NULL,
			email TEXT NOT NULL,
			status TEXT NOT NULL,
			total ` + floatType + ` NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			created_at ` + intType + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email)`,
		`CREATE TABLE IF NOT EXISTS order_lines (
			order_id ` + intType + ` NOT NULL,
			position ` + intType + ` NOT NULL,
			product_id ` + intType + ` NOT NULL,
			name TEXT NOT NULL,
			quantity ` + intType + ` NOT NULL,
			unit_price ` + floatType + ` NOT NULL,
			PRIMARY KEY (order_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL,
			created_at ` + intType + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at ` + intType + ` NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("execute schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// rebind rewrites ? placeholders as $1, $2, ... for Postgres.
// Queries in this package never contain a literal '?'.
func (s *Store) rebind(query string) string {
	if s.dialect != dialectPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// inTx runs fn in a transaction, rolling back on error.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
