package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abelbrown/storefront/internal/catalog"
)

// LoadState returns the blob saved under key, or nil when nothing is.
// Thread-safe: acquires read lock.
func (s *Store) LoadState(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT data FROM app_state WHERE key = ?`), key).Scan(&data)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state %q: %w", key, err)
	}
	return []byte(data), nil
}

// SaveState stores data under key, replacing any previous value.
// Thread-safe: acquires write lock.
func (s *Store) SaveState(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO app_state (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`), key, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save state %q: %w", key, err)
	}
	return nil
}

// Seed loads demo data in one transaction. Orders keep their IDs; products
// and users are assigned new ones.
// Thread-safe: acquires write lock.
func (s *Store) Seed(ctx context.Context, products []catalog.Product, orders []catalog.Order, users []catalog.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, p := range products {
			p.ID = 0
			if _, err := s.saveProduct(ctx, tx, p); err != nil {
				return fmt.Errorf("seed product %q: %w", p.Name, err)
			}
		}
		for _, o := range orders {
			if o.Reference == "" {
				o.Reference = NewOrderReference()
			}
			if o.Status == "" {
				o.Status = catalog.StatusPending
			}
			if _, err := s.insertOrder(ctx, tx, o); err != nil {
				return fmt.Errorf("seed order %d: %w", o.ID, err)
			}
		}
		for _, u := range users {
			id := u.ID
			if id == "" {
				id = uuid.NewString()
			}
			if _, err := tx.ExecContext(ctx, s.rebind(
				`INSERT INTO users (id, name, email, role, created_at) VALUES (?, ?, ?, ?, ?)`),
				id, u.Name, u.Email, string(u.Role), unixOrZero(u.CreatedAt)); err != nil {
				return fmt.Errorf("seed user %q: %w", u.Email, err)
			}
		}

		if s.dialect == dialectPostgres && len(orders) > 0 {
			// Explicit IDs don't advance the sequence.
			if _, err := tx.ExecContext(ctx,
				`SELECT setval(pg_get_serial_sequence('orders', 'id'), (SELECT MAX(id) FROM orders))`); err != nil {
				return fmt.Errorf("advance order sequence: %w", err)
			}
		}
		return nil
	})
}

// IsEmpty reports whether the store has no products.
// Thread-safe: acquires read lock.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	return n == 0, nil
}
