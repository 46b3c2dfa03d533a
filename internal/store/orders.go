package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abelbrown/storefront/internal/catalog"
)

const orderColumns = `id, reference, customer, email, status, total, address, created_at`

// Orders returns every order, newest first.
// Thread-safe: acquires read lock.
func (s *Store) Orders(ctx context.Context) ([]catalog.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
}

// OrdersByEmail returns one customer's orders, newest first.
// Thread-safe: acquires read lock.
func (s *Store) OrdersByEmail(ctx context.Context, email string) ([]catalog.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE email = ? ORDER BY created_at DESC, id DESC`,
		strings.ToLower(email))
}

// CreateOrder stores o with its lines and returns it with ID, Reference,
// and Date filled in. A zero Status becomes Pending.
// Thread-safe: acquires write lock.
func (s *Store) CreateOrder(ctx context.Context, o catalog.Order) (catalog.Order, error) {
	if o.Status == "" {
		o.Status = catalog.StatusPending
	}
	if o.Date.IsZero() {
		o.Date = time.Now().UTC()
	}
	if o.Reference == "" {
		o.Reference = NewOrderReference()
	}
	o.Email = strings.ToLower(o.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		id, err := s.insertOrder(ctx, tx, o)
		o.ID = id
		return err
	})
	if err != nil {
		return catalog.Order{}, err
	}
	return o, nil
}

// UpdateOrderStatus sets the status of order id.
// Thread-safe: acquires write lock.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status catalog.OrderStatus) error {
	if _, err := catalog.ParseOrderStatus(string(status)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE orders SET status = ? WHERE id = ?`), string(status), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return nil
}

// NewOrderReference returns a short customer-facing order reference.
func NewOrderReference() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// insertOrder writes o and its lines. A non-zero o.ID is kept.
func (s *Store) insertOrder(ctx context.Context, q queryer, o catalog.Order) (int64, error) {
	var id int64
	var err error
	if o.ID != 0 {
		id = o.ID
		_, err = q.ExecContext(ctx, s.rebind(`
			INSERT INTO orders (id, reference, customer, email, status, total, address, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`), o.ID, o.Reference, o.Customer, o.Email, string(o.Status), o.Total, o.Address, unixOrZero(o.Date))
	} else {
		err = q.QueryRowContext(ctx, s.rebind(`
			INSERT INTO orders (reference, customer, email, status, total, address, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`), o.Reference, o.Customer, o.Email, string(o.Status), o.Total, o.Address, unixOrZero(o.Date)).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for i, l := range o.Lines {
		if _, err := q.ExecContext(ctx, s.rebind(`
			INSERT INTO order_lines (order_id, position, product_id, name, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?, ?)
		`), id, i, l.ProductID, l.Name, l.Quantity, l.UnitPrice); err != nil {
			return 0, fmt.Errorf("insert order line: %w", err)
		}
	}
	return id, nil
}

// queryOrders runs an order SELECT and attaches lines.
func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]catalog.Order, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []catalog.Order{}
	index := make(map[int64]int)
	for rows.Next() {
		var o catalog.Order
		var status string
		var created int64
		if err := rows.Scan(&o.ID, &o.Reference, &o.Customer, &o.Email, &status,
			&o.Total, &o.Address, &created); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = catalog.OrderStatus(status)
		o.Date = fromUnix(created)
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lineRows, err := s.db.QueryContext(ctx,
		`SELECT order_id, product_id, name, quantity, unit_price FROM order_lines ORDER BY order_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var oid int64
		var l catalog.OrderLine
		if err := lineRows.Scan(&oid, &l.ProductID, &l.Name, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		if i, ok := index[oid]; ok {
			orders[i].Lines = append(orders[i].Lines, l)
		}
	}
	return orders, lineRows.Err()
}
