package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abelbrown/storefront/internal/catalog"
)

const productColumns = `id, name, category, price, original_price, stock, description, image, features`

// Products returns every product in ID order.
// Thread-safe: acquires read lock.
func (s *Store) Products(ctx context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryProducts(ctx, s.db, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

// ProductsByCategory returns the products of one top-level category in ID
// order. This is the query a shop page issues when it mounts.
// Thread-safe: acquires read lock.
func (s *Store) ProductsByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryProducts(ctx, s.db,
		`SELECT `+productColumns+` FROM products WHERE category = ? ORDER BY id`, category)
}

// Product returns one product by ID, or ErrNotFound.
// Thread-safe: acquires read lock.
func (s *Store) Product(ctx context.Context, id int64) (catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products, err := s.queryProducts(ctx, s.db,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if err != nil {
		return catalog.Product{}, err
	}
	if len(products) == 0 {
		return catalog.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return products[0], nil
}

// Categories returns the distinct categories that have products.
// Thread-safe: acquires read lock.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SaveProduct inserts p when p.ID is zero and updates it otherwise,
// returning the product's ID. Tags are replaced wholesale.
// Thread-safe: acquires write lock.
func (s *Store) SaveProduct(ctx context.Context, p catalog.Product) (int64, error) {
	if err := catalog.ValidateProduct(p); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveProduct(ctx, tx, p)
		return err
	})
	return id, err
}

// DeleteProduct removes a product and its tags.
// Thread-safe: acquires write lock.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM products WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM product_tags WHERE product_id = ?`), id); err != nil {
			return fmt.Errorf("delete tags: %w", err)
		}
		return nil
	})
}

// saveProduct writes p inside tx. Caller holds the write lock.
func (s *Store) saveProduct(ctx context.Context, q queryer, p catalog.Product) (int64, error) {
	features, err := json.Marshal(nonNilFeatures(p.Features))
	if err != nil {
		return 0, fmt.Errorf("encode features: %w", err)
	}

	id := p.ID
	if id == 0 {
		err = q.QueryRowContext(ctx, s.rebind(`
			INSERT INTO products (name, category, price, original_price, stock, description, image, features)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`), p.Name, p.Category, p.Price, p.OriginalPrice, p.Stock, p.Description, p.Image, string(features)).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert product: %w", err)
		}
	} else {
		res, err := q.ExecContext(ctx, s.rebind(`
			UPDATE products
			SET name = ?, category = ?, price = ?, original_price = ?, stock = ?,
				description = ?, image = ?, features = ?
			WHERE id = ?
		`), p.Name, p.Category, p.Price, p.OriginalPrice, p.Stock, p.Description, p.Image, string(features), id)
		if err != nil {
			return 0, fmt.Errorf("update product: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return 0, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		if _, err := q.ExecContext(ctx, s.rebind(`DELETE FROM product_tags WHERE product_id = ?`), id); err != nil {
			return 0, fmt.Errorf("clear tags: %w", err)
		}
	}

	for i, tag := range p.Tags {
		if _, err := q.ExecContext(ctx, s.rebind(
			`INSERT INTO product_tags (product_id, position, tag) VALUES (?, ?, ?)`), id, i, tag); err != nil {
			return 0, fmt.Errorf("insert tag: %w", err)
		}
	}
	return id, nil
}

// queryProducts runs a product SELECT and attaches tags.
func (s *Store) queryProducts(ctx context.Context, q queryer, query string, args ...any) ([]catalog.Product, error) {
	rows, err := q.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []catalog.Product{}
	index := make(map[int64]int)
	for rows.Next() {
		var p catalog.Product
		var features string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.OriginalPrice,
			&p.Stock, &p.Description, &p.Image, &features); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if features != "" {
			if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
				return nil, fmt.Errorf("decode features for product %d: %w", p.ID, err)
			}
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return products, nil
	}

	tagRows, err := q.QueryContext(ctx, `SELECT product_id, tag FROM product_tags ORDER BY product_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var pid int64
		var tag string
		if err := tagRows.Scan(&pid, &tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		if i, ok := index[pid]; ok {
			products[i].Tags = append(products[i].Tags, tag)
		}
	}
	return products, tagRows.Err()
}

func nonNilFeatures(f []catalog.Feature) []catalog.Feature {
	if f == nil {
		return []catalog.Feature{}
	}
	return f
}

// isNoRows reports whether err is sql.ErrNoRows.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
