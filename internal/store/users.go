package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abelbrown/storefront/internal/catalog"
)

// Users returns every user ordered by join date.
// Thread-safe: acquires read lock.
func (s *Store) Users(ctx context.Context) ([]catalog.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, role, created_at FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []catalog.User{}
	for rows.Next() {
		var u catalog.User
		var role string
		var created int64
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &created); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = catalog.Role(role)
		u.CreatedAt = fromUnix(created)
		users = append(users, u)
	}
	return users, rows.Err()
}

// SaveUser inserts u when u.ID is empty (assigning a UUID) and updates it
// otherwise. Emails are stored lower-case and must be unique.
// Thread-safe: acquires write lock.
func (s *Store) SaveUser(ctx context.Context, u catalog.User) (catalog.User, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = catalog.RoleCustomer
	}
	if err := catalog.ValidateUser(u); err != nil {
		return catalog.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.NewString()
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now().UTC()
		}
		_, err := s.db.ExecContext(ctx, s.rebind(
			`INSERT INTO users (id, name, email, role, created_at) VALUES (?, ?, ?, ?, ?)`),
			u.ID, u.Name, u.Email, string(u.Role), unixOrZero(u.CreatedAt))
		if err != nil {
			return catalog.User{}, fmt.Errorf("insert user: %w", err)
		}
		return u, nil
	}

	res, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE users SET name = ?, email = ?, role = ? WHERE id = ?`),
		u.Name, u.Email, string(u.Role), u.ID)
	if err != nil {
		return catalog.User{}, fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.User{}, fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	return u, nil
}

// DeleteUser removes a user.
// Thread-safe: acquires write lock.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}
