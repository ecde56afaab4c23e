package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/example/dayplanner/internal/persistence"
)

// CreateUser inserts a new account row.
func (s *Store) CreateUser(ctx context.Context, user persistence.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	query := `
		INSERT INTO users (id, email, display_name, password_hash, is_admin, score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.DisplayName,
		user.PasswordHash,
		boolToInt(user.IsAdmin),
		user.Score,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	return mapError(err)
}

// GetUser loads an account by id.
func (s *Store) GetUser(ctx context.Context, id string) (persistence.User, error) {
	return s.scanUser(ctx, `SELECT id, email, display_name, password_hash, is_admin, score, created_at, updated_at FROM users WHERE id = ?`, id)
}

// GetUserByEmail loads an account by its unique email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.scanUser(ctx, `SELECT id, email, display_name, password_hash, is_admin, score, created_at, updated_at FROM users WHERE email = ?`, email)
}

// UpdateUser replaces the mutable columns of an account row.
func (s *Store) UpdateUser(ctx context.Context, user persistence.User) error {
	query := `
		UPDATE users
		SET email = ?, display_name = ?, password_hash = ?, is_admin = ?, score = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.DisplayName,
		user.PasswordHash,
		boolToInt(user.IsAdmin),
		user.Score,
		formatTime(time.Now().UTC()),
		user.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return ensureRowAffected(result)
}

// DeleteUser removes an account and, through foreign keys, its sessions and
// planner document.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return ensureRowAffected(result)
}

// GetUserScore reads the reward score column for an account.
func (s *Store) GetUserScore(ctx context.Context, id string) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx, `SELECT score FROM users WHERE id = ?`, id).Scan(&score)
	if err != nil {
		return 0, mapError(err)
	}
	return score, nil
}

// SetUserScore writes the reward score column for an account.
func (s *Store) SetUserScore(ctx context.Context, id string, score int) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET score = ?, updated_at = ? WHERE id = ?`, score, formatTime(time.Now().UTC()), id)
	if err != nil {
		return mapError(err)
	}
	return ensureRowAffected(result)
}

func (s *Store) scanUser(ctx context.Context, query string, arg any) (persistence.User, error) {
	var (
		user      persistence.User
		isAdmin   int
		createdAt string
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&isAdmin,
		&user.Score,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.User{}, mapError(err)
	}
	user.IsAdmin = isAdmin != 0
	user.CreatedAt = parseTime(createdAt)
	user.UpdatedAt = parseTime(updatedAt)
	return user, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
