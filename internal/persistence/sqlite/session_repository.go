package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/dayplanner/internal/persistence"
)

// CreateSession inserts a new session row and returns the stored record.
func (s *Store) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	query := `
		INSERT INTO sessions (id, user_id, token, expires_at, created_at, updated_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.Token,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
		formatTime(session.UpdatedAt),
		nullableTime(session.RevokedAt),
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	return session, nil
}

// GetSession loads a session by its opaque token.
func (s *Store) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at, updated_at, revoked_at
		FROM sessions WHERE token = ?
	`
	var (
		session   persistence.Session
		expiresAt string
		createdAt string
		updatedAt string
		revokedAt sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&expiresAt,
		&createdAt,
		&updatedAt,
		&revokedAt,
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	session.ExpiresAt = parseTime(expiresAt)
	session.CreatedAt = parseTime(createdAt)
	session.UpdatedAt = parseTime(updatedAt)
	session.RevokedAt = timePointer(revokedAt)
	return session, nil
}

// RevokeSession stamps a revocation time on the session with the given token.
func (s *Store) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	query := `UPDATE sessions SET revoked_at = ?, updated_at = ? WHERE token = ?`
	result, err := s.db.ExecContext(ctx, query, formatTime(revokedAt), formatTime(revokedAt), token)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	if err := ensureRowAffected(result); err != nil {
		return persistence.Session{}, err
	}
	return s.GetSession(ctx, token)
}

// DeleteExpiredSessions drops every session whose expiry is at or before the
// reference time.
func (s *Store) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, formatTime(reference))
	return mapError(err)
}
