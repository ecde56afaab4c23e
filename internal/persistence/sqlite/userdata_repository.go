package sqlite

import (
	"context"
	"time"

	"github.com/example/dayplanner/internal/persistence"
)

// GetUserDataRecord loads the serialized planner document for a user.
func (s *Store) GetUserDataRecord(ctx context.Context, userID string) (persistence.UserDataRecord, error) {
	query := `SELECT user_id, name, payload, updated_at FROM user_data WHERE user_id = ?`

	var (
		record    persistence.UserDataRecord
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&record.UserID,
		&record.Name,
		&record.Payload,
		&updatedAt,
	)
	if err != nil {
		return persistence.UserDataRecord{}, mapError(err)
	}
	record.UpdatedAt = parseTime(updatedAt)
	return record, nil
}

// PutUserDataRecord stores the serialized planner document, replacing any
// previous version for the user.
func (s *Store) PutUserDataRecord(ctx context.Context, record persistence.UserDataRecord) error {
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO user_data (user_id, name, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET name = excluded.name, payload = excluded.payload, updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		record.UserID,
		record.Name,
		record.Payload,
		formatTime(record.UpdatedAt),
	)
	return mapError(err)
}
