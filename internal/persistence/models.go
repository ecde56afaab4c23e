package persistence

import "time"

// User represents a planner account.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	Score        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents an authentication session persisted for a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// UserDataRecord is the serialized planner document stored per user.
type UserDataRecord struct {
	UserID    string
	Name      string
	Payload   []byte
	UpdatedAt time.Time
}
