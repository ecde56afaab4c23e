package persistence

import (
	"context"
	"time"
)

// UserRepository captures the account operations required by the services.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUser(ctx context.Context, user User) error
	DeleteUser(ctx context.Context, id string) error
	GetUserScore(ctx context.Context, id string) (int, error)
	SetUserScore(ctx context.Context, id string, score int) error
}

// SessionRepository captures the persistence interactions for issued sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}

// UserDataRepository stores each user's serialized planner document.
type UserDataRepository interface {
	GetUserDataRecord(ctx context.Context, userID string) (UserDataRecord, error)
	PutUserDataRecord(ctx context.Context, record UserDataRecord) error
}
