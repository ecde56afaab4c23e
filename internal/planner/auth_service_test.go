package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/dayplanner/internal/persistence"
	"github.com/example/dayplanner/internal/testfixtures"
)

type credentialStoreStub struct {
	user persistence.User
	err  error
}

func (c *credentialStoreStub) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	if c.err != nil {
		return persistence.User{}, c.err
	}
	if c.user.Email != email {
		return persistence.User{}, persistence.ErrNotFound
	}
	return c.user, nil
}

func (c *credentialStoreStub) GetUser(ctx context.Context, id string) (persistence.User, error) {
	if c.err != nil {
		return persistence.User{}, c.err
	}
	if c.user.ID != id {
		return persistence.User{}, persistence.ErrNotFound
	}
	return c.user, nil
}

type sessionStoreStub struct {
	sessions map[string]persistence.Session
	err      error
}

func newSessionStoreStub() *sessionStoreStub {
	return &sessionStoreStub{sessions: make(map[string]persistence.Session)}
}

func (s *sessionStoreStub) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if s.err != nil {
		return persistence.Session{}, s.err
	}
	s.sessions[session.Token] = session
	return session, nil
}

func (s *sessionStoreStub) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	if s.err != nil {
		return persistence.Session{}, s.err
	}
	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (s *sessionStoreStub) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	if s.err != nil {
		return persistence.Session{}, s.err
	}
	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	s.sessions[token] = session
	return session, nil
}

func (s *sessionStoreStub) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	for token, session := range s.sessions {
		if !session.ExpiresAt.After(reference) {
			delete(s.sessions, token)
		}
	}
	return nil
}

func passwordMatches(hashedPassword, password string) error {
	if hashedPassword != "hash:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

func newTestAuthService(creds *credentialStoreStub, sessions *sessionStoreStub) *AuthService {
	// Authenticate draws the session id first and the token second, so the
	// issued token is always "session-2".
	gen := testfixtures.NewIDGenerator("session").NextFunc()
	return NewAuthService(creds, sessions, passwordMatches, gen, fixedNow, time.Hour)
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	t.Parallel()

	creds := &credentialStoreStub{user: persistence.User{ID: "user-1", Email: "alice@example.com", PasswordHash: "hash:secret"}}
	sessions := newSessionStoreStub()
	svc := newTestAuthService(creds, sessions)

	result, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: "Alice@Example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if result.User.ID != "user-1" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.Session.ID != "session-1" || result.Session.Token != "session-2" {
		t.Fatalf("unexpected session identifiers: %+v", result.Session)
	}
	if got := result.Session.ExpiresAt; !got.Equal(fixedNow().Add(time.Hour)) {
		t.Fatalf("session expiry = %v, want now+TTL", got)
	}
	if _, ok := sessions.sessions["session-2"]; !ok {
		t.Fatalf("session not persisted: %+v", sessions.sessions)
	}
}

func TestAuthService_Authenticate_RejectsBadCredentials(t *testing.T) {
	t.Parallel()

	creds := &credentialStoreStub{user: persistence.User{ID: "user-1", Email: "alice@example.com", PasswordHash: "hash:secret"}}
	svc := newTestAuthService(creds, newSessionStoreStub())

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "alice@example.com", password: "nope"},
		{name: "unknown email", email: "bob@example.com", password: "secret"},
		{name: "empty password", email: "alice@example.com", password: ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Authenticate(context.Background(), AuthenticateParams{Email: tc.email, Password: tc.password})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_ValidateSession(t *testing.T) {
	t.Parallel()

	now := fixedNow()
	revokedAt := now.Add(-time.Minute)
	creds := &credentialStoreStub{user: persistence.User{ID: "user-1", Email: "alice@example.com", IsAdmin: true}}

	cases := []struct {
		name    string
		session persistence.Session
		token   string
		wantErr error
	}{
		{
			name:    "active",
			session: persistence.Session{ID: "s1", UserID: "user-1", Token: "t1", ExpiresAt: now.Add(time.Hour)},
			token:   "t1",
		},
		{
			name:    "expired",
			session: persistence.Session{ID: "s1", UserID: "user-1", Token: "t1", ExpiresAt: now.Add(-time.Minute)},
			token:   "t1",
			wantErr: ErrSessionExpired,
		},
		{
			name:    "revoked",
			session: persistence.Session{ID: "s1", UserID: "user-1", Token: "t1", ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt},
			token:   "t1",
			wantErr: ErrSessionRevoked,
		},
		{
			name:    "unknown token",
			session: persistence.Session{ID: "s1", UserID: "user-1", Token: "t1", ExpiresAt: now.Add(time.Hour)},
			token:   "t2",
			wantErr: ErrUnauthorized,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: ErrInvalidCredentials,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sessions := newSessionStoreStub()
			if tc.session.Token != "" {
				sessions.sessions[tc.session.Token] = tc.session
			}
			svc := NewAuthService(creds, sessions, passwordMatches, nil, fixedNow, time.Hour)

			principal, err := svc.ValidateSession(context.Background(), tc.token)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateSession returned error: %v", err)
			}
			if principal.UserID != "user-1" || !principal.IsAdmin {
				t.Fatalf("unexpected principal: %+v", principal)
			}
		})
	}
}

func TestAuthService_RevokeSession(t *testing.T) {
	t.Parallel()

	creds := &credentialStoreStub{user: persistence.User{ID: "user-1", Email: "alice@example.com"}}
	sessions := newSessionStoreStub()
	sessions.sessions["t1"] = persistence.Session{ID: "s1", UserID: "user-1", Token: "t1", ExpiresAt: fixedNow().Add(time.Hour)}
	svc := NewAuthService(creds, sessions, passwordMatches, nil, fixedNow, time.Hour)

	if err := svc.RevokeSession(context.Background(), "t1"); err != nil {
		t.Fatalf("RevokeSession returned error: %v", err)
	}
	if sessions.sessions["t1"].RevokedAt == nil {
		t.Fatalf("session not marked revoked: %+v", sessions.sessions["t1"])
	}

	if err := svc.RevokeSession(context.Background(), "missing"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown token, got %v", err)
	}
}
