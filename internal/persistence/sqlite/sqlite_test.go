package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/dayplanner/internal/persistence"
	"github.com/example/dayplanner/internal/testfixtures"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func TestStore_UserRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	user := testfixtures.NewUserFixture(testfixtures.WithUserAdmin(true))
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	got, err := store.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if got.Email != user.Email || got.DisplayName != user.DisplayName || !got.IsAdmin {
		t.Fatalf("unexpected user %+v", got)
	}

	byEmail, err := store.GetUserByEmail(ctx, strings.ToUpper(user.Email))
	if err != nil {
		t.Fatalf("GetUserByEmail returned error: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("lookup by email returned %+v", byEmail)
	}
}

func TestStore_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	user := testfixtures.NewUserFixture()
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	dup := testfixtures.NewUserFixture()
	dup.Email = user.Email
	if err := store.CreateUser(ctx, dup); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestStore_ScoreReadWrite(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	user := testfixtures.NewUserFixture(testfixtures.WithUserScore(7))
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	score, err := store.GetUserScore(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserScore returned error: %v", err)
	}
	if score != 7 {
		t.Fatalf("initial score = %d, want 7", score)
	}

	if err := store.SetUserScore(ctx, user.ID, 42); err != nil {
		t.Fatalf("SetUserScore returned error: %v", err)
	}
	score, err = store.GetUserScore(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserScore returned error: %v", err)
	}
	if score != 42 {
		t.Fatalf("score = %d, want 42", score)
	}

	if _, err := store.GetUserScore(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SessionLifecycle(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	user := testfixtures.NewUserFixture()
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	now := testfixtures.ReferenceTime()
	session := persistence.Session{
		ID:        "s1",
		UserID:    user.ID,
		Token:     "token-1",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	got, err := store.GetSession(ctx, "token-1")
	if err != nil {
		t.Fatalf("GetSession returned error: %v", err)
	}
	if got.UserID != user.ID || got.RevokedAt != nil {
		t.Fatalf("unexpected session %+v", got)
	}

	revoked, err := store.RevokeSession(ctx, "token-1", now.Add(time.Minute))
	if err != nil {
		t.Fatalf("RevokeSession returned error: %v", err)
	}
	if revoked.RevokedAt == nil {
		t.Fatalf("revocation timestamp missing: %+v", revoked)
	}

	if err := store.DeleteExpiredSessions(ctx, now.Add(2*time.Hour)); err != nil {
		t.Fatalf("DeleteExpiredSessions returned error: %v", err)
	}
	if _, err := store.GetSession(ctx, "token-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after cleanup, got %v", err)
	}
}

func TestStore_UserDataUpsert(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	user := testfixtures.NewUserFixture()
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if _, err := store.GetUserDataRecord(ctx, user.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing document, got %v", err)
	}

	first := persistence.UserDataRecord{UserID: user.ID, Name: user.DisplayName, Payload: []byte(`{"id":1}`)}
	if err := store.PutUserDataRecord(ctx, first); err != nil {
		t.Fatalf("PutUserDataRecord returned error: %v", err)
	}

	second := persistence.UserDataRecord{UserID: user.ID, Name: user.DisplayName, Payload: []byte(`{"id":2}`)}
	if err := store.PutUserDataRecord(ctx, second); err != nil {
		t.Fatalf("PutUserDataRecord (update) returned error: %v", err)
	}

	got, err := store.GetUserDataRecord(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserDataRecord returned error: %v", err)
	}
	if string(got.Payload) != `{"id":2}` {
		t.Fatalf("payload = %s, want latest version", got.Payload)
	}
}
