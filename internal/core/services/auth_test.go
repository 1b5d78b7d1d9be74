package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

func newAuthFixture(t *testing.T, opts ...AuthOption) (*AuthService, *memUserStore, *memSessionStore) {
	t.Helper()
	users := newMemUserStore()
	sessions := newMemSessionStore()
	return NewAuthService(users, sessions, opts...), users, sessions
}

func TestSignup(t *testing.T) {
	svc, users, _ := newAuthFixture(t)

	user, err := svc.Signup(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash, "password must never be stored in plaintext")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))

	stored, err := users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestSignup_Validation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"short username", "ab", "s3cret-pass"},
		{"blank username", "   ", "s3cret-pass"},
		{"short password", "alice", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Signup(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "alice", "other-password")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _, sessions := newAuthFixture(t, WithSessionTTL(time.Hour))

	user, err := svc.Signup(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, time.Hour, session.ExpiresAt.Sub(session.CreatedAt))

	stored, err := sessions.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Signup(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	// Wrong password and unknown user look identical to the caller.
	_, err = svc.Login(context.Background(), "alice", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	user, err := svc.Signup(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	session, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	got, err := svc.Authenticate(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthenticate_Rejections(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Authenticate(context.Background(), "unknown-session")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthenticate_ExpiredSessionIsReaped(t *testing.T) {
	now := time.Now()
	clock := &now
	svc, _, sessions := newAuthFixture(t,
		WithSessionTTL(time.Hour),
		WithClock(func() time.Time { return *clock }),
	)

	_, err := svc.Signup(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	session, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	later := now.Add(2 * time.Hour)
	clock = &later

	_, err = svc.Authenticate(context.Background(), session.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = sessions.Get(context.Background(), session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogout(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)

	_, err := svc.Signup(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	session, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.ID))

	_, err = svc.Authenticate(context.Background(), session.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = sessions.Get(context.Background(), session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Logging out twice is harmless.
	assert.NoError(t, svc.Logout(context.Background(), session.ID))
}
