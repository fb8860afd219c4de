package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcsoft.com/lumo/internal/session"
	"pcsoft.com/lumo/internal/store"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService(t *testing.T) (*Service, *fakeClock, *store.MemoryStore) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	kv := store.NewMemoryStore()
	tracker := session.NewTracker(kv, session.WithClock(clock.Now))
	svc := NewService(kv, tracker, ServiceConfig{Secret: "test-secret", Now: clock.Now})
	return svc, clock, kv
}

func TestLoginDemoAccounts(t *testing.T) {
	tests := []struct {
		email    string
		password string
		id       string
		role     store.Role
	}{
		{"sateesh.jain@pcsoft.com", "admin123", "1", store.RoleAdmin},
		{"harsha.jain@pcsoft.com", "user123", "2", store.RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			svc, _, kv := newTestService(t)

			user, err := svc.Login(context.Background(), tt.email, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.id, user.ID)
			assert.Equal(t, tt.role, user.Role)

			token, ok := svc.Tokens().Current()
			require.True(t, ok)
			assert.Len(t, strings.Split(token, "."), 3)
			assert.True(t, svc.Tokens().IsValid())
			assert.True(t, svc.IsAuthenticated())

			_, ok = kv.Get(store.KeyUser)
			assert.True(t, ok)
			assert.True(t, svc.Tracker().CanAutoLogin())
		})
	}
}

func TestLoginRejectsOtherPairs(t *testing.T) {
	pairs := [][2]string{
		{"sateesh.jain@pcsoft.com", "user123"},
		{"harsha.jain@pcsoft.com", "admin123"},
		{"someone@pcsoft.com", "admin123"},
		{"", ""},
		{"HARSHA.JAIN@pcsoft.com", "user123"},
	}
	for _, pair := range pairs {
		svc, _, kv := newTestService(t)
		_, err := svc.Login(context.Background(), pair[0], pair[1])
		assert.ErrorIs(t, err, ErrInvalidCredentials, "pair %q", pair)
		_, ok := kv.Get(store.KeyAuthToken)
		assert.False(t, ok)
	}
}

func TestLoginHonoursContext(t *testing.T) {
	kv := store.NewMemoryStore()
	svc := NewService(kv, session.NewTracker(kv), ServiceConfig{Secret: "s", LoginDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Login(ctx, "harsha.jain@pcsoft.com", "user123")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRevokeInvalidatesToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Login(context.Background(), "harsha.jain@pcsoft.com", "user123")
	require.NoError(t, err)

	svc.Tokens().Revoke()
	assert.False(t, svc.Tokens().IsValid())
	assert.False(t, svc.Tracker().CanAutoLogin())
}

func TestTokenExpiry(t *testing.T) {
	svc, clock, _ := newTestService(t)
	_, err := svc.Login(context.Background(), "harsha.jain@pcsoft.com", "user123")
	require.NoError(t, err)

	claims, err := svc.Tokens().Claims()
	require.NoError(t, err)
	assert.Equal(t, "2", claims.Subject)
	assert.Equal(t, "harsha.jain@pcsoft.com", claims.Email)

	clock.Advance(TokenLifetime - time.Second)
	assert.True(t, svc.Tokens().IsValid())

	clock.Advance(time.Second)
	assert.False(t, svc.Tokens().IsValid())
}

func TestMalformedTokens(t *testing.T) {
	svc, _, kv := newTestService(t)
	for _, token := range []string{"abc", "a.b", "a.b.c.d", "eyJhbGciOiJIUzI1NiJ9.!!!.sig"} {
		kv.Set(store.KeyAuthToken, token)
		assert.False(t, svc.Tokens().IsValid(), token)
	}
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	svc, clock, kv := newTestService(t)
	other := NewTokens(kv, svc.Tracker(), "another-secret", clock.Now)
	_, err := other.Issue(store.User{ID: "9"})
	require.NoError(t, err)

	assert.False(t, svc.Tokens().IsValid())
}

func TestCurrentUserGracePeriod(t *testing.T) {
	svc, clock, kv := newTestService(t)
	_, err := svc.Login(context.Background(), "harsha.jain@pcsoft.com", "user123")
	require.NoError(t, err)

	// Token gone but still inside the auto-login window.
	kv.Remove(store.KeyAuthToken)
	user := svc.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "Harsha Jain", user.Name)
	assert.False(t, svc.IsAuthenticated())

	clock.Advance(session.AutoLoginWindow)
	assert.Nil(t, svc.CurrentUser())
}

func TestCurrentUserWithValidTokenAfterWindow(t *testing.T) {
	svc, clock, _ := newTestService(t)
	_, err := svc.Login(context.Background(), "sateesh.jain@pcsoft.com", "admin123")
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	assert.False(t, svc.Tracker().CanAutoLogin())
	assert.NotNil(t, svc.CurrentUser())

	clock.Advance(time.Hour)
	assert.Nil(t, svc.CurrentUser())
}

func TestCorruptUserRecord(t *testing.T) {
	svc, _, kv := newTestService(t)
	_, err := svc.Login(context.Background(), "harsha.jain@pcsoft.com", "user123")
	require.NoError(t, err)

	kv.Set(store.KeyUser, "{")
	assert.Nil(t, svc.CurrentUser())
	assert.False(t, svc.IsAuthenticated())
}

func TestLogoutClearsEverything(t *testing.T) {
	svc, _, kv := newTestService(t)
	_, err := svc.Login(context.Background(), "harsha.jain@pcsoft.com", "user123")
	require.NoError(t, err)
	kv.Set(store.KeyChats, "[]")

	svc.Logout()

	for _, key := range []string{store.KeyAuthToken, store.KeyUser, store.KeyChats, store.KeySessionTimestamp} {
		_, ok := kv.Get(key)
		assert.False(t, ok, key)
	}
	assert.Nil(t, svc.CurrentUser())
	assert.False(t, svc.IsAuthenticated())
}
