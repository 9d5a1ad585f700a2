package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicom-dev/aicom/shared/domain"
	internal_errors "github.com/aicom-dev/aicom/shared/errors"
)

const testKey = "test_secret"

type mockRevocations struct {
	revoked map[string]time.Time
	err     error
}

func (m *mockRevocations) Revoke(ctx context.Context, tokenHash string, until time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.revoked[tokenHash] = until
	return nil
}

func (m *mockRevocations) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[tokenHash]
	return ok, nil
}

func TestResolveSession(t *testing.T) {
	ctx := context.Background()
	issuer := NewIssuer(testKey, time.Hour)
	user := domain.User{Id: uuid.New(), Email: "m@example.com", DisplayName: "member", Admin: true}
	token, err := issuer.NewToken(user)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		subject, err := New(testKey, nil).ResolveSession(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.Id, subject.UserId)
		assert.Equal(t, "member", subject.DisplayName)
		assert.True(t, subject.Admin)
		assert.WithinDuration(t, time.Now().Add(time.Hour), subject.ExpiresAt, time.Minute)
	})

	t.Run("wrong key", func(t *testing.T) {
		_, err := New("other", nil).ResolveSession(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := New(testKey, nil).ResolveSession(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := NewIssuer(testKey, -time.Minute).NewToken(user)
		require.NoError(t, err)
		_, err = New(testKey, nil).ResolveSession(ctx, expired)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("subject is not a uuid", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
		require.NoError(t, err)
		_, err = New(testKey, nil).ResolveSession(ctx, signed)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("no expiry", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: user.Id.String()}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
		require.NoError(t, err)
		_, err = New(testKey, nil).ResolveSession(ctx, signed)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestRevokeSession(t *testing.T) {
	ctx := context.Background()
	token, err := NewIssuer(testKey, time.Hour).NewToken(domain.User{Id: uuid.New()})
	require.NoError(t, err)

	store := &mockRevocations{revoked: map[string]time.Time{}}
	resolver := New(testKey, store)

	subject, err := resolver.ResolveSession(ctx, token)
	require.NoError(t, err)

	require.NoError(t, resolver.RevokeSession(ctx, token, subject))
	assert.Contains(t, store.revoked, HashToken(token))

	_, err = resolver.ResolveSession(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRevocationStoreDown(t *testing.T) {
	ctx := context.Background()
	token, err := NewIssuer(testKey, time.Hour).NewToken(domain.User{Id: uuid.New()})
	require.NoError(t, err)

	resolver := New(testKey, &mockRevocations{err: errors.New("connection refused")})

	_, err = resolver.ResolveSession(ctx, token)
	assert.True(t, internal_errors.Is[*internal_errors.DependencyError](err))
}

func TestRevokeWithoutStore(t *testing.T) {
	resolver := New(testKey, nil)
	assert.NoError(t, resolver.RevokeSession(context.Background(), "token", &domain.Subject{}))
}
