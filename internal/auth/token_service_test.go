package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pomodoros/internal/errors"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestTokens(t *testing.T, clock *fakeClock) *TokenService {
	t.Helper()
	s, err := NewTokenService("test-secret", "HS256", time.Minute)
	require.NoError(t, err)
	return s.WithClock(clock.now)
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		algorithm string
		wantErr   bool
	}{
		{name: "HS256", secret: "s", algorithm: "HS256"},
		{name: "HS512", secret: "s", algorithm: "HS512"},
		{name: "RSA rejected", secret: "s", algorithm: "RS256", wantErr: true},
		{name: "none rejected", secret: "s", algorithm: "none", wantErr: true},
		{name: "unknown rejected", secret: "s", algorithm: "XYZ", wantErr: true},
		{name: "empty secret", secret: "", algorithm: "HS256", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenService(tt.secret, tt.algorithm, 0)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenService_Expiry(t *testing.T) {
	clock := &fakeClock{t: epoch}
	tokens := newTestTokens(t, clock)

	token, err := tokens.Issue("a@x.com", 0)
	require.NoError(t, err)

	clock.t = epoch.Add(59 * time.Second)
	sub, err := tokens.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", sub)

	clock.t = epoch.Add(60 * time.Second)
	_, err = tokens.Resolve(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "exactly at exp is expired")

	clock.t = epoch.Add(time.Hour)
	_, err = tokens.Resolve(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_ExplicitTTL(t *testing.T) {
	clock := &fakeClock{t: epoch}
	tokens := newTestTokens(t, clock)

	token, err := tokens.Issue("a@x.com", 10*time.Minute)
	require.NoError(t, err)

	clock.t = epoch.Add(9 * time.Minute)
	_, err = tokens.Resolve(token)
	assert.NoError(t, err)
}

func TestTokenService_Rejects(t *testing.T) {
	clock := &fakeClock{t: epoch}
	tokens := newTestTokens(t, clock)
	valid, err := tokens.Issue("a@x.com", 0)
	require.NoError(t, err)

	other, err := NewTokenService("other-secret", "HS256", time.Minute)
	require.NoError(t, err)
	foreign, err := other.WithClock(clock.now).Issue("a@x.com", 0)
	require.NoError(t, err)

	hs512, err := NewTokenService("test-secret", "HS512", time.Minute)
	require.NoError(t, err)
	wrongAlg, err := hs512.WithClock(clock.now).Issue("a@x.com", 0)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(epoch.Add(time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "a@x.com",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "tampered", token: valid[:len(valid)-2] + "xx"},
		{name: "wrong secret", token: foreign},
		{name: "wrong algorithm", token: wrongAlg},
		{name: "missing subject", token: noSubject},
		{name: "missing expiry", token: noExpiry},
		{name: "malformed", token: "not.a.token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Resolve(tt.token)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		})
	}
}
