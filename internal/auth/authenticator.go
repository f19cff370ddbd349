package auth

import (
	"context"
	"errors"

	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/model"
)

// UserFinder loads a user by email.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authenticator turns a bearer token into the user it was issued to.
type Authenticator struct {
	tokens *TokenService
	users  UserFinder
	cache  IdentityStore
}

// NewAuthenticator creates an authenticator. cache may be nil.
func NewAuthenticator(tokens *TokenService, users UserFinder, cache IdentityStore) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, cache: cache}
}

// CurrentUser resolves token to a stored user. A bad token and an unknown
// subject both yield ErrUnauthorized; store outages pass through.
func (a *Authenticator) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	email, err := a.tokens.Resolve(token)
	if err != nil {
		return nil, err
	}
	return a.UserForSubject(ctx, email)
}

// UserForSubject loads the user for an already validated token subject.
func (a *Authenticator) UserForSubject(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if a.cache != nil {
		if u, ok := a.cache.Get(ctx, email); ok {
			return u, nil
		}
	}

	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if a.cache != nil {
		a.cache.Put(ctx, u)
	}
	return u, nil
}

// Tokens exposes the token service the authenticator validates with.
func (a *Authenticator) Tokens() *TokenService {
	return a.tokens
}
