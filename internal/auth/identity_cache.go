package auth

import (
	"context"
	"time"

	"pomodoros/internal/cache"
	"pomodoros/internal/model"
)

const (
	identityKeyPrefix = "identity:"
	// IdentityTTL bounds how long a resolved user is served from cache.
	IdentityTTL = 5 * time.Minute
)

// IdentityStore caches resolved users by email.
type IdentityStore interface {
	Get(ctx context.Context, email string) (*model.User, bool)
	Put(ctx context.Context, user *model.User)
	Invalidate(ctx context.Context, email string)
}

// cachedIdentity is the cached form of a user. The password hash is never
// written to the cache.
type cachedIdentity struct {
	UserID    string     `json:"user_id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IdentityCache stores identities in Redis. A nil cache client disables it.
type IdentityCache struct {
	cache *cache.Client
	ttl   time.Duration
}

var _ IdentityStore = (*IdentityCache)(nil)

// NewIdentityCache creates an identity cache on top of c.
func NewIdentityCache(c *cache.Client) *IdentityCache {
	return &IdentityCache{cache: c, ttl: IdentityTTL}
}

// Get returns the cached user for email.
func (s *IdentityCache) Get(ctx context.Context, email string) (*model.User, bool) {
	var id cachedIdentity
	if !s.cache.GetJSON(ctx, identityKeyPrefix+email, &id) || id.UserID == "" {
		return nil, false
	}
	return &model.User{
		UserID:    id.UserID,
		Email:     id.Email,
		FirstName: id.FirstName,
		LastName:  id.LastName,
		BirthDate: id.BirthDate,
		CreatedAt: id.CreatedAt,
	}, true
}

// Put caches user under its email.
func (s *IdentityCache) Put(ctx context.Context, user *model.User) {
	if user == nil {
		return
	}
	s.cache.SetJSON(ctx, identityKeyPrefix+user.Email, cachedIdentity{
		UserID:    user.UserID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: user.BirthDate,
		CreatedAt: user.CreatedAt,
	}, s.ttl)
}

// Invalidate drops the cached entry for email.
func (s *IdentityCache) Invalidate(ctx context.Context, email string) {
	s.cache.Delete(ctx, identityKeyPrefix+email)
}
