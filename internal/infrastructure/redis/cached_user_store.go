package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/account-service/internal/application/account"
	"github.com/baechuer/account-service/internal/domain"
)

// CachedUserStore decorates an account.UserStore with a Redis cache for lookups by email,
// the hot path of login and update.
// - Read path: Redis -> store fallback -> Redis set
// - Write path: store -> Redis del (best effort)
// Redis failures never fail a request; the store stays the source of truth.
type CachedUserStore struct {
	inner   account.UserStore
	rdb     *goredis.Client
	ttl     time.Duration
	keyPref string
}

func NewCachedUserStore(inner account.UserStore, client *Client, ttl time.Duration) *CachedUserStore {
	var rdb *goredis.Client
	keyPref := KeyPrefix + "user:email:"
	if client != nil {
		rdb = client.rdb
		keyPref = client.Key("user", "email", "")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedUserStore{
		inner:   inner,
		rdb:     rdb,
		ttl:     ttl,
		keyPref: keyPref,
	}
}

func (c *CachedUserStore) key(email string) string {
	return c.keyPref + strings.ToLower(strings.TrimSpace(email))
}

type cachedUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MobileNumber string    `json:"mobile_number"`
	Gender       string    `json:"gender"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func fromDomain(u domain.User) cachedUser {
	return cachedUser(u)
}

func (cu cachedUser) toDomain() domain.User {
	return domain.User(cu)
}

func (c *CachedUserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	// 1) Try Redis
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, c.key(email)).Bytes()
		if err == nil {
			var cu cachedUser
			if jerr := json.Unmarshal(raw, &cu); jerr == nil {
				return cu.toDomain(), nil
			}
			// corrupt entry -> fall back to store
		} else if !errors.Is(err, goredis.Nil) {
			// redis error -> fall back to store (do NOT fail the request)
		}
	}

	// 2) store is the source of truth
	u, err := c.inner.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	// 3) best-effort cache fill
	c.set(ctx, u)
	return u, nil
}

func (c *CachedUserStore) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	created, err := c.inner.Insert(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	c.invalidate(ctx, created.Email)
	return created, nil
}

func (c *CachedUserStore) Update(ctx context.Context, u domain.User) (domain.User, error) {
	updated, err := c.inner.Update(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	c.invalidate(ctx, u.Email, updated.Email)
	return updated, nil
}

func (c *CachedUserStore) set(ctx context.Context, u domain.User) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(fromDomain(u))
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(u.Email), raw, c.ttl).Err()
}

func (c *CachedUserStore) invalidate(ctx context.Context, emails ...string) {
	if c.rdb == nil {
		return
	}
	keys := make([]string, 0, len(emails))
	for _, e := range emails {
		keys = append(keys, c.key(e))
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

/*
Below: delegate the remaining account.UserStore methods to inner.
*/

func (c *CachedUserStore) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return c.inner.FindByUsername(ctx, username)
}
func (c *CachedUserStore) FindByID(ctx context.Context, id string) (domain.User, error) {
	return c.inner.FindByID(ctx, id)
}
func (c *CachedUserStore) List(ctx context.Context) ([]domain.User, error) {
	return c.inner.List(ctx)
}
