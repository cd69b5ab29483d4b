package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	// KeyPrefix namespaces every key this service writes.
	KeyPrefix = "account:"

	pingTimeout = time.Second
	dialTimeout = 2 * time.Second
)

// Client owns the go-redis connection shared by the cache decorators.
type Client struct {
	rdb    *goredis.Client
	prefix string
}

func New(addr, password string, db int) *Client {
	return &Client{
		rdb: goredis.NewClient(&goredis.Options{
			Addr:        addr,
			Password:    password,
			DB:          db,
			DialTimeout: dialTimeout,
		}),
		prefix: KeyPrefix,
	}
}

// Key joins parts under the service prefix: Key("user", "email", e) -> "account:user:email:e".
func (c *Client) Key(parts ...string) string {
	k := c.prefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
