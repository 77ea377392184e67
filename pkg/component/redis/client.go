// Package redis opens the go-redis connection behind the redis session backend.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	options "github.com/kart-io/medreq/pkg/options/redis"
)

// Client owns a go-redis connection pool.
type Client struct {
	rdb  *goredis.Client
	addr string
}

// New dials redis and fails unless the server answers PING.
func New(ctx context.Context, opts *options.Options) (*Client, error) {
	if opts == nil {
		return nil, errors.New("redis: nil options")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	c := &Client{rdb: goredis.NewClient(goOptions(opts)), addr: opts.Addr()}
	if err := c.Ping(ctx); err != nil {
		_ = c.rdb.Close()
		return nil, err
	}
	return c, nil
}

func goOptions(o *options.Options) *goredis.Options {
	return &goredis.Options{
		Addr:         o.Addr(),
		Password:     o.Password,
		DB:           o.Database,
		MaxRetries:   o.MaxRetries,
		PoolSize:     o.PoolSize,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
	}
}

// Name identifies the component.
func (c *Client) Name() string { return "redis" }

// Ping round-trips a PING command.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: ping: %w", c.addr, err)
	}
	return nil
}

// Close releases the pool.
func (c *Client) Close() error { return c.rdb.Close() }

// Client exposes the go-redis handle for the session backend.
func (c *Client) Client() *goredis.Client { return c.rdb }
