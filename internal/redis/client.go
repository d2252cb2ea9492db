// Package redis wraps the go-redis client so repositories depend on an
// interface that tests can back with miniredis.
package redis

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

// Options configures the client
type Options struct {
	PoolSize    int
	MaxRetries  int
	DialTimeout time.Duration
	UseTLS      bool
	TLSInsecure bool
}

// NewClient creates a client for a single Redis instance. The endpoint is
// either host:port or a redis:// / rediss:// URL carrying credentials and a
// DB number. Connections are opened lazily.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	redisOpts, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.MaxRetries != 0 {
		redisOpts.MaxRetries = opts.MaxRetries
	}
	if opts.DialTimeout > 0 {
		redisOpts.DialTimeout = opts.DialTimeout
	}
	if opts.UseTLS && redisOpts.TLSConfig == nil {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if opts.TLSInsecure && redisOpts.TLSConfig != nil {
		redisOpts.TLSConfig.InsecureSkipVerify = true // #nosec G402 -- opt-in for self-signed dev certs
	}

	return redis.NewClient(redisOpts), nil
}

func parseEndpoint(endpoint string) (*redis.Options, error) {
	if !strings.Contains(endpoint, "://") {
		return &redis.Options{Addr: endpoint}, nil
	}
	parsed, err := redis.ParseURL(endpoint)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis URL")
	}
	return parsed, nil
}

// Connect creates a client and verifies the server answers
func Connect(ctx context.Context, endpoint string, opts *Options) (Client, error) {
	client, err := NewClient(endpoint, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis did not answer ping")
	}
	return client, nil
}
