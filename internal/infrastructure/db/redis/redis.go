// Package redis holds the Redis-backed parts of crm-server: the connection
// and the token revocation list.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout = 5 * time.Second
	clientName  = "crm-server"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the startup ping; zero means five seconds.
	Timeout time.Duration
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:       c.Addr,
		Password:   c.Password,
		DB:         c.DB,
		ClientName: clientName,
	}
}

// Connect opens a client and fails unless the server answers a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(cfg.options())

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", cfg.Addr, err)
	}
	return client, nil
}
