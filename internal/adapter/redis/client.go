// Package redis builds the go-redis client used for caching.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/pollution-reporter/internal/config"
)

const pingTimeout = 5 * time.Second

// NewClient connects to redis and pings it. The caller must Close the
// returned client.
func NewClient(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	log.InfoContext(ctx, "redis connected", slog.String("addr", cfg.Addr), slog.Int("db", cfg.DB))
	return client, nil
}

// Pinger adapts a redis client to the health check interface.
type Pinger struct {
	Client goredis.Cmdable
}

// Ping sends PING and returns its error.
func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
