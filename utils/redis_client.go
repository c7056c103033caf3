package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"court-booking/config"

	"github.com/redis/go-redis/v9"
)

// RedisOptions builds client options from config. RedisURL may be a full
// redis:// URL or a bare host:port; explicit password/DB settings override
// whatever the URL carries.
func RedisOptions(cfg *config.Config) *redis.Options {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		opts = &redis.Options{Addr: cfg.RedisURL}
	}

	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB != 0 {
		opts.DB = cfg.RedisDB
	}

	opts.PoolSize = cfg.RedisPoolSize
	opts.MinIdleConns = cfg.RedisMinIdleConns
	opts.MaxRetries = 3

	return opts
}

// NewRedisClient connects the booking store's Redis client, failing fast
// when the server is unreachable at startup.
func NewRedisClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(RedisOptions(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Successfully connected to Redis")
	return client
}

// RedisHealthCheck performs a health check on Redis connection
func RedisHealthCheck(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}

	return nil
}
