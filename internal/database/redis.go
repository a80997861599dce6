package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/localnerve/jobboard/internal/config"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis connects to the configured Redis server.
// It returns a nil client when REDIS_ADDR is not set.
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Printf("Connected to redis: %s", cfg.RedisAddr)

	return client, nil
}
