package database

import (
	"context"
	"fmt"
	"time"

	"classifieds-market/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the session store client and pings it.
func InitRedis(config utils.SessionConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", config.RedisAddr, err)
	}

	return client, nil
}
