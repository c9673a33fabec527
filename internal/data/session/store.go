package session

import (
	"context"
	"fmt"
	"time"

	"classifieds-market/pkg/database"
	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

// Store holds login markers and email verification state.
// A zero ttl means the key never expires.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

func LoginKey(userID string) string { return "login:" + userID }
func EmailCodeKey(email string) string { return "email_code:" + email }
func EmailTimeKey(email string) string { return "email_time:" + email }
func EmailVerifiedKey(email string) string { return "email_verified:" + email }

// New picks the backend from SESSION_BACKEND. The returned func releases it.
func New(config utils.SessionConfig, log *zap.Logger) (Store, func() error, error) {
	switch config.Backend {
	case "", "memory":
		log.Warn("Using in-memory session store; sessions are lost on restart")
		return NewMemoryStore(), func() error { return nil }, nil
	case "redis":
		client, err := database.InitRedis(config)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Redis session store connected", zap.String("addr", config.RedisAddr))
		return NewRedisStore(client), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", config.Backend)
	}
}
