package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Todas las claves del servicio viven bajo "quiz:".
const (
	redisSessionPrefix = "quiz:session:"
	redisRefreshPrefix = "quiz:refresh:"
	redisLoginPrefix   = "quiz:login:"

	redisOpTimeout = 500 * time.Millisecond
)

// redisKV es el subconjunto de *redis.Client que usan los stores de valores.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
