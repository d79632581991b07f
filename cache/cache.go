package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Conn is the shared Redis client. It stays nil when REDIS_ADDR is unset,
// in which case every helper is a pass-through and the API serves straight
// from Postgres.
var Conn *redis.Client

func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, product cache disabled")
		return
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Conn.Ping(ctx).Err(); err != nil {
		log.Println("Redis unreachable, product cache disabled:", err)
		Conn = nil
	}
}

// GetJSON loads a cached value into dest. Returns false on miss, disabled
// cache, or any Redis error; callers always fall back to the database.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if Conn == nil {
		return false
	}
	raw, err := Conn.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Println("cache: bad payload for", key, err)
		return false
	}
	return true
}

// SetJSON stores a value with a TTL. Errors are logged, never returned:
// caching is best effort.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if Conn == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Println("cache: marshal", key, err)
		return
	}
	if err := Conn.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Println("cache: set", key, err)
	}
}

// InvalidatePrefix drops every key under the prefix. Called after admin
// writes to products, variants or bundles.
func InvalidatePrefix(ctx context.Context, prefix string) {
	if Conn == nil {
		return
	}
	keys, err := Conn.Keys(ctx, prefix+"*").Result()
	if err != nil {
		log.Println("cache: scan", prefix, err)
		return
	}
	if len(keys) > 0 {
		Conn.Del(ctx, keys...)
	}
}
